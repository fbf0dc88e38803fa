// Package memory provides in-memory Atlas and Egeria implementations of the
// connector's collaborator contracts. Both count writes and support error
// injection; the Egeria double queues change events like a real topic.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/errors"
)

const atlasService = "atlas"

// Atlas is an in-memory Atlas glossary store. Relationship lists on returned
// elements are derived from anchors, parent links and term categorizations,
// the way the Atlas server derives them.
type Atlas struct {
	mu sync.Mutex

	glossaries    map[string]*atlas.Glossary
	glossaryOrder []string
	categories    map[string]*atlas.Category
	categoryOrder []string
	terms         map[string]*atlas.Term
	termOrder     []string

	writes    int
	conflicts int
	failures  map[string]error
}

var _ atlas.Client = (*Atlas)(nil)

// NewAtlas creates an empty Atlas store.
func NewAtlas() *Atlas {
	return &Atlas{
		glossaries: make(map[string]*atlas.Glossary),
		categories: make(map[string]*atlas.Category),
		terms:      make(map[string]*atlas.Term),
		failures:   make(map[string]error),
	}
}

// Writes returns the number of successful create, save and delete calls.
func (a *Atlas) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writes
}

// Fail makes every call to the named operation return err until cleared
// with a nil err.
func (a *Atlas) Fail(operation string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err == nil {
		delete(a.failures, operation)
		return
	}
	a.failures[operation] = err
}

// ForceConflicts makes the next n create calls fail with a name conflict,
// simulating a concurrent writer.
func (a *Atlas) ForceConflicts(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conflicts = n
}

// GlossaryByName returns the glossary with the given name, or nil.
func (a *Atlas) GlossaryByName(name string) *atlas.Glossary {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, guid := range a.glossaryOrder {
		if g := a.glossaries[guid]; g.Name == name {
			return a.glossaryView(g)
		}
	}
	return nil
}

// CategoryByName returns the category with the given name in a glossary, or nil.
func (a *Atlas) CategoryByName(glossaryGUID, name string) *atlas.Category {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, guid := range a.categoryOrder {
		if c := a.categories[guid]; c.Anchor.GlossaryGUID == glossaryGUID && c.Name == name {
			return a.categoryView(c)
		}
	}
	return nil
}

// TermByName returns the term with the given name in a glossary, or nil.
func (a *Atlas) TermByName(glossaryGUID, name string) *atlas.Term {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, guid := range a.termOrder {
		if t := a.terms[guid]; t.Anchor.GlossaryGUID == glossaryGUID && t.Name == name {
			return t.Clone()
		}
	}
	return nil
}

// TermNames returns the names of all terms in a glossary.
func (a *Atlas) TermNames(glossaryGUID string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var names []string
	for _, guid := range a.termOrder {
		if t := a.terms[guid]; t.Anchor.GlossaryGUID == glossaryGUID {
			names = append(names, t.Name)
		}
	}
	return names
}

// GlossaryCount returns the number of glossaries.
func (a *Atlas) GlossaryCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.glossaries)
}

// ListGlossaries implements atlas.Client.
func (a *Atlas) ListGlossaries(_ context.Context, offset, limit int) ([]*atlas.Glossary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("ListGlossaries"); err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, errors.NewServiceError(atlasService, "list glossaries", errors.KindInvalidParameter, "negative offset or limit", nil)
	}
	var out []*atlas.Glossary
	for i := offset; i < len(a.glossaryOrder); i++ {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, a.glossaryView(a.glossaries[a.glossaryOrder[i]]))
	}
	return out, nil
}

// GetGlossary implements atlas.Client.
func (a *Atlas) GetGlossary(_ context.Context, guid string) (*atlas.Glossary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("GetGlossary"); err != nil {
		return nil, err
	}
	g, ok := a.glossaries[guid]
	if !ok {
		return nil, notFound("get glossary", guid)
	}
	return a.glossaryView(g), nil
}

// CreateGlossary implements atlas.Client.
func (a *Atlas) CreateGlossary(_ context.Context, glossary *atlas.Glossary) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "create glossary"
	if err := a.failure("CreateGlossary"); err != nil {
		return "", err
	}
	if glossary.Name == "" {
		return "", invalid(op, "name is required")
	}
	if err := a.forcedConflict(op, glossary.Name); err != nil {
		return "", err
	}
	for _, g := range a.glossaries {
		if g.Name == glossary.Name {
			return "", conflict(op, glossary.Name)
		}
	}
	stored := glossary.Clone()
	stored.GUID = uuid.NewString()
	if stored.QualifiedName == "" {
		stored.QualifiedName = stored.Name
	}
	stored.Terms, stored.Categories = nil, nil
	a.glossaries[stored.GUID] = stored
	a.glossaryOrder = append(a.glossaryOrder, stored.GUID)
	a.writes++
	return stored.GUID, nil
}

// SaveGlossary implements atlas.Client.
func (a *Atlas) SaveGlossary(_ context.Context, glossary *atlas.Glossary) (*atlas.Glossary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "save glossary"
	if err := a.failure("SaveGlossary"); err != nil {
		return nil, err
	}
	existing, ok := a.glossaries[glossary.GUID]
	if !ok {
		return nil, notFound(op, glossary.GUID)
	}
	for guid, g := range a.glossaries {
		if guid != glossary.GUID && g.Name == glossary.Name {
			return nil, conflict(op, glossary.Name)
		}
	}
	stored := glossary.Clone()
	if stored.QualifiedName == "" {
		stored.QualifiedName = existing.QualifiedName
	}
	stored.Terms, stored.Categories = nil, nil
	a.glossaries[stored.GUID] = stored
	a.writes++
	return a.glossaryView(stored), nil
}

// DeleteGlossary implements atlas.Client. Anchored categories and terms are
// deleted with the glossary.
func (a *Atlas) DeleteGlossary(_ context.Context, guid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("DeleteGlossary"); err != nil {
		return err
	}
	if _, ok := a.glossaries[guid]; !ok {
		return notFound("delete glossary", guid)
	}
	for _, tg := range append([]string(nil), a.termOrder...) {
		if a.terms[tg].Anchor.GlossaryGUID == guid {
			a.removeTerm(tg)
		}
	}
	for _, cg := range append([]string(nil), a.categoryOrder...) {
		if c, ok := a.categories[cg]; ok && c.Anchor.GlossaryGUID == guid {
			a.removeCategory(cg)
		}
	}
	delete(a.glossaries, guid)
	a.glossaryOrder = without(a.glossaryOrder, guid)
	a.writes++
	return nil
}

// GetCategory implements atlas.Client.
func (a *Atlas) GetCategory(_ context.Context, guid string) (*atlas.Category, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("GetCategory"); err != nil {
		return nil, err
	}
	c, ok := a.categories[guid]
	if !ok {
		return nil, notFound("get category", guid)
	}
	return a.categoryView(c), nil
}

// CreateCategory implements atlas.Client.
func (a *Atlas) CreateCategory(_ context.Context, category *atlas.Category) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "create category"
	if err := a.failure("CreateCategory"); err != nil {
		return "", err
	}
	g, err := a.checkCategory(op, "", category)
	if err != nil {
		return "", err
	}
	if err := a.forcedConflict(op, category.Name); err != nil {
		return "", err
	}
	stored := category.Clone()
	stored.GUID = uuid.NewString()
	if stored.QualifiedName == "" {
		stored.QualifiedName = fmt.Sprintf("%s@%s", stored.Name, g.QualifiedName)
	}
	stored.ChildrenCategories, stored.Terms = nil, nil
	a.categories[stored.GUID] = stored
	a.categoryOrder = append(a.categoryOrder, stored.GUID)
	a.writes++
	return stored.GUID, nil
}

// SaveCategory implements atlas.Client.
func (a *Atlas) SaveCategory(_ context.Context, category *atlas.Category) (*atlas.Category, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "save category"
	if err := a.failure("SaveCategory"); err != nil {
		return nil, err
	}
	existing, ok := a.categories[category.GUID]
	if !ok {
		return nil, notFound(op, category.GUID)
	}
	stored := category.Clone()
	stored.Anchor = existing.Anchor
	if _, err := a.checkCategory(op, category.GUID, stored); err != nil {
		return nil, err
	}
	if stored.QualifiedName == "" {
		stored.QualifiedName = existing.QualifiedName
	}
	stored.ChildrenCategories, stored.Terms = nil, nil
	a.categories[stored.GUID] = stored
	a.writes++
	return a.categoryView(stored), nil
}

// DeleteCategory implements atlas.Client.
func (a *Atlas) DeleteCategory(_ context.Context, guid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("DeleteCategory"); err != nil {
		return err
	}
	if _, ok := a.categories[guid]; !ok {
		return notFound("delete category", guid)
	}
	a.removeCategory(guid)
	a.writes++
	return nil
}

// GetTerm implements atlas.Client.
func (a *Atlas) GetTerm(_ context.Context, guid string) (*atlas.Term, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("GetTerm"); err != nil {
		return nil, err
	}
	t, ok := a.terms[guid]
	if !ok {
		return nil, notFound("get term", guid)
	}
	return t.Clone(), nil
}

// CreateTerm implements atlas.Client.
func (a *Atlas) CreateTerm(_ context.Context, term *atlas.Term) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "create term"
	if err := a.failure("CreateTerm"); err != nil {
		return "", err
	}
	g, err := a.checkTerm(op, "", term)
	if err != nil {
		return "", err
	}
	if err := a.forcedConflict(op, term.Name); err != nil {
		return "", err
	}
	stored := term.Clone()
	stored.GUID = uuid.NewString()
	if stored.QualifiedName == "" {
		stored.QualifiedName = fmt.Sprintf("%s@%s", stored.Name, g.QualifiedName)
	}
	a.terms[stored.GUID] = stored
	a.termOrder = append(a.termOrder, stored.GUID)
	a.writes++
	return stored.GUID, nil
}

// SaveTerm implements atlas.Client.
func (a *Atlas) SaveTerm(_ context.Context, term *atlas.Term) (*atlas.Term, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	const op = "save term"
	if err := a.failure("SaveTerm"); err != nil {
		return nil, err
	}
	existing, ok := a.terms[term.GUID]
	if !ok {
		return nil, notFound(op, term.GUID)
	}
	stored := term.Clone()
	stored.Anchor = existing.Anchor
	if _, err := a.checkTerm(op, term.GUID, stored); err != nil {
		return nil, err
	}
	if stored.QualifiedName == "" {
		stored.QualifiedName = existing.QualifiedName
	}
	a.terms[stored.GUID] = stored
	a.writes++
	return stored.Clone(), nil
}

// DeleteTerm implements atlas.Client.
func (a *Atlas) DeleteTerm(_ context.Context, guid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.failure("DeleteTerm"); err != nil {
		return err
	}
	if _, ok := a.terms[guid]; !ok {
		return notFound("delete term", guid)
	}
	a.removeTerm(guid)
	a.writes++
	return nil
}

func (a *Atlas) checkCategory(op, self string, c *atlas.Category) (*atlas.Glossary, error) {
	if c.Name == "" {
		return nil, invalid(op, "name is required")
	}
	g, ok := a.glossaries[c.Anchor.GlossaryGUID]
	if !ok {
		return nil, invalid(op, "unknown anchor glossary "+c.Anchor.GlossaryGUID)
	}
	if p := c.ParentGUID(); p != "" {
		parent, ok := a.categories[p]
		if !ok || p == self {
			return nil, invalid(op, "unknown parent category "+p)
		}
		if parent.Anchor.GlossaryGUID != g.GUID {
			return nil, invalid(op, "parent category belongs to another glossary")
		}
	}
	for guid, other := range a.categories {
		if guid != self && other.Anchor.GlossaryGUID == g.GUID && other.Name == c.Name {
			return nil, conflict(op, c.Name)
		}
	}
	return g, nil
}

func (a *Atlas) checkTerm(op, self string, t *atlas.Term) (*atlas.Glossary, error) {
	if t.Name == "" {
		return nil, invalid(op, "name is required")
	}
	g, ok := a.glossaries[t.Anchor.GlossaryGUID]
	if !ok {
		return nil, invalid(op, "unknown anchor glossary "+t.Anchor.GlossaryGUID)
	}
	for _, c := range t.Categories {
		if _, ok := a.categories[c.CategoryGUID]; !ok {
			return nil, invalid(op, "unknown category "+c.CategoryGUID)
		}
	}
	for guid, other := range a.terms {
		if guid != self && other.Anchor.GlossaryGUID == g.GUID && other.Name == t.Name {
			return nil, conflict(op, t.Name)
		}
	}
	return g, nil
}

func (a *Atlas) glossaryView(g *atlas.Glossary) *atlas.Glossary {
	out := g.Clone()
	out.Terms, out.Categories = nil, nil
	for _, guid := range a.categoryOrder {
		c := a.categories[guid]
		if c.Anchor.GlossaryGUID == g.GUID {
			out.Categories = append(out.Categories, atlas.RelatedCategoryHeader{
				CategoryGUID:       c.GUID,
				ParentCategoryGUID: c.ParentGUID(),
				DisplayText:        c.Name,
			})
		}
	}
	for _, guid := range a.termOrder {
		t := a.terms[guid]
		if t.Anchor.GlossaryGUID == g.GUID {
			out.Terms = append(out.Terms, atlas.RelatedTermHeader{TermGUID: t.GUID, DisplayText: t.Name})
		}
	}
	return out
}

func (a *Atlas) categoryView(c *atlas.Category) *atlas.Category {
	out := c.Clone()
	out.ChildrenCategories, out.Terms = nil, nil
	for _, guid := range a.categoryOrder {
		child := a.categories[guid]
		if child.ParentGUID() == c.GUID {
			out.ChildrenCategories = append(out.ChildrenCategories, atlas.RelatedCategoryHeader{
				CategoryGUID:       child.GUID,
				ParentCategoryGUID: c.GUID,
				DisplayText:        child.Name,
			})
		}
	}
	for _, guid := range a.termOrder {
		t := a.terms[guid]
		for _, tc := range t.Categories {
			if tc.CategoryGUID == c.GUID {
				out.Terms = append(out.Terms, atlas.RelatedTermHeader{TermGUID: t.GUID, DisplayText: t.Name})
				break
			}
		}
	}
	return out
}

func (a *Atlas) removeCategory(guid string) {
	for _, c := range a.categories {
		if c.ParentGUID() == guid {
			c.ParentCategory = nil
		}
	}
	for _, t := range a.terms {
		kept := t.Categories[:0]
		for _, tc := range t.Categories {
			if tc.CategoryGUID != guid {
				kept = append(kept, tc)
			}
		}
		t.Categories = kept
	}
	delete(a.categories, guid)
	a.categoryOrder = without(a.categoryOrder, guid)
}

func (a *Atlas) removeTerm(guid string) {
	delete(a.terms, guid)
	a.termOrder = without(a.termOrder, guid)
}

func (a *Atlas) failure(operation string) error {
	return a.failures[operation]
}

func (a *Atlas) forcedConflict(op, name string) error {
	if a.conflicts > 0 {
		a.conflicts--
		return conflict(op, name)
	}
	return nil
}

func notFound(op, guid string) error {
	return errors.NewServiceError(atlasService, op, errors.KindNotFound, "no element with guid "+guid, nil)
}

func conflict(op, name string) error {
	return errors.NewServiceError(atlasService, op, errors.KindNameConflict, "name already in use: "+name, nil)
}

func invalid(op, message string) error {
	return errors.NewServiceError(atlasService, op, errors.KindInvalidParameter, message, nil)
}

func without(list []string, guid string) []string {
	out := list[:0]
	for _, g := range list {
		if g != guid {
			out = append(out, g)
		}
	}
	return out
}
