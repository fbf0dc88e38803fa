package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
)

const egeriaService = "egeria"

// maxFlushRounds bounds Flush when listeners keep producing events.
const maxFlushRounds = 100

type categoryRecord struct {
	element  *egeria.CategoryElement
	glossary string
	parent   string
}

type termRecord struct {
	element    *egeria.TermElement
	glossary   string
	categories []string
}

// Egeria is an in-memory open-metadata exchange service. Unknown GUIDs are
// reported as invalid parameters, the way the asset manager reports them.
type Egeria struct {
	mu sync.Mutex

	collection  string
	maxPageSize int

	glossaries    map[string]*egeria.GlossaryElement
	glossaryOrder []string
	categories    map[string]*categoryRecord
	categoryOrder []string
	terms         map[string]*termRecord
	termOrder     []string

	listeners []egeria.EventListener
	pending   []egeria.Event

	writes   int
	failures map[string]error
}

var _ egeria.Exchange = (*Egeria)(nil)

// NewEgeria creates an empty exchange whose locally created elements belong
// to collection.
func NewEgeria(collection string, maxPageSize int) *Egeria {
	return &Egeria{
		collection:  collection,
		maxPageSize: maxPageSize,
		glossaries:  make(map[string]*egeria.GlossaryElement),
		categories:  make(map[string]*categoryRecord),
		terms:       make(map[string]*termRecord),
		failures:    make(map[string]error),
	}
}

// Writes returns the number of successful write calls.
func (e *Egeria) Writes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writes
}

// Fail makes every call to the named operation return err until cleared
// with a nil err.
func (e *Egeria) Fail(operation string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err == nil {
		delete(e.failures, operation)
		return
	}
	e.failures[operation] = err
}

// Pending returns the number of queued events.
func (e *Egeria) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Listeners returns the number of registered listeners.
func (e *Egeria) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// Flush delivers queued events to every registered listener until the queue
// is empty. Events emitted by listeners while flushing are delivered too.
func (e *Egeria) Flush(ctx context.Context) int {
	delivered := 0
	for range maxFlushRounds {
		e.mu.Lock()
		batch := e.pending
		e.pending = nil
		listeners := append([]egeria.EventListener(nil), e.listeners...)
		e.mu.Unlock()

		if len(batch) == 0 {
			return delivered
		}
		for _, event := range batch {
			for _, l := range listeners {
				l.ProcessEvent(ctx, event)
			}
			delivered++
		}
	}
	return delivered
}

// Discard drops queued events without delivering them.
func (e *Egeria) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = nil
}

// GlossaryByName returns the glossary with the given qualified name, or nil.
func (e *Egeria) GlossaryByName(qualifiedName string) *egeria.GlossaryElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, guid := range e.glossaryOrder {
		if g := e.glossaries[guid]; g.Properties.QualifiedName == qualifiedName {
			return cloneGlossary(g)
		}
	}
	return nil
}

// TermByName returns the first term with the given display name in a glossary, or nil.
func (e *Egeria) TermByName(glossaryGUID, displayName string) *egeria.TermElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, guid := range e.termOrder {
		if r := e.terms[guid]; r.glossary == glossaryGUID && r.element.Properties.DisplayName == displayName {
			return cloneTerm(r.element)
		}
	}
	return nil
}

// CategoryByName returns the first category with the given display name in a glossary, or nil.
func (e *Egeria) CategoryByName(glossaryGUID, displayName string) *egeria.CategoryElement {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, guid := range e.categoryOrder {
		if r := e.categories[guid]; r.glossary == glossaryGUID && r.element.Properties.DisplayName == displayName {
			return cloneCategory(r.element)
		}
	}
	return nil
}

// ClearCorrelations drops every external identifier of an element,
// simulating a correlation lost by the exchange service.
func (e *Egeria) ClearCorrelations(guid string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if g, ok := e.glossaries[guid]; ok {
		g.Correlations = nil
	}
	if r, ok := e.categories[guid]; ok {
		r.element.Correlations = nil
	}
	if r, ok := e.terms[guid]; ok {
		r.element.Correlations = nil
	}
}

// DeleteGlossary removes a glossary with its categories and terms.
func (e *Egeria) DeleteGlossary(guid string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.glossaries[guid]
	if !ok {
		return e.unknown("delete glossary", guid)
	}
	for _, tg := range append([]string(nil), e.termOrder...) {
		if e.terms[tg].glossary == guid {
			e.removeTerm(tg)
		}
	}
	for _, cg := range append([]string(nil), e.categoryOrder...) {
		if r, ok := e.categories[cg]; ok && r.glossary == guid {
			e.removeCategory(cg)
		}
	}
	delete(e.glossaries, guid)
	e.glossaryOrder = without(e.glossaryOrder, guid)
	e.emit(egeria.EventDeletedElement, g.Header)
	e.writes++
	return nil
}

// DeleteCategory removes a category.
func (e *Egeria) DeleteCategory(guid string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.categories[guid]
	if !ok {
		return e.unknown("delete category", guid)
	}
	header := r.element.Header
	e.removeCategory(guid)
	e.emit(egeria.EventDeletedElement, header)
	e.writes++
	return nil
}

// DeleteTerm removes a term.
func (e *Egeria) DeleteTerm(guid string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.terms[guid]
	if !ok {
		return e.unknown("delete term", guid)
	}
	header := r.element.Header
	e.removeTerm(guid)
	e.emit(egeria.EventDeletedElement, header)
	e.writes++
	return nil
}

// MaxPageSize implements egeria.Exchange.
func (e *Egeria) MaxPageSize() int { return e.maxPageSize }

// RegisterListener implements egeria.EventSource.
func (e *Egeria) RegisterListener(listener egeria.EventListener) error {
	if listener == nil {
		return errors.ErrNoListener
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
	return nil
}

// ListGlossaries implements egeria.GlossaryExchange.
func (e *Egeria) ListGlossaries(_ context.Context, startFrom, pageSize int) ([]*egeria.GlossaryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check("ListGlossaries", "list glossaries", pageSize); err != nil {
		return nil, err
	}
	var out []*egeria.GlossaryElement
	for _, guid := range page(e.glossaryOrder, startFrom, pageSize) {
		out = append(out, cloneGlossary(e.glossaries[guid]))
	}
	return out, nil
}

// GetGlossaryByGUID implements egeria.GlossaryExchange.
func (e *Egeria) GetGlossaryByGUID(_ context.Context, guid string) (*egeria.GlossaryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetGlossaryByGUID"); err != nil {
		return nil, err
	}
	g, ok := e.glossaries[guid]
	if !ok {
		return nil, e.unknown("get glossary", guid)
	}
	return cloneGlossary(g), nil
}

// GetGlossaryByName implements egeria.GlossaryExchange.
func (e *Egeria) GetGlossaryByName(_ context.Context, qualifiedName string) (*egeria.GlossaryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetGlossaryByName"); err != nil {
		return nil, err
	}
	for _, guid := range e.glossaryOrder {
		if g := e.glossaries[guid]; g.Properties.QualifiedName == qualifiedName {
			return cloneGlossary(g), nil
		}
	}
	return nil, errors.NewServiceError(egeriaService, "get glossary by name", errors.KindNotFound, "no glossary named "+qualifiedName, nil)
}

// CreateGlossary implements egeria.GlossaryExchange.
func (e *Egeria) CreateGlossary(_ context.Context, props egeria.GlossaryProperties, correlation *egeria.ExternalIdentifier) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("CreateGlossary"); err != nil {
		return "", err
	}
	if props.QualifiedName == "" {
		return "", e.invalid("create glossary", "qualified name is required")
	}
	g := &egeria.GlossaryElement{
		Header:     e.header(egeria.KindGlossary, correlation),
		Properties: props,
	}
	if correlation != nil {
		g.Correlations = g.Correlations.Put(*correlation)
	}
	e.glossaries[g.Header.GUID] = g
	e.glossaryOrder = append(e.glossaryOrder, g.Header.GUID)
	e.emit(egeria.EventNewElement, g.Header)
	e.writes++
	return g.Header.GUID, nil
}

// UpdateGlossary implements egeria.GlossaryExchange.
func (e *Egeria) UpdateGlossary(_ context.Context, guid string, props egeria.GlossaryProperties) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("UpdateGlossary"); err != nil {
		return err
	}
	g, ok := e.glossaries[guid]
	if !ok {
		return e.unknown("update glossary", guid)
	}
	g.Properties = props
	e.emit(egeria.EventUpdatedElement, g.Header)
	e.writes++
	return nil
}

// GetCategoriesForGlossary implements egeria.CategoryExchange.
func (e *Egeria) GetCategoriesForGlossary(_ context.Context, glossaryGUID string, startFrom, pageSize int) ([]*egeria.CategoryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check("GetCategoriesForGlossary", "get categories for glossary", pageSize); err != nil {
		return nil, err
	}
	if _, ok := e.glossaries[glossaryGUID]; !ok {
		return nil, e.unknown("get categories for glossary", glossaryGUID)
	}
	var guids []string
	for _, guid := range e.categoryOrder {
		if e.categories[guid].glossary == glossaryGUID {
			guids = append(guids, guid)
		}
	}
	var out []*egeria.CategoryElement
	for _, guid := range page(guids, startFrom, pageSize) {
		out = append(out, cloneCategory(e.categories[guid].element))
	}
	return out, nil
}

// GetCategoryByGUID implements egeria.CategoryExchange.
func (e *Egeria) GetCategoryByGUID(_ context.Context, guid string) (*egeria.CategoryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetCategoryByGUID"); err != nil {
		return nil, err
	}
	r, ok := e.categories[guid]
	if !ok {
		return nil, e.unknown("get category", guid)
	}
	return cloneCategory(r.element), nil
}

// CreateCategory implements egeria.CategoryExchange.
func (e *Egeria) CreateCategory(_ context.Context, glossaryGUID string, props egeria.CategoryProperties, correlation *egeria.ExternalIdentifier) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("CreateCategory"); err != nil {
		return "", err
	}
	if _, ok := e.glossaries[glossaryGUID]; !ok {
		return "", e.unknown("create category", glossaryGUID)
	}
	if props.QualifiedName == "" {
		return "", e.invalid("create category", "qualified name is required")
	}
	c := &egeria.CategoryElement{
		Header:     e.header(egeria.KindCategory, correlation),
		Properties: props,
	}
	if correlation != nil {
		c.Correlations = c.Correlations.Put(*correlation)
	}
	e.categories[c.Header.GUID] = &categoryRecord{element: c, glossary: glossaryGUID}
	e.categoryOrder = append(e.categoryOrder, c.Header.GUID)
	e.emit(egeria.EventNewElement, c.Header)
	e.writes++
	return c.Header.GUID, nil
}

// UpdateCategory implements egeria.CategoryExchange.
func (e *Egeria) UpdateCategory(_ context.Context, guid string, props egeria.CategoryProperties) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("UpdateCategory"); err != nil {
		return err
	}
	r, ok := e.categories[guid]
	if !ok {
		return e.unknown("update category", guid)
	}
	r.element.Properties = props
	e.emit(egeria.EventUpdatedElement, r.element.Header)
	e.writes++
	return nil
}

// GetCategoryParent implements egeria.CategoryExchange.
func (e *Egeria) GetCategoryParent(_ context.Context, categoryGUID string) (*egeria.CategoryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetCategoryParent"); err != nil {
		return nil, err
	}
	r, ok := e.categories[categoryGUID]
	if !ok {
		return nil, e.unknown("get category parent", categoryGUID)
	}
	if r.parent == "" {
		return nil, nil
	}
	return cloneCategory(e.categories[r.parent].element), nil
}

// SetupCategoryParent implements egeria.CategoryExchange.
func (e *Egeria) SetupCategoryParent(_ context.Context, parentGUID, childGUID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("SetupCategoryParent"); err != nil {
		return err
	}
	child, ok := e.categories[childGUID]
	if !ok {
		return e.unknown("setup category parent", childGUID)
	}
	if _, ok := e.categories[parentGUID]; !ok || parentGUID == childGUID {
		return e.unknown("setup category parent", parentGUID)
	}
	child.parent = parentGUID
	e.emit(egeria.EventNewRelationship, child.element.Header)
	e.writes++
	return nil
}

// ClearCategoryParent implements egeria.CategoryExchange.
func (e *Egeria) ClearCategoryParent(_ context.Context, parentGUID, childGUID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("ClearCategoryParent"); err != nil {
		return err
	}
	child, ok := e.categories[childGUID]
	if !ok {
		return e.unknown("clear category parent", childGUID)
	}
	if child.parent != parentGUID {
		return e.invalid("clear category parent", "category "+childGUID+" is not a child of "+parentGUID)
	}
	child.parent = ""
	e.emit(egeria.EventUpdatedElement, child.element.Header)
	e.writes++
	return nil
}

// GetGlossaryForCategory implements egeria.CategoryExchange.
func (e *Egeria) GetGlossaryForCategory(_ context.Context, categoryGUID string) (*egeria.GlossaryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetGlossaryForCategory"); err != nil {
		return nil, err
	}
	r, ok := e.categories[categoryGUID]
	if !ok {
		return nil, e.unknown("get glossary for category", categoryGUID)
	}
	return cloneGlossary(e.glossaries[r.glossary]), nil
}

// GetTermsForGlossary implements egeria.TermExchange.
func (e *Egeria) GetTermsForGlossary(_ context.Context, glossaryGUID string, startFrom, pageSize int) ([]*egeria.TermElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check("GetTermsForGlossary", "get terms for glossary", pageSize); err != nil {
		return nil, err
	}
	if _, ok := e.glossaries[glossaryGUID]; !ok {
		return nil, e.unknown("get terms for glossary", glossaryGUID)
	}
	var guids []string
	for _, guid := range e.termOrder {
		if e.terms[guid].glossary == glossaryGUID {
			guids = append(guids, guid)
		}
	}
	var out []*egeria.TermElement
	for _, guid := range page(guids, startFrom, pageSize) {
		out = append(out, cloneTerm(e.terms[guid].element))
	}
	return out, nil
}

// GetTermByGUID implements egeria.TermExchange.
func (e *Egeria) GetTermByGUID(_ context.Context, guid string) (*egeria.TermElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetTermByGUID"); err != nil {
		return nil, err
	}
	r, ok := e.terms[guid]
	if !ok {
		return nil, e.unknown("get term", guid)
	}
	return cloneTerm(r.element), nil
}

// CreateTerm implements egeria.TermExchange.
func (e *Egeria) CreateTerm(_ context.Context, glossaryGUID string, props egeria.TermProperties, correlation *egeria.ExternalIdentifier) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("CreateTerm"); err != nil {
		return "", err
	}
	if _, ok := e.glossaries[glossaryGUID]; !ok {
		return "", e.unknown("create term", glossaryGUID)
	}
	if props.QualifiedName == "" {
		return "", e.invalid("create term", "qualified name is required")
	}
	t := &egeria.TermElement{
		Header:     e.header(egeria.KindTerm, correlation),
		Properties: props,
	}
	if correlation != nil {
		t.Correlations = t.Correlations.Put(*correlation)
	}
	e.terms[t.Header.GUID] = &termRecord{element: t, glossary: glossaryGUID}
	e.termOrder = append(e.termOrder, t.Header.GUID)
	e.emit(egeria.EventNewElement, t.Header)
	e.writes++
	return t.Header.GUID, nil
}

// UpdateTerm implements egeria.TermExchange.
func (e *Egeria) UpdateTerm(_ context.Context, guid string, props egeria.TermProperties) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("UpdateTerm"); err != nil {
		return err
	}
	r, ok := e.terms[guid]
	if !ok {
		return e.unknown("update term", guid)
	}
	r.element.Properties = props
	e.emit(egeria.EventUpdatedElement, r.element.Header)
	e.writes++
	return nil
}

// GetCategoriesForTerm implements egeria.TermExchange.
func (e *Egeria) GetCategoriesForTerm(_ context.Context, termGUID string, startFrom, pageSize int) ([]*egeria.CategoryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check("GetCategoriesForTerm", "get categories for term", pageSize); err != nil {
		return nil, err
	}
	r, ok := e.terms[termGUID]
	if !ok {
		return nil, e.unknown("get categories for term", termGUID)
	}
	var out []*egeria.CategoryElement
	for _, guid := range page(r.categories, startFrom, pageSize) {
		out = append(out, cloneCategory(e.categories[guid].element))
	}
	return out, nil
}

// SetupTermCategory implements egeria.TermExchange.
func (e *Egeria) SetupTermCategory(_ context.Context, categoryGUID, termGUID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("SetupTermCategory"); err != nil {
		return err
	}
	r, ok := e.terms[termGUID]
	if !ok {
		return e.unknown("setup term category", termGUID)
	}
	if _, ok := e.categories[categoryGUID]; !ok {
		return e.unknown("setup term category", categoryGUID)
	}
	for _, c := range r.categories {
		if c == categoryGUID {
			return nil
		}
	}
	r.categories = append(r.categories, categoryGUID)
	e.emit(egeria.EventNewRelationship, r.element.Header)
	e.writes++
	return nil
}

// ClearTermCategory implements egeria.TermExchange.
func (e *Egeria) ClearTermCategory(_ context.Context, categoryGUID, termGUID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("ClearTermCategory"); err != nil {
		return err
	}
	r, ok := e.terms[termGUID]
	if !ok {
		return e.unknown("clear term category", termGUID)
	}
	before := len(r.categories)
	r.categories = without(r.categories, categoryGUID)
	if len(r.categories) == before {
		return e.invalid("clear term category", "term "+termGUID+" is not in category "+categoryGUID)
	}
	e.emit(egeria.EventUpdatedElement, r.element.Header)
	e.writes++
	return nil
}

// GetGlossaryForTerm implements egeria.TermExchange.
func (e *Egeria) GetGlossaryForTerm(_ context.Context, termGUID string) (*egeria.GlossaryElement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("GetGlossaryForTerm"); err != nil {
		return nil, err
	}
	r, ok := e.terms[termGUID]
	if !ok {
		return nil, e.unknown("get glossary for term", termGUID)
	}
	return cloneGlossary(e.glossaries[r.glossary]), nil
}

// AddExternalIdentifier implements egeria.Correlator.
func (e *Egeria) AddExternalIdentifier(_ context.Context, elementGUID string, kind egeria.ElementKind, id egeria.ExternalIdentifier) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.failure("AddExternalIdentifier"); err != nil {
		return err
	}
	var header egeria.ElementHeader
	switch kind {
	case egeria.KindGlossary:
		g, ok := e.glossaries[elementGUID]
		if !ok {
			return e.unknown("add external identifier", elementGUID)
		}
		g.Correlations = g.Correlations.Put(id)
		header = g.Header
	case egeria.KindCategory:
		r, ok := e.categories[elementGUID]
		if !ok {
			return e.unknown("add external identifier", elementGUID)
		}
		r.element.Correlations = r.element.Correlations.Put(id)
		header = r.element.Header
	case egeria.KindTerm:
		r, ok := e.terms[elementGUID]
		if !ok {
			return e.unknown("add external identifier", elementGUID)
		}
		r.element.Correlations = r.element.Correlations.Put(id)
		header = r.element.Header
	default:
		return e.invalid("add external identifier", "unsupported element kind "+string(kind))
	}
	e.emit(egeria.EventUpdatedElement, header)
	e.writes++
	return nil
}

func (e *Egeria) header(kind egeria.ElementKind, correlation *egeria.ExternalIdentifier) egeria.ElementHeader {
	home := e.collection
	if correlation != nil && correlation.Scope != "" {
		home = correlation.Scope
	}
	return egeria.ElementHeader{
		GUID:   uuid.NewString(),
		Type:   egeria.ElementType{TypeName: kind},
		Origin: egeria.ElementOrigin{HomeCollection: home},
	}
}

func (e *Egeria) emit(eventType egeria.EventType, header egeria.ElementHeader) {
	e.pending = append(e.pending, egeria.Event{Type: eventType, ElementHeader: header})
}

func (e *Egeria) removeCategory(guid string) {
	for _, r := range e.categories {
		if r.parent == guid {
			r.parent = ""
		}
	}
	for _, r := range e.terms {
		r.categories = without(r.categories, guid)
	}
	delete(e.categories, guid)
	e.categoryOrder = without(e.categoryOrder, guid)
}

func (e *Egeria) removeTerm(guid string) {
	delete(e.terms, guid)
	e.termOrder = without(e.termOrder, guid)
}

func (e *Egeria) failure(operation string) error {
	return e.failures[operation]
}

func (e *Egeria) check(operation, op string, pageSize int) error {
	if err := e.failure(operation); err != nil {
		return err
	}
	if pageSize < 0 || (e.maxPageSize > 0 && pageSize > e.maxPageSize) {
		return e.invalid(op, "page size out of range")
	}
	return nil
}

func (e *Egeria) unknown(op, guid string) error {
	return errors.NewServiceError(egeriaService, op, errors.KindInvalidParameter, "unknown guid "+guid, nil)
}

func (e *Egeria) invalid(op, message string) error {
	return errors.NewServiceError(egeriaService, op, errors.KindInvalidParameter, message, nil)
}

func page(guids []string, startFrom, pageSize int) []string {
	if startFrom >= len(guids) || startFrom < 0 {
		return nil
	}
	end := len(guids)
	if pageSize > 0 && startFrom+pageSize < end {
		end = startFrom + pageSize
	}
	return guids[startFrom:end]
}

func cloneGlossary(g *egeria.GlossaryElement) *egeria.GlossaryElement {
	out := *g
	out.Correlations = append(egeria.Correlations(nil), g.Correlations...)
	return &out
}

func cloneCategory(c *egeria.CategoryElement) *egeria.CategoryElement {
	out := *c
	out.Correlations = append(egeria.Correlations(nil), c.Correlations...)
	return &out
}

func cloneTerm(t *egeria.TermElement) *egeria.TermElement {
	out := *t
	out.Correlations = append(egeria.Correlations(nil), t.Correlations...)
	return &out
}
