package reconciler

import (
	"context"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
)

// glossaryIndex caches the categories and terms of one Atlas glossary for
// the duration of a glossary pass.
type glossaryIndex struct {
	glossary      *atlas.Glossary
	categories    map[string]*atlas.Category
	categoryOrder []string
	terms         map[string]*atlas.Term
	termOrder     []string
	visited       map[string]bool
}

type categoryPair struct {
	egeria    *egeria.CategoryElement
	atlasGUID string
}

type termPair struct {
	egeria    *egeria.TermElement
	atlasGUID string
}

func (r *Reconciler) loadIndex(ctx context.Context, ag *atlas.Glossary) (*glossaryIndex, error) {
	x := &glossaryIndex{
		glossary:   ag,
		categories: make(map[string]*atlas.Category, len(ag.Categories)),
		terms:      make(map[string]*atlas.Term, len(ag.Terms)),
		visited:    make(map[string]bool),
	}
	for _, h := range ag.Categories {
		c, err := r.atlas.GetCategory(ctx, h.CategoryGUID)
		if errors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		x.putCategory(c)
	}
	for _, h := range ag.Terms {
		t, err := r.atlas.GetTerm(ctx, h.TermGUID)
		if errors.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		x.putTerm(t)
	}
	return x, nil
}

// reload replaces the cached children with a fresh listing, keeping the
// visited set.
func (r *Reconciler) reload(ctx context.Context, x *glossaryIndex) error {
	ag, err := r.atlas.GetGlossary(ctx, x.glossary.GUID)
	if err != nil {
		return err
	}
	fresh, err := r.loadIndex(ctx, ag)
	if err != nil {
		return err
	}
	fresh.visited = x.visited
	*x = *fresh
	return nil
}

func (x *glossaryIndex) putCategory(c *atlas.Category) {
	if _, ok := x.categories[c.GUID]; !ok {
		x.categoryOrder = append(x.categoryOrder, c.GUID)
	}
	x.categories[c.GUID] = c
}

func (x *glossaryIndex) putTerm(t *atlas.Term) {
	if _, ok := x.terms[t.GUID]; !ok {
		x.termOrder = append(x.termOrder, t.GUID)
	}
	x.terms[t.GUID] = t
}

func (x *glossaryIndex) dropCategory(guid string) {
	delete(x.categories, guid)
	for _, c := range x.categories {
		if c.ParentGUID() == guid {
			c.ParentCategory = nil
		}
	}
	for _, t := range x.terms {
		kept := t.Categories[:0]
		for _, tc := range t.Categories {
			if tc.CategoryGUID != guid {
				kept = append(kept, tc)
			}
		}
		t.Categories = kept
	}
}

func (x *glossaryIndex) dropTerm(guid string) {
	delete(x.terms, guid)
}

func (x *glossaryIndex) categoryNames(exclude string) []string {
	names := make([]string, 0, len(x.categories))
	for guid, c := range x.categories {
		if guid != exclude {
			names = append(names, c.Name)
		}
	}
	return names
}

func (x *glossaryIndex) termNames(exclude string) []string {
	names := make([]string, 0, len(x.terms))
	for guid, t := range x.terms {
		if guid != exclude {
			names = append(names, t.Name)
		}
	}
	return names
}

func (x *glossaryIndex) categoryOwnedBy(egeriaGUID string) *atlas.Category {
	for _, guid := range x.categoryOrder {
		if c, ok := x.categories[guid]; ok && c.Marker() == atlas.OwnedByEgeria(egeriaGUID) {
			return c
		}
	}
	return nil
}

func (x *glossaryIndex) termOwnedBy(egeriaGUID string) *atlas.Term {
	for _, guid := range x.termOrder {
		if t, ok := x.terms[guid]; ok && t.Marker() == atlas.OwnedByEgeria(egeriaGUID) {
			return t
		}
	}
	return nil
}

// egeriaCategory returns the Egeria GUID recorded on an Atlas category of
// this glossary, or "".
func (x *glossaryIndex) egeriaCategory(atlasGUID string) string {
	if c, ok := x.categories[atlasGUID]; ok {
		return c.Marker().EgeriaGUID
	}
	return ""
}

// reconcileChildren reconciles the categories and terms of a glossary pair.
// Egeria children are processed first, then Atlas children that no Egeria
// child accounted for, then the links between them. Links need both ends to
// exist, so a link whose target was created in this pass is set in this pass
// and one whose target is still missing is deferred.
func (r *Reconciler) reconcileChildren(ctx context.Context, rn *run, g *egeria.GlossaryElement, ag *atlas.Glossary) error {
	x, err := r.loadIndex(ctx, ag)
	if err != nil {
		return err
	}

	var categories []categoryPair
	var terms []termPair

	err = r.eachCategory(ctx, g.GUID(), func(c *egeria.CategoryElement) error {
		ac, err := r.syncCategory(ctx, rn, x, c)
		if err != nil || ac == nil {
			return err
		}
		x.visited[ac.GUID] = true
		categories = append(categories, categoryPair{egeria: c, atlasGUID: ac.GUID})
		return nil
	})
	if err != nil {
		return err
	}

	err = r.eachTerm(ctx, g.GUID(), func(t *egeria.TermElement) error {
		at, err := r.syncTerm(ctx, rn, x, t)
		if err != nil || at == nil {
			return err
		}
		x.visited[at.GUID] = true
		terms = append(terms, termPair{egeria: t, atlasGUID: at.GUID})
		return nil
	})
	if err != nil {
		return err
	}

	for _, guid := range append([]string(nil), x.categoryOrder...) {
		ac, ok := x.categories[guid]
		if !ok || x.visited[guid] {
			continue
		}
		c, err := r.sweepAtlasCategory(ctx, rn, x, g, ac)
		if err != nil {
			return err
		}
		if c != nil {
			x.visited[guid] = true
			categories = append(categories, categoryPair{egeria: c, atlasGUID: guid})
		}
	}

	for _, guid := range append([]string(nil), x.termOrder...) {
		at, ok := x.terms[guid]
		if !ok || x.visited[guid] {
			continue
		}
		t, err := r.sweepAtlasTerm(ctx, rn, x, g, at)
		if err != nil {
			return err
		}
		if t != nil {
			x.visited[guid] = true
			terms = append(terms, termPair{egeria: t, atlasGUID: guid})
		}
	}

	for _, p := range categories {
		if err := r.reconcileCategoryParent(ctx, rn, x, p); err != nil {
			return err
		}
	}
	for _, p := range terms {
		if err := r.reconcileTermCategories(ctx, rn, x, p); err != nil {
			return err
		}
	}
	r.reconcileTermRelationships(ctx, rn, x, terms)

	logging.FromContext(ctx).Debug().
		Int("categories", len(categories)).
		Int("terms", len(terms)).
		Msg("Reconciled glossary children")
	return nil
}
