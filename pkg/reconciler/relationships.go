package reconciler

import (
	"context"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/logging"
)

// reconcileCategoryParent aligns the parent link of a category pair. The
// owner of the child decides the parent.
func (r *Reconciler) reconcileCategoryParent(ctx context.Context, rn *run, x *glossaryIndex, p categoryPair) error {
	ac, ok := x.categories[p.atlasGUID]
	if !ok {
		return nil
	}
	ctx = logging.WithElement(ctx, string(egeria.KindCategory), p.egeria.GUID())
	current, err := r.exchange.GetCategoryParent(ctx, p.egeria.GUID())
	if err != nil {
		return err
	}
	if r.resolver.IsThirdPartyOwned(p.egeria.Header) {
		return r.pullCategoryParent(ctx, rn, x, p.egeria, ac, current)
	}
	return r.pushCategoryParent(ctx, rn, x, ac, current)
}

func (r *Reconciler) pushCategoryParent(ctx context.Context, rn *run, x *glossaryIndex, ac *atlas.Category, parent *egeria.CategoryElement) error {
	want := ""
	if parent != nil {
		want = parent.Correlations.AtlasGUID()
		if _, ok := x.categories[want]; want == "" || !ok {
			logging.FromContext(ctx).Debug().
				Str("parent_guid", parent.GUID()).
				Msg("Parent category has no Atlas copy yet; deferring link")
			rn.record(egeria.KindCategory, ActionDeferred)
			return nil
		}
	}
	if ac.ParentGUID() == want {
		return nil
	}

	upd := ac.Clone()
	action := ActionUnlinked
	upd.ParentCategory = nil
	if want != "" {
		upd.ParentCategory = &atlas.RelatedCategoryHeader{CategoryGUID: want}
		action = ActionLinked
	}
	saved, err := r.atlas.SaveCategory(ctx, upd)
	if err != nil {
		return err
	}
	x.putCategory(saved)
	rn.record(egeria.KindCategory, action)
	return nil
}

func (r *Reconciler) pullCategoryParent(ctx context.Context, rn *run, x *glossaryIndex, c *egeria.CategoryElement, ac *atlas.Category, current *egeria.CategoryElement) error {
	if pg := ac.ParentGUID(); pg != "" {
		want := x.egeriaCategory(pg)
		if want == "" {
			logging.FromContext(ctx).Debug().
				Str("atlas_parent_guid", pg).
				Msg("Atlas parent category has no Egeria copy yet; deferring link")
			rn.record(egeria.KindCategory, ActionDeferred)
			return nil
		}
		if current != nil && current.GUID() == want {
			return nil
		}
		if current != nil {
			if err := r.exchange.ClearCategoryParent(ctx, current.GUID(), c.GUID()); err != nil {
				return err
			}
		}
		if err := r.exchange.SetupCategoryParent(ctx, want, c.GUID()); err != nil {
			return err
		}
		rn.record(egeria.KindCategory, ActionLinked)
		return nil
	}

	if current == nil || !r.resolver.IsThirdPartyOwned(current.Header) {
		return nil
	}
	if err := r.exchange.ClearCategoryParent(ctx, current.GUID(), c.GUID()); err != nil {
		return err
	}
	rn.record(egeria.KindCategory, ActionUnlinked)
	return nil
}

// reconcileTermCategories aligns the categorizations of a term pair. For a
// term owned by Egeria the Egeria links are copied to Atlas. For a copy of
// an Atlas term the Atlas links are copied to Egeria, and only links to
// copies of Atlas categories are ever removed.
func (r *Reconciler) reconcileTermCategories(ctx context.Context, rn *run, x *glossaryIndex, p termPair) error {
	at, ok := x.terms[p.atlasGUID]
	if !ok {
		return nil
	}
	ctx = logging.WithElement(ctx, string(egeria.KindTerm), p.egeria.GUID())
	current, err := r.categoriesForTerm(ctx, p.egeria.GUID())
	if err != nil {
		return err
	}
	if r.resolver.IsThirdPartyOwned(p.egeria.Header) {
		return r.pullTermCategories(ctx, rn, x, p.egeria, at, current)
	}
	return r.pushTermCategories(ctx, rn, x, at, current)
}

func (r *Reconciler) pushTermCategories(ctx context.Context, rn *run, x *glossaryIndex, at *atlas.Term, categories []*egeria.CategoryElement) error {
	want := make([]string, 0, len(categories))
	for _, c := range categories {
		guid := c.Correlations.AtlasGUID()
		if _, ok := x.categories[guid]; guid == "" || !ok {
			logging.FromContext(ctx).Debug().
				Str("category_guid", c.GUID()).
				Msg("Category has no Atlas copy yet; deferring categorization")
			rn.record(egeria.KindTerm, ActionDeferred)
			continue
		}
		want = append(want, guid)
	}
	have := at.CategoryGUIDs()
	if sameSet(have, want) {
		return nil
	}

	upd := at.Clone()
	upd.Categories = make([]atlas.TermCategorizationHeader, 0, len(want))
	for _, guid := range want {
		upd.Categories = append(upd.Categories, atlas.TermCategorizationHeader{CategoryGUID: guid})
	}
	saved, err := r.atlas.SaveTerm(ctx, upd)
	if err != nil {
		return err
	}
	x.putTerm(saved)

	added, removed := diff(have, want)
	if added > 0 {
		rn.record(egeria.KindTerm, ActionLinked)
	}
	if removed > 0 {
		rn.record(egeria.KindTerm, ActionUnlinked)
	}
	return nil
}

func (r *Reconciler) pullTermCategories(ctx context.Context, rn *run, x *glossaryIndex, t *egeria.TermElement, at *atlas.Term, current []*egeria.CategoryElement) error {
	want := make(map[string]bool, len(at.Categories))
	for _, guid := range at.CategoryGUIDs() {
		om := x.egeriaCategory(guid)
		if om == "" {
			logging.FromContext(ctx).Debug().
				Str("atlas_category_guid", guid).
				Msg("Atlas category has no Egeria copy yet; deferring categorization")
			rn.record(egeria.KindTerm, ActionDeferred)
			continue
		}
		want[om] = true
	}

	have := make(map[string]bool, len(current))
	for _, c := range current {
		have[c.GUID()] = true
		if want[c.GUID()] || !r.resolver.IsThirdPartyOwned(c.Header) {
			continue
		}
		if err := r.exchange.ClearTermCategory(ctx, c.GUID(), t.GUID()); err != nil {
			return err
		}
		rn.record(egeria.KindTerm, ActionUnlinked)
	}
	for _, guid := range at.CategoryGUIDs() {
		om := x.egeriaCategory(guid)
		if om == "" || have[om] {
			continue
		}
		have[om] = true
		if err := r.exchange.SetupTermCategory(ctx, om, t.GUID()); err != nil {
			return err
		}
		rn.record(egeria.KindTerm, ActionLinked)
	}
	return nil
}

// reconcileTermRelationships would align term-to-term relationships such as
// synonyms and antonyms. They are not synchronized.
func (r *Reconciler) reconcileTermRelationships(ctx context.Context, _ *run, _ *glossaryIndex, terms []termPair) {
	if len(terms) > 0 {
		logging.FromContext(ctx).Trace().
			Int("terms", len(terms)).
			Msg("Term-to-term relationships are not synchronized")
	}
}

// diff counts the elements of want missing from have and of have missing
// from want.
func diff(have, want []string) (added, removed int) {
	in := func(list []string, s string) bool {
		for _, v := range list {
			if v == s {
				return true
			}
		}
		return false
	}
	for _, w := range want {
		if !in(have, w) {
			added++
		}
	}
	for _, h := range have {
		if !in(want, h) {
			removed++
		}
	}
	return added, removed
}
