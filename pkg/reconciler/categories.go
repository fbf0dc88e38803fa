package reconciler

import (
	"context"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/ownership"
)

// syncCategory reconciles one Egeria category into Atlas and returns its
// Atlas counterpart, or nil if the category was skipped.
func (r *Reconciler) syncCategory(ctx context.Context, rn *run, x *glossaryIndex, c *egeria.CategoryElement) (*atlas.Category, error) {
	ctx = logging.WithElement(ctx, string(egeria.KindCategory), c.GUID())

	if !r.resolver.IsThirdPartyOwned(c.Header) {
		return r.pushCategory(ctx, rn, x, c)
	}

	guid := c.Correlations.AtlasGUID()
	if guid == "" {
		rn.skip(ctx, egeria.KindCategory, c.GUID(), "Egeria copy of an Atlas category has no Atlas correlation")
		return nil, nil
	}
	ac, err := r.atlasCategory(ctx, x, guid)
	if err != nil {
		return nil, err
	}
	if ac == nil {
		rn.skip(ctx, egeria.KindCategory, c.GUID(), "Atlas original of category no longer exists")
		return nil, nil
	}
	return r.pullCategory(ctx, rn, x, c, ac)
}

// atlasCategory looks a category up in the index, falling back to Atlas for
// categories of other glossaries. It returns nil if the category is gone.
func (r *Reconciler) atlasCategory(ctx context.Context, x *glossaryIndex, guid string) (*atlas.Category, error) {
	if ac, ok := x.categories[guid]; ok {
		return ac, nil
	}
	ac, err := r.atlas.GetCategory(ctx, guid)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return ac, err
}

func (r *Reconciler) pushCategory(ctx context.Context, rn *run, x *glossaryIndex, c *egeria.CategoryElement) (*atlas.Category, error) {
	base := displayName(c.Properties.DisplayName, c.Properties.QualifiedName)

	var ac *atlas.Category
	if guid := c.Correlations.AtlasGUID(); guid != "" {
		found, err := r.atlasCategory(ctx, x, guid)
		if err != nil {
			return nil, err
		}
		ac = found
	}
	if ac == nil {
		ac = x.categoryOwnedBy(c.GUID())
	}

	if ac == nil {
		fresh := &atlas.Category{Anchor: atlas.GlossaryHeader{GlossaryGUID: x.glossary.GUID}}
		categoryToAtlas(fresh, c.Properties)
		fresh.SetMarker(atlas.OwnedByEgeria(c.GUID()))

		guid, adopted, err := createWithRetry(ctx, base, x.categoryNames(""),
			func(name string) (string, error) {
				fresh.Name = name
				return r.atlas.CreateCategory(ctx, fresh)
			},
			func(ctx context.Context) (string, []string, error) {
				if err := r.reload(ctx, x); err != nil {
					return "", nil, err
				}
				if found := x.categoryOwnedBy(c.GUID()); found != nil {
					return found.GUID, nil, nil
				}
				return "", x.categoryNames(""), nil
			})
		if err != nil {
			return nil, err
		}
		if !adopted {
			fresh.GUID = guid
			x.putCategory(fresh)
			if err := r.correlate(ctx, egeria.KindCategory, c.GUID(), guid); err != nil {
				return nil, err
			}
			rn.record(egeria.KindCategory, ActionCreated)
			logging.FromContext(ctx).Info().
				Str("atlas_guid", guid).
				Str("name", fresh.Name).
				Msg("Created Atlas copy of category")
			return fresh, nil
		}
		ac = x.categories[guid]
	}

	if c.Correlations.AtlasGUID() != ac.GUID {
		if err := r.correlate(ctx, egeria.KindCategory, c.GUID(), ac.GUID); err != nil {
			return nil, err
		}
		rn.record(egeria.KindCategory, ActionRepaired)
	}

	desired := ac.Clone()
	categoryToAtlas(desired, c.Properties)
	desired.SetMarker(atlas.OwnedByEgeria(c.GUID()))
	desired.Name = stableName(ac.Name, base, x.categoryNames(ac.GUID))
	if !categoryChanged(ac, desired) {
		return ac, nil
	}
	saved, err := r.atlas.SaveCategory(ctx, desired)
	if err != nil {
		return nil, err
	}
	x.putCategory(saved)
	rn.record(egeria.KindCategory, ActionUpdated)
	return saved, nil
}

func (r *Reconciler) pullCategory(ctx context.Context, rn *run, x *glossaryIndex, c *egeria.CategoryElement, ac *atlas.Category) (*atlas.Category, error) {
	want := atlas.OwnedByAtlas(c.GUID())
	if m := ac.Marker(); m != want {
		if m.EgeriaGUID != "" && m.EgeriaGUID != c.GUID() {
			rn.skip(ctx, egeria.KindCategory, c.GUID(), "Atlas original is linked to a different Egeria category")
			return nil, nil
		}
		upd := ac.Clone()
		upd.SetMarker(want)
		saved, err := r.atlas.SaveCategory(ctx, upd)
		if err != nil {
			return nil, err
		}
		ac = saved
		x.putCategory(saved)
		rn.record(egeria.KindCategory, ActionRepaired)
	}

	if c.Correlations.AtlasGUID() != ac.GUID {
		if err := r.correlate(ctx, egeria.KindCategory, c.GUID(), ac.GUID); err != nil {
			return nil, err
		}
		rn.record(egeria.KindCategory, ActionRepaired)
	}

	props := r.categoryFromAtlas(c.Properties, ac)
	if !props.Equal(c.Properties) {
		if err := r.exchange.UpdateCategory(ctx, c.GUID(), props); err != nil {
			return nil, err
		}
		c.Properties = props
		rn.record(egeria.KindCategory, ActionRefreshed)
	}
	return ac, nil
}

// sweepAtlasCategory is the three-way branch for an Atlas category that no
// Egeria category of the glossary accounted for. It returns the Egeria
// counterpart when one exists after the branch.
func (r *Reconciler) sweepAtlasCategory(ctx context.Context, rn *run, x *glossaryIndex, g *egeria.GlossaryElement, ac *atlas.Category) (*egeria.CategoryElement, error) {
	ctx = logging.WithAtlasGUID(ctx, ac.GUID)
	m := ac.Marker()

	switch r.resolver.Classify(m) {
	case ownership.StateOpenMetadataOwned:
		c, err := r.exchange.GetCategoryByGUID(ctx, m.EgeriaGUID)
		if errors.IsGone(err) {
			if err := r.atlas.DeleteCategory(ctx, ac.GUID); err != nil && !errors.IsNotFound(err) {
				return nil, err
			}
			x.dropCategory(ac.GUID)
			rn.record(egeria.KindCategory, ActionDeleted)
			logging.FromContext(ctx).Info().
				Str("name", ac.Name).
				Msg("Deleted Atlas copy of a deleted Egeria category")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		synced, err := r.syncCategory(ctx, rn, x, c)
		if err != nil || synced == nil || synced.GUID != ac.GUID {
			return nil, err
		}
		return c, nil

	case ownership.StateThirdPartyOwned:
		c, err := r.exchange.GetCategoryByGUID(ctx, m.EgeriaGUID)
		if err == nil {
			if _, err := r.pullCategory(ctx, rn, x, c, ac); err != nil {
				return nil, err
			}
			return c, nil
		}
		if !errors.IsGone(err) {
			return nil, err
		}
		upd := ac.Clone()
		upd.SetMarker(atlas.Marker{})
		if ac, err = r.atlas.SaveCategory(ctx, upd); err != nil {
			return nil, err
		}
		x.putCategory(ac)
		rn.record(egeria.KindCategory, ActionRepaired)

	default:
		if r.resolver.Inconsistent(m) {
			logging.FromContext(ctx).Warn().
				Str("owner", m.Owner.String()).
				Msg("Atlas category has an ownership flag but no Egeria GUID; treating it as new")
			rn.warn(egeria.KindCategory, ac.GUID, "ownership flag without Egeria GUID")
		}
	}

	return r.createEgeriaCategory(ctx, rn, x, g, ac)
}

func (r *Reconciler) createEgeriaCategory(ctx context.Context, rn *run, x *glossaryIndex, g *egeria.GlossaryElement, ac *atlas.Category) (*egeria.CategoryElement, error) {
	props := r.categoryFromAtlas(egeria.CategoryProperties{}, ac)
	correlation := egeria.AtlasCorrelation(ac.GUID, r.collection)
	guid, err := r.exchange.CreateCategory(ctx, g.GUID(), props, &correlation)
	if err != nil {
		return nil, err
	}
	upd := ac.Clone()
	upd.SetMarker(atlas.OwnedByAtlas(guid))
	saved, err := r.atlas.SaveCategory(ctx, upd)
	if err != nil {
		return nil, err
	}
	x.putCategory(saved)
	rn.record(egeria.KindCategory, ActionCreated)
	logging.FromContext(ctx).Info().
		Str("egeria_guid", guid).
		Str("qualified_name", props.QualifiedName).
		Msg("Created Egeria copy of Atlas category")
	return r.exchange.GetCategoryByGUID(ctx, guid)
}
