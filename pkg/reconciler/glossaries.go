package reconciler

import (
	"context"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/ownership"
)

// reconcileGlossary is the Sweep 1 decision for one Egeria glossary: a copy
// of an Atlas original is refreshed from Atlas, an Egeria original is pushed
// to Atlas. Children are reconciled either way.
func (r *Reconciler) reconcileGlossary(ctx context.Context, rn *run, g *egeria.GlossaryElement) error {
	ctx = logging.WithGlossary(ctx, g.GUID())

	if r.resolver.IsThirdPartyOwned(g.Header) {
		atlasGUID := g.Correlations.AtlasGUID()
		if atlasGUID == "" {
			rn.skip(ctx, egeria.KindGlossary, g.GUID(), "Egeria copy of an Atlas glossary has no Atlas correlation")
			return nil
		}
		ag, err := r.atlas.GetGlossary(ctx, atlasGUID)
		if errors.IsNotFound(err) {
			rn.skip(ctx, egeria.KindGlossary, g.GUID(), "Atlas original of glossary no longer exists")
			return nil
		}
		if err != nil {
			return err
		}
		if !r.inAtlasScope(ag.Name) {
			return nil
		}
		rn.touched[ag.GUID] = true
		return r.pullGlossary(ctx, rn, g, ag)
	}

	ag, err := r.pushGlossary(ctx, rn, g)
	if err != nil {
		return err
	}
	rn.touched[ag.GUID] = true
	return r.reconcileChildren(ctx, rn, g, ag)
}

// sweepAtlasGlossary is the Sweep 2 three-way branch for one Atlas glossary.
func (r *Reconciler) sweepAtlasGlossary(ctx context.Context, rn *run, ag *atlas.Glossary) error {
	ctx = logging.WithAtlasGUID(ctx, ag.GUID)
	logger := logging.FromContext(ctx)
	m := ag.Marker()

	switch r.resolver.Classify(m) {
	case ownership.StateOpenMetadataOwned:
		g, err := r.exchange.GetGlossaryByGUID(ctx, m.EgeriaGUID)
		if errors.IsGone(err) {
			// A deleted original is gone for every scope, including the
			// scoped glossary itself.
			return r.deleteAtlasGlossary(ctx, rn, ag)
		}
		if err != nil {
			return err
		}
		if qn := r.scope.GlossaryQualifiedName; qn != "" && g.Properties.QualifiedName != qn {
			return nil
		}
		return r.reconcileGlossary(ctx, rn, g)

	case ownership.StateThirdPartyOwned:
		g, err := r.exchange.GetGlossaryByGUID(ctx, m.EgeriaGUID)
		if err == nil {
			return r.pullGlossary(ctx, rn, g, ag)
		}
		if !errors.IsGone(err) {
			return err
		}
		logger.Info().
			Str("stale_egeria_guid", m.EgeriaGUID).
			Msg("Egeria copy of Atlas glossary was deleted; recreating it")
		if ag, err = r.stripGlossaryMarker(ctx, rn, ag); err != nil {
			return err
		}

	default:
		if r.resolver.Inconsistent(m) {
			logger.Warn().
				Str("owner", m.Owner.String()).
				Msg("Atlas glossary has an ownership flag but no Egeria GUID; treating it as new")
			rn.warn(egeria.KindGlossary, ag.GUID, "ownership flag without Egeria GUID")
		}
	}

	return r.createEgeriaGlossary(ctx, rn, ag)
}

// pushGlossary makes the Atlas copy of an Egeria original match it, creating
// the copy when none can be found.
func (r *Reconciler) pushGlossary(ctx context.Context, rn *run, g *egeria.GlossaryElement) (*atlas.Glossary, error) {
	base := displayName(g.Properties.DisplayName, g.Properties.QualifiedName)

	ag, err := r.atlasCopyOfGlossary(ctx, rn, g)
	if err != nil {
		return nil, err
	}
	if ag == nil {
		fresh := &atlas.Glossary{}
		glossaryToAtlas(fresh, g.Properties)
		fresh.SetMarker(atlas.OwnedByEgeria(g.GUID()))

		names, err := r.glossaryNames(ctx, rn, "")
		if err != nil {
			return nil, err
		}
		guid, adopted, err := createWithRetry(ctx, base, names,
			func(name string) (string, error) {
				fresh.Name = name
				return r.atlas.CreateGlossary(ctx, fresh)
			},
			func(ctx context.Context) (string, []string, error) {
				rn.loaded = false
				found, err := r.adoptableGlossary(ctx, rn, g.GUID())
				if err != nil {
					return "", nil, err
				}
				if found != nil {
					return found.GUID, nil, nil
				}
				names, err := r.glossaryNames(ctx, rn, "")
				return "", names, err
			})
		if err != nil {
			return nil, err
		}
		if !adopted {
			fresh.GUID = guid
			rn.putGlossary(fresh)
			if err := r.correlate(ctx, egeria.KindGlossary, g.GUID(), guid); err != nil {
				return nil, err
			}
			rn.record(egeria.KindGlossary, ActionCreated)
			logging.FromContext(ctx).Info().
				Str("atlas_guid", guid).
				Str("name", fresh.Name).
				Msg("Created Atlas copy of glossary")
			return fresh, nil
		}
		if ag, err = r.atlas.GetGlossary(ctx, guid); err != nil {
			return nil, err
		}
	}

	if g.Correlations.AtlasGUID() != ag.GUID {
		if err := r.correlate(ctx, egeria.KindGlossary, g.GUID(), ag.GUID); err != nil {
			return nil, err
		}
		rn.record(egeria.KindGlossary, ActionRepaired)
	}

	desired := ag.Clone()
	glossaryToAtlas(desired, g.Properties)
	desired.SetMarker(atlas.OwnedByEgeria(g.GUID()))
	if !keepsName(ag.Name, base) {
		names, err := r.glossaryNames(ctx, rn, ag.GUID)
		if err != nil {
			return nil, err
		}
		desired.Name = uniqueName(base, names)
	}
	if !glossaryChanged(ag, desired) {
		return ag, nil
	}
	saved, err := r.atlas.SaveGlossary(ctx, desired)
	if err != nil {
		return nil, err
	}
	rn.putGlossary(saved)
	rn.record(egeria.KindGlossary, ActionUpdated)
	return saved, nil
}

// atlasCopyOfGlossary finds the Atlas copy of an Egeria original: through
// its correlation, or by the marker of a copy whose correlation was lost.
// It returns nil when the copy has to be (re)created.
func (r *Reconciler) atlasCopyOfGlossary(ctx context.Context, rn *run, g *egeria.GlossaryElement) (*atlas.Glossary, error) {
	if guid := g.Correlations.AtlasGUID(); guid != "" {
		ag, err := r.atlas.GetGlossary(ctx, guid)
		if err == nil {
			return ag, nil
		}
		if !errors.IsNotFound(err) {
			return nil, err
		}
		logging.FromContext(ctx).Info().
			Str("atlas_guid", guid).
			Msg("Atlas copy of glossary was deleted; recreating it")
	}
	return r.adoptableGlossary(ctx, rn, g.GUID())
}

func (r *Reconciler) adoptableGlossary(ctx context.Context, rn *run, egeriaGUID string) (*atlas.Glossary, error) {
	all, err := rn.atlasGlossaries(ctx, r)
	if err != nil {
		return nil, err
	}
	for _, ag := range all {
		if ag.Marker() == atlas.OwnedByEgeria(egeriaGUID) {
			return ag, nil
		}
	}
	return nil, nil
}

// atlasGlossaryFor returns the Atlas counterpart of an Egeria glossary, or
// nil if it has none yet.
func (r *Reconciler) atlasGlossaryFor(ctx context.Context, rn *run, g *egeria.GlossaryElement) (*atlas.Glossary, error) {
	if r.resolver.IsThirdPartyOwned(g.Header) {
		guid := g.Correlations.AtlasGUID()
		if guid == "" {
			return nil, nil
		}
		ag, err := r.atlas.GetGlossary(ctx, guid)
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return ag, err
	}
	return r.atlasCopyOfGlossary(ctx, rn, g)
}

func (r *Reconciler) glossaryNames(ctx context.Context, rn *run, exclude string) ([]string, error) {
	all, err := rn.atlasGlossaries(ctx, r)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, ag := range all {
		if ag.GUID != exclude {
			names = append(names, ag.Name)
		}
	}
	return names, nil
}

// pullGlossary refreshes the Egeria copy of an Atlas original, repairing the
// correlation and marker if either side lost its pointer.
func (r *Reconciler) pullGlossary(ctx context.Context, rn *run, g *egeria.GlossaryElement, ag *atlas.Glossary) error {
	want := atlas.OwnedByAtlas(g.GUID())
	if m := ag.Marker(); m != want {
		if m.EgeriaGUID != "" && m.EgeriaGUID != g.GUID() {
			rn.skip(ctx, egeria.KindGlossary, g.GUID(), "Atlas original is linked to a different Egeria glossary")
			return nil
		}
		upd := ag.Clone()
		upd.SetMarker(want)
		saved, err := r.atlas.SaveGlossary(ctx, upd)
		if err != nil {
			return err
		}
		ag = saved
		rn.putGlossary(saved)
		rn.record(egeria.KindGlossary, ActionRepaired)
	}

	if g.Correlations.AtlasGUID() != ag.GUID {
		if err := r.correlate(ctx, egeria.KindGlossary, g.GUID(), ag.GUID); err != nil {
			return err
		}
		rn.record(egeria.KindGlossary, ActionRepaired)
	}

	props := r.glossaryFromAtlas(g.Properties, ag)
	if !props.Equal(g.Properties) {
		if err := r.exchange.UpdateGlossary(ctx, g.GUID(), props); err != nil {
			return err
		}
		g.Properties = props
		rn.record(egeria.KindGlossary, ActionRefreshed)
	}
	return r.reconcileChildren(ctx, rn, g, ag)
}

// createEgeriaGlossary creates the Egeria copy of a new Atlas original,
// stamps both pointers, and pulls its children.
func (r *Reconciler) createEgeriaGlossary(ctx context.Context, rn *run, ag *atlas.Glossary) error {
	props := r.glossaryFromAtlas(egeria.GlossaryProperties{}, ag)
	correlation := egeria.AtlasCorrelation(ag.GUID, r.collection)
	guid, err := r.exchange.CreateGlossary(ctx, props, &correlation)
	if err != nil {
		return err
	}
	upd := ag.Clone()
	upd.SetMarker(atlas.OwnedByAtlas(guid))
	saved, err := r.atlas.SaveGlossary(ctx, upd)
	if err != nil {
		return err
	}
	rn.putGlossary(saved)
	rn.record(egeria.KindGlossary, ActionCreated)
	logging.FromContext(ctx).Info().
		Str("egeria_guid", guid).
		Str("qualified_name", props.QualifiedName).
		Msg("Created Egeria copy of Atlas glossary")

	g, err := r.exchange.GetGlossaryByGUID(ctx, guid)
	if err != nil {
		return err
	}
	return r.reconcileChildren(logging.WithGlossary(ctx, guid), rn, g, saved)
}

func (r *Reconciler) stripGlossaryMarker(ctx context.Context, rn *run, ag *atlas.Glossary) (*atlas.Glossary, error) {
	upd := ag.Clone()
	upd.SetMarker(atlas.Marker{})
	saved, err := r.atlas.SaveGlossary(ctx, upd)
	if err != nil {
		return nil, err
	}
	rn.putGlossary(saved)
	rn.record(egeria.KindGlossary, ActionRepaired)
	return saved, nil
}

func (r *Reconciler) deleteAtlasGlossary(ctx context.Context, rn *run, ag *atlas.Glossary) error {
	if err := r.atlas.DeleteGlossary(ctx, ag.GUID); err != nil && !errors.IsNotFound(err) {
		return err
	}
	rn.record(egeria.KindGlossary, ActionDeleted)
	logging.FromContext(ctx).Info().
		Str("name", ag.Name).
		Msg("Deleted Atlas copy of a deleted Egeria glossary")
	return nil
}
