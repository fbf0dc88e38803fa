package reconciler

import (
	"context"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/ownership"
)

// syncTerm reconciles one Egeria term into Atlas and returns its Atlas
// counterpart, or nil if the term was skipped.
func (r *Reconciler) syncTerm(ctx context.Context, rn *run, x *glossaryIndex, t *egeria.TermElement) (*atlas.Term, error) {
	ctx = logging.WithElement(ctx, string(egeria.KindTerm), t.GUID())

	if !r.resolver.IsThirdPartyOwned(t.Header) {
		return r.pushTerm(ctx, rn, x, t)
	}

	guid := t.Correlations.AtlasGUID()
	if guid == "" {
		rn.skip(ctx, egeria.KindTerm, t.GUID(), "Egeria copy of an Atlas term has no Atlas correlation")
		return nil, nil
	}
	at, err := r.atlasTerm(ctx, x, guid)
	if err != nil {
		return nil, err
	}
	if at == nil {
		rn.skip(ctx, egeria.KindTerm, t.GUID(), "Atlas original of term no longer exists")
		return nil, nil
	}
	return r.pullTerm(ctx, rn, x, t, at)
}

func (r *Reconciler) atlasTerm(ctx context.Context, x *glossaryIndex, guid string) (*atlas.Term, error) {
	if at, ok := x.terms[guid]; ok {
		return at, nil
	}
	at, err := r.atlas.GetTerm(ctx, guid)
	if errors.IsNotFound(err) {
		return nil, nil
	}
	return at, err
}

func (r *Reconciler) pushTerm(ctx context.Context, rn *run, x *glossaryIndex, t *egeria.TermElement) (*atlas.Term, error) {
	base := displayName(t.Properties.DisplayName, t.Properties.QualifiedName)

	var at *atlas.Term
	if guid := t.Correlations.AtlasGUID(); guid != "" {
		found, err := r.atlasTerm(ctx, x, guid)
		if err != nil {
			return nil, err
		}
		if found == nil {
			logging.FromContext(ctx).Info().
				Str("atlas_guid", guid).
				Msg("Atlas copy of term was deleted; recreating it")
		}
		at = found
	}
	if at == nil {
		at = x.termOwnedBy(t.GUID())
	}

	if at == nil {
		fresh := &atlas.Term{Anchor: atlas.GlossaryHeader{GlossaryGUID: x.glossary.GUID}}
		termToAtlas(fresh, t.Properties)
		fresh.SetMarker(atlas.OwnedByEgeria(t.GUID()))

		guid, adopted, err := createWithRetry(ctx, base, x.termNames(""),
			func(name string) (string, error) {
				fresh.Name = name
				return r.atlas.CreateTerm(ctx, fresh)
			},
			func(ctx context.Context) (string, []string, error) {
				if err := r.reload(ctx, x); err != nil {
					return "", nil, err
				}
				if found := x.termOwnedBy(t.GUID()); found != nil {
					return found.GUID, nil, nil
				}
				return "", x.termNames(""), nil
			})
		if err != nil {
			return nil, err
		}
		if !adopted {
			fresh.GUID = guid
			x.putTerm(fresh)
			if err := r.correlate(ctx, egeria.KindTerm, t.GUID(), guid); err != nil {
				return nil, err
			}
			rn.record(egeria.KindTerm, ActionCreated)
			logging.FromContext(ctx).Info().
				Str("atlas_guid", guid).
				Str("name", fresh.Name).
				Msg("Created Atlas copy of term")
			return fresh, nil
		}
		at = x.terms[guid]
	}

	if t.Correlations.AtlasGUID() != at.GUID {
		if err := r.correlate(ctx, egeria.KindTerm, t.GUID(), at.GUID); err != nil {
			return nil, err
		}
		rn.record(egeria.KindTerm, ActionRepaired)
	}

	desired := at.Clone()
	termToAtlas(desired, t.Properties)
	desired.SetMarker(atlas.OwnedByEgeria(t.GUID()))
	desired.Name = stableName(at.Name, base, x.termNames(at.GUID))
	if !termChanged(at, desired) {
		return at, nil
	}
	saved, err := r.atlas.SaveTerm(ctx, desired)
	if err != nil {
		return nil, err
	}
	x.putTerm(saved)
	rn.record(egeria.KindTerm, ActionUpdated)
	return saved, nil
}

func (r *Reconciler) pullTerm(ctx context.Context, rn *run, x *glossaryIndex, t *egeria.TermElement, at *atlas.Term) (*atlas.Term, error) {
	want := atlas.OwnedByAtlas(t.GUID())
	if m := at.Marker(); m != want {
		if m.EgeriaGUID != "" && m.EgeriaGUID != t.GUID() {
			rn.skip(ctx, egeria.KindTerm, t.GUID(), "Atlas original is linked to a different Egeria term")
			return nil, nil
		}
		upd := at.Clone()
		upd.SetMarker(want)
		saved, err := r.atlas.SaveTerm(ctx, upd)
		if err != nil {
			return nil, err
		}
		at = saved
		x.putTerm(saved)
		rn.record(egeria.KindTerm, ActionRepaired)
	}

	if t.Correlations.AtlasGUID() != at.GUID {
		if err := r.correlate(ctx, egeria.KindTerm, t.GUID(), at.GUID); err != nil {
			return nil, err
		}
		rn.record(egeria.KindTerm, ActionRepaired)
	}

	props := r.termFromAtlas(t.Properties, at)
	if !props.Equal(t.Properties) {
		if err := r.exchange.UpdateTerm(ctx, t.GUID(), props); err != nil {
			return nil, err
		}
		t.Properties = props
		rn.record(egeria.KindTerm, ActionRefreshed)
	}
	return at, nil
}

// sweepAtlasTerm is the three-way branch for an Atlas term that no Egeria
// term of the glossary accounted for.
func (r *Reconciler) sweepAtlasTerm(ctx context.Context, rn *run, x *glossaryIndex, g *egeria.GlossaryElement, at *atlas.Term) (*egeria.TermElement, error) {
	ctx = logging.WithAtlasGUID(ctx, at.GUID)
	m := at.Marker()

	switch r.resolver.Classify(m) {
	case ownership.StateOpenMetadataOwned:
		t, err := r.exchange.GetTermByGUID(ctx, m.EgeriaGUID)
		if errors.IsGone(err) {
			if err := r.atlas.DeleteTerm(ctx, at.GUID); err != nil && !errors.IsNotFound(err) {
				return nil, err
			}
			x.dropTerm(at.GUID)
			rn.record(egeria.KindTerm, ActionDeleted)
			logging.FromContext(ctx).Info().
				Str("name", at.Name).
				Msg("Deleted Atlas copy of a deleted Egeria term")
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		synced, err := r.syncTerm(ctx, rn, x, t)
		if err != nil || synced == nil || synced.GUID != at.GUID {
			return nil, err
		}
		return t, nil

	case ownership.StateThirdPartyOwned:
		t, err := r.exchange.GetTermByGUID(ctx, m.EgeriaGUID)
		if err == nil {
			if _, err := r.pullTerm(ctx, rn, x, t, at); err != nil {
				return nil, err
			}
			return t, nil
		}
		if !errors.IsGone(err) {
			return nil, err
		}
		logging.FromContext(ctx).Info().
			Str("stale_egeria_guid", m.EgeriaGUID).
			Msg("Egeria copy of Atlas term was deleted; recreating it")
		upd := at.Clone()
		upd.SetMarker(atlas.Marker{})
		if at, err = r.atlas.SaveTerm(ctx, upd); err != nil {
			return nil, err
		}
		x.putTerm(at)
		rn.record(egeria.KindTerm, ActionRepaired)

	default:
		if r.resolver.Inconsistent(m) {
			logging.FromContext(ctx).Warn().
				Str("owner", m.Owner.String()).
				Msg("Atlas term has an ownership flag but no Egeria GUID; treating it as new")
			rn.warn(egeria.KindTerm, at.GUID, "ownership flag without Egeria GUID")
		}
	}

	return r.createEgeriaTerm(ctx, rn, x, g, at)
}

func (r *Reconciler) createEgeriaTerm(ctx context.Context, rn *run, x *glossaryIndex, g *egeria.GlossaryElement, at *atlas.Term) (*egeria.TermElement, error) {
	props := r.termFromAtlas(egeria.TermProperties{}, at)
	correlation := egeria.AtlasCorrelation(at.GUID, r.collection)
	guid, err := r.exchange.CreateTerm(ctx, g.GUID(), props, &correlation)
	if err != nil {
		return nil, err
	}
	upd := at.Clone()
	upd.SetMarker(atlas.OwnedByAtlas(guid))
	saved, err := r.atlas.SaveTerm(ctx, upd)
	if err != nil {
		return nil, err
	}
	x.putTerm(saved)
	rn.record(egeria.KindTerm, ActionCreated)
	logging.FromContext(ctx).Info().
		Str("egeria_guid", guid).
		Str("qualified_name", props.QualifiedName).
		Msg("Created Egeria copy of Atlas term")
	return r.exchange.GetTermByGUID(ctx, guid)
}
