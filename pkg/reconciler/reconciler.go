// Package reconciler keeps glossaries, categories and terms consistent
// between Egeria and Apache Atlas. A refresh runs two sweeps: Egeria
// glossaries are pushed to Atlas, then Atlas glossaries not yet covered are
// pulled into Egeria. Ownership markers decide, per element, which side is
// authoritative and whether a vanished copy is recreated or its counterpart
// deleted.
package reconciler

import (
	"context"

	"github.com/agentstation/glossync/pkg/atlas"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/logging"
	"github.com/agentstation/glossync/pkg/ownership"
)

// Reconciler is the glossary reconciliation engine. It is not safe for
// concurrent use; the host serializes refreshes and events.
type Reconciler struct {
	atlas    atlas.Client
	exchange egeria.Exchange
	resolver *ownership.Resolver

	scope      Scope
	pageSize   int
	collection string
	connector  string
	prefixes   Prefixes
	recorder   Recorder
}

// New creates a Reconciler with options.
func New(client atlas.Client, exchange egeria.Exchange, opts ...Option) (*Reconciler, error) {
	if client == nil {
		return nil, &errors.ValidationError{Field: "atlas", Message: "cannot be nil"}
	}
	if exchange == nil {
		return nil, &errors.ValidationError{Field: "exchange", Message: "cannot be nil"}
	}
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	pageSize := options.pageSize
	if limit := exchange.MaxPageSize(); limit > 0 && pageSize > limit {
		pageSize = limit
	}

	return &Reconciler{
		atlas:      client,
		exchange:   exchange,
		resolver:   ownership.New(options.collection),
		scope:      options.scope,
		pageSize:   pageSize,
		collection: options.collection,
		connector:  options.connector,
		prefixes:   options.prefixes,
		recorder:   options.recorder,
	}, nil
}

// Resolver returns the ownership resolver used by the engine.
func (r *Reconciler) Resolver() *ownership.Resolver { return r.resolver }

// Scope returns the configured scope.
func (r *Reconciler) Scope() Scope { return r.scope }

// PageSize returns the effective page size.
func (r *Reconciler) PageSize() int { return r.pageSize }

// run is the state of one refresh cycle or one event.
type run struct {
	result   *Result
	recorder Recorder

	// Atlas glossaries handled by the Egeria sweep.
	touched map[string]bool

	// Atlas glossary listing, loaded on first use.
	glossaries []*atlas.Glossary
	loaded     bool
}

func (r *Reconciler) newRun() *run {
	result := NewResult()
	result.Metadata.Scope = r.scope
	return &run{
		result:   result,
		recorder: r.recorder,
		touched:  make(map[string]bool),
	}
}

func (rn *run) record(kind egeria.ElementKind, a Action) {
	rn.result.add(kind, a)
	if rn.recorder != nil {
		rn.recorder.RecordAction(kind, a)
	}
}

// skip logs a data-integrity warning and records the element as skipped.
func (rn *run) skip(ctx context.Context, kind egeria.ElementKind, guid, reason string) {
	logging.FromContext(ctx).Warn().
		Str("element_kind", string(kind)).
		Str("element_guid", guid).
		Msg(reason)
	rn.warn(kind, guid, reason)
	rn.record(kind, ActionSkipped)
}

func (rn *run) warn(kind egeria.ElementKind, guid, reason string) {
	rn.result.Warnings = append(rn.result.Warnings, string(kind)+" "+guid+": "+reason)
}

// Refresh runs one full reconciliation cycle. Any unexpected failure aborts
// the cycle; it is logged and returned as a single *errors.ConnectorError
// together with the partial result.
func (r *Reconciler) Refresh(ctx context.Context) (*Result, error) {
	ctx = logging.WithConnector(ctx, r.connector)
	ctx = logging.WithOperation(ctx, "refresh")
	logger := logging.FromContext(ctx)
	rn := r.newRun()

	logger.Info().
		Str("glossary_scope", r.scope.GlossaryQualifiedName).
		Str("atlas_scope", r.scope.AtlasGlossaryName).
		Int("page_size", r.pageSize).
		Msg("Starting glossary refresh")

	if err := r.sweepEgeria(ctx, rn); err != nil {
		return rn.result, r.fail(ctx, rn, "egeria sweep", err)
	}
	if err := r.sweepAtlas(ctx, rn); err != nil {
		return rn.result, r.fail(ctx, rn, "atlas sweep", err)
	}

	rn.result.Finalize()
	logger.Info().
		Int("writes", rn.result.Writes()).
		Int("warnings", len(rn.result.Warnings)).
		Dur("duration", rn.result.Metadata.Duration).
		Msg("Glossary refresh complete")
	return rn.result, nil
}

func (r *Reconciler) fail(ctx context.Context, rn *run, operation string, err error) error {
	rn.result.Finalize()
	cerr := errors.NewConnectorError(r.connector, operation, err)
	logging.FromContext(ctx).Error().
		Err(err).
		Str("cause_type", cerr.CauseType).
		Str("failed_operation", operation).
		Msg("Glossary refresh failed")
	return cerr
}

// sweepEgeria is Sweep 1: every Egeria glossary in scope is reconciled
// into Atlas.
func (r *Reconciler) sweepEgeria(ctx context.Context, rn *run) error {
	if qn := r.scope.GlossaryQualifiedName; qn != "" {
		g, err := r.exchange.GetGlossaryByName(ctx, qn)
		if errors.IsGone(err) {
			logging.FromContext(ctx).Warn().
				Str("qualified_name", qn).
				Msg("Scoped glossary not found in Egeria")
			rn.warn(egeria.KindGlossary, qn, "scoped glossary not found")
			return nil
		}
		if err != nil {
			return err
		}
		return r.reconcileGlossary(ctx, rn, g)
	}

	for start := 0; ; start += r.pageSize {
		page, err := r.exchange.ListGlossaries(ctx, start, r.pageSize)
		if err != nil {
			return err
		}
		for _, g := range page {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.reconcileGlossary(ctx, rn, g); err != nil {
				return err
			}
		}
		if len(page) < r.pageSize {
			return nil
		}
	}
}

// sweepAtlas is Sweep 2: Atlas glossaries not handled by Sweep 1 are
// reconciled into Egeria. The listing is taken in full before any change is
// made so that deletions do not shift the offsets of later pages.
func (r *Reconciler) sweepAtlas(ctx context.Context, rn *run) error {
	glossaries, err := r.listAtlasGlossaries(ctx)
	if err != nil {
		return err
	}
	for _, ag := range glossaries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if rn.touched[ag.GUID] || !r.inAtlasScope(ag.Name) {
			continue
		}
		if err := r.sweepAtlasGlossary(ctx, rn, ag); err != nil {
			return err
		}
	}
	return nil
}

// ReconcileGlossary applies the Egeria-to-Atlas logic to one glossary and
// its children.
func (r *Reconciler) ReconcileGlossary(ctx context.Context, g *egeria.GlossaryElement) error {
	ctx = logging.WithConnector(ctx, r.connector)
	return r.reconcileGlossary(ctx, r.newRun(), g)
}

// ReconcileCategory applies the Egeria-to-Atlas logic to one category and
// its parent link.
func (r *Reconciler) ReconcileCategory(ctx context.Context, c *egeria.CategoryElement) error {
	ctx = logging.WithConnector(ctx, r.connector)
	rn := r.newRun()

	g, err := r.exchange.GetGlossaryForCategory(ctx, c.GUID())
	if err != nil {
		return err
	}
	ag, err := r.atlasGlossaryFor(ctx, rn, g)
	if err != nil {
		return err
	}
	if ag == nil {
		// The glossary has no Atlas copy yet; syncing it covers the category.
		return r.reconcileGlossary(ctx, rn, g)
	}
	x, err := r.loadIndex(ctx, ag)
	if err != nil {
		return err
	}
	ac, err := r.syncCategory(ctx, rn, x, c)
	if err != nil || ac == nil {
		return err
	}
	return r.reconcileCategoryParent(ctx, rn, x, categoryPair{egeria: c, atlasGUID: ac.GUID})
}

// ReconcileTerm applies the Egeria-to-Atlas logic to one term and its
// categorizations.
func (r *Reconciler) ReconcileTerm(ctx context.Context, t *egeria.TermElement) error {
	ctx = logging.WithConnector(ctx, r.connector)
	rn := r.newRun()

	g, err := r.exchange.GetGlossaryForTerm(ctx, t.GUID())
	if err != nil {
		return err
	}
	ag, err := r.atlasGlossaryFor(ctx, rn, g)
	if err != nil {
		return err
	}
	if ag == nil {
		return r.reconcileGlossary(ctx, rn, g)
	}
	x, err := r.loadIndex(ctx, ag)
	if err != nil {
		return err
	}
	at, err := r.syncTerm(ctx, rn, x, t)
	if err != nil || at == nil {
		return err
	}
	return r.reconcileTermCategories(ctx, rn, x, termPair{egeria: t, atlasGUID: at.GUID})
}

func (r *Reconciler) inAtlasScope(name string) bool {
	return r.scope.AtlasGlossaryName == "" || r.scope.AtlasGlossaryName == name
}

func (r *Reconciler) listAtlasGlossaries(ctx context.Context) ([]*atlas.Glossary, error) {
	var all []*atlas.Glossary
	for offset := 0; ; {
		page, err := r.atlas.ListGlossaries(ctx, offset, r.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		offset += len(page)
		if len(page) < r.pageSize {
			return all, nil
		}
	}
}

// atlasGlossaries returns the cached Atlas glossary listing for this run.
func (rn *run) atlasGlossaries(ctx context.Context, r *Reconciler) ([]*atlas.Glossary, error) {
	if !rn.loaded {
		all, err := r.listAtlasGlossaries(ctx)
		if err != nil {
			return nil, err
		}
		rn.glossaries, rn.loaded = all, true
	}
	return rn.glossaries, nil
}

func (rn *run) putGlossary(ag *atlas.Glossary) {
	if !rn.loaded {
		return
	}
	for i, g := range rn.glossaries {
		if g.GUID == ag.GUID {
			rn.glossaries[i] = ag
			return
		}
	}
	rn.glossaries = append(rn.glossaries, ag)
}

func (r *Reconciler) eachCategory(ctx context.Context, glossaryGUID string, fn func(*egeria.CategoryElement) error) error {
	for start := 0; ; start += r.pageSize {
		page, err := r.exchange.GetCategoriesForGlossary(ctx, glossaryGUID, start, r.pageSize)
		if err != nil {
			return err
		}
		for _, c := range page {
			if err := fn(c); err != nil {
				return err
			}
		}
		if len(page) < r.pageSize {
			return nil
		}
	}
}

func (r *Reconciler) eachTerm(ctx context.Context, glossaryGUID string, fn func(*egeria.TermElement) error) error {
	for start := 0; ; start += r.pageSize {
		page, err := r.exchange.GetTermsForGlossary(ctx, glossaryGUID, start, r.pageSize)
		if err != nil {
			return err
		}
		for _, t := range page {
			if err := fn(t); err != nil {
				return err
			}
		}
		if len(page) < r.pageSize {
			return nil
		}
	}
}

func (r *Reconciler) categoriesForTerm(ctx context.Context, termGUID string) ([]*egeria.CategoryElement, error) {
	var all []*egeria.CategoryElement
	for start := 0; ; start += r.pageSize {
		page, err := r.exchange.GetCategoriesForTerm(ctx, termGUID, start, r.pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < r.pageSize {
			return all, nil
		}
	}
}

func (r *Reconciler) correlate(ctx context.Context, kind egeria.ElementKind, egeriaGUID, atlasGUID string) error {
	id := egeria.AtlasCorrelation(atlasGUID, r.collection)
	if err := r.exchange.AddExternalIdentifier(ctx, egeriaGUID, kind, id); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().
		Str("element_kind", string(kind)).
		Str("element_guid", egeriaGUID).
		Str("atlas_guid", atlasGUID).
		Msg("Correlation recorded")
	return nil
}
