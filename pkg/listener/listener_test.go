package listener_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/internal/memory"
	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/errors"
	"github.com/agentstation/glossync/pkg/listener"
	"github.com/agentstation/glossync/pkg/ownership"
	"github.com/agentstation/glossync/pkg/reconciler"
)

type flag struct{ on atomic.Bool }

func (f *flag) Refreshing() bool { return f.on.Load() }

type outcomes struct{ seen []listener.Outcome }

func (o *outcomes) ObserveEvent(_ egeria.Event, outcome listener.Outcome, _ time.Duration) {
	o.seen = append(o.seen, outcome)
}

type fixture struct {
	ctx      context.Context
	atlas    *memory.Atlas
	egeria   *memory.Egeria
	state    *flag
	observed *outcomes
	listener *listener.Listener
}

func newFixture(t *testing.T, scope string) *fixture {
	t.Helper()
	a := memory.NewAtlas()
	e := memory.NewEgeria("cocoMDS1", 0)
	rec, err := reconciler.New(a, e, reconciler.WithScope(reconciler.Scope{GlossaryQualifiedName: scope}))
	require.NoError(t, err)

	f := &fixture{ctx: context.Background(), atlas: a, egeria: e, state: &flag{}, observed: &outcomes{}}
	f.listener, err = listener.New(rec, e, rec.Resolver(), f.state,
		listener.WithGlossaryScope(scope),
		listener.WithObserver(f.observed))
	require.NoError(t, err)
	require.NoError(t, e.RegisterListener(f.listener))
	return f
}

func TestNew(t *testing.T) {
	e := memory.NewEgeria("cocoMDS1", 0)
	rec, err := reconciler.New(memory.NewAtlas(), e)
	require.NoError(t, err)

	_, err = listener.New(nil, e, rec.Resolver(), &flag{})
	assert.True(t, errors.IsValidationError(err))
	_, err = listener.New(rec, e, nil, &flag{})
	assert.True(t, errors.IsValidationError(err))
	_, err = listener.New(rec, e, rec.Resolver(), nil)
	assert.True(t, errors.IsValidationError(err))
	_, err = listener.New(rec, e, rec.Resolver(), &flag{}, listener.WithConnectorName(""))
	assert.True(t, errors.IsValidationError(err))
}

func TestEventPushesElementToAtlas(t *testing.T) {
	f := newFixture(t, "")
	g, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "Org.Glossary.HR", DisplayName: "HR"}, nil)
	require.NoError(t, err)
	_, err = f.egeria.CreateTerm(f.ctx, g, egeria.TermProperties{QualifiedName: "Org.Term.Leave", DisplayName: "Leave"}, nil)
	require.NoError(t, err)

	f.egeria.Flush(f.ctx)

	ag := f.atlas.GlossaryByName("HR")
	require.NotNil(t, ag)
	assert.Equal(t, []string{"Leave"}, f.atlas.TermNames(ag.GUID))
	assert.Contains(t, f.observed.seen, listener.OutcomeProcessed)
	assert.NotContains(t, f.observed.seen, listener.OutcomeFailed)
}

func TestEventIgnoredDuringRefresh(t *testing.T) {
	f := newFixture(t, "")
	_, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "Org.Glossary.HR", DisplayName: "HR"}, nil)
	require.NoError(t, err)

	f.state.on.Store(true)
	f.egeria.Flush(f.ctx)

	assert.Zero(t, f.atlas.GlossaryCount())
	assert.Equal(t, []listener.Outcome{listener.OutcomeRefreshing}, f.observed.seen)
}

func TestEventForAtlasCopyIsIgnored(t *testing.T) {
	f := newFixture(t, "")
	corr := egeria.AtlasCorrelation("atlas-1", "Apache Atlas")
	_, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "AtlasGlossary.Ops"}, &corr)
	require.NoError(t, err)

	f.egeria.Flush(f.ctx)

	assert.Zero(t, f.atlas.Writes())
	assert.Equal(t, []listener.Outcome{listener.OutcomeEcho}, f.observed.seen)
}

func TestEventOutsideScopeIsDiscarded(t *testing.T) {
	f := newFixture(t, "Org.Glossary.HR")
	finance, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "Org.Glossary.Finance", DisplayName: "Finance"}, nil)
	require.NoError(t, err)
	f.egeria.Discard()

	term, err := f.egeria.CreateTerm(f.ctx, finance, egeria.TermProperties{QualifiedName: "Org.Term.Revenue", DisplayName: "Revenue"}, nil)
	require.NoError(t, err)

	outcome := f.listener.Handle(f.ctx, egeria.Event{
		Type: egeria.EventNewElement,
		ElementHeader: egeria.ElementHeader{
			GUID: term,
			Type: egeria.ElementType{TypeName: egeria.KindTerm},
		},
	})

	assert.Equal(t, listener.OutcomeOutOfScope, outcome)
	assert.Zero(t, f.atlas.Writes())
}

func TestEventInsideScopeIsProcessed(t *testing.T) {
	f := newFixture(t, "Org.Glossary.HR")
	hr, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "Org.Glossary.HR", DisplayName: "HR"}, nil)
	require.NoError(t, err)
	f.egeria.Discard()
	category, err := f.egeria.CreateCategory(f.ctx, hr, egeria.CategoryProperties{QualifiedName: "Org.Category.Benefits", DisplayName: "Benefits"}, nil)
	require.NoError(t, err)

	outcome := f.listener.Handle(f.ctx, egeria.Event{
		Type:          egeria.EventNewElement,
		ElementHeader: egeria.ElementHeader{GUID: category, Type: egeria.ElementType{TypeName: egeria.KindCategory}},
	})

	assert.Equal(t, listener.OutcomeProcessed, outcome)
	ag := f.atlas.GlossaryByName("HR")
	require.NotNil(t, ag)
	assert.NotNil(t, f.atlas.CategoryByName(ag.GUID, "Benefits"))
}

func TestEventForDeletedElementIsSwallowed(t *testing.T) {
	f := newFixture(t, "")
	g, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "Org.Glossary.HR", DisplayName: "HR"}, nil)
	require.NoError(t, err)
	f.egeria.Discard()
	require.NoError(t, f.egeria.DeleteGlossary(g))

	f.egeria.Flush(f.ctx)

	assert.Equal(t, []listener.Outcome{listener.OutcomeGone}, f.observed.seen)
}

func TestEventFailureIsContained(t *testing.T) {
	f := newFixture(t, "")
	_, err := f.egeria.CreateGlossary(f.ctx, egeria.GlossaryProperties{QualifiedName: "Org.Glossary.HR", DisplayName: "HR"}, nil)
	require.NoError(t, err)
	f.atlas.Fail("ListGlossaries", errors.NewServiceError("atlas", "list glossaries", errors.KindTransport, "down", nil))

	assert.NotPanics(t, func() { f.egeria.Flush(f.ctx) })
	assert.Equal(t, []listener.Outcome{listener.OutcomeFailed}, f.observed.seen)
	assert.Equal(t, 1, f.egeria.Listeners(), "a failed event does not deregister the listener")
}

type panicking struct{ listener.Engine }

func (panicking) ReconcileGlossary(context.Context, *egeria.GlossaryElement) error {
	panic("boom")
}

func TestEventPanicIsRecovered(t *testing.T) {
	e := memory.NewEgeria("cocoMDS1", 0)
	rec, err := reconciler.New(memory.NewAtlas(), e)
	require.NoError(t, err)
	observed := &outcomes{}
	l, err := listener.New(panicking{rec}, e, ownership.New("Apache Atlas"), &flag{}, listener.WithObserver(observed))
	require.NoError(t, err)
	g, err := e.CreateGlossary(context.Background(), egeria.GlossaryProperties{QualifiedName: "q"}, nil)
	require.NoError(t, err)

	var outcome listener.Outcome
	assert.NotPanics(t, func() {
		outcome = l.Handle(context.Background(), egeria.Event{
			Type:          egeria.EventUpdatedElement,
			ElementHeader: egeria.ElementHeader{GUID: g, Type: egeria.ElementType{TypeName: egeria.KindGlossary}},
		})
	})
	assert.Equal(t, listener.OutcomeFailed, outcome)
	assert.Equal(t, []listener.Outcome{listener.OutcomeFailed}, observed.seen)
}

func TestEventForOtherTypesIsIgnored(t *testing.T) {
	f := newFixture(t, "")
	outcome := f.listener.Handle(f.ctx, egeria.Event{
		Type:          egeria.EventNewElement,
		ElementHeader: egeria.ElementHeader{GUID: "x", Type: egeria.ElementType{TypeName: "Asset"}},
	})
	assert.Equal(t, listener.OutcomeUnsupported, outcome)
}
