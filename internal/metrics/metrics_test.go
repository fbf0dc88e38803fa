package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/glossync/pkg/egeria"
	"github.com/agentstation/glossync/pkg/listener"
	"github.com/agentstation/glossync/pkg/reconciler"
)

func TestRecordAction(t *testing.T) {
	m := New()

	m.RecordAction(egeria.KindTerm, reconciler.ActionCreated)
	m.RecordAction(egeria.KindTerm, reconciler.ActionCreated)
	m.RecordAction(egeria.KindGlossary, reconciler.ActionDeleted)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.actions.WithLabelValues("GlossaryTerm", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actions.WithLabelValues("Glossary", "deleted")))
}

func TestObserveEvent(t *testing.T) {
	m := New()
	event := egeria.Event{Type: egeria.EventUpdatedElement}

	m.ObserveEvent(event, listener.OutcomeProcessed, 20*time.Millisecond)
	m.ObserveEvent(event, listener.OutcomeEcho, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("ELEMENT_UPDATED", string(listener.OutcomeProcessed))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("ELEMENT_UPDATED", string(listener.OutcomeEcho))))
	assert.Equal(t, 1, testutil.CollectAndCount(m.eventDurations))
}

func TestRefreshLifecycle(t *testing.T) {
	m := New()

	m.RefreshStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshing))

	result := reconciler.NewResult()
	result.Finalize()
	m.RefreshFinished(result, nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.refreshing))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(result.Metadata.EndTime.Unix()), testutil.ToFloat64(m.lastRefresh))

	m.RefreshStarted()
	m.RefreshFinished(nil, errors.New("atlas unreachable"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues(OutcomeFailure)))

	m.RefreshRejected()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshes.WithLabelValues(OutcomeBusy)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordAction(egeria.KindCategory, reconciler.ActionLinked)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `glossync_element_actions_total{action="linked",kind="GlossaryCategory"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
