package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitness-tracker/backend/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentLabelsByRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/trainer/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	r.Method(http.MethodGet, "/metrics", m.Handler())

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/trainer/"+id, nil))
	}
	m.RecordPaymentIntent(true)
	m.RecordPaymentIntent(false)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `fitness_http_requests_total{method="GET",route="/trainer/{id}",status="418"} 2`)
	assert.Contains(t, out, `fitness_payments_intents_total{result="ok"} 1`)
	assert.False(t, strings.Contains(out, `route="/metrics"`))
}

func TestRecordPaymentIntentOnNil(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() { m.RecordPaymentIntent(true) })
}

func TestRegistryGathers(t *testing.T) {
	m := metrics.New()
	m.RecordPaymentIntent(false)

	n, err := testutil.GatherAndCount(m.Registry, "fitness_payments_intents_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
