package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johssalinas/backend-accenture/pkg/metrics"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/franchises/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/franchises/{id}", "418"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/franchises/abc", nil))
	after := testutil.ToFloat64(metrics.RequestTotal.WithLabelValues("GET", "/franchises/{id}", "418"))

	assert.Equal(t, before+1, after)
}

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(metrics.Operations.WithLabelValues("franchise.create", "ok"))
	metrics.RecordOperation("franchise.create", "ok")
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Operations.WithLabelValues("franchise.create", "ok")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	metrics.ObserveDBQuery("select", time.Now())

	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), "franchise_db_query_duration_seconds"))
}
