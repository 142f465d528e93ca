package kernel_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johssalinas/backend-accenture/app/controllers"
	"github.com/johssalinas/backend-accenture/app/routes"
	"github.com/johssalinas/backend-accenture/internal/kernel"
	"github.com/johssalinas/backend-accenture/pkg/reqid"
)

func newKernel(t *testing.T, d kernel.Deps) http.Handler {
	t.Helper()
	d.Controllers = routes.Controllers{
		Franchises: controllers.NewFranchiseController(nil),
		Branches:   controllers.NewBranchController(nil),
		Products:   controllers.NewProductController(nil),
	}
	k := kernel.NewHTTPKernel(d)
	t.Cleanup(k.Close)
	return k.Handler()
}

func TestHealth(t *testing.T) {
	h := newKernel(t, kernel.Deps{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))

	h = newKernel(t, kernel.Deps{Health: func(context.Context) error { return errors.New("db down") }})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newKernel(t, kernel.Deps{})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "franchise_http_requests_total")
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	h := newKernel(t, kernel.Deps{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
}

func TestRateLimit(t *testing.T) {
	h := newKernel(t, kernel.Deps{RateLimit: 2, RateWindow: time.Hour})
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRateLimitKeysOnTrustedForwardedFor(t *testing.T) {
	h := newKernel(t, kernel.Deps{
		TrustedProxies: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
		RateLimit:      1,
		RateWindow:     time.Hour,
	})
	call := func(remote, fwd string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", fwd)
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	// Behind the proxy each forwarded client has its own bucket.
	assert.Equal(t, http.StatusOK, call("10.0.0.5:1", "1.1.1.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.5:1", "2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.5:1", "1.1.1.1"))

	// A direct client cannot rotate the header to escape its bucket.
	assert.Equal(t, http.StatusOK, call("203.0.113.9:1", "3.3.3.3"))
	assert.Equal(t, http.StatusTooManyRequests, call("203.0.113.9:1", "4.4.4.4"))
}

func TestRoutesAreRegistered(t *testing.T) {
	k := kernel.NewHTTPKernel(kernel.Deps{Controllers: routes.Controllers{
		Franchises: controllers.NewFranchiseController(nil),
		Branches:   controllers.NewBranchController(nil),
		Products:   controllers.NewProductController(nil),
	}})
	defer k.Close()

	names := map[string]bool{}
	for _, ri := range k.Router().Routes() {
		names[ri.Name] = true
	}
	for _, n := range []string{"health", "metrics", "franchises.store", "franchises.top_stock", "branches.products", "products.update_stock"} {
		assert.True(t, names[n], n)
	}
	assert.False(t, names["graphql"], "graphql is mounted only with a schema")
}
