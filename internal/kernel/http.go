// Package kernel assembles the HTTP handler: global middleware, the
// operational endpoints and the API routes.
package kernel

import (
	"context"
	"net/http"
	"net/netip"
	"time"

	gql "github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/johssalinas/backend-accenture/app/routes"
	"github.com/johssalinas/backend-accenture/pkg/ctx"
	"github.com/johssalinas/backend-accenture/pkg/graphql"
	"github.com/johssalinas/backend-accenture/pkg/metrics"
	"github.com/johssalinas/backend-accenture/pkg/middleware"
	"github.com/johssalinas/backend-accenture/pkg/reqid"
	"github.com/johssalinas/backend-accenture/pkg/response"
	"github.com/johssalinas/backend-accenture/pkg/router"
)

// Deps is everything the kernel mounts.
type Deps struct {
	Controllers routes.Controllers
	// Schema is served at POST /graphql when set.
	Schema *gql.Schema
	// Health backs GET /health; nil always reports ok.
	Health func(ctx context.Context) error
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
	// RateLimit requests per RateWindow per client IP; zero disables it.
	RateLimit  int
	RateWindow time.Duration
}

type HTTPKernel struct {
	router   *router.Router
	stopRate func()
}

func NewHTTPKernel(d Deps) *HTTPKernel {
	k := &HTTPKernel{router: router.New(), stopRate: func() {}}
	r := k.router

	// Global middleware, outermost first. Metrics wraps everything so the
	// latency covers recovery; the client address is resolved and the
	// request ID set before anything logs or rate limits.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.RealIP(d.TrustedProxies))
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if d.RateLimit > 0 {
		limit, stop := middleware.RateLimit(d.RateLimit, d.RateWindow)
		r.Use(limit)
		k.stopRate = stop
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/health", "health", ctx.Wrap(health(d.Health)))
	if d.Schema != nil {
		r.Post("/graphql", "graphql", ctx.Wrap(graphql.Handler(*d.Schema)))
	}

	routes.RegisterAPI(r, d.Controllers)
	return k
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Router exposes the route table, for route:list.
func (k *HTTPKernel) Router() *router.Router { return k.router }

// Close stops background work started by the middleware.
func (k *HTTPKernel) Close() { k.stopRate() }

func health(check func(context.Context) error) ctx.HandlerFunc {
	return func(c *ctx.Context) {
		if check != nil {
			cctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := check(cctx); err != nil {
				c.Logger().Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, response.Envelope{
					Status:  http.StatusServiceUnavailable,
					Message: "unavailable",
				})
				return
			}
		}
		c.Success(map[string]string{"status": "ok"})
	}
}
