// Package kernel assembles the HTTP handler: global middleware, the page,
// the JSON API, GraphQL, live refresh and the operational endpoints.
package kernel

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/paladar/app/controllers"
	"github.com/shashiranjanraj/paladar/app/graph"
	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/app/routes"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/cache"
	"github.com/shashiranjanraj/paladar/pkg/event"
	"github.com/shashiranjanraj/paladar/pkg/graphql"
	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/metrics"
	"github.com/shashiranjanraj/paladar/pkg/middleware"
	"github.com/shashiranjanraj/paladar/pkg/reqid"
	"github.com/shashiranjanraj/paladar/pkg/router"
	"github.com/shashiranjanraj/paladar/pkg/session"
	"github.com/shashiranjanraj/paladar/pkg/store"
	"github.com/shashiranjanraj/paladar/pkg/ws"
)

// Deps are the long-lived pieces the kernel wires together. Events, Hub and
// Limiter may be nil.
type Deps struct {
	Store   *store.Gateway
	Cache   cache.Store
	Events  *event.Dispatcher
	Hub     *ws.Hub
	Limiter *middleware.Limiter
	Session session.Options
	CORS    middleware.CORSOptions
}

type HTTPKernel struct {
	router *router.Router
}

// NewHTTPKernel builds the router. Record changes are forwarded to the hub so
// open pages refresh.
func NewHTTPKernel(d Deps) (*HTTPKernel, error) {
	users := repositories.NewUserRepository(d.Store, d.Events)
	orders := repositories.NewOrderRepository(d.Store, d.Events)
	renderer := views.NewRenderer(users, orders)
	forms := controllers.NewFormController(users, orders, renderer)

	schema, err := graph.NewSchema(users, orders)
	if err != nil {
		return nil, fmt.Errorf("kernel: graphql schema: %w", err)
	}

	if d.Hub != nil && d.Events != nil {
		hub := d.Hub
		d.Events.Listen(event.RecordsChanged, func(p any) {
			msg, err := json.Marshal(p)
			if err != nil {
				logger.Warn("kernel: encode change", "error", err)
				return
			}
			hub.Publish(msg)
		})
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(d.CORS))
	if d.Limiter != nil {
		r.Use(d.Limiter.Middleware)
	}
	r.Use(session.Middleware(d.Cache, d.Session))

	routes.RegisterWeb(r, controllers.NewPageController(forms, renderer))
	routes.RegisterAPI(r, controllers.NewAPIController(users, orders))

	gql := graphql.Handler(schema, graph.WithUserCache)
	r.Get("/graphql", "graphql.query", gql)
	r.Post("/graphql", "graphql.exec", gql)

	r.Get("/healthz", "health", controllers.Health(d.Store))
	r.Get("/metrics", "metrics", metrics.Handler())
	if d.Hub != nil {
		r.Handle(http.MethodGet, "/ws", "live", d.Hub)
	}

	return &HTTPKernel{router: r}, nil
}

func (k *HTTPKernel) Handler() http.Handler { return k.router.Handler() }

// Routes lists every registered endpoint, sorted by path.
func (k *HTTPKernel) Routes() []router.Route { return k.router.Routes() }
