package routes

import (
	"github.com/shashiranjanraj/paladar/app/controllers"
	"github.com/shashiranjanraj/paladar/pkg/ctx"
	"github.com/shashiranjanraj/paladar/pkg/router"
)

// RegisterAPI mounts the JSON API under /api.
func RegisterAPI(r *router.Router, api *controllers.APIController) {
	g := r.Group("/api")

	g.Get("/users", "api.users.index", ctx.Wrap(api.ListUsers))
	g.Post("/users", "api.users.store", ctx.Wrap(api.CreateUser))
	g.Get("/users/{id}", "api.users.show", ctx.Wrap(api.ShowUser))
	g.Put("/users/{id}", "api.users.update", ctx.Wrap(api.UpdateUser))
	g.Delete("/users/{id}", "api.users.destroy", ctx.Wrap(api.DeleteUser))

	g.Get("/orders", "api.orders.index", ctx.Wrap(api.ListOrders))
	g.Post("/orders", "api.orders.store", ctx.Wrap(api.CreateOrder))
	g.Get("/orders/{id}", "api.orders.show", ctx.Wrap(api.ShowOrder))
	g.Put("/orders/{id}", "api.orders.update", ctx.Wrap(api.UpdateOrder))
	g.Delete("/orders/{id}", "api.orders.destroy", ctx.Wrap(api.DeleteOrder))
}
