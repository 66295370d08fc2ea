// Package routes binds controllers to URLs.
package routes

import (
	"github.com/shashiranjanraj/paladar/app/controllers"
	"github.com/shashiranjanraj/paladar/pkg/router"
)

// RegisterWeb mounts the HTML page and its form posts.
func RegisterWeb(r *router.Router, page *controllers.PageController) {
	r.Get("/", "home", page.Show)

	users := r.Group("/users")
	users.Post("/", "users.store", page.StoreUser)
	users.Post("/cancel", "users.cancel", page.CancelUser)
	users.Post("/{id}/edit", "users.edit", page.EditUser)
	users.Post("/{id}/delete", "users.delete", page.DeleteUser)

	orders := r.Group("/orders")
	orders.Post("/", "orders.store", page.StoreOrder)
	orders.Post("/cancel", "orders.cancel", page.CancelOrder)
	orders.Post("/{id}/edit", "orders.edit", page.EditOrder)
	orders.Post("/{id}/delete", "orders.delete", page.DeleteOrder)
}
