package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/pkg/ctx"
	"github.com/shashiranjanraj/paladar/pkg/logger"
	"github.com/shashiranjanraj/paladar/pkg/resource"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

type userPayload struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description"`
}

type orderPayload struct {
	Dish        string `json:"dish"        validate:"required,max=255"`
	Description string `json:"description"`
	UserID      uint   `json:"user_id"`
}

// APIController exposes users and orders as JSON under /api.
type APIController struct {
	users  *repositories.UserRepository
	orders *repositories.OrderRepository
}

func NewAPIController(users *repositories.UserRepository, orders *repositories.OrderRepository) *APIController {
	return &APIController{users: users, orders: orders}
}

// fail maps a store error onto a status code.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.NotFound()
	case errors.Is(err, store.ErrNotInitialized), errors.Is(err, store.ErrStorageUnavailable):
		c.Error(http.StatusServiceUnavailable, "storage unavailable")
	default:
		logger.WithCtx(c.Context()).Error("api: store request failed", "error", err)
		c.Error(http.StatusInternalServerError, "store request failed")
	}
}

func (a *APIController) ListUsers(c *ctx.Context) {
	users, err := a.users.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf[models.User](UserResource{}, users).
		WithMeta(resource.Map{"total": len(users)}).
		Respond(c.W)
}

func (a *APIController) ShowUser(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	u, err := a.users.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New[models.User](UserResource{}, u).Respond(c.W, http.StatusOK)
}

func (a *APIController) CreateUser(c *ctx.Context) {
	var in userPayload
	if !c.BindJSON(&in, userMessages) {
		return
	}
	id, err := a.users.Add(c.Context(), strings.TrimSpace(in.Name), strings.TrimSpace(in.Description))
	if err != nil {
		fail(c, err)
		return
	}
	u, err := a.users.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New[models.User](UserResource{}, u).Respond(c.W, http.StatusCreated)
}

func (a *APIController) UpdateUser(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in userPayload
	if !c.BindJSON(&in, userMessages) {
		return
	}
	if err := a.users.Update(c.Context(), id, strings.TrimSpace(in.Name), strings.TrimSpace(in.Description)); err != nil {
		fail(c, err)
		return
	}
	u, err := a.users.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resource.New[models.User](UserResource{}, u).Respond(c.W, http.StatusOK)
}

// DeleteUser answers 204 whether or not the user existed.
func (a *APIController) DeleteUser(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := a.users.Remove(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

// ListOrders returns every order, or only those of ?user_id=N.
func (a *APIController) ListOrders(c *ctx.Context) {
	var (
		orders []models.Order
		err    error
	)
	if raw := c.Query("user_id"); raw != "" {
		n, perr := strconv.ParseUint(raw, 10, 63)
		if perr != nil {
			c.ValidationError(map[string]string{"user_id": "user_id must be a whole number"})
			return
		}
		orders, err = a.orders.ListByUser(c.Context(), uint(n))
	} else {
		orders, err = a.orders.List(c.Context())
	}
	if err != nil {
		fail(c, err)
		return
	}

	users, err := a.users.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resource.CollectionOf[models.Order](OrderResource{Users: users}, orders).
		WithMeta(resource.Map{"total": len(orders)}).
		Respond(c.W)
}

func (a *APIController) ShowOrder(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	a.respondOrder(c, id, http.StatusOK)
}

func (a *APIController) CreateOrder(c *ctx.Context) {
	var in orderPayload
	if !c.BindJSON(&in, orderMessages) {
		return
	}
	id, err := a.orders.Add(c.Context(), strings.TrimSpace(in.Dish), strings.TrimSpace(in.Description), in.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	a.respondOrder(c, id, http.StatusCreated)
}

func (a *APIController) UpdateOrder(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	var in orderPayload
	if !c.BindJSON(&in, orderMessages) {
		return
	}
	if err := a.orders.Update(c.Context(), id, strings.TrimSpace(in.Dish), strings.TrimSpace(in.Description), in.UserID); err != nil {
		fail(c, err)
		return
	}
	a.respondOrder(c, id, http.StatusOK)
}

func (a *APIController) DeleteOrder(c *ctx.Context) {
	id, ok := c.ParamID("id")
	if !ok {
		return
	}
	if err := a.orders.Remove(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.NoContent()
}

func (a *APIController) respondOrder(c *ctx.Context, id uint, status int) {
	o, err := a.orders.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	users, err := a.users.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resource.New[models.Order](OrderResource{Users: users}, o).Respond(c.W, status)
}
