// Package views turns the stored users and orders into what the page shows:
// list rows, the owner selector and the empty-state texts.
package views

import (
	"context"
	"strconv"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/pkg/collection"
)

const (
	NoUsers      = "No hay usuarios registrados"
	NoOrders     = "No hay pedidos registrados"
	NoOwner      = "Sin usuario"
	SelectPrompt = "Seleccionar Usuario"
)

// UserLister and OrderLister are the reads the renderer needs; the
// repositories satisfy them.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

type OrderLister interface {
	List(ctx context.Context) ([]models.Order, error)
}

type UserRow struct {
	ID          uint
	Name        string
	Description string
}

type OrderRow struct {
	ID          uint
	Dish        string
	Description string
	UserID      uint
	Owner       string
}

// Option is one entry of the owner selector.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

type UsersView struct {
	Rows    []UserRow
	Options []Option
	Empty   string // set only when there are no rows
}

// OptionsFor returns Options with the entry for userID marked selected. With
// userID 0, or an id no user has, the placeholder stays selected.
func (v UsersView) OptionsFor(userID uint) []Option {
	want := ""
	if userID != 0 {
		want = strconv.FormatUint(uint64(userID), 10)
	}
	out := make([]Option, len(v.Options))
	matched := false
	for i, o := range v.Options {
		o.Selected = want != "" && o.Value == want
		matched = matched || o.Selected
		out[i] = o
	}
	if !matched && len(out) > 0 {
		out[0].Selected = true
	}
	return out
}

type OrdersView struct {
	Rows  []OrderRow
	Empty string
}

// Snapshot is both lists as read by one Refresh.
type Snapshot struct {
	Users  UsersView
	Orders OrdersView
}

type Renderer struct {
	users  UserLister
	orders OrderLister
}

func NewRenderer(users UserLister, orders OrderLister) *Renderer {
	return &Renderer{users: users, orders: orders}
}

// RenderUsers builds the user list and the owner selector.
func (r *Renderer) RenderUsers(ctx context.Context) (UsersView, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return UsersView{}, err
	}

	v := UsersView{
		Rows:    make([]UserRow, 0, len(users)),
		Options: make([]Option, 0, len(users)+1),
	}
	v.Options = append(v.Options, Option{Value: "", Label: SelectPrompt})
	for _, u := range users {
		v.Rows = append(v.Rows, UserRow{ID: u.ID, Name: u.Name, Description: u.Description})
		v.Options = append(v.Options, Option{Value: strconv.FormatUint(uint64(u.ID), 10), Label: u.Name})
	}
	if len(users) == 0 {
		v.Empty = NoUsers
	}
	return v, nil
}

// RenderOrders builds the order list, naming each order's owner.
func (r *Renderer) RenderOrders(ctx context.Context) (OrdersView, error) {
	orders, err := r.orders.List(ctx)
	if err != nil {
		return OrdersView{}, err
	}
	users, err := r.users.List(ctx)
	if err != nil {
		return OrdersView{}, err
	}

	v := OrdersView{Rows: collection.Map(orders, func(o models.Order) OrderRow {
		return OrderRow{
			ID:          o.ID,
			Dish:        o.Dish,
			Description: o.Description,
			UserID:      o.UserID,
			Owner:       OwnerName(users, o.UserID),
		}
	})}
	if len(orders) == 0 {
		v.Empty = NoOrders
	}
	return v, nil
}

// Refresh renders users, then orders. Either both succeed or no snapshot is
// returned.
func (r *Renderer) Refresh(ctx context.Context) (Snapshot, error) {
	users, err := r.RenderUsers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	orders, err := r.RenderOrders(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Users: users, Orders: orders}, nil
}

// OwnerName finds the user with id by linear search, falling back to NoOwner.
func OwnerName(users []models.User, id uint) string {
	for _, u := range users {
		if u.ID == id {
			return u.Name
		}
	}
	return NoOwner
}
