package repositories

import (
	"context"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/pkg/event"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

// OrderRepository handles store operations for Order. Nothing checks that the
// owner exists; an owner id beyond models.MaxID is stored as 0.
type OrderRepository struct {
	gw     *store.Gateway
	events *event.Dispatcher
}

func NewOrderRepository(gw *store.Gateway, events *event.Dispatcher) *OrderRepository {
	return &OrderRepository{gw: gw, events: events}
}

func (r *OrderRepository) orders(mode store.Mode) (*store.Collection, error) {
	return r.gw.Collection(models.OrdersCollection, mode)
}

func (r *OrderRepository) Add(ctx context.Context, dish, description string, userID uint) (uint, error) {
	col, err := r.orders(store.ReadWrite)
	if err != nil {
		return 0, err
	}
	o := models.Order{Dish: dish, Description: description, UserID: models.OwnerRef(userID)}
	if err := col.Add(ctx, &o); err != nil {
		return 0, err
	}
	notify(r.events, models.OrdersCollection, "add", o.ID)
	return o.ID, nil
}

// List returns every order in id order; never nil.
func (r *OrderRepository) List(ctx context.Context) ([]models.Order, error) {
	col, err := r.orders(store.ReadOnly)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := col.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByUser returns the orders whose owner is userID, via the usuarioId index.
// An id no engine can store owns nothing.
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	col, err := r.orders(store.ReadOnly)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if uint64(userID) > models.MaxID {
		return orders, nil
	}
	if err := col.Index(ctx, models.OwnerColumn, userID, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Get(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	col, err := r.orders(store.ReadOnly)
	if err != nil {
		return o, err
	}
	err = col.Get(ctx, id, &o)
	return o, err
}

func (r *OrderRepository) Update(ctx context.Context, id uint, dish, description string, userID uint) error {
	col, err := r.orders(store.ReadWrite)
	if err != nil {
		return err
	}
	var o models.Order
	err = col.Modify(ctx, id, &o, func() error {
		o.Dish = dish
		o.Description = description
		o.UserID = models.OwnerRef(userID)
		return nil
	})
	if err != nil {
		return err
	}
	notify(r.events, models.OrdersCollection, "update", id)
	return nil
}

func (r *OrderRepository) Remove(ctx context.Context, id uint) error {
	col, err := r.orders(store.ReadWrite)
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, id, &models.Order{}); err != nil {
		return err
	}
	notify(r.events, models.OrdersCollection, "remove", id)
	return nil
}
