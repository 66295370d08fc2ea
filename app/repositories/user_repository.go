package repositories

import (
	"context"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/pkg/event"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

// UserRepository handles store operations for User.
type UserRepository struct {
	gw     *store.Gateway
	events *event.Dispatcher
}

// NewUserRepository binds the repository to gw. events may be nil.
func NewUserRepository(gw *store.Gateway, events *event.Dispatcher) *UserRepository {
	return &UserRepository{gw: gw, events: events}
}

func (r *UserRepository) users(mode store.Mode) (*store.Collection, error) {
	return r.gw.Collection(models.UsersCollection, mode)
}

// Add stores a new user and returns the id the store assigned.
func (r *UserRepository) Add(ctx context.Context, name, description string) (uint, error) {
	col, err := r.users(store.ReadWrite)
	if err != nil {
		return 0, err
	}
	u := models.User{Name: name, Description: description}
	if err := col.Add(ctx, &u); err != nil {
		return 0, err
	}
	notify(r.events, models.UsersCollection, "add", u.ID)
	return u.ID, nil
}

// List returns every user in id order; never nil.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	col, err := r.users(store.ReadOnly)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := col.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	col, err := r.users(store.ReadOnly)
	if err != nil {
		return u, err
	}
	err = col.Get(ctx, id, &u)
	return u, err
}

// Update replaces name and description of an existing user. A missing id
// yields store.ErrNotFound and creates nothing.
func (r *UserRepository) Update(ctx context.Context, id uint, name, description string) error {
	col, err := r.users(store.ReadWrite)
	if err != nil {
		return err
	}
	var u models.User
	err = col.Modify(ctx, id, &u, func() error {
		u.Name = name
		u.Description = description
		return nil
	})
	if err != nil {
		return err
	}
	notify(r.events, models.UsersCollection, "update", id)
	return nil
}

// Remove deletes the user. Its orders keep pointing at the old id.
func (r *UserRepository) Remove(ctx context.Context, id uint) error {
	col, err := r.users(store.ReadWrite)
	if err != nil {
		return err
	}
	if err := col.Delete(ctx, id, &models.User{}); err != nil {
		return err
	}
	notify(r.events, models.UsersCollection, "remove", id)
	return nil
}
