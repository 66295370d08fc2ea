// Package graph exposes users and orders as a read-only GraphQL schema.
//
//	{ orders { id dish owner { name } } }
package graph

import (
	"context"
	"errors"
	"sync"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/collection"
	pkggraphql "github.com/shashiranjanraj/paladar/pkg/graphql"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

// Users and Orders are the read operations the resolvers need.
type Users interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uint) (models.User, error)
}

type Orders interface {
	List(ctx context.Context) ([]models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	Get(ctx context.Context, id uint) (models.Order, error)
}

type usersKey struct{}

type userSet struct {
	once sync.Once
	list []models.User
	err  error
}

// WithUserCache lets every owner lookup in one query share a single read of
// the users collection.
func WithUserCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, usersKey{}, &userSet{})
}

func allUsers(ctx context.Context, users Users) ([]models.User, error) {
	set, ok := ctx.Value(usersKey{}).(*userSet)
	if !ok {
		return users.List(ctx)
	}
	set.once.Do(func() { set.list, set.err = users.List(ctx) })
	return set.list, set.err
}

func userMap(u models.User) map[string]any {
	return map[string]any{"id": int(u.ID), "name": u.Name, "description": u.Description}
}

func orderMap(o models.Order) map[string]any {
	return map[string]any{"id": int(o.ID), "dish": o.Dish, "description": o.Description, "userId": int(o.UserID)}
}

// idArg reads a positive id argument. Anything else matches no record.
func idArg(p graphql.ResolveParams, name string) (uint, bool) {
	n, ok := p.Args[name].(int)
	if !ok || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

// NewSchema builds the schema over the two repositories.
func NewSchema(users Users, orders Orders) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"dish":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			// owner is null when the order has none or the user is gone.
			"owner": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					src, _ := p.Source.(map[string]any)
					id, _ := src["userId"].(int)
					if id <= 0 {
						return nil, nil
					}
					all, err := allUsers(p.Context, users)
					if err != nil {
						return nil, err
					}
					for _, u := range all {
						if u.ID == uint(id) {
							return userMap(u), nil
						}
					}
					return nil, nil
				},
			},
			"ownerName": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					src, _ := p.Source.(map[string]any)
					id, _ := src["userId"].(int)
					all, err := allUsers(p.Context, users)
					if err != nil {
						return nil, err
					}
					return views.OwnerName(all, uint(id)), nil
				},
			},
		},
	})

	userType.AddFieldConfig("orders", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			src, _ := p.Source.(map[string]any)
			id, _ := src["id"].(int)
			list, err := orders.ListByUser(p.Context, uint(id))
			if err != nil {
				return nil, err
			}
			return collection.Map(list, orderMap), nil
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					list, err := users.List(p.Context)
					if err != nil {
						return nil, err
					}
					return collection.Map(list, userMap), nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var (
						list []models.Order
						err  error
					)
					if raw, ok := p.Args["userId"].(int); ok {
						if raw < 0 {
							raw = 0
						}
						list, err = orders.ListByUser(p.Context, uint(raw))
					} else {
						list, err = orders.List(p.Context)
					}
					if err != nil {
						return nil, err
					}
					return collection.Map(list, orderMap), nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, ok := idArg(p, "id")
					if !ok {
						return nil, nil
					}
					u, err := users.Get(p.Context, id)
					if errors.Is(err, store.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return userMap(u), nil
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, ok := idArg(p, "id")
					if !ok {
						return nil, nil
					}
					o, err := orders.Get(p.Context, id)
					if errors.Is(err, store.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return orderMap(o), nil
				},
			},
		},
	})

	return pkggraphql.NewSchema(query)
}
