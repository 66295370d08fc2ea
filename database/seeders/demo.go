package seeders

import (
	"context"

	"github.com/shashiranjanraj/paladar/app/repositories"
	"github.com/shashiranjanraj/paladar/pkg/store"
)

func init() {
	Register("demo", seedDemo)
}

var demoUsers = []struct {
	name, description string
	orders            [][2]string
}{
	{"Ana Pérez", "Mesa 4, sin gluten", [][2]string{{"Paella de verduras", "Sin marisco"}, {"Flan", ""}}},
	{"Luis Gómez", "Cliente habitual", [][2]string{{"Ropa vieja", "Con arroz blanco"}}},
	{"Marta Ruiz", "", nil},
}

// seedDemo adds a few users with their orders plus one order without owner.
func seedDemo(ctx context.Context, gw *store.Gateway) error {
	users := repositories.NewUserRepository(gw, nil)
	orders := repositories.NewOrderRepository(gw, nil)

	for _, u := range demoUsers {
		id, err := users.Add(ctx, u.name, u.description)
		if err != nil {
			return err
		}
		for _, o := range u.orders {
			if _, err := orders.Add(ctx, o[0], o[1], id); err != nil {
				return err
			}
		}
	}
	_, err := orders.Add(ctx, "Tostones", "Para llevar", 0)
	return err
}
