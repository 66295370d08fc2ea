package controllers

import (
	"github.com/shashiranjanraj/paladar/app/models"
	"github.com/shashiranjanraj/paladar/app/views"
	"github.com/shashiranjanraj/paladar/pkg/resource"
)

type UserResource struct{}

func (UserResource) ToArray(u models.User) resource.Map {
	return resource.Map{
		"id":          u.ID,
		"name":        u.Name,
		"description": u.Description,
	}
}

// OrderResource adds the owner's display name, resolved against users.
type OrderResource struct {
	Users []models.User
}

func (t OrderResource) ToArray(o models.Order) resource.Map {
	return resource.Map{
		"id":          o.ID,
		"dish":        o.Dish,
		"description": o.Description,
		"user_id":     o.UserID,
		"owner":       views.OwnerName(t.Users, o.UserID),
	}
}
