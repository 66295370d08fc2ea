package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/paladar/pkg/validate"
)

type orderInput struct {
	Dish        string `json:"dish"        validate:"required,max=10"`
	Description string `json:"description" validate:"nullable,min=3"`
	UserID      uint   `json:"user_id"     validate:"gte=0"`
	Size        string `json:"size"        validate:"nullable,in=chico,grande,max=6"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(orderInput{Dish: "Paella", Size: "grande"})
	assert.False(t, validate.HasErrors(errs), "%v", errs)
}

func TestRequiredTreatsWhitespaceAsEmpty(t *testing.T) {
	errs := validate.Struct(&orderInput{Dish: "   "})
	assert.Equal(t, "The dish field is required.", errs["dish"])
}

func TestMessagesOverride(t *testing.T) {
	errs := validate.Struct(orderInput{}, validate.Messages{"dish.required": "Plato requerido"})
	assert.Equal(t, map[string]string{"dish": "Plato requerido"}, errs)
}

func TestLengthBounds(t *testing.T) {
	errs := validate.Struct(orderInput{Dish: "Arroz con pollo", Description: "ok"})
	assert.Contains(t, errs["dish"], "must not exceed 10")
	assert.Contains(t, errs["description"], "at least 3")

	// length counts runes, not bytes
	errs = validate.Struct(orderInput{Dish: "ñoquisñoqu"})
	assert.NotContains(t, errs, "dish")
}

func TestInRuleKeepsFollowingRule(t *testing.T) {
	errs := validate.Struct(orderInput{Dish: "Flan", Size: "mediano"})
	assert.Equal(t, "The selected size is invalid.", errs["size"])

	errs = validate.Struct(orderInput{Dish: "Flan", Size: "chico"})
	assert.Empty(t, errs)
}

func TestNonStructIsIgnored(t *testing.T) {
	assert.Empty(t, validate.Struct("nope"))
}
