package bind

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/paladar/pkg/validate"
)

type orderForm struct {
	Dish   string `form:"plato"     json:"dish"    validate:"required"`
	UserID uint   `form:"usuarioId" json:"user_id"`
}

func formRequest(v url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(v.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestFormBindsAndValidates(t *testing.T) {
	var in orderForm
	errs, err := Form(formRequest(url.Values{"plato": {"Paella"}, "usuarioId": {"4"}}), &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, orderForm{Dish: "Paella", UserID: 4}, in)
}

func TestFormBadNumberIsZero(t *testing.T) {
	for _, sel := range []string{"", "abc", "-3"} {
		var in orderForm
		_, err := Form(formRequest(url.Values{"plato": {"Flan"}, "usuarioId": {sel}}), &in)
		require.NoError(t, err)
		assert.Zero(t, in.UserID, "selector %q", sel)
	}
}

func TestFormValidationMessages(t *testing.T) {
	var in orderForm
	errs, err := Form(formRequest(url.Values{"plato": {"  "}}), &in, validate.Messages{"dish.required": "Plato requerido"})
	require.NoError(t, err)
	assert.Equal(t, "Plato requerido", errs["dish"])
}

func TestFormRejectsNonPointer(t *testing.T) {
	_, err := Form(formRequest(url.Values{}), orderForm{})
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	var in orderForm
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"dish":"Tacos","user_id":2}`))
	errs, err := JSON(req, &in)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, uint(2), in.UserID)

	req = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"dish":`))
	_, err = JSON(req, &in)
	assert.ErrorContains(t, err, "invalid JSON")

	req = httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"dish":""}`))
	errs, err = JSON(req, &orderForm{})
	require.NoError(t, err)
	assert.Contains(t, errs, "dish")
}
