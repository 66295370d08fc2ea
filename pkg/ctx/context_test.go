package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	appctx "github.com/shashiranjanraj/paladar/pkg/ctx"
)

func serve(method, path, body string, h appctx.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, "/things/{id}", appctx.Wrap(h))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestSuccessEnvelope(t *testing.T) {
	rec := serve(http.MethodGet, "/things/1", "", func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"id":1}}`, rec.Body.String())
}

func TestParamID(t *testing.T) {
	var got uint
	rec := serve(http.MethodGet, "/things/42", "", func(c *appctx.Context) {
		got, _ = c.ParamID("id")
	})
	assert.Equal(t, uint(42), got)
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, bad := range []string{"0", "abc", "-1"} {
		rec = serve(http.MethodGet, "/things/"+bad, "", func(c *appctx.Context) {
			if _, ok := c.ParamID("id"); ok {
				t.Errorf("id %q accepted", bad)
			}
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestBindJSON(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}

	rec := serve(http.MethodPost, "/things/1", `{"name":""}`, func(c *appctx.Context) {
		var v in
		assert.False(t, c.BindJSON(&v))
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name"`)

	rec = serve(http.MethodPost, "/things/1", `{`, func(c *appctx.Context) {
		var v in
		assert.False(t, c.BindJSON(&v))
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoContent(t *testing.T) {
	rec := serve(http.MethodDelete, "/things/1", "", func(c *appctx.Context) {
		c.NoContent()
		assert.Equal(t, http.StatusNoContent, c.WrittenStatus())
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}
