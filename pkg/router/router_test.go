package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestGroupMiddlewareAndParams(t *testing.T) {
	r := New()
	tag := func(v string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Add("X-Tag", v)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api", tag("api"))
	api.Group("users", tag("users")).Put("/{id}", "users.update", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/users/7", nil))

	assert.Equal(t, "7", rec.Body.String())
	assert.Equal(t, []string{"api", "users"}, rec.Header().Values("X-Tag"))
}

func TestRoutesSorted(t *testing.T) {
	r := New()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Post("/users", "users.store", noop)
	r.Get("/", "home", noop)
	r.Delete("/api/users/{id}", "", noop)
	r.Get("/users", "", noop)

	assert.Equal(t, []Route{
		{Method: http.MethodGet, Path: "/", Name: "home"},
		{Method: http.MethodDelete, Path: "/api/users/{id}"},
		{Method: http.MethodGet, Path: "/users"},
		{Method: http.MethodPost, Path: "/users", Name: "users.store"},
	}, r.Routes())
}
