// Package resource shapes models into the JSON the API returns.
//
//	type UserResource struct{}
//	func (UserResource) ToArray(u models.User) resource.Map {
//	    return resource.Map{"id": u.ID, "name": u.Name}
//	}
//
//	resource.New[models.User](UserResource{}, user).Respond(w, http.StatusOK)
//	resource.CollectionOf[models.User](UserResource{}, users).Respond(w)
package resource

import (
	"encoding/json"
	"net/http"
)

// Map is a convenient alias for the output of ToArray.
type Map = map[string]any

// Transformer converts one model instance into a Map.
type Transformer[T any] interface {
	ToArray(v T) Map
}

// Resource wraps a single model with its transformer.
type Resource[T any] struct {
	transformer Transformer[T]
	data        T
	meta        Map
}

func New[T any](t Transformer[T], data T) *Resource[T] {
	return &Resource[T]{transformer: t, data: data}
}

// WithMeta attaches additional metadata to the response envelope.
func (r *Resource[T]) WithMeta(meta Map) *Resource[T] {
	r.meta = meta
	return r
}

// MarshalJSON implements json.Marshaler so a Resource can be nested.
func (r *Resource[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.transformer.ToArray(r.data))
}

// Respond writes {"data": ...} with the given status.
func (r *Resource[T]) Respond(w http.ResponseWriter, status int) {
	out := Map{"data": r.transformer.ToArray(r.data)}
	if r.meta != nil {
		out["meta"] = r.meta
	}
	writeJSON(w, status, out)
}

// Collection wraps a slice of models with a transformer.
type Collection[T any] struct {
	transformer Transformer[T]
	items       []T
	meta        Map
}

func CollectionOf[T any](t Transformer[T], items []T) *Collection[T] {
	return &Collection[T]{transformer: t, items: items}
}

// WithMeta attaches extra metadata.
func (c *Collection[T]) WithMeta(meta Map) *Collection[T] {
	c.meta = meta
	return c
}

// Respond writes {"data": [...]} with status 200. An empty collection is
// written as [] rather than null.
func (c *Collection[T]) Respond(w http.ResponseWriter) {
	result := make([]Map, 0, len(c.items))
	for _, item := range c.items {
		result = append(result, c.transformer.ToArray(item))
	}

	out := Map{"data": result}
	if c.meta != nil {
		out["meta"] = c.meta
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
