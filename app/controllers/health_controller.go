package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/paladar/pkg/response"
)

// Pinger is anything that can confirm the store still answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health answers /healthz: 200 while the store responds, 503 otherwise.
func Health(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			response.Unavailable(w, "storage unavailable")
			return
		}
		response.Success(w, map[string]string{"status": "ok"})
	}
}
