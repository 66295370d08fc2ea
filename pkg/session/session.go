// Package session keeps per-browser state between requests in a cache.Store.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(store, session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("form:users", state)
//	_ = sess.Save(w)
//	sess.Decode("form:users", &state)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/paladar/pkg/cache"
	"github.com/shashiranjanraj/paladar/pkg/logger"
)

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

func DefaultOptions() Options {
	return Options{
		CookieName: "paladar_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is an in-request session handle. It is not safe for concurrent use;
// each request gets its own.
type Session struct {
	id      string
	data    map[string]json.RawMessage
	opts    Options
	store   cache.Store
	changed bool
}

func newID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: random id: %v", err))
	}
	return hex.EncodeToString(b)
}

func storeKey(id string) string { return "paladar:session:" + id }

// Set stores value under key. The value is kept as JSON.
func (s *Session) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("session: marshal %s: %w", key, err)
	}
	s.data[key] = raw
	s.changed = true
	return nil
}

// Decode unmarshals the value under key into dest and reports whether it was
// present and well formed.
func (s *Session) Decode(key string, dest any) bool {
	raw, ok := s.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Has reports whether key is set.
func (s *Session) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.changed = true
	}
}

// Flash stores a message that is removed by the first TakeFlash.
func (s *Session) Flash(key, msg string) {
	_ = s.Set("_flash_"+key, msg)
}

// TakeFlash returns and clears a flash message.
func (s *Session) TakeFlash(key string) string {
	var msg string
	if s.Decode("_flash_"+key, &msg) {
		s.Delete("_flash_" + key)
	}
	return msg
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Save persists the session and writes the cookie. It is a no-op when nothing
// changed, so calling it on every response is fine.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}
	if err := s.store.Set(context.Background(), storeKey(s.id), s.data, s.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
	s.changed = false
	return nil
}

// Middleware loads (or creates) the session for every request and injects it
// into the request context.
func Middleware(store cache.Store, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, store: store, data: map[string]json.RawMessage{}}

			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				sess.id = cookie.Value
				if !store.Get(r.Context(), storeKey(sess.id), &sess.data) {
					logger.WithCtx(r.Context()).Debug("session: unknown or expired id, starting fresh")
					sess.data = map[string]json.RawMessage{}
				}
			} else {
				sess.id = newID()
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context. Without the
// middleware it returns a throwaway session that is never persisted.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{id: newID(), data: map[string]json.RawMessage{}, opts: DefaultOptions(), store: cache.NewMemory()}
}
