package testkit

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Client drives an http.Handler in-process and carries cookies between
// requests, the way a browser would.
type Client struct {
	t       testing.TB
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewClient(t testing.TB, h http.Handler) *Client {
	return &Client{t: t, handler: h, cookies: map[string]*http.Cookie{}}
}

// Get issues a GET request.
func (c *Client) Get(path string) *httptest.ResponseRecorder {
	return c.Do(httptest.NewRequest(http.MethodGet, path, nil))
}

// PostForm issues a form-encoded POST.
func (c *Client) PostForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// JSON issues a request with a JSON body (may be empty).
func (c *Client) JSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.Do(req)
}

// Do sends req with the stored cookies and remembers any cookie set back.
func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

// AssertRedirect checks for a 303 See Other pointing at location.
func AssertRedirect(t testing.TB, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, location, rec.Header().Get("Location"))
}
