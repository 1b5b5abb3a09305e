package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newServer(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/health", ok)
	e.POST("/api/products/import", ok)
	return e
}

func serve(e *echo.Echo, req *http.Request) int {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestMiddleware_Basic(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "importer")
	t.Setenv("API_PASS", "secret")
	e := newServer(Middleware())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	assert.Equal(t, http.StatusUnauthorized, serve(e, req))

	req = httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	req.SetBasicAuth("importer", "wrong")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req))

	req = httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	req.SetBasicAuth("importer", "secret")
	assert.Equal(t, http.StatusOK, serve(e, req))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, serve(e, req))
}

func TestMiddleware_Key(t *testing.T) {
	t.Setenv("AUTH_TYPE", "key")
	t.Setenv("API_KEY", "k3y")
	e := newServer(Middleware())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req))

	req = httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer k3y")
	assert.Equal(t, http.StatusOK, serve(e, req))
}

func TestMiddleware_EmptyCredentialsDenied(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "")
	t.Setenv("API_PASS", "")
	e := newServer(Middleware())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", nil)
	req.SetBasicAuth("", "")
	assert.Equal(t, http.StatusUnauthorized, serve(e, req))
}
