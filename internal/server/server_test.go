package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shiyas-dx/Project/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type nopObserver struct{ routes []string }

func (o *nopObserver) ObserveRequest(_, route string, _ int, _ time.Duration) {
	o.routes = append(o.routes, route)
}

func newTestServer() (*echo.Echo, *nopObserver) {
	log, _ := test.NewNullLogger()
	obs := &nopObserver{}
	e := New(config.Config{CORSOrigins: []string{"http://shop.test"}}, log, obs)
	e.GET("/cart", func(c echo.Context) error { return c.String(http.StatusOK, "cart") })
	e.GET("/boom", func(c echo.Context) error { return errors.New("db exploded") })
	e.GET("/panic", func(c echo.Context) error { panic("bad") })
	return e, obs
}

func do(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestTrailingSlashIsIgnored(t *testing.T) {
	e, obs := newTestServer()
	rec := do(e, http.MethodGet, "/cart/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"/cart"}, obs.routes)
}

func TestErrorsKeepJSONShape(t *testing.T) {
	e, _ := newTestServer()

	rec := do(e, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())

	rec = do(e, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bad")
}

func TestCORSPreflight(t *testing.T) {
	e, _ := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/cart", nil)
	req.Header.Set(echo.HeaderOrigin, "http://shop.test")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://shop.test", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
