package handler

import "github.com/labstack/echo/v4"

// Guards are the middleware chains each handler mounts on its routes.
type Guards struct {
	User      []echo.MiddlewareFunc
	Admin     []echo.MiddlewareFunc
	RateLimit []echo.MiddlewareFunc
}
