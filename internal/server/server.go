package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shiyas-dx/Project/internal/config"
	"github.com/shiyas-dx/Project/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// New builds the echo instance with the global middleware chain. Routes are added by RegisterRoutes.
func New(cfg config.Config, log *logrus.Logger, obs middleware.RequestObserver) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// clients call /cart/ as well as /cart
	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	if obs != nil {
		e.Use(middleware.Metrics(obs))
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.HeaderRequestID},
		AllowCredentials: true,
	}))

	e.HTTPErrorHandler = jsonErrorHandler(log)
	return e
}

// jsonErrorHandler keeps framework errors (404 route, 405, bind failures) in the {"error": ...} shape.
func jsonErrorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				msg = s
			} else {
				msg = http.StatusText(status)
			}
		} else {
			middleware.Logger(c, log).WithError(err).Error("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, map[string]string{"error": msg})
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, e *echo.Echo, addr string, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
