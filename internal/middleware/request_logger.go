package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags the request with an id and logs one line when it completes.
func RequestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(HeaderRequestID)
			if rid == "" || len(rid) > 128 {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(HeaderRequestID, rid)

			entry := log.WithField("request_id", rid)
			c.Set(CtxRequestIDKey, rid)
			c.Set(CtxLoggerKey, entry)

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     c.Response().Status,
				"latency_ms": time.Since(start).Milliseconds(),
				"remote_ip":  c.RealIP(),
			}
			if uid, ok := UserID(c); ok {
				fields["user_id"] = uid
			}

			e := entry.WithFields(fields)
			switch status := c.Response().Status; {
			case status >= 500:
				e.Error("request")
			case status >= 400:
				e.Warn("request")
			default:
				e.Info("request")
			}
			return nil
		}
	}
}
