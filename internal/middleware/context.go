package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxTokenVersionKey = "token_version" // int
	CtxIsStaffKey      = "is_staff"      // bool
	CtxIsSuperuserKey  = "is_superuser"  // bool
	CtxRequestIDKey    = "request_id"    // string
	CtxLoggerKey       = "logger"        // *logrus.Entry
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(CtxUserIDKey).(int64)
	return id, ok && id > 0
}

func IsAdmin(c echo.Context) bool {
	staff, _ := c.Get(CtxIsStaffKey).(bool)
	su, _ := c.Get(CtxIsSuperuserKey).(bool)
	return staff || su
}

// Logger returns the request-scoped entry, or fallback when RequestLogger did not run.
func Logger(c echo.Context, fallback logrus.FieldLogger) logrus.FieldLogger {
	if l, ok := c.Get(CtxLoggerKey).(*logrus.Entry); ok {
		return l
	}
	return fallback
}
