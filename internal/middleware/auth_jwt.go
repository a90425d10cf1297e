package middleware

import (
	"net/http"
	"strings"

	"github.com/shiyas-dx/Project/internal/infra/token"

	"github.com/labstack/echo/v4"
)

type AccessTokenParser interface {
	ParseAccess(raw string) (token.AccessClaims, error)
}

// AuthJWT verifies the bearer access token and stores its claims in the context.
// Websocket upgrades may pass the token as ?access_token= since browsers cannot set headers there.
func AuthJWT(parser AccessTokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := bearerToken(c.Request())
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, err := parser.ParseAccess(rawToken)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			userID, err := claims.UserID()
			if err != nil || userID <= 0 || claims.TokenVersion < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxUserIDKey, userID)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)
			c.Set(CtxIsStaffKey, claims.Staff)
			c.Set(CtxIsSuperuserKey, claims.Superuser)

			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		if isWebsocketUpgrade(r) {
			t := strings.TrimSpace(r.URL.Query().Get("access_token"))
			return t, t != ""
		}
		return "", false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.TrimSpace(parts[1])
	return t, t != ""
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
