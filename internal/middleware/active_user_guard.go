package middleware

import (
	"net/http"

	repo "github.com/shiyas-dx/Project/internal/repository"

	"github.com/labstack/echo/v4"
)

// ActiveUserGuard reloads the user behind the token. Blocked users and tokens minted
// before the last token_version bump get a 401; role flags are refreshed from the row.
func ActiveUserGuard(users repo.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !user.IsActive || user.TokenVersion != tv {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			c.Set(CtxIsStaffKey, user.IsStaff)
			c.Set(CtxIsSuperuserKey, user.IsSuperuser)

			return next(c)
		}
	}
}
