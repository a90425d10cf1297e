package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"
	auth "github.com/shiyas-dx/Project/internal/usecase/auth_usecase"
	"github.com/shiyas-dx/Project/internal/validator"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase
	activateUC *auth.ActivateAccountUsecase
	loginUC    *auth.LoginUsecase
	refreshUC  *auth.RefreshTokenUsecase
	logoutUC   *auth.LogoutUsecase
}

func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	activateUC *auth.ActivateAccountUsecase,
	loginUC *auth.LoginUsecase,
	refreshUC *auth.RefreshTokenUsecase,
	logoutUC *auth.LogoutUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		activateUC: activateUC,
		loginUC:    loginUC,
		refreshUC:  refreshUC,
		logoutUC:   logoutUC,
	}
}

type registerRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// username may also be an e-mail address.
type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, g Guards) {
	e.POST("/register", h.register, g.RateLimit...)
	e.POST("/login", h.login, g.RateLimit...)
	e.POST("/token/refresh", h.refresh, g.RateLimit...)
	e.GET("/activate/:uid/:token", h.activate)
	e.POST("/logout", h.logout, g.User...)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) activate(c echo.Context) error {
	out, err := h.activateUC.Execute(c.Request().Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	identifier := req.Username
	if strings.TrimSpace(identifier) == "" {
		identifier = req.Email
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
		UserAgent:  c.Request().UserAgent(),
	})
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.refreshUC.Execute(c.Request().Context(), req.Refresh, c.Request().UserAgent())
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return unauthorized(c)
	}

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	if err := h.logoutUC.Execute(c.Request().Context(), userID, req.Refresh); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out successfully"})
}

var authBadRequest = []error{
	validator.ErrInvalidInput,
	validator.ErrUsernameRequired,
	validator.ErrInvalidUsername,
	validator.ErrPasswordRequired,
	validator.ErrPasswordMismatch,
	validator.ErrInvalidEmail,
	validator.ErrPasswordTooShort,
	validator.ErrWeakPassword,
	auth.ErrUsernameTaken,
	auth.ErrInvalidActivationLink,
	auth.ErrInvalidCredentials,
}

// writeAuthError maps the auth package's sentinel errors onto statuses.
func writeAuthError(c echo.Context, err error) error {
	for _, target := range authBadRequest {
		if errors.Is(err, target) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: target.Error()})
		}
	}

	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: auth.ErrUserNotFound.Error()})
	case errors.Is(err, auth.ErrInvalidRefreshToken), errors.Is(err, auth.ErrRefreshTokenReuse):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid refresh token"})
	}

	return writeError(c, usecase.NewInternalError("internal error", err))
}
