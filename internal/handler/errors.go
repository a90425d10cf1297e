package handler

import (
	"net/http"
	"sort"

	"github.com/shiyas-dx/Project/internal/middleware"
	"github.com/shiyas-dx/Project/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// DetailResponse is the error shape of the admin user endpoints.
type DetailResponse struct {
	Detail  string            `json:"detail"`
	Details map[string]string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		he = &usecase.HTTPError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
	}

	if he.Status >= http.StatusInternalServerError {
		logFailure(c, he)
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(he.Status, ErrorResponse{Error: he.Message, Details: he.Fields})
}

// writeDetailError is writeError for clients that read {"detail": "..."}.
func writeDetailError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		he = &usecase.HTTPError{Status: http.StatusInternalServerError, Message: "internal error", Err: err}
	}
	if he.Status >= http.StatusInternalServerError {
		logFailure(c, he)
		return c.JSON(he.Status, DetailResponse{Detail: he.Message})
	}
	return c.JSON(he.Status, DetailResponse{Detail: firstFieldMessage(he), Details: he.Fields})
}

// firstFieldMessage picks the field error of the alphabetically first field, falling back to the message.
func firstFieldMessage(he *usecase.HTTPError) string {
	if len(he.Fields) == 0 {
		return he.Message
	}
	keys := make([]string, 0, len(he.Fields))
	for k := range he.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return he.Fields[keys[0]]
}

func logFailure(c echo.Context, he *usecase.HTTPError) {
	log := middleware.Logger(c, logrus.StandardLogger())
	if he.Err != nil {
		log = log.WithError(he.Err)
	}
	log.WithFields(logrus.Fields{
		"status": he.Status,
		"route":  c.Path(),
	}).Error(he.Message)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}
