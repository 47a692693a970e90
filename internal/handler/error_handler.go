package handler

import (
	"errors"
	"fmt"
	"net/http"

	"property-service/internal/apperror"
	"property-service/pkg/logger"
	"property-service/pkg/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const msgServerError = "Server error"

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorHandler is the echo HTTPErrorHandler. It maps application errors to
// status codes and never exposes internal detail to the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	log := logger.FromContext(c)

	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		message = msgServerError
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, errorResponse{Success: false, Message: message})
	}
	if writeErr != nil {
		log.Error("Failed to write error response", zap.Error(writeErr))
	}
}

func classify(err error) (int, string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.StatusCode(), appErr.Message
	}

	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, validationErr.Error()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if s, ok := httpErr.Message.(string); ok && s != "" {
			msg = s
		} else if httpErr.Message != nil {
			msg = fmt.Sprint(httpErr.Message)
		}
		return httpErr.Code, msg
	}

	return http.StatusInternalServerError, msgServerError
}
