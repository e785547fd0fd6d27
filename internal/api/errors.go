package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c4board/c4board/internal/domain/backup"
	"github.com/c4board/c4board/internal/domain/model"
	"github.com/c4board/c4board/internal/domain/project"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpErrorHandler maps domain errors to HTTP status codes with a uniform
// error body. Unrecognized errors become 500s with the detail logged rather
// than leaked to the caller.
func httpErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := err.Error()

		var httpErr *echo.HTTPError
		switch {
		case errors.Is(err, project.ErrProjectNotFound),
			errors.Is(err, model.ErrModelNotFound):
			status = http.StatusNotFound
		case errors.Is(err, project.ErrInvalidInput),
			errors.Is(err, model.ErrInvalidInput),
			errors.Is(err, backup.ErrInvalidPayload):
			status = http.StatusBadRequest
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		default:
			logger.Error("unhandled API error", "error", err, "path", c.Request().URL.Path)
			message = "internal server error"
		}

		if writeErr := c.JSON(status, ErrorResponse{Error: message}); writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}
