package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicrecords/clinic/internal/platform/db"
)

// StatusFor maps an error returned by a handler to the response status.
func StatusFor(err error) int {
	var (
		httpErr    *echo.HTTPError
		missing    *MissingFieldError
		format     *FormatError
		fk         *db.ForeignKeyViolation
		constraint *db.StorageConstraintError
	)
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &missing), errors.As(err, &format):
		return http.StatusBadRequest
	case errors.As(err, &fk), errors.As(err, &constraint):
		return http.StatusConflict
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler is installed as echo's HTTPErrorHandler. Clients get a generic
// body. Messages set explicitly on an echo.HTTPError below 500 are passed
// through. The cause is logged once, by the request logger; logger here only
// reports failures to write the response.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := StatusFor(err)
		msg := http.StatusText(status)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && status < 500 {
			if s, ok := httpErr.Message.(string); ok && s != "" {
				msg = s
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, map[string]string{"error": msg})
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
