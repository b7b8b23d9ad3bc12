package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/pkg/api"
)

const internalErrorMessage = "internal server error"

// NewHTTPErrorHandler renders every error returned by a handler or middleware
// as api.Error. In production internal errors are logged but their text is
// never sent to the caller.
func NewHTTPErrorHandler(logger *slog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := renderError(err, production)

		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("uri", c.Request().RequestURI),
				slog.Int("status", status),
				slog.String("err", err.Error()),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", slog.String("err", err.Error()))
		}
	}
}

func renderError(err error, production bool) (int, api.Error) {
	if e, ok := errs.As(err); ok {
		status := errs.HTTPStatus(e.Kind)
		if e.Kind == errs.KindInternal && production {
			return status, api.Error{Kind: string(errs.KindInternal), Message: internalErrorMessage}
		}

		return status, api.Error{Kind: string(e.Kind), Message: e.Message, Details: e.Details}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := errs.KindFromHTTPStatus(he.Code)
		if kind == errs.KindInternal && production {
			return he.Code, api.Error{Kind: string(kind), Message: internalErrorMessage}
		}

		return he.Code, api.Error{Kind: string(kind), Message: httpErrorMessage(he)}
	}

	if production {
		return http.StatusInternalServerError, api.Error{Kind: string(errs.KindInternal), Message: internalErrorMessage}
	}

	return http.StatusInternalServerError, api.Error{Kind: string(errs.KindInternal), Message: err.Error()}
}

func httpErrorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case nil:
		return http.StatusText(he.Code)
	default:
		return fmt.Sprint(m)
	}
}
