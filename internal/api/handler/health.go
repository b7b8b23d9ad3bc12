package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chainstamp/chainstamp/internal/version"
	"github.com/chainstamp/chainstamp/pkg/api"
)

// GETHealth always answers 200 and reports the state of every dependency.
func (h *DefaultHandler) GETHealth(c echo.Context) error {
	checks, err := h.runChecks(c.Request().Context())
	if err != nil {
		reason := err.Error()
		return c.JSON(http.StatusOK, api.Health{
			Healthy: false,
			Version: version.Version,
			Checks:  checks,
			Reason:  &reason,
		})
	}

	return c.JSON(http.StatusOK, api.Health{
		Healthy: true,
		Version: version.Version,
		Checks:  checks,
	})
}

func (h *DefaultHandler) GETLive(c echo.Context) error {
	return c.JSON(http.StatusOK, api.Health{
		Healthy: true,
		Version: version.Version,
	})
}

// GETReady answers 503 while any dependency is unhealthy.
func (h *DefaultHandler) GETReady(c echo.Context) error {
	checks, err := h.runChecks(c.Request().Context())
	if err != nil {
		reason := err.Error()
		return c.JSON(http.StatusServiceUnavailable, api.Health{
			Healthy: false,
			Version: version.Version,
			Checks:  checks,
			Reason:  &reason,
		})
	}

	return c.JSON(http.StatusOK, api.Health{
		Healthy: true,
		Version: version.Version,
		Checks:  checks,
	})
}

func (h *DefaultHandler) runChecks(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.healthTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.checks))
	var errs []error
	for _, hc := range h.checks {
		err := hc.Check(ctx)
		if err != nil {
			h.logger.Warn("health check failed", slog.String("check", hc.Name), slog.String("err", err.Error()))
			checks[hc.Name] = "unhealthy"
			errs = append(errs, fmt.Errorf("%s: %w", hc.Name, err))
			continue
		}
		checks[hc.Name] = "ok"
	}

	return checks, errors.Join(errs...)
}
