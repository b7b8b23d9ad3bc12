package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/hashing"
	"github.com/chainstamp/chainstamp/internal/timestamp"
	"github.com/chainstamp/chainstamp/pkg/api"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

// POSTHash returns the DataHash of a payload without storing anything.
func (h *DefaultHandler) POSTHash(c echo.Context) (err error) {
	_, span := tracing.StartTracing(c.Request().Context(), "POSTHash", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	var req api.HashRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	canonical, err := hashing.CanonicalBytes(req.Data)
	if err != nil {
		return dataError(err)
	}

	if len(canonical) > h.maxDataSize {
		return errs.Newf(errs.KindValidation, "data exceeds %d bytes", h.maxDataSize).WithDetails(map[string]any{
			"field":       "data",
			"size":        len(canonical),
			"maxDataSize": h.maxDataSize,
		})
	}

	return c.JSON(http.StatusOK, api.HashResponse{
		DataHash: hashing.HashBytes(canonical),
		Size:     len(canonical),
	})
}

func (h *DefaultHandler) POSTPrepare(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "POSTPrepare", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	var req api.PrepareRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	prepared, err := h.lifecycle.Prepare(reqCtx, timestamp.PrepareRequest{
		UserAddress: req.UserAddress,
		Data:        req.Data,
		Metadata:    req.Metadata,
		WebhookURL:  req.WebhookURL,
	})
	if err != nil {
		return err
	}

	if span != nil {
		span.SetAttributes(attribute.String("dataHash", prepared.DataHash))
	}

	h.stats.incRequest("prepare")

	return c.JSON(http.StatusOK, prepared)
}

func (h *DefaultHandler) POSTRegister(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "POSTRegister", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	var req api.RegisterRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	record, err := h.lifecycle.Register(reqCtx, timestamp.RegisterRequest{
		TransactionHash: req.TransactionHash,
		DataHash:        req.DataHash,
		UserAddress:     req.UserAddress,
		Signature:       req.Signature,
		WebhookURL:      req.WebhookURL,
	})
	if err != nil {
		return err
	}

	if span != nil {
		span.SetAttributes(attribute.String("status", string(record.Status)))
	}

	h.stats.incRequest("register")

	// a pending record is accepted but not yet final
	status := http.StatusOK
	if record.Status == timestamp.RecordStatusPending {
		status = http.StatusAccepted
	}

	return c.JSON(status, record)
}

func (h *DefaultHandler) GETTimestamp(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "GETTimestamp", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	record, err := h.lifecycle.GetRecord(reqCtx, c.Param("hash"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, record)
}

func (h *DefaultHandler) GETTransactionStatus(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "GETTransactionStatus", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	status, err := h.lifecycle.GetStatus(reqCtx, c.Param("txHash"))
	if err != nil {
		return err
	}

	if span != nil {
		span.SetAttributes(attribute.String("status", string(status.Status)))
	}

	return c.JSON(http.StatusOK, status)
}

// GETTransactionWait blocks until the transaction is final or timeoutMs has
// passed. A timeout is reported in the body with status 200.
func (h *DefaultHandler) GETTransactionWait(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "GETTransactionWait", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	timeout, err := h.waitTimeout(c.QueryParam("timeoutMs"))
	if err != nil {
		return err
	}

	result, err := h.lifecycle.WaitForCompletion(reqCtx, c.Param("txHash"), timeout)
	if err != nil {
		return err
	}

	if result.TimedOut {
		h.stats.incWaitTimeout()
	}

	return c.JSON(http.StatusOK, result)
}

func (h *DefaultHandler) waitTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return min(waitTimeoutDefault, h.maxWaitTimeout), nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return 0, errs.New(errs.KindValidation, "timeoutMs must be a positive integer").
			WithDetails(map[string]any{"field": "timeoutMs", "value": raw})
	}

	timeout := time.Duration(ms) * time.Millisecond
	if timeout > h.maxWaitTimeout {
		return 0, errs.New(errs.KindValidation, fmt.Sprintf("timeoutMs can not be higher than %d", h.maxWaitTimeout.Milliseconds())).
			WithDetails(map[string]any{"field": "timeoutMs", "value": ms, "max": h.maxWaitTimeout.Milliseconds()})
	}

	return timeout, nil
}

func dataError(err error) error {
	if errors.Is(err, hashing.ErrEmptyData) || errors.Is(err, hashing.ErrInvalidJSON) {
		msg := err.Error()
		if errors.Is(err, hashing.ErrInvalidJSON) {
			msg = hashing.ErrInvalidJSON.Error()
		}
		return errs.New(errs.KindValidation, msg).WithDetails(map[string]any{"field": "data"})
	}

	return errs.Wrap(errs.KindInternal, "failed to hash data", err)
}
