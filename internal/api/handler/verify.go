package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chainstamp/chainstamp/internal/timestamp"
	"github.com/chainstamp/chainstamp/internal/verification"
	"github.com/chainstamp/chainstamp/pkg/api"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

func (h *DefaultHandler) GETVerify(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "GETVerify", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	result, err := h.verifier.VerifyByHash(reqCtx, c.Param("hash"))
	if err != nil {
		return err
	}

	if span != nil {
		span.SetAttributes(attribute.Bool("verified", result.Verified))
	}

	h.stats.incVerification(result.Verified)

	return c.JSON(http.StatusOK, toAPIResult(*result))
}

func (h *DefaultHandler) POSTVerify(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "POSTVerify", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	var req api.VerifyDataRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	result, err := h.verifier.VerifyData(reqCtx, req.Data)
	if err != nil {
		return err
	}

	h.stats.incVerification(result.Verified)

	return c.JSON(http.StatusOK, toAPIResult(*result))
}

func (h *DefaultHandler) POSTVerifyBatch(c echo.Context) (err error) {
	reqCtx, span := tracing.StartTracing(c.Request().Context(), "POSTVerifyBatch", h.tracingEnabled, h.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	var req api.VerifyBatchRequest
	if err = bind(c, &req); err != nil {
		return err
	}

	batch, err := h.verifier.VerifyBatch(reqCtx, req.Hashes)
	if err != nil {
		return err
	}

	if span != nil {
		span.SetAttributes(attribute.Int("total", batch.Summary.Total), attribute.Int("verified", batch.Summary.Verified))
	}

	resp := api.BatchVerificationResult{
		Results: make([]api.VerificationResult, 0, len(batch.Results)),
		Summary: api.BatchSummary{
			Total:    batch.Summary.Total,
			Verified: batch.Summary.Verified,
			Failed:   batch.Summary.Failed,
			NotFound: batch.Summary.NotFound,
		},
	}
	for _, r := range batch.Results {
		h.stats.incVerification(r.Verified)
		resp.Results = append(resp.Results, toAPIResult(r))
	}

	return c.JSON(http.StatusOK, resp)
}

func toAPIResult(r verification.Result) api.VerificationResult {
	return api.VerificationResult{
		DataHash:        r.DataHash,
		Verified:        r.Verified,
		Source:          string(r.Source),
		Status:          string(r.Status),
		TransactionHash: r.TransactionHash,
		Block:           toAPIBlock(r.Block),
		ExplorerURL:     r.ExplorerURL,
		Metadata:        r.Metadata,
		SubmittedAt:     r.SubmittedAt,
		ConfirmedAt:     r.ConfirmedAt,
		VerifiedAt:      r.VerifiedAt,
		Error:           r.Error,
	}
}

func toAPIBlock(b *timestamp.BlockReference) *api.BlockReference {
	if b == nil {
		return nil
	}

	return &api.BlockReference{
		Number:    b.Number,
		Hash:      b.Hash,
		Timestamp: b.Timestamp,
	}
}
