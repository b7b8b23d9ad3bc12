package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/api/handler"
	"github.com/chainstamp/chainstamp/internal/api/handler/mocks"
	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/hashing"
	"github.com/chainstamp/chainstamp/internal/timestamp"
	"github.com/chainstamp/chainstamp/pkg/api"
)

const (
	userAddress = "0x71c7656ec7ab88b098defb751b7401b5f6d8976f"
	dataHash    = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	txHash      = "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060"
)

var (
	testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	testNow    = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newServer(h *handler.DefaultHandler, production bool, protected ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(testLogger, production)
	handler.RegisterHandlers(e, api.DefaultBasePath, h, protected...)

	return e
}

func doRequest(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, api.DefaultBasePath+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()

	var body api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestPOSTPrepare(t *testing.T) {
	tt := []struct {
		name       string
		body       string
		prepareErr error

		expectedStatus       int
		expectedKind         string
		expectedField        string
		expectedPrepareCalls int
	}{
		{
			name: "success",
			body: `{"userAddress":"` + userAddress + `","data":"hello","metadata":{"name":"doc"},"webhookUrl":"https://example.com/hook"}`,

			expectedStatus:       http.StatusOK,
			expectedPrepareCalls: 1,
		},
		{
			name: "invalid address",
			body: `{"userAddress":"0x123","data":"hello"}`,

			expectedStatus: http.StatusBadRequest,
			expectedKind:   string(errs.KindValidation),
			expectedField:  "userAddress",
		},
		{
			name: "missing data",
			body: `{"userAddress":"` + userAddress + `"}`,

			expectedStatus: http.StatusBadRequest,
			expectedKind:   string(errs.KindValidation),
			expectedField:  "data",
		},
		{
			name: "invalid webhook url",
			body: `{"userAddress":"` + userAddress + `","data":"hello","webhookUrl":"not a url"}`,

			expectedStatus: http.StatusBadRequest,
			expectedKind:   string(errs.KindValidation),
			expectedField:  "webhookUrl",
		},
		{
			name: "malformed body",
			body: `{"userAddress":`,

			expectedStatus: http.StatusBadRequest,
			expectedKind:   string(errs.KindValidation),
		},
		{
			name:       "already timestamped",
			body:       `{"userAddress":"` + userAddress + `","data":"hello"}`,
			prepareErr: errs.Wrap(errs.KindConflict, "data already timestamped", timestamp.ErrAlreadyTimestamped).WithDetails(map[string]any{"dataHash": dataHash}),

			expectedStatus:       http.StatusConflict,
			expectedKind:         string(errs.KindConflict),
			expectedPrepareCalls: 1,
		},
		{
			name:       "cache unavailable",
			body:       `{"userAddress":"` + userAddress + `","data":"hello"}`,
			prepareErr: errs.Wrap(errs.KindServiceUnavailable, "cache unavailable", errors.New("connection refused")),

			expectedStatus:       http.StatusServiceUnavailable,
			expectedKind:         string(errs.KindServiceUnavailable),
			expectedPrepareCalls: 1,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var got timestamp.PrepareRequest
			lifecycle := &mocks.LifecycleMock{
				PrepareFunc: func(_ context.Context, req timestamp.PrepareRequest) (*timestamp.PreparedTransaction, error) {
					got = req
					if tc.prepareErr != nil {
						return nil, tc.prepareErr
					}
					return &timestamp.PreparedTransaction{DataHash: dataHash, UserAddress: req.UserAddress, CreatedAt: testNow}, nil
				},
			}
			e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}, handler.WithLogger(testLogger)), false)

			// when
			rec := doRequest(t, e, http.MethodPost, "/timestamp/prepare", tc.body)

			// then
			require.Equal(t, tc.expectedStatus, rec.Code)
			require.Len(t, lifecycle.PrepareCalls(), tc.expectedPrepareCalls)

			if tc.expectedStatus == http.StatusOK {
				var prepared timestamp.PreparedTransaction
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prepared))
				assert.Equal(t, dataHash, prepared.DataHash)
				assert.Equal(t, userAddress, got.UserAddress)
				assert.JSONEq(t, `"hello"`, string(got.Data))
				assert.Equal(t, map[string]any{"name": "doc"}, got.Metadata)
				assert.Equal(t, "https://example.com/hook", got.WebhookURL)
				return
			}

			body := decodeError(t, rec)
			require.Equal(t, tc.expectedKind, body.Kind)
			if tc.expectedField != "" {
				fields, ok := body.Details["fields"].(map[string]any)
				require.True(t, ok)
				require.Contains(t, fields, tc.expectedField)
			}
		})
	}
}

func TestPOSTPrepareConflictDetails(t *testing.T) {
	// given
	lifecycle := &mocks.LifecycleMock{
		PrepareFunc: func(_ context.Context, _ timestamp.PrepareRequest) (*timestamp.PreparedTransaction, error) {
			return nil, errs.New(errs.KindConflict, "data already timestamped").WithDetails(map[string]any{
				"dataHash":        dataHash,
				"transactionHash": txHash,
				"status":          "confirmed",
			})
		},
	}
	e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}), true)

	// when
	rec := doRequest(t, e, http.MethodPost, "/timestamp/prepare", `{"userAddress":"`+userAddress+`","data":"hello"}`)

	// then
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	require.Equal(t, "data already timestamped", body.Message)
	require.Equal(t, txHash, body.Details["transactionHash"])
	require.Equal(t, "confirmed", body.Details["status"])
}

func TestPOSTRegister(t *testing.T) {
	validBody := `{"transactionHash":"` + txHash + `","dataHash":"` + dataHash + `","userAddress":"` + userAddress + `"}`

	tt := []struct {
		name        string
		body        string
		record      *timestamp.Record
		registerErr error

		expectedStatus int
		expectedKind   string
		expectedField  string
	}{
		{
			name:   "confirmed",
			body:   validBody,
			record: &timestamp.Record{DataHash: dataHash, TransactionHash: txHash, Status: timestamp.RecordStatusConfirmed},

			expectedStatus: http.StatusOK,
		},
		{
			name:   "pending is accepted",
			body:   validBody,
			record: &timestamp.Record{DataHash: dataHash, TransactionHash: txHash, Status: timestamp.RecordStatusPending},

			expectedStatus: http.StatusAccepted,
		},
		{
			name: "invalid transaction hash",
			body: `{"transactionHash":"0x12","dataHash":"` + dataHash + `","userAddress":"` + userAddress + `"}`,

			expectedStatus: http.StatusBadRequest,
			expectedKind:   string(errs.KindValidation),
			expectedField:  "transactionHash",
		},
		{
			name: "uppercase data hash",
			body: `{"transactionHash":"` + txHash + `","dataHash":"` + strings.ToUpper(dataHash) + `","userAddress":"` + userAddress + `"}`,

			expectedStatus: http.StatusBadRequest,
			expectedKind:   string(errs.KindValidation),
			expectedField:  "dataHash",
		},
		{
			name:        "address mismatch",
			body:        validBody,
			registerErr: errs.Wrap(errs.KindForbidden, "user address does not match prepared transaction", timestamp.ErrAddressMismatch),

			expectedStatus: http.StatusForbidden,
			expectedKind:   string(errs.KindForbidden),
		},
		{
			name:        "prepared transaction expired",
			body:        validBody,
			registerErr: errs.Wrap(errs.KindNotFound, "prepared transaction not found or expired", timestamp.ErrPreparedNotFound),

			expectedStatus: http.StatusNotFound,
			expectedKind:   string(errs.KindNotFound),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			lifecycle := &mocks.LifecycleMock{
				RegisterFunc: func(_ context.Context, req timestamp.RegisterRequest) (*timestamp.Record, error) {
					require.Equal(t, txHash, req.TransactionHash)
					return tc.record, tc.registerErr
				},
			}
			e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}), false)

			// when
			rec := doRequest(t, e, http.MethodPost, "/timestamp/register", tc.body)

			// then
			require.Equal(t, tc.expectedStatus, rec.Code)
			if tc.record != nil {
				var record timestamp.Record
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
				require.Equal(t, tc.record.Status, record.Status)
				return
			}

			body := decodeError(t, rec)
			require.Equal(t, tc.expectedKind, body.Kind)
			if tc.expectedField != "" {
				fields, ok := body.Details["fields"].(map[string]any)
				require.True(t, ok)
				require.Contains(t, fields, tc.expectedField)
				require.Empty(t, lifecycle.RegisterCalls())
			}
		})
	}
}

func TestGETTimestamp(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		// given
		lifecycle := &mocks.LifecycleMock{
			GetRecordFunc: func(_ context.Context, hash string) (*timestamp.Record, error) {
				return &timestamp.Record{DataHash: hash, Status: timestamp.RecordStatusConfirmed}, nil
			},
		}
		e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}), false)

		// when
		rec := doRequest(t, e, http.MethodGet, "/timestamp/"+dataHash, "")

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, dataHash, lifecycle.GetRecordCalls()[0].DataHash)
	})

	t.Run("not found", func(t *testing.T) {
		// given
		lifecycle := &mocks.LifecycleMock{
			GetRecordFunc: func(_ context.Context, _ string) (*timestamp.Record, error) {
				return nil, errs.Wrap(errs.KindNotFound, "timestamp record not found", timestamp.ErrRecordNotFound)
			},
		}
		e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}), false)

		// when
		rec := doRequest(t, e, http.MethodGet, "/timestamp/"+dataHash, "")

		// then
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, string(errs.KindNotFound), decodeError(t, rec).Kind)
	})
}

func TestGETTransactionStatus(t *testing.T) {
	// given
	lifecycle := &mocks.LifecycleMock{
		GetStatusFunc: func(_ context.Context, hash string) (*timestamp.TransactionStatus, error) {
			return &timestamp.TransactionStatus{TransactionHash: hash, Status: timestamp.TxStatusUnknown, CheckedAt: testNow}, nil
		},
	}
	e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}), false)

	// when
	rec := doRequest(t, e, http.MethodGet, "/transaction/"+txHash+"/status", "")

	// then
	require.Equal(t, http.StatusOK, rec.Code)

	var status timestamp.TransactionStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, timestamp.TxStatusUnknown, status.Status)
	require.Equal(t, txHash, status.TransactionHash)
}

func TestGETTransactionWait(t *testing.T) {
	tt := []struct {
		name     string
		query    string
		timedOut bool

		expectedStatus  int
		expectedTimeout time.Duration
	}{
		{
			name: "default timeout",

			expectedStatus:  http.StatusOK,
			expectedTimeout: 30 * time.Second,
		},
		{
			name:  "explicit timeout",
			query: "?timeoutMs=1500",

			expectedStatus:  http.StatusOK,
			expectedTimeout: 1500 * time.Millisecond,
		},
		{
			name:     "timed out is not an error",
			query:    "?timeoutMs=100",
			timedOut: true,

			expectedStatus:  http.StatusOK,
			expectedTimeout: 100 * time.Millisecond,
		},
		{
			name:  "timeout above max",
			query: "?timeoutMs=60001",

			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "timeout not a number",
			query: "?timeoutMs=soon",

			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "zero timeout",
			query: "?timeoutMs=0",

			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			lifecycle := &mocks.LifecycleMock{
				WaitForCompletionFunc: func(_ context.Context, hash string, _ time.Duration) (*timestamp.CompletionResult, error) {
					if tc.timedOut {
						return &timestamp.CompletionResult{TransactionHash: hash, Status: timestamp.TxStatusPending, TimedOut: true}, nil
					}
					return &timestamp.CompletionResult{TransactionHash: hash, Status: timestamp.TxStatusSuccess, Completed: true}, nil
				},
			}
			e := newServer(handler.NewDefault(lifecycle, &mocks.VerifierMock{}), false)

			// when
			rec := doRequest(t, e, http.MethodGet, "/transaction/"+txHash+"/wait"+tc.query, "")

			// then
			require.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus != http.StatusOK {
				require.Empty(t, lifecycle.WaitForCompletionCalls())
				require.Equal(t, string(errs.KindValidation), decodeError(t, rec).Kind)
				return
			}

			require.Len(t, lifecycle.WaitForCompletionCalls(), 1)
			require.Equal(t, tc.expectedTimeout, lifecycle.WaitForCompletionCalls()[0].Timeout)

			var result timestamp.CompletionResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			require.Equal(t, tc.timedOut, result.TimedOut)
			require.Equal(t, !tc.timedOut, result.Completed)
		})
	}
}

func TestPOSTHash(t *testing.T) {
	objectHash, err := hashing.HashData([]byte(`{"a":2,"b":1}`))
	require.NoError(t, err)

	tt := []struct {
		name        string
		body        string
		maxDataSize int

		expectedStatus int
		expectedHash   string
	}{
		{
			name: "string",
			body: `{"data":"hello"}`,

			expectedStatus: http.StatusOK,
			expectedHash:   dataHash,
		},
		{
			name: "object with keys out of order",
			body: `{"data":{"b":1,"a":2}}`,

			expectedStatus: http.StatusOK,
			expectedHash:   objectHash,
		},
		{
			name: "null data",
			body: `{"data":null}`,

			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty string",
			body: `{"data":""}`,

			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "too large",
			body:        `{"data":"` + strings.Repeat("x", 11) + `"}`,
			maxDataSize: 10,

			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			e := newServer(handler.NewDefault(&mocks.LifecycleMock{}, &mocks.VerifierMock{}, handler.WithMaxDataSize(tc.maxDataSize)), false)

			// when
			rec := doRequest(t, e, http.MethodPost, "/hash", tc.body)

			// then
			require.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus != http.StatusOK {
				require.Equal(t, string(errs.KindValidation), decodeError(t, rec).Kind)
				return
			}

			var resp api.HashResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.expectedHash, resp.DataHash)
		})
	}
}

func TestProtectedRoutes(t *testing.T) {
	// given
	deny := func(_ echo.HandlerFunc) echo.HandlerFunc {
		return func(_ echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing api key")
		}
	}
	e := newServer(handler.NewDefault(&mocks.LifecycleMock{}, &mocks.VerifierMock{}), false, deny)

	// when
	health := doRequest(t, e, http.MethodGet, "/health/live", "")
	hash := doRequest(t, e, http.MethodPost, "/hash", `{"data":"hello"}`)

	// then
	require.Equal(t, http.StatusOK, health.Code)
	require.Equal(t, http.StatusUnauthorized, hash.Code)

	body := decodeError(t, hash)
	require.Equal(t, string(errs.KindUnauthorized), body.Kind)
	require.Equal(t, "missing api key", body.Message)
}
