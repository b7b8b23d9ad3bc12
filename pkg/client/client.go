// Package client is a Go client for the chainstamp HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/chainstamp/chainstamp/pkg/api"
)

var (
	ErrFailedToCreateRequest  = errors.New("failed to create request")
	ErrRequestFailed          = errors.New("request to chainstamp failed")
	ErrFailedToDecodeResponse = errors.New("failed to decode response")
)

// ResponseError is returned for every non-2xx response.
type ResponseError struct {
	StatusCode int
	Body       api.Error
}

func (e *ResponseError) Error() string {
	if e.Body.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}

	return fmt.Sprintf("status %d: %s: %s", e.StatusCode, e.Body.Kind, e.Body.Message)
}

type Client struct {
	client        *http.Client
	url           string
	apiKey        string
	logger        *slog.Logger
	retryInterval time.Duration
	retries       uint64
}

func WithAPIKey(apiKey string) func(*Client) {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func WithHTTPClient(httpClient *http.Client) func(*Client) {
	return func(c *Client) {
		c.client = httpClient
	}
}

func WithLogger(logger *slog.Logger) func(*Client) {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetries retries requests which failed in transport or with a 5xx status.
func WithRetries(interval time.Duration, retries uint64) func(*Client) {
	return func(c *Client) {
		c.retryInterval = interval
		c.retries = retries
	}
}

// New returns a client for the API mounted at baseURL, e.g. http://localhost:9090/api/v1.
func New(baseURL string, opts ...func(*Client)) *Client {
	c := &Client{
		client: &http.Client{Timeout: 90 * time.Second},
		url:    strings.TrimSuffix(baseURL, "/"),
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Health(ctx context.Context) (*api.Health, error) {
	var health api.Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &health)
	if err != nil {
		return nil, err
	}

	return &health, nil
}

func (c *Client) Hash(ctx context.Context, data json.RawMessage) (*api.HashResponse, error) {
	var resp api.HashResponse
	err := c.do(ctx, http.MethodPost, "/hash", api.HashRequest{Data: data}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Verify(ctx context.Context, dataHash string) (*api.VerificationResult, error) {
	var result api.VerificationResult
	err := c.do(ctx, http.MethodGet, "/verify/"+dataHash, nil, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) VerifyBatch(ctx context.Context, hashes []string) (*api.BatchVerificationResult, error) {
	var result api.BatchVerificationResult
	err := c.do(ctx, http.MethodPost, "/verify/batch", api.VerifyBatchRequest{Hashes: hashes}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return errors.Join(ErrFailedToCreateRequest, err)
		}
	}

	operation := func() error {
		req, err := c.httpRequest(ctx, method, endpoint, body)
		if err != nil {
			return backoff.Permanent(err)
		}

		err = c.doRequest(req, out)
		var respErr *ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}

		return err
	}

	if c.retries == 0 {
		err := operation()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), c.retries), ctx)
	notify := func(err error, nextTry time.Duration) {
		c.logger.WarnContext(ctx, "request failed, retrying", slog.String("endpoint", endpoint), slog.String("next try", nextTry.String()), slog.String("err", err.Error()))
	}

	return backoff.RetryNotify(operation, policy, notify)
}

func (c *Client) httpRequest(ctx context.Context, method, endpoint string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if len(payload) > 0 {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+endpoint, body)
	if err != nil {
		return nil, errors.Join(ErrFailedToCreateRequest, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(api.APIKeyHeader, c.apiKey)
	}

	return req, nil
}

func (c *Client) doRequest(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := &ResponseError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(b, &respErr.Body)
		return respErr
	}

	err = json.Unmarshal(b, out)
	if err != nil {
		return errors.Join(ErrFailedToDecodeResponse, err)
	}

	return nil
}
