// Package api holds the request and response bodies of the chainstamp HTTP API.
package api

import (
	"encoding/json"
	"time"
)

const (
	DefaultBasePath = "/api/v1"
	APIKeyHeader    = "X-API-Key"
)

// Error is the body of every non-2xx response.
type Error struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type Health struct {
	Healthy bool              `json:"healthy"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
	Reason  *string           `json:"reason,omitempty"`
}

type HashRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

type HashResponse struct {
	DataHash string `json:"dataHash"`
	Size     int    `json:"size"`
}

type PrepareRequest struct {
	UserAddress string          `json:"userAddress" validate:"required,evmaddress"`
	Data        json.RawMessage `json:"data" validate:"required"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
	WebhookURL  string          `json:"webhookUrl,omitempty" validate:"omitempty,url"`
}

type RegisterRequest struct {
	TransactionHash string `json:"transactionHash" validate:"required,txhash"`
	DataHash        string `json:"dataHash" validate:"required,datahash"`
	UserAddress     string `json:"userAddress" validate:"required,evmaddress"`
	Signature       string `json:"signature,omitempty"`
	WebhookURL      string `json:"webhookUrl,omitempty" validate:"omitempty,url"`
}

type VerifyDataRequest struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

type VerifyBatchRequest struct {
	Hashes []string `json:"hashes" validate:"required,min=1"`
}

type BlockReference struct {
	Number    uint64     `json:"number"`
	Hash      string     `json:"hash"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type VerificationResult struct {
	DataHash        string          `json:"dataHash"`
	Verified        bool            `json:"verified"`
	Source          string          `json:"source"`
	Status          string          `json:"status,omitempty"`
	TransactionHash string          `json:"transactionHash,omitempty"`
	Block           *BlockReference `json:"block,omitempty"`
	ExplorerURL     string          `json:"explorerUrl,omitempty"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
	SubmittedAt     *time.Time      `json:"submittedAt,omitempty"`
	ConfirmedAt     *time.Time      `json:"confirmedAt,omitempty"`
	VerifiedAt      time.Time       `json:"verifiedAt"`
	Error           string          `json:"error,omitempty"`
}

type BatchSummary struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Failed   int `json:"failed"`
	NotFound int `json:"notFound"`
}

type BatchVerificationResult struct {
	Results []VerificationResult `json:"results"`
	Summary BatchSummary         `json:"summary"`
}

func PtrTo[T any](v T) *T {
	return &v
}
