package timestamp

import (
	"encoding/json"
	"time"
)

// RecordStatus is the state of a TimestampRecord. It only moves forward:
// pending -> confirmed | failed.
type RecordStatus string

const (
	RecordStatusPending   RecordStatus = "pending"
	RecordStatusConfirmed RecordStatus = "confirmed"
	RecordStatusFailed    RecordStatus = "failed"
)

// TxStatus is the network state of a transaction as reported by GetStatus.
type TxStatus string

const (
	TxStatusNotFound TxStatus = "not_found"
	TxStatusPending  TxStatus = "pending"
	// TxStatusUnknown means the network could not be asked. Retry later.
	TxStatusUnknown TxStatus = "unknown"
	TxStatusSuccess TxStatus = "success"
	TxStatusFail    TxStatus = "fail"
)

func (s TxStatus) Terminal() bool {
	return s == TxStatusSuccess || s == TxStatusFail
}

type PrepareRequest struct {
	UserAddress string
	Data        json.RawMessage
	Metadata    map[string]any
	WebhookURL  string
}

type RegisterRequest struct {
	TransactionHash string
	DataHash        string
	UserAddress     string
	// Signature is optional: a 65 byte hex signature over the signing hash of the prepared transaction.
	Signature  string
	WebhookURL string
}

// Payload is what gets written into the transaction data field.
type Payload struct {
	DataHash  string         `json:"dataHash"`
	Timestamp int64          `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type UnsignedTransaction struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Nonce    uint64 `json:"nonce"`
	GasLimit uint64 `json:"gasLimit"`
	GasPrice string `json:"gasPrice"`
	Value    string `json:"value"`
	Data     string `json:"data"`
	ChainID  string `json:"chainId"`
	// Raw is the RLP encoding of the unsigned transaction.
	Raw         string `json:"raw"`
	SigningHash string `json:"signingHash"`
}

type FeeEstimate struct {
	GasLimit     uint64 `json:"gasLimit"`
	GasPrice     string `json:"gasPrice"`
	Wei          string `json:"wei"`
	Amount       string `json:"amount"`
	Symbol       string `json:"symbol"`
	Fiat         string `json:"fiat,omitempty"`
	FiatCurrency string `json:"fiatCurrency,omitempty"`
}

// PreparedTransaction is the staging record kept until registration or expiry.
type PreparedTransaction struct {
	DataHash    string              `json:"dataHash"`
	UserAddress string              `json:"userAddress"`
	Transaction UnsignedTransaction `json:"transaction"`
	Payload     Payload             `json:"payload"`
	Fee         FeeEstimate         `json:"estimatedFee"`
	WebhookURL  string              `json:"webhookUrl,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	ExpiresAt   time.Time           `json:"expiresAt"`
}

type BlockReference struct {
	Number    uint64     `json:"number"`
	Hash      string     `json:"hash"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Record is the TimestampRecord of a data hash.
type Record struct {
	DataHash        string          `json:"dataHash"`
	TransactionHash string          `json:"transactionHash"`
	Status          RecordStatus    `json:"status"`
	UserAddress     string          `json:"userAddress"`
	Block           *BlockReference `json:"block,omitempty"`
	ExplorerURL     string          `json:"explorerUrl,omitempty"`
	Metadata        map[string]any  `json:"metadata,omitempty"`
	WebhookURL      string          `json:"webhookUrl,omitempty"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	ConfirmedAt     *time.Time      `json:"confirmedAt,omitempty"`
}

type TransactionStatus struct {
	TransactionHash string     `json:"transactionHash"`
	Status          TxStatus   `json:"status"`
	BlockNumber     uint64     `json:"blockNumber,omitempty"`
	BlockHash       string     `json:"blockHash,omitempty"`
	BlockTime       *time.Time `json:"blockTime,omitempty"`
	GasUsed         uint64     `json:"gasUsed,omitempty"`
	ExplorerURL     string     `json:"explorerUrl,omitempty"`
	Cached          bool       `json:"cached"`
	CheckedAt       time.Time  `json:"checkedAt"`
}

// CompletionResult is returned by WaitForCompletion. A timeout is a normal
// result with TimedOut set, not an error.
type CompletionResult struct {
	TransactionHash string             `json:"transactionHash"`
	Status          TxStatus           `json:"status"`
	Completed       bool               `json:"completed"`
	TimedOut        bool               `json:"timedOut"`
	Attempts        int                `json:"attempts"`
	ElapsedMs       int64              `json:"elapsedMs"`
	Transaction     *TransactionStatus `json:"transaction,omitempty"`
}
