// Package gateway is the service's only access point to the blockchain network.
package gateway

import (
	"context"
	"errors"
	"math/big"
	"time"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrGatewayUnavailable  = errors.New("network gateway unavailable")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidTxHash       = errors.New("invalid transaction hash")
)

type TxStatus string

const (
	TxStatusPending TxStatus = "pending"
	TxStatusSuccess TxStatus = "success"
	TxStatusFail    TxStatus = "fail"
)

// NetworkConfig holds the chain parameters needed to build a transaction.
type NetworkConfig struct {
	ChainID     *big.Int
	GasPrice    *big.Int
	LatestBlock uint64
}

// Transaction is a transaction as reported by the network. Block fields are
// only set once the transaction is mined.
type Transaction struct {
	Hash        string
	Status      TxStatus
	From        string
	To          string
	Nonce       uint64
	Data        []byte
	GasUsed     uint64
	BlockNumber uint64
	BlockHash   string
	BlockTime   time.Time
}

// Gateway fails independently of this service. Callers decide how to degrade.
type Gateway interface {
	GetAccountNonce(ctx context.Context, address string) (uint64, error)
	GetNetworkConfig(ctx context.Context) (*NetworkConfig, error)
	// GetTransactionByHash returns ErrTransactionNotFound if the network has no record of hash.
	GetTransactionByHash(ctx context.Context, hash string) (*Transaction, error)
	Health(ctx context.Context) error
}
