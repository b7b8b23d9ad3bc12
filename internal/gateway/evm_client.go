package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chainstamp/chainstamp/internal/hashing"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

// EthClient is the subset of *ethclient.Client used by EVMClient.
type EthClient interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	Close()
}

// EVMClient implements Gateway against the JSON-RPC API of an EVM node.
type EVMClient struct {
	client              EthClient
	logger              *slog.Logger
	configRetryInterval time.Duration
	configRetries       uint64
	tracingEnabled      bool
	tracingAttributes   []attribute.KeyValue
}

func WithLogger(logger *slog.Logger) func(*EVMClient) {
	return func(c *EVMClient) {
		c.logger = logger.With(slog.String("module", "gateway"))
	}
}

// WithConfigRetries sets how often GetNetworkConfig is retried on failure.
func WithConfigRetries(interval time.Duration, retries uint64) func(*EVMClient) {
	return func(c *EVMClient) {
		c.configRetryInterval = interval
		c.configRetries = retries
	}
}

func WithTracer(attr ...attribute.KeyValue) func(*EVMClient) {
	return func(c *EVMClient) {
		c.tracingEnabled = true
		c.tracingAttributes = tracing.CallerAttributes(append(c.tracingAttributes, attr...)...)
	}
}

func NewEVMClient(client EthClient, opts ...func(*EVMClient)) *EVMClient {
	c := &EVMClient{
		client:              client,
		logger:              slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		configRetryInterval: 500 * time.Millisecond,
		configRetries:       2,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// DialEVM connects to the node at rpcURL.
func DialEVM(ctx context.Context, rpcURL string, opts ...func(*EVMClient)) (*EVMClient, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}

	return NewEVMClient(client, opts...), nil
}

func (c *EVMClient) Close() {
	c.client.Close()
}

func (c *EVMClient) GetAccountNonce(ctx context.Context, address string) (nonce uint64, err error) {
	ctx, span := tracing.StartTracing(ctx, "EVMClient_GetAccountNonce", c.tracingEnabled, c.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if !hashing.IsValidAddress(address) {
		return 0, ErrInvalidAddress
	}

	nonce, err = c.client.PendingNonceAt(ctx, common.HexToAddress(address))
	if err != nil {
		return 0, errors.Join(ErrGatewayUnavailable, fmt.Errorf("failed to get nonce for %s: %w", address, err))
	}

	return nonce, nil
}

func (c *EVMClient) GetNetworkConfig(ctx context.Context) (cfg *NetworkConfig, err error) {
	ctx, span := tracing.StartTracing(ctx, "EVMClient_GetNetworkConfig", c.tracingEnabled, c.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.configRetryInterval), c.configRetries), ctx)

	operation := func() (*NetworkConfig, error) {
		return c.getNetworkConfig(ctx)
	}

	notify := func(err error, nextTry time.Duration) {
		c.logger.WarnContext(ctx, "Failed to get network config", slog.String("next try", nextTry.String()), slog.String("err", err.Error()))
	}

	cfg, err = backoff.RetryNotifyWithData(operation, policy, notify)
	if err != nil {
		return nil, errors.Join(ErrGatewayUnavailable, err)
	}

	return cfg, nil
}

func (c *EVMClient) getNetworkConfig(ctx context.Context) (*NetworkConfig, error) {
	chainID, err := c.client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	latest, err := c.client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get block number: %w", err)
	}

	return &NetworkConfig{
		ChainID:     chainID,
		GasPrice:    gasPrice,
		LatestBlock: latest,
	}, nil
}

// GetTransactionByHash makes a single attempt. A transaction known to the
// node but without a receipt is reported as pending.
func (c *EVMClient) GetTransactionByHash(ctx context.Context, hash string) (result *Transaction, err error) {
	ctx, span := tracing.StartTracing(ctx, "EVMClient_GetTransactionByHash", c.tracingEnabled, c.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if !hashing.IsValidTxHash(hash) {
		return nil, ErrInvalidTxHash
	}

	txHash := common.HexToHash(hash)

	tx, isPending, err := c.client.TransactionByHash(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, errors.Join(ErrGatewayUnavailable, err)
	}

	result = &Transaction{
		Hash:   txHash.Hex(),
		Status: TxStatusPending,
		Nonce:  tx.Nonce(),
		Data:   tx.Data(),
	}

	if to := tx.To(); to != nil {
		result.To = to.Hex()
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err == nil {
		result.From = from.Hex()
	}

	if isPending {
		return result, nil
	}

	receipt, err := c.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return result, nil
		}
		return nil, errors.Join(ErrGatewayUnavailable, err)
	}

	result.Status = TxStatusFail
	if receipt.Status == types.ReceiptStatusSuccessful {
		result.Status = TxStatusSuccess
	}

	result.GasUsed = receipt.GasUsed
	result.BlockHash = receipt.BlockHash.Hex()
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()

		header, err := c.client.HeaderByNumber(ctx, receipt.BlockNumber)
		if err != nil {
			c.logger.WarnContext(ctx, "Failed to get block header", slog.String("hash", hash), slog.Uint64("block", result.BlockNumber), slog.String("err", err.Error()))
			return result, nil
		}

		blockTime, err := safecast.ToInt64(header.Time)
		if err == nil {
			result.BlockTime = time.Unix(blockTime, 0).UTC()
		}
	}

	return result, nil
}

func (c *EVMClient) Health(ctx context.Context) error {
	_, err := c.client.BlockNumber(ctx)
	if err != nil {
		return errors.Join(ErrGatewayUnavailable, err)
	}

	return nil
}
