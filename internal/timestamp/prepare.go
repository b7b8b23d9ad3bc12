package timestamp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/events"
	"github.com/chainstamp/chainstamp/internal/hashing"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

// Prepare hashes the data and stages an unsigned transaction carrying the hash.
// It fails with a conflict if the hash already has a pending or confirmed record.
// A staging record of the same hash is overwritten.
func (m *Manager) Prepare(ctx context.Context, req PrepareRequest) (prepared *PreparedTransaction, err error) {
	ctx, span := tracing.StartTracing(ctx, "Manager_Prepare", m.tracingEnabled, m.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if err = validateAddress(req.UserAddress); err != nil {
		return nil, err
	}

	if req.WebhookURL != "" && m.validateCallback != nil {
		if vErr := m.validateCallback(req.WebhookURL); vErr != nil {
			return nil, validation(vErr.Error(), map[string]any{"field": "webhookUrl"})
		}
	}

	canonical, hashErr := hashing.CanonicalBytes(req.Data)
	if hashErr != nil {
		return nil, dataError(hashErr)
	}

	if len(canonical) > m.maxDataSize {
		return nil, validation(fmt.Sprintf("data exceeds %d bytes", m.maxDataSize), map[string]any{
			"field":       "data",
			"size":        len(canonical),
			"maxDataSize": m.maxDataSize,
		})
	}

	dataHash := hashing.HashBytes(canonical)

	existing, getErr := m.getRecord(ctx, dataHash)
	if getErr != nil {
		return nil, cacheUnavailable(getErr)
	}

	if existing != nil && existing.Status != RecordStatusFailed {
		return nil, errs.Wrap(errs.KindConflict, "data already timestamped", ErrAlreadyTimestamped).WithDetails(map[string]any{
			"dataHash":        existing.DataHash,
			"transactionHash": existing.TransactionHash,
			"status":          existing.Status,
			"submittedAt":     existing.SubmittedAt,
		})
	}

	nonce, nonceErr := m.gateway.GetAccountNonce(ctx, req.UserAddress)
	if nonceErr != nil {
		return nil, networkUnavailable(nonceErr)
	}

	chainID, gasPrice, netErr := m.networkParams(ctx)
	if netErr != nil {
		return nil, networkUnavailable(netErr)
	}

	now := m.now().UTC()
	payload := Payload{
		DataHash:  dataHash,
		Timestamp: now.UnixMilli(),
		Metadata:  req.Metadata,
	}

	data, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return nil, validation("metadata is not serializable", map[string]any{"field": "metadata"})
	}

	to := common.HexToAddress(req.UserAddress)
	if m.chain.ReceiverAddress != "" {
		to = common.HexToAddress(m.chain.ReceiverAddress)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      m.chain.GasLimit,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     data,
	})

	raw, encErr := tx.MarshalBinary()
	if encErr != nil {
		return nil, errs.Wrap(errs.KindInternal, "failed to encode transaction", encErr)
	}

	signingHash := types.LatestSignerForChainID(chainID).Hash(tx)

	prepared = &PreparedTransaction{
		DataHash:    dataHash,
		UserAddress: common.HexToAddress(req.UserAddress).Hex(),
		Transaction: UnsignedTransaction{
			From:        common.HexToAddress(req.UserAddress).Hex(),
			To:          to.Hex(),
			Nonce:       nonce,
			GasLimit:    m.chain.GasLimit,
			GasPrice:    gasPrice.String(),
			Value:       "0",
			Data:        hexutil.Encode(data),
			ChainID:     chainID.String(),
			Raw:         hexutil.Encode(raw),
			SigningHash: signingHash.Hex(),
		},
		Payload:    payload,
		Fee:        estimateFee(m.chain.GasLimit, gasPrice, m.chain.Symbol, m.chain.FiatRate, m.chain.FiatCurrency),
		WebhookURL: req.WebhookURL,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttls.Staging),
	}

	staged, existsErr := m.store.Exists(ctx, preparedKey(dataHash))
	if existsErr == nil && staged {
		m.logger.InfoContext(ctx, "Overwriting prepared transaction", slog.String("hash", dataHash))
	}

	if setErr := setJSON(ctx, m.store, preparedKey(dataHash), prepared, m.ttls.Staging); setErr != nil {
		return nil, cacheUnavailable(setErr)
	}

	m.stats.incPrepared()
	m.logger.InfoContext(ctx, "Prepared transaction",
		slog.String("hash", dataHash),
		slog.String("address", prepared.UserAddress),
		slog.Uint64("nonce", nonce))

	event := events.New(events.TypeTimestampPrepared, dataHash, now)
	event.Metadata = req.Metadata
	event.CallbackURL = req.WebhookURL
	m.notifier.Notify(ctx, event)

	return prepared, nil
}

// networkParams returns the configured chain id and gas price, asking the
// network for whichever is not configured.
func (m *Manager) networkParams(ctx context.Context) (chainID *big.Int, gasPrice *big.Int, err error) {
	if m.chain.ChainID != 0 {
		chainID = new(big.Int).SetUint64(m.chain.ChainID)
	}

	if m.chain.GasPrice != nil && m.chain.GasPrice.Sign() > 0 {
		gasPrice = new(big.Int).Set(m.chain.GasPrice)
	}

	if chainID != nil && gasPrice != nil {
		return chainID, gasPrice, nil
	}

	cfg, err := m.gateway.GetNetworkConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	if chainID == nil {
		if cfg.ChainID == nil {
			return nil, nil, fmt.Errorf("network did not report a chain id")
		}
		chainID = new(big.Int).Set(cfg.ChainID)
	}

	if gasPrice == nil {
		if cfg.GasPrice == nil {
			return nil, nil, fmt.Errorf("network did not report a gas price")
		}
		gasPrice = new(big.Int).Set(cfg.GasPrice)
	}

	return chainID, gasPrice, nil
}
