package timestamp

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainstamp/chainstamp/internal/cache"
	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/gateway"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

// GetStatus reports the network state of txHash. Terminal states are cached
// and reconciled into the TimestampRecord registered with txHash. Network
// failures are reported as unknown, not as errors.
func (m *Manager) GetStatus(ctx context.Context, txHash string) (status *TransactionStatus, err error) {
	ctx, span := tracing.StartTracing(ctx, "Manager_GetStatus", m.tracingEnabled, m.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if err = validateTxHash(txHash); err != nil {
		return nil, err
	}
	txHash = common.HexToHash(txHash).Hex()

	var cached TransactionStatus
	found, getErr := getJSON(ctx, m.store, statusKey(txHash), &cached)
	if getErr != nil {
		m.logger.WarnContext(ctx, "Failed to read cached status", slog.String("tx", txHash), slog.String("err", getErr.Error()))
	}
	if found {
		cached.Cached = true
		m.stats.incStatusLookup(cached.Status, true)
		return &cached, nil
	}

	status = &TransactionStatus{
		TransactionHash: txHash,
		CheckedAt:       m.now().UTC(),
	}

	tx, lookupErr := m.lookup(ctx, txHash)
	switch {
	case errors.Is(lookupErr, gateway.ErrTransactionNotFound):
		status.Status = TxStatusNotFound
	case lookupErr != nil:
		m.logger.WarnContext(ctx, "Transaction lookup failed", slog.String("tx", txHash), slog.String("err", lookupErr.Error()))
		status.Status = TxStatusUnknown
	case tx.Status == gateway.TxStatusSuccess:
		status.Status = TxStatusSuccess
	case tx.Status == gateway.TxStatusFail:
		status.Status = TxStatusFail
	default:
		status.Status = TxStatusPending
	}

	if lookupErr == nil {
		status.BlockNumber = tx.BlockNumber
		status.BlockHash = tx.BlockHash
		status.GasUsed = tx.GasUsed
		if !tx.BlockTime.IsZero() {
			blockTime := tx.BlockTime.UTC()
			status.BlockTime = &blockTime
		}
		status.ExplorerURL = m.explorerTxURL(txHash)
	}

	m.stats.incStatusLookup(status.Status, false)

	if status.Status.Terminal() {
		// cached statuses skip reconcile, so cache only once the record is settled
		if reconcileErr := m.reconcile(ctx, txHash, tx); reconcileErr != nil {
			m.logger.WarnContext(ctx, "Failed to reconcile record", slog.String("tx", txHash), slog.String("err", reconcileErr.Error()))
			return status, nil
		}

		if setErr := setJSON(ctx, m.store, statusKey(txHash), status, m.ttls.Status); setErr != nil {
			m.logger.WarnContext(ctx, "Failed to cache status", slog.String("tx", txHash), slog.String("err", setErr.Error()))
		}
	}

	return status, nil
}

// reconcile moves the pending record registered with txHash to its final
// status. A mined transaction which was not sent by the record's user or does
// not carry its data hash fails the record.
func (m *Manager) reconcile(ctx context.Context, txHash string, tx *gateway.Transaction) error {
	b, err := m.store.Get(ctx, txIndexKey(txHash))
	if errors.Is(err, cache.ErrCacheNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	dataHash := string(b)

	record, err := m.getRecord(ctx, dataHash)
	if err != nil {
		return err
	}
	if record == nil || record.Status != RecordStatusPending || record.TransactionHash != txHash {
		return nil
	}

	now := m.now().UTC()
	if checkErr := m.checkOnChain(tx, record.DataHash, record.UserAddress); checkErr != nil {
		m.logger.WarnContext(ctx, "Transaction does not match record",
			slog.String("hash", dataHash),
			slog.String("tx", txHash),
			slog.String("err", checkErr.Error()))

		record.Status = RecordStatusFailed
		record.ExplorerURL = m.explorerTxURL(txHash)
		record.UpdatedAt = now
	} else {
		m.applyTransaction(record, tx, now)
	}

	err = m.putRecord(ctx, record)
	if err != nil {
		return err
	}

	m.clearPrepared(ctx, dataHash)
	m.stats.incReconciled(record.Status)
	m.logger.InfoContext(ctx, "Reconciled record",
		slog.String("hash", dataHash),
		slog.String("tx", txHash),
		slog.String("status", string(record.Status)))

	m.emit(ctx, eventTypeOf(record.Status), record)

	return nil
}

// WaitForCompletion polls GetStatus until the transaction succeeds or fails,
// or timeout elapses. A timeout is returned as a result with TimedOut set, and
// never before timeout has passed. If ctx ends first its error is returned.
func (m *Manager) WaitForCompletion(ctx context.Context, txHash string, timeout time.Duration) (result *CompletionResult, err error) {
	ctx, span := tracing.StartTracing(ctx, "Manager_WaitForCompletion", m.tracingEnabled, m.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if err = validateTxHash(txHash); err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, validation("timeout must be positive", map[string]any{"field": "timeoutMs"})
	}

	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result = &CompletionResult{TransactionHash: common.HexToHash(txHash).Hex()}

	for {
		result.Attempts++

		status, statusErr := m.GetStatus(waitCtx, txHash)
		if statusErr != nil {
			return nil, statusErr
		}

		result.Status = status.Status
		result.Transaction = status

		if status.Status.Terminal() {
			result.Completed = status.Status == TxStatusSuccess
			result.ElapsedMs = time.Since(start).Milliseconds()
			return result, nil
		}

		interval := m.pollInterval + m.jitter(m.pollInterval/10)

		if sleepErr := sleep(waitCtx, interval); sleepErr != nil {
			if ctx.Err() != nil {
				return nil, errs.Wrap(errs.KindTimeout, "wait canceled", ctx.Err())
			}

			m.stats.incWaitTimeout()
			result.TimedOut = true
			result.ElapsedMs = time.Since(start).Milliseconds()
			return result, nil
		}
	}
}
