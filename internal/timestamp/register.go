package timestamp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/events"
	"github.com/chainstamp/chainstamp/internal/gateway"
	"github.com/chainstamp/chainstamp/pkg/tracing"
)

var signatureRegex = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{130}$`)

// Register records the signed transaction txHash for a prepared data hash.
// After the propagation delay the network is asked once. A mined transaction
// gives a confirmed or failed record and clears the staging record. Anything
// else, including network errors, gives a pending record and keeps the
// staging record.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (record *Record, err error) {
	ctx, span := tracing.StartTracing(ctx, "Manager_Register", m.tracingEnabled, m.tracingAttributes...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	if err = validateTxHash(req.TransactionHash); err != nil {
		return nil, err
	}
	if err = validateDataHash(req.DataHash); err != nil {
		return nil, err
	}
	if err = validateAddress(req.UserAddress); err != nil {
		return nil, err
	}
	if req.Signature != "" && !signatureRegex.MatchString(req.Signature) {
		return nil, validation("signature must be 65 bytes hex encoded", map[string]any{"field": "signature"})
	}
	if req.WebhookURL != "" && m.validateCallback != nil {
		if vErr := m.validateCallback(req.WebhookURL); vErr != nil {
			return nil, validation(vErr.Error(), map[string]any{"field": "webhookUrl"})
		}
	}

	txHash := common.HexToHash(req.TransactionHash).Hex()

	acquired, lockErr := m.store.SetIfNotExists(ctx, registerLockKey(req.DataHash), []byte(txHash), m.ttls.Lock)
	if lockErr != nil {
		return nil, cacheUnavailable(lockErr)
	}
	if !acquired {
		return nil, errs.Wrap(errs.KindConflict, "registration already in progress", ErrRegistrationInProgress).WithDetails(map[string]any{"dataHash": req.DataHash})
	}
	defer func() {
		delErr := m.store.Del(context.WithoutCancel(ctx), registerLockKey(req.DataHash))
		if delErr != nil {
			m.logger.WarnContext(ctx, "Failed to release registration lock", slog.String("hash", req.DataHash), slog.String("err", delErr.Error()))
		}
	}()

	var prepared PreparedTransaction
	found, getErr := getJSON(ctx, m.store, preparedKey(req.DataHash), &prepared)
	if getErr != nil {
		return nil, cacheUnavailable(getErr)
	}
	if !found {
		return nil, notFound("prepared transaction not found or expired", ErrPreparedNotFound).WithDetails(map[string]any{"dataHash": req.DataHash})
	}

	if !strings.EqualFold(prepared.UserAddress, req.UserAddress) {
		return nil, errs.Wrap(errs.KindForbidden, "user address does not match prepared transaction", ErrAddressMismatch)
	}

	if req.Signature != "" {
		if sigErr := verifySignature(prepared.Transaction.SigningHash, req.Signature, prepared.UserAddress); sigErr != nil {
			return nil, sigErr
		}
	}

	existing, getErr := m.getRecord(ctx, req.DataHash)
	if getErr != nil {
		return nil, cacheUnavailable(getErr)
	}
	if existing != nil && existing.Status == RecordStatusConfirmed {
		if strings.EqualFold(existing.TransactionHash, txHash) {
			return existing, nil
		}
		return nil, errs.Wrap(errs.KindConflict, "data already timestamped", ErrAlreadyTimestamped).WithDetails(map[string]any{
			"dataHash":        existing.DataHash,
			"transactionHash": existing.TransactionHash,
			"status":          existing.Status,
			"submittedAt":     existing.SubmittedAt,
		})
	}

	if sleepErr := sleep(ctx, m.propagationDelay); sleepErr != nil {
		return nil, errs.Wrap(errs.KindTimeout, "registration canceled", sleepErr)
	}

	tx, lookupErr := m.lookup(ctx, txHash)

	now := m.now().UTC()
	record = &Record{
		DataHash:        req.DataHash,
		TransactionHash: txHash,
		Status:          RecordStatusPending,
		UserAddress:     prepared.UserAddress,
		Metadata:        prepared.Payload.Metadata,
		WebhookURL:      prepared.WebhookURL,
		SubmittedAt:     now,
		UpdatedAt:       now,
	}
	if req.WebhookURL != "" {
		record.WebhookURL = req.WebhookURL
	}

	switch {
	case lookupErr == nil:
		if checkErr := m.checkOnChain(tx, prepared.DataHash, prepared.UserAddress); checkErr != nil {
			return nil, checkErr
		}
		m.applyTransaction(record, tx, now)
	case errors.Is(lookupErr, gateway.ErrTransactionNotFound):
		m.logger.InfoContext(ctx, "Transaction not yet seen by network", slog.String("hash", req.DataHash), slog.String("tx", txHash))
	default:
		m.logger.WarnContext(ctx, "Transaction lookup failed, registering as pending",
			slog.String("hash", req.DataHash),
			slog.String("tx", txHash),
			slog.String("err", lookupErr.Error()))
	}

	if putErr := m.putRecord(ctx, record); putErr != nil {
		return nil, cacheUnavailable(putErr)
	}

	if idxErr := m.store.Set(ctx, txIndexKey(txHash), []byte(req.DataHash), m.ttls.Default); idxErr != nil {
		m.logger.WarnContext(ctx, "Failed to index transaction", slog.String("tx", txHash), slog.String("err", idxErr.Error()))
	}

	if record.Status != RecordStatusPending {
		m.clearPrepared(ctx, req.DataHash)
	}

	m.stats.incRegistered(record.Status)
	m.logger.InfoContext(ctx, "Registered transaction",
		slog.String("hash", record.DataHash),
		slog.String("tx", txHash),
		slog.String("status", string(record.Status)))

	m.emit(ctx, eventTypeOf(record.Status), record)

	return record, nil
}

// lookup makes a single bounded call to the network.
func (m *Manager) lookup(ctx context.Context, txHash string) (*gateway.Transaction, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, m.lookupTimeout)
	defer cancel()

	return m.gateway.GetTransactionByHash(lookupCtx, txHash)
}

// checkOnChain rejects transactions which were not sent by userAddress or do
// not carry a payload referencing dataHash.
func (m *Manager) checkOnChain(tx *gateway.Transaction, dataHash, userAddress string) error {
	if tx.From != "" && !strings.EqualFold(tx.From, userAddress) {
		return errs.Wrap(errs.KindForbidden, "transaction was not sent by user address", ErrAddressMismatch).WithDetails(map[string]any{
			"transactionFrom": tx.From,
		})
	}

	var payload Payload
	if err := json.Unmarshal(tx.Data, &payload); err != nil || payload.DataHash != dataHash {
		return errs.Wrap(errs.KindValidation, "transaction payload does not reference data hash", ErrPayloadMismatch).WithDetails(map[string]any{
			"dataHash": dataHash,
		})
	}

	return nil
}

func (m *Manager) applyTransaction(record *Record, tx *gateway.Transaction, now time.Time) {
	switch tx.Status {
	case gateway.TxStatusSuccess:
		record.Status = RecordStatusConfirmed
		record.ConfirmedAt = &now
	case gateway.TxStatusFail:
		record.Status = RecordStatusFailed
	default:
		return
	}

	record.Block = blockReference(tx)
	record.ExplorerURL = m.explorerTxURL(record.TransactionHash)
	record.UpdatedAt = now
}

func (m *Manager) clearPrepared(ctx context.Context, dataHash string) {
	err := m.store.Del(ctx, preparedKey(dataHash))
	if err != nil {
		m.logger.WarnContext(ctx, "Failed to delete prepared transaction", slog.String("hash", dataHash), slog.String("err", err.Error()))
	}
}

func blockReference(tx *gateway.Transaction) *BlockReference {
	if tx.BlockNumber == 0 && tx.BlockHash == "" {
		return nil
	}

	ref := &BlockReference{Number: tx.BlockNumber, Hash: tx.BlockHash}
	if !tx.BlockTime.IsZero() {
		blockTime := tx.BlockTime.UTC()
		ref.Timestamp = &blockTime
	}

	return ref
}

func eventTypeOf(status RecordStatus) events.Type {
	switch status {
	case RecordStatusConfirmed:
		return events.TypeTimestampConfirmed
	case RecordStatusFailed:
		return events.TypeTimestampFailed
	default:
		return events.TypeTimestampPending
	}
}

// verifySignature checks that signature over signingHash was made by address.
// Both the 27/28 and 0/1 recovery id conventions are accepted.
func verifySignature(signingHash, signature, address string) error {
	if !strings.HasPrefix(signature, "0x") {
		signature = "0x" + signature
	}

	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return errs.Wrap(errs.KindValidation, "signature must be 65 bytes hex encoded", ErrInvalidSignature).WithDetails(map[string]any{"field": "signature"})
	}

	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	hash, err := hexutil.Decode(signingHash)
	if err != nil {
		return errs.Wrap(errs.KindInternal, "prepared transaction has an invalid signing hash", err)
	}

	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return errs.Wrap(errs.KindValidation, "signature could not be recovered", errors.Join(ErrInvalidSignature, err)).WithDetails(map[string]any{"field": "signature"})
	}

	signer := crypto.PubkeyToAddress(*pub)
	if !strings.EqualFold(signer.Hex(), address) {
		return errs.Wrap(errs.KindForbidden, "signature was not made by user address", ErrAddressMismatch).WithDetails(map[string]any{
			"signer": signer.Hex(),
		})
	}

	return nil
}
