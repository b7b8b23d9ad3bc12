package timestamp

import (
	"errors"

	"github.com/chainstamp/chainstamp/internal/errs"
	"github.com/chainstamp/chainstamp/internal/hashing"
)

func validation(message string, details map[string]any) *errs.Error {
	return errs.New(errs.KindValidation, message).WithDetails(details)
}

func notFound(message string, err error) *errs.Error {
	return errs.Wrap(errs.KindNotFound, message, err)
}

func cacheUnavailable(err error) *errs.Error {
	return errs.Wrap(errs.KindServiceUnavailable, "cache unavailable", err)
}

func networkUnavailable(err error) *errs.Error {
	return errs.Wrap(errs.KindServiceUnavailable, "network unavailable", err)
}

func validateDataHash(dataHash string) error {
	if !hashing.IsValidHash(dataHash) {
		return validation("dataHash must be 64 lowercase hex characters", map[string]any{"field": "dataHash", "value": dataHash})
	}

	return nil
}

func validateTxHash(txHash string) error {
	if !hashing.IsValidTxHash(txHash) {
		return validation("transactionHash must be 0x followed by 64 hex characters", map[string]any{"field": "transactionHash", "value": txHash})
	}

	return nil
}

func validateAddress(address string) error {
	if !hashing.IsValidAddress(address) {
		return validation("userAddress must be 0x followed by 40 hex characters", map[string]any{"field": "userAddress", "value": address})
	}

	return nil
}

func dataError(err error) *errs.Error {
	switch {
	case errors.Is(err, hashing.ErrEmptyData):
		return validation(err.Error(), map[string]any{"field": "data"})
	case errors.Is(err, hashing.ErrInvalidJSON):
		return validation(hashing.ErrInvalidJSON.Error(), map[string]any{"field": "data"})
	default:
		return errs.Wrap(errs.KindInternal, "failed to hash data", err)
	}
}
