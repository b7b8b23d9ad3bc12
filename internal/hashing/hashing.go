// Package hashing computes the DataHash used as the correlation key of every
// timestamp, and validates the hex formats the service accepts.
package hashing

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
)

// HashLength is the number of hex characters of a DataHash.
const HashLength = 64

var (
	ErrEmptyData   = errors.New("data must not be empty")
	ErrInvalidJSON = errors.New("data is not valid JSON")

	hashPattern   = regexp.MustCompile(`^[0-9a-f]{64}$`)
	txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// CanonicalBytes returns the byte form of raw that is hashed. A JSON string
// yields its unquoted content. Any other value is re-encoded with object keys
// in sorted order and numbers kept as written, so two objects with the same
// key/value set have the same canonical form regardless of key order.
func CanonicalBytes(raw json.RawMessage) ([]byte, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyData
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Join(ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, ErrInvalidJSON
	}

	if s, ok := v.(string); ok {
		if s == "" {
			return nil, ErrEmptyData
		}
		return []byte(s), nil
	}

	buf := new(bytes.Buffer)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode canonical form: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// HashData returns the lowercase hex sha256 digest of the canonical form of raw.
func HashData(raw json.RawMessage) (string, error) {
	canonical, err := CanonicalBytes(raw)
	if err != nil {
		return "", err
	}

	return HashBytes(canonical), nil
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// IsValidHash reports whether s is a DataHash: 64 lowercase hex characters.
func IsValidHash(s string) bool {
	return hashPattern.MatchString(s)
}

// IsValidTxHash reports whether s is a 0x prefixed 32 byte transaction hash.
func IsValidTxHash(s string) bool {
	return txHashPattern.MatchString(s)
}

// IsValidAddress reports whether s is a 0x prefixed 20 byte account address.
func IsValidAddress(s string) bool {
	return len(s) == 42 && common.IsHexAddress(s)
}
