// Package events carries timestamp lifecycle events to interested parties.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeTimestampPrepared  Type = "timestamp.prepared"
	TypeTimestampPending   Type = "timestamp.pending"
	TypeTimestampConfirmed Type = "timestamp.confirmed"
	TypeTimestampFailed    Type = "timestamp.failed"
)

// Event describes a single state change of a timestamp. CallbackURL is the
// caller-supplied webhook target and is never part of the payload.
type Event struct {
	ID              string         `json:"id"`
	Type            Type           `json:"type"`
	DataHash        string         `json:"dataHash"`
	TransactionHash string         `json:"transactionHash,omitempty"`
	Status          string         `json:"status,omitempty"`
	BlockNumber     uint64         `json:"blockNumber,omitempty"`
	ExplorerURL     string         `json:"explorerUrl,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	OccurredAt      time.Time      `json:"timestamp"`
	CallbackURL     string         `json:"-"`
}

func New(eventType Type, dataHash string, now time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		DataHash:   dataHash,
		OccurredAt: now.UTC(),
	}
}

// Notifier delivers events on a best-effort basis. Implementations must not
// block the caller on delivery.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Multi fans an event out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) {
	for _, n := range m {
		if n == nil {
			continue
		}
		n.Notify(ctx, event)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}
