package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainstamp/chainstamp/internal/events"
	"github.com/chainstamp/chainstamp/internal/events/mocks"
)

const testHash = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestMulti_Notify(t *testing.T) {
	// given
	first := &mocks.NotifierMock{NotifyFunc: func(_ context.Context, _ events.Event) {}}
	second := &mocks.NotifierMock{NotifyFunc: func(_ context.Context, _ events.Event) {}}
	sut := events.Multi{first, nil, second}

	event := events.New(events.TypeTimestampConfirmed, testHash, time.Now())

	// when
	sut.Notify(context.Background(), event)

	// then
	require.Len(t, first.NotifyCalls(), 1)
	require.Len(t, second.NotifyCalls(), 1)
	require.Equal(t, event.ID, second.NotifyCalls()[0].Event.ID)
}

func TestNatsPublisher_Notify(t *testing.T) {
	tt := []struct {
		name       string
		prefix     string
		publishErr error

		expectedSubject string
	}{
		{
			name:            "with prefix",
			prefix:          "chainstamp",
			expectedSubject: "chainstamp.timestamp.confirmed",
		},
		{
			name:            "without prefix",
			expectedSubject: "timestamp.confirmed",
		},
		{
			name:            "publish error is absorbed",
			prefix:          "chainstamp",
			publishErr:      errors.New("nats: connection closed"),
			expectedSubject: "chainstamp.timestamp.confirmed",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			nc := &mocks.NatsConnectionMock{
				PublishFunc: func(_ string, _ []byte) error {
					return tc.publishErr
				},
			}
			sut := events.NewNatsPublisher(nc, tc.prefix)

			event := events.New(events.TypeTimestampConfirmed, testHash, time.Unix(1_700_000_000, 0))
			event.TransactionHash = "0xabc"
			event.CallbackURL = "https://example.com/hook"

			// when
			sut.Notify(context.Background(), event)

			// then
			require.Len(t, nc.PublishCalls(), 1)
			call := nc.PublishCalls()[0]
			assert.Equal(t, tc.expectedSubject, call.Subj)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(call.Data, &decoded))
			assert.Equal(t, testHash, decoded["dataHash"])
			assert.Equal(t, "timestamp.confirmed", decoded["type"])
			assert.NotContains(t, decoded, "CallbackURL")
			assert.NotContains(t, string(call.Data), "example.com")
		})
	}
}

func TestNatsPublisher_Publish(t *testing.T) {
	nc := &mocks.NatsConnectionMock{
		PublishFunc: func(_ string, _ []byte) error {
			return errors.New("nats: connection closed")
		},
	}
	sut := events.NewNatsPublisher(nc, "chainstamp")

	err := sut.Publish(events.New(events.TypeTimestampFailed, testHash, time.Now()))
	require.ErrorIs(t, err, events.ErrFailedToPublish)
}
