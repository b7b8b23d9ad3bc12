package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"
)

var ErrFailedToPublish = errors.New("failed to publish")

type NatsConnection interface {
	Publish(subj string, data []byte) error
	Drain() error
}

func NewNatsConnection(natsURL string, logger *slog.Logger) (*nats.Conn, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}

	opts := []nats.Option{
		nats.Name(hostname),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("connection error", slog.String("err", err.Error()))
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Error("client disconnected", slog.String("err", err.Error()))
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("client reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("client closed")
		}),
		nats.RetryOnFailedConnect(true),
		nats.PingInterval(2 * time.Minute),
		nats.MaxPingsOutstanding(2),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
	}

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %v", err)
	}

	return nc, nil
}

// NatsPublisher publishes events as JSON on <prefix>.<event type>.
type NatsPublisher struct {
	nc            NatsConnection
	subjectPrefix string
	logger        *slog.Logger
}

func WithLogger(logger *slog.Logger) func(*NatsPublisher) {
	return func(p *NatsPublisher) {
		p.logger = logger.With(slog.String("module", "nats-publisher"))
	}
}

func NewNatsPublisher(nc NatsConnection, subjectPrefix string, opts ...func(*NatsPublisher)) *NatsPublisher {
	p := &NatsPublisher{
		nc:            nc,
		subjectPrefix: subjectPrefix,
		logger:        slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *NatsPublisher) Subject(eventType Type) string {
	if p.subjectPrefix == "" {
		return string(eventType)
	}

	return p.subjectPrefix + "." + string(eventType)
}

func (p *NatsPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	subject := p.Subject(event.Type)
	err = p.nc.Publish(subject, data)
	if err != nil {
		return errors.Join(ErrFailedToPublish, fmt.Errorf("subject: %s", subject), err)
	}

	return nil
}

// Notify publishes the event and logs failures. nats.Conn.Publish only
// buffers, so this does not wait on the server.
func (p *NatsPublisher) Notify(ctx context.Context, event Event) {
	err := p.Publish(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish event", slog.String("type", string(event.Type)), slog.String("hash", event.DataHash), slog.String("err", err.Error()))
	}
}

func (p *NatsPublisher) Shutdown() {
	if p.nc == nil {
		return
	}

	err := p.nc.Drain()
	if err != nil {
		p.logger.Error("failed to drain nats connection", slog.String("err", err.Error()))
	}
}
