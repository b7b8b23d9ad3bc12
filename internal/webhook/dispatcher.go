package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chainstamp/chainstamp/internal/events"
)

var (
	ErrQueueFull         = errors.New("webhook queue is full")
	ErrDispatcherStopped = errors.New("webhook dispatcher is stopped")
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 1000
)

type Sender interface {
	Send(ctx context.Context, url string, payload []byte) (ok bool, attempts int)
}

type job struct {
	url     string
	payload []byte
}

// Dispatcher owns a bounded queue of deliveries and the workers draining it.
type Dispatcher struct {
	sender     Sender
	logger     *slog.Logger
	production bool
	workers    int
	stats      *Stats

	queue chan job

	mu      sync.RWMutex
	started bool
	stopped bool

	ctx       context.Context
	cancelAll context.CancelFunc
	wg        sync.WaitGroup
	inFlight  atomic.Int64
	abandoned atomic.Int64
}

func WithLogger(logger *slog.Logger) func(*Dispatcher) {
	return func(d *Dispatcher) {
		d.logger = logger.With(slog.String("module", "webhook-dispatcher"))
	}
}

func WithWorkers(n int) func(*Dispatcher) {
	return func(d *Dispatcher) {
		d.workers = n
	}
}

func WithQueueSize(n int) func(*Dispatcher) {
	return func(d *Dispatcher) {
		d.queue = make(chan job, n)
	}
}

// WithProduction enables the stricter URL checks of ValidateURL.
func WithProduction(production bool) func(*Dispatcher) {
	return func(d *Dispatcher) {
		d.production = production
	}
}

func WithStats(stats *Stats) func(*Dispatcher) {
	return func(d *Dispatcher) {
		d.stats = stats
	}
}

func NewDispatcher(sender Sender, opts ...func(*Dispatcher)) *Dispatcher {
	d := &Dispatcher{
		sender:  sender,
		logger:  slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
		workers: DefaultWorkers,
		queue:   make(chan job, DefaultQueueSize),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.workers < 1 {
		d.workers = 1
	}

	d.ctx, d.cancelAll = context.WithCancel(context.Background())

	return d
}

func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started || d.stopped {
		return
	}
	d.started = true

	for range d.workers {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.work()
		}()
	}

	d.logger.Info("Started webhook dispatcher", slog.Int("workers", d.workers), slog.Int("queue size", cap(d.queue)))
}

func (d *Dispatcher) work() {
	for j := range d.queue {
		d.stats.setQueueSize(len(d.queue))

		if d.ctx.Err() != nil {
			d.abandoned.Add(1)
			continue
		}

		d.inFlight.Add(1)
		ok, _ := d.sender.Send(d.ctx, j.url, j.payload)
		d.inFlight.Add(-1)

		if !ok && d.ctx.Err() != nil {
			d.abandoned.Add(1)
		}
	}
}

// Send validates url and enqueues the delivery without waiting for it.
func (d *Dispatcher) Send(url string, payload []byte) error {
	err := ValidateURL(url, d.production)
	if err != nil {
		return err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.stats.incDropped()
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- job{url: url, payload: payload}:
		d.stats.setQueueSize(len(d.queue))
		return nil
	default:
		d.stats.incDropped()
		return ErrQueueFull
	}
}

// Notify enqueues the event for its callback URL, if it has one.
func (d *Dispatcher) Notify(ctx context.Context, event events.Event) {
	if event.CallbackURL == "" {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to marshal event", slog.String("hash", event.DataHash), slog.String("err", err.Error()))
		return
	}

	err = d.Send(event.CallbackURL, payload)
	if err != nil {
		d.logger.WarnContext(ctx, "Failed to enqueue webhook",
			slog.String("url", event.CallbackURL),
			slog.String("type", string(event.Type)),
			slog.String("hash", event.DataHash),
			slog.String("err", err.Error()))
	}
}

func (d *Dispatcher) Health() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	return nil
}

// GracefulStop stops accepting deliveries and waits up to timeout for the
// queue to drain. Whatever is still queued or in flight after that is abandoned.
func (d *Dispatcher) GracefulStop(timeout time.Duration) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	started := d.started
	d.mu.Unlock()

	if !started {
		d.abandoned.Add(int64(len(d.queue)))
		d.cancelAll()
		d.logStopped()
		return
	}

	d.logger.Info("Stopping webhook dispatcher", slog.Int("queued", len(d.queue)))

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		d.logger.Warn("Webhook dispatcher did not drain in time", slog.Int("queued", len(d.queue)), slog.Int64("in flight", d.inFlight.Load()))
		d.cancelAll()
		<-done
	}

	d.cancelAll()
	d.logStopped()
}

func (d *Dispatcher) logStopped() {
	abandoned := d.abandoned.Load()
	if abandoned > 0 {
		d.logger.Warn("Stopped webhook dispatcher", slog.Int64("abandoned", abandoned))
		return
	}

	d.logger.Info("Stopped webhook dispatcher")
}

// Abandoned returns the number of deliveries given up on by GracefulStop.
func (d *Dispatcher) Abandoned() int64 {
	return d.abandoned.Load()
}
