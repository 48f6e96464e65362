// Package async provides a worker pool that publishes turn events in the
// background, so a chat turn never waits on the event backend.
//
// Events are handed to the wrapped eventstream.Publisher by a fixed number
// of workers. With the default single worker, events reach the backend in
// the order they were enqueued.
package async

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/papercomputeco/unibot/pkg/eventstream"
)

var (
	defaultNumWorkers     uint = 1
	defaultQueueSize      uint = 256
	defaultPublishTimeout      = 5 * time.Second
)

var (
	// ErrQueueFull is returned when an event is dropped because the queue
	// is at capacity.
	ErrQueueFull = errors.New("turn event queue full, event dropped")

	// ErrPoolClosed is returned by PublishTurn after Close.
	ErrPoolClosed = errors.New("turn event pool closed")
)

// Config is the configuration options for the worker pool.
type Config struct {
	// Publisher receives events from the workers. Required.
	Publisher eventstream.Publisher

	// NumWorkers is the number of background workers (defaults to 1).
	NumWorkers uint

	// QueueSize is the capacity of the buffered event channel (defaults to 256).
	QueueSize uint

	// PublishTimeout bounds each delivery (defaults to 5s).
	PublishTimeout time.Duration

	Logger *slog.Logger
}

// Pool is an eventstream.Publisher that enqueues and returns immediately.
type Pool struct {
	config *Config
	queue  chan *eventstream.TurnEvent
	wg     sync.WaitGroup
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool

	failed atomic.Int64
}

// NewPool creates a Pool and starts its workers.
func NewPool(c *Config) (*Pool, error) {
	if c.Publisher == nil {
		return nil, errors.New("async pool needs a publisher")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultQueueSize
	}

	if c.PublishTimeout <= 0 {
		c.PublishTimeout = defaultPublishTimeout
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Pool{
		config: c,
		queue:  make(chan *eventstream.TurnEvent, c.QueueSize),
		logger: logger,
	}

	p.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go p.worker(i)
	}

	return p, nil
}

// PublishTurn enqueues event. The caller's context is not carried into the
// background delivery; each delivery gets its own PublishTimeout.
func (p *Pool) PublishTurn(_ context.Context, event *eventstream.TurnEvent) error {
	if event == nil {
		return eventstream.ErrNilTurnEvent
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.queue <- event:
		p.logger.Debug("turn event queued", "event_id", event.EventID, "intent", event.Intent)
		return nil
	default:
		p.logger.Error("turn event not queued, queue full", "event_id", event.EventID)
		return ErrQueueFull
	}
}

// Failed reports how many deliveries the wrapped publisher rejected.
func (p *Pool) Failed() int64 {
	return p.failed.Load()
}

// Close stops accepting events, waits for queued ones to be delivered and
// then closes the wrapped publisher. Calling it again is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return p.config.Publisher.Close()
}

// worker pulls events off the queue until it is closed.
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("event worker started", "worker_id", id)

	for event := range p.queue {
		p.deliver(event)
	}

	p.logger.Debug("event worker stopped", "worker_id", id)
}

func (p *Pool) deliver(event *eventstream.TurnEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.config.PublishTimeout)
	defer cancel()

	if err := p.config.Publisher.PublishTurn(ctx, event); err != nil {
		p.failed.Add(1)
		p.logger.Warn("publish turn event",
			"event_id", event.EventID,
			"session_id", event.SessionID,
			"error", err,
		)
		return
	}

	p.logger.Debug("turn event published", "event_id", event.EventID)
}
