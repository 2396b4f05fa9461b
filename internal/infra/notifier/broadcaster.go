// Package notifier implements the in-process change notifier.
package notifier

import (
	"context"
	"log/slog"
	"sync"

	"numatu/config"
	"numatu/internal/domain/service"

	"go.uber.org/fx"
)

const defaultBufferSize = 64

type envelope struct {
	ctx   context.Context
	event *service.ChangeEvent
}

type subscriber struct {
	id      uint64
	handler service.ChangeHandler

	mu      sync.Mutex
	pending []envelope
	wake    chan struct{}

	done chan struct{}
	once sync.Once
}

func (s *subscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

// enqueue appends the envelope and returns the resulting backlog.
func (s *subscriber) enqueue(env envelope) int {
	s.mu.Lock()
	s.pending = append(s.pending, env)
	backlog := len(s.pending)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}

	return backlog
}

func (s *subscriber) drain() []envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.pending
	s.pending = nil

	return batch
}

// Broadcaster fans every published event out to all subscribers. Each subscriber
// consumes its own unbounded FIFO queue on a dedicated goroutine: events from one
// publisher reach a subscriber in publish order, and a stuck subscriber only grows
// its own backlog.
type Broadcaster struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscriber
	nextID uint64
	buffer int // backlog above which a subscriber is reported as lagging
	logger *slog.Logger
	wg     sync.WaitGroup
}

// BroadcasterParams holds dependencies for the Broadcaster, injected by Fx.
type BroadcasterParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates a Broadcaster bound to the application lifecycle.
func New(params BroadcasterParams) service.ChangeNotifier {
	size := defaultBufferSize
	if params.Config != nil && params.Config.Notifier != nil && params.Config.Notifier.BufferSize > 0 {
		size = params.Config.Notifier.BufferSize
	}

	b := NewBroadcaster(size, params.Logger)
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			b.Close()

			return nil
		},
	})

	return b
}

// NewBroadcaster creates a Broadcaster that warns once a subscriber backlog exceeds bufferSize.
func NewBroadcaster(bufferSize int, logger *slog.Logger) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Broadcaster{
		subs:   make(map[uint64]*subscriber),
		buffer: bufferSize,
		logger: logger,
	}
}

// Publish appends the event to every subscriber's queue and returns without waiting
// for any handler. The event is already committed, so ctx only carries request values
// to the handlers; its cancellation never drops a delivery.
func (b *Broadcaster) Publish(ctx context.Context, event *service.ChangeEvent) error {
	b.mu.RLock()
	targets := make([]*subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	env := envelope{ctx: context.WithoutCancel(ctx), event: event}
	for _, s := range targets {
		if backlog := s.enqueue(env); backlog == b.buffer+1 {
			b.logger.Warn("Change subscriber is falling behind",
				slog.Uint64("subscriber", s.id),
				slog.Int("backlog", backlog))
		}
	}

	return nil
}

// Subscribe registers the handler and returns its unsubscribe function.
func (b *Broadcaster) Subscribe(handler service.ChangeHandler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	s := &subscriber{
		id:      id,
		handler: handler,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	b.subs[id] = s
	b.mu.Unlock()

	b.wg.Add(1)
	go b.run(s)

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
		s.stop()
	}
}

// Close stops every subscriber and waits for in-flight handlers to return.
// Events still queued are discarded.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[uint64]*subscriber)
	b.mu.Unlock()

	for _, s := range subs {
		s.stop()
	}
	b.wg.Wait()
}

func (b *Broadcaster) run(s *subscriber) {
	defer b.wg.Done()

	for {
		select {
		case <-s.wake:
		case <-s.done:
			return
		}

		for _, env := range s.drain() {
			select {
			case <-s.done:
				return
			default:
			}
			b.deliver(s, env)
		}
	}
}

func (b *Broadcaster) deliver(s *subscriber, env envelope) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Change handler panicked",
				slog.Any("panic", r),
				slog.Any("collection_id", env.event.Collection.ID),
				slog.Int64("version", env.event.Version))
		}
	}()

	s.handler(env.ctx, env.event)
}
