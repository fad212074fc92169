// Package counter serializes increments of the shared daily counter.
//
// Every "log water" click becomes one queued operation. A single consumer
// goroutine guarantees at most one read-modify-write cycle against the
// store is in flight at any time, so rapid or overlapping clicks can never
// double- or under-count. An operation leaves the head of the queue only
// after its write has been durably acknowledged; transient store failures
// pause the whole queue for a fixed backoff and retry, up to a bounded
// per-operation attempt budget.
package counter

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/breakminder/breakminder/internal/logging"
	"github.com/breakminder/breakminder/internal/model"
)

// ActionCounterUpdated is the bus action announcing a new daily count.
const ActionCounterUpdated = "counter-updated"

// updatedPayload is the body of a counter-updated message.
type updatedPayload struct {
	Count int `json:"count"`
}

// Store is the durable counter record the serializer increments.
type Store interface {
	Load() (model.DailyCounter, error)
	Save(model.DailyCounter) error
}

// Emitter announces count changes to the attached UI, best-effort.
type Emitter interface {
	Emit(action string, payload any) error
}

// op is one queued increment. It moves pending → in-flight → one of
// {done, retry-scheduled, dropped}.
type op struct {
	id       string
	attempts int
}

// Serializer is the FIFO increment queue.
type Serializer struct {
	store       Store
	emit        Emitter
	now         func() time.Time
	maxAttempts int
	backoff     time.Duration

	mu    sync.Mutex
	queue []*op

	kick   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithNow substitutes the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Serializer) { s.now = now }
}

// WithRetry overrides the attempt cap and backoff delay.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(s *Serializer) {
		s.maxAttempts = maxAttempts
		s.backoff = backoff
	}
}

// New creates a serializer. Call Start before enqueueing.
func New(store Store, emit Emitter, opts ...Option) *Serializer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Serializer{
		store:       store,
		emit:        emit,
		now:         time.Now,
		maxAttempts: 5,
		backoff:     500 * time.Millisecond,
		kick:        make(chan struct{}, 1),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the consumer goroutine.
func (s *Serializer) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop tears down the consumer. Operations still queued are lost by
// design; the queue is in-memory only and rebuilt from zero on restart.
func (s *Serializer) Stop() {
	s.cancel()
	s.wg.Wait()
}

// EnqueueIncrement queues one increment. Fire-and-forget: side effects
// (the store write and the counter-updated announcement) are asynchronous.
func (s *Serializer) EnqueueIncrement() {
	o := &op{id: newOpID()}

	s.mu.Lock()
	s.queue = append(s.queue, o)
	depth := len(s.queue)
	s.mu.Unlock()

	logging.DebugLog("counter increment queued", "op", o.id, "queue_depth", depth)

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued operations.
func (s *Serializer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// run is the single consumer loop.
func (s *Serializer) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.kick:
			s.drain()
		}
	}
}

// drain processes the queue head-first until it is empty or the context is
// cancelled.
func (s *Serializer) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		head := s.queue[0]
		s.mu.Unlock()

		head.attempts++
		count, err := s.increment()
		if err == nil {
			// The write is durable; only now does the operation leave
			// the queue.
			s.mu.Lock()
			s.queue = s.queue[1:]
			s.mu.Unlock()

			s.announce(count)
			continue
		}

		if head.attempts >= s.maxAttempts {
			logging.Warn("counter increment dropped after retry cap",
				"op", head.id,
				logging.KeyAttempts, head.attempts,
				logging.KeyError, err)
			s.mu.Lock()
			s.queue = s.queue[1:]
			s.mu.Unlock()
			continue
		}

		logging.DebugLog("counter increment failed, backing off",
			"op", head.id,
			logging.KeyAttempts, head.attempts,
			logging.KeyError, err)

		// Pause the whole queue, then retry from the same head.
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(s.backoff):
		}
	}
}

// increment performs one read-modify-write cycle and returns the new count.
func (s *Serializer) increment() (int, error) {
	stored, err := s.store.Load()
	if err != nil {
		return 0, err
	}

	// A stale date key reads as zero; the rewrite below commits the reset
	// together with the increment.
	next := stored.Incremented(s.now())

	if err := s.store.Save(next); err != nil {
		return 0, err
	}
	return next.Count, nil
}

// announce reports the new count to the UI. Failure to deliver (e.g. no UI
// attached) is not an error.
func (s *Serializer) announce(count int) {
	logging.Info("daily counter updated", logging.KeyCount, count)
	if err := s.emit.Emit(ActionCounterUpdated, updatedPayload{Count: count}); err != nil {
		logging.DebugLog("counter-updated undeliverable", logging.KeyError, err)
	}
}

func newOpID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
