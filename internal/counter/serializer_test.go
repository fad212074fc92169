package counter

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakminder/breakminder/internal/model"
)

// memStore is an in-memory counter record with optional injected failures.
type memStore struct {
	mu        sync.Mutex
	counter   model.DailyCounter
	failSaves int // fail this many Save calls, then succeed
	saves     int
}

var errStoreDown = errors.New("store down")

func (m *memStore) Load() (model.DailyCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter, nil
}

func (m *memStore) Save(c model.DailyCounter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.failSaves > 0 {
		m.failSaves--
		return errStoreDown
	}
	m.counter = c
	return nil
}

func (m *memStore) current() model.DailyCounter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counter
}

func (m *memStore) saveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// memEmitter records announced counts.
type memEmitter struct {
	mu     sync.Mutex
	counts []int
}

func (m *memEmitter) Emit(action string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if action == ActionCounterUpdated {
		m.counts = append(m.counts, payload.(updatedPayload).Count)
	}
	return nil
}

func (m *memEmitter) announced() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.counts...)
}

// waitDrained polls until the queue empties or the deadline passes.
func waitDrained(t *testing.T, s *Serializer) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if s.Pending() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("queue never drained, %d pending", s.Pending())
}

func TestSerializerConcurrentIncrements(t *testing.T) {
	store := &memStore{}
	emit := &memEmitter{}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	s := New(store, emit, WithNow(func() time.Time { return now }))
	s.Start()
	t.Cleanup(s.Stop)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.EnqueueIncrement()
		}()
	}
	wg.Wait()
	waitDrained(t, s)

	// No increment lost or doubled, and every one was announced.
	assert.Equal(t, n, store.current().Count)
	assert.Equal(t, model.DateKeyFor(now), store.current().DateKey)
	counts := emit.announced()
	require.Len(t, counts, n)
	assert.Equal(t, n, counts[n-1])
}

func TestSerializerRetriesTransientFailure(t *testing.T) {
	store := &memStore{failSaves: 2}
	emit := &memEmitter{}

	s := New(store, emit, WithRetry(5, time.Millisecond))
	s.Start()
	t.Cleanup(s.Stop)

	s.EnqueueIncrement()
	waitDrained(t, s)

	assert.Equal(t, 1, store.current().Count)
	assert.Equal(t, []int{1}, emit.announced())
}

func TestSerializerDropsAfterRetryCap(t *testing.T) {
	store := &memStore{failSaves: 100}
	emit := &memEmitter{}

	s := New(store, emit, WithRetry(3, time.Millisecond))
	s.Start()
	t.Cleanup(s.Stop)

	s.EnqueueIncrement()
	s.EnqueueIncrement()
	waitDrained(t, s)

	// Both ops exhausted the budget: three attempts each, nothing written,
	// nothing announced.
	assert.Equal(t, 6, store.saveCalls())
	assert.Equal(t, 0, store.current().Count)
	assert.Empty(t, emit.announced())
}

func TestSerializerFailedOpHoldsQueueHead(t *testing.T) {
	store := &memStore{failSaves: 1}
	emit := &memEmitter{}

	s := New(store, emit, WithRetry(5, time.Millisecond))
	s.Start()
	t.Cleanup(s.Stop)

	s.EnqueueIncrement()
	s.EnqueueIncrement()
	waitDrained(t, s)

	// The failed head retried and succeeded before the second op ran.
	assert.Equal(t, 2, store.current().Count)
	assert.Equal(t, []int{1, 2}, emit.announced())
}

func TestSerializerLazyDateReset(t *testing.T) {
	store := &memStore{counter: model.DailyCounter{Count: 9, DateKey: "2025-03-09"}}
	emit := &memEmitter{}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	s := New(store, emit, WithNow(func() time.Time { return now }))
	s.Start()
	t.Cleanup(s.Stop)

	s.EnqueueIncrement()
	waitDrained(t, s)

	// Yesterday's tally is discarded in the same write as the increment.
	assert.Equal(t, model.DailyCounter{Count: 1, DateKey: "2025-03-10"}, store.current())
	assert.Equal(t, []int{1}, emit.announced())
}
