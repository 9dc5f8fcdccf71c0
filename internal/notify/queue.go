package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"NewsDesk/internal/clock"
	"NewsDesk/internal/domain"
	"NewsDesk/internal/ports"
)

const (
	// DefaultTTL is how long a notification stays visible.
	DefaultTTL = 4 * time.Second
	// DefaultCapacity bounds the queue; the oldest entry is evicted first.
	DefaultCapacity = 50
)

// Queue holds transient notifications in insertion order. Each entry removes
// itself after the TTL unless dismissed earlier.
type Queue struct {
	mu       sync.Mutex
	clock    clock.Clock
	ttl      time.Duration
	capacity int
	items    []domain.Notification
	timers   map[string]*clock.Timer
	closed   bool
}

var _ ports.Notifier = (*Queue)(nil)

// Option tweaks a Queue at construction.
type Option func(*Queue)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) { q.ttl = ttl }
}

// WithCapacity overrides DefaultCapacity.
func WithCapacity(n int) Option {
	return func(q *Queue) { q.capacity = n }
}

// NewQueue builds an empty queue driven by clk.
func NewQueue(clk clock.Clock, opts ...Option) *Queue {
	if clk == nil {
		clk = clock.Real()
	}
	q := &Queue{
		clock:    clk,
		ttl:      DefaultTTL,
		capacity: DefaultCapacity,
		timers:   map[string]*clock.Timer{},
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.capacity < 1 {
		q.capacity = 1
	}
	return q
}

// Push appends a notification and schedules its expiry.
func (q *Queue) Push(message string, typ domain.NotificationType) domain.Notification {
	n := domain.Notification{
		ID:        "notification-" + uuid.NewString(),
		Message:   message,
		Type:      typ,
		Timestamp: q.clock.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return n
	}

	for len(q.items) >= q.capacity {
		q.removeLocked(q.items[0].ID)
	}

	q.items = append(q.items, n)
	id := n.ID
	q.timers[id] = q.clock.AfterFunc(q.ttl, func() { q.expire(id) })

	return n
}

// Success pushes a success notification.
func (q *Queue) Success(message string) domain.Notification {
	return q.Push(message, domain.NotificationSuccess)
}

// Error pushes an error notification.
func (q *Queue) Error(message string) domain.Notification {
	return q.Push(message, domain.NotificationError)
}

// Dismiss removes a notification immediately. It reports whether the id was
// still present.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.removeLocked(id)
}

// List returns the current notifications, oldest first.
func (q *Queue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of visible notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops every pending expiry and drops the queue contents. Pushes after
// Close are ignored.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
	q.closed = true
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.timers, id)
	q.removeLocked(id)
}

func (q *Queue) removeLocked(id string) bool {
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}
