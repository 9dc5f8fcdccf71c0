package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock only moves when Advance is called. Due callbacks run
// synchronously inside Advance, in deadline order.
type FakeClock struct {
	mu      sync.Mutex
	now     time.Time
	nextID  int
	pending map[int]*fakeTimer
}

type fakeTimer struct {
	id       int
	deadline time.Time
	fire     func(time.Time)
}

var _ Clock = (*FakeClock)(nil)

// Fake creates a fake clock starting at start.
func Fake(start time.Time) *FakeClock {
	return &FakeClock{now: start, pending: map[int]*fakeTimer{}}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After returns a buffered channel that receives once Advance passes d.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	c.schedule(d, func(t time.Time) { ch <- t })
	return ch
}

// AfterFunc schedules f to run once Advance passes d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	id := c.schedule(d, func(time.Time) { f() })
	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.pending[id]; !ok {
			return false
		}
		delete(c.pending, id)
		return true
	}}
}

// Pending returns the number of scheduled, unfired timers.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves time forward by d and fires every timer that became due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	now := c.now

	var due []*fakeTimer
	for id, t := range c.pending {
		if !t.deadline.After(now) {
			due = append(due, t)
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		t.fire(now)
	}
}

// BlockUntil waits until at least n timers are pending. Useful when another
// goroutine is about to call After.
func (c *FakeClock) BlockUntil(n int) {
	for {
		if c.Pending() >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

func (c *FakeClock) schedule(d time.Duration, fire func(time.Time)) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if d <= 0 {
		d = 0
	}
	c.pending[id] = &fakeTimer{id: id, deadline: c.now.Add(d), fire: fire}
	return id
}
