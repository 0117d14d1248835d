// internal/relay/queue.go
package relay

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Next once the queue is closed and drained.
var ErrClosed = errors.New("relay queue closed")

// Poster accepts events from any goroutine.
type Poster interface {
	// Post enqueues e. It never blocks and returns false if the queue
	// is closed.
	Post(e Event) bool
}

// Queue is an unbounded FIFO of events, safe for concurrent producers.
// Events are delivered in post order. A TagsDiscovered posted while the last
// pending event is a TagsDiscovered from the same source is dropped, since
// the consumer re-reads the stream description anyway.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	notify chan struct{}
	closed bool
}

var _ Poster = (*Queue)(nil)

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{})}
}

// Post enqueues e.
func (q *Queue) Post(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	if tags, ok := e.(TagsDiscovered); ok && len(q.items) > 0 {
		if last, ok := q.items[len(q.items)-1].(TagsDiscovered); ok && last.Source == tags.Source {
			return true
		}
	}
	q.items = append(q.items, e)
	q.wake()
	return true
}

// wake releases every goroutine blocked in Next. Caller holds mu.
func (q *Queue) wake() {
	close(q.notify)
	q.notify = make(chan struct{})
}

// TryNext returns the oldest pending event without blocking.
func (q *Queue) TryNext() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

func (q *Queue) pop() (Event, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	e := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return e, true
}

// Next blocks until an event is available, the queue is closed, or ctx is
// done. Pending events are still delivered after Close; ErrClosed is
// returned once they are drained.
func (q *Queue) Next(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if e, ok := q.pop(); ok {
			q.mu.Unlock()
			return e, nil
		}
		if q.closed {
			q.mu.Unlock()
			return nil, ErrClosed
		}
		wait := q.notify
		q.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops accepting events and wakes all waiters. Safe to call twice.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.wake()
}
