/*
queue decouples the bridge engine from its observer. Three independent,
order-preserving queues carry user input, assistant text and status events
across the worker boundary. Producers never block; consumers poll or wait
with a context deadline, so both UI polling loops and synchronous test
harnesses are supported.
*/
package queue

import (
	"context"
	"io"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Queue is an unbounded FIFO queue. Push never blocks the producer;
// consumption is via non-blocking Poll or blocking Wait. Values are
// delivered in push order.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	signal chan struct{}
	closed bool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewQueue creates an empty queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		signal: make(chan struct{}, 1),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Push appends a value to the queue. It never blocks. Pushing to a closed
// queue is a no-op.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	// Wake a waiting consumer without blocking
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Poll removes and returns the head of the queue without blocking.
// The second return value is false when the queue is empty.
func (q *Queue[T]) Poll() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

// Wait removes and returns the head of the queue, blocking until a value
// is available or the context is done. It returns io.EOF when the queue
// is closed and drained.
func (q *Queue[T]) Wait(ctx context.Context) (T, error) {
	var zero T
	for {
		q.mu.Lock()
		if v, ok := q.pop(); ok {
			q.mu.Unlock()
			return v, nil
		}
		if q.closed {
			q.mu.Unlock()
			return zero, io.EOF
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-q.signal:
		}
	}
}

// Len returns the number of queued values
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed. Queued values remain consumable; Wait
// returns io.EOF once the queue is drained.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// pop removes the head of the queue. Caller must hold the lock.
func (q *Queue[T]) pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	v := q.items[0]
	q.items = q.items[1:]
	// Keep the signal armed while values remain, so a consumer waking for
	// an earlier push does not strand later ones
	if len(q.items) > 0 {
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}
	return v, true
}
