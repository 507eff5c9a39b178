// Package queue provides the unbounded blocking FIFO that hands typed
// messages from the receive loop to operating-mode consumers.
package queue

import (
	"sync"

	"github.com/tindron/ssdp/internal/message"
)

// Queue is an unbounded FIFO of typed SSDP messages with a distinguished
// shutdown sentinel. Push never blocks; Pop blocks until an item or the
// sentinel arrives. Safe for one producer and any number of consumers.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond
	// items holds entries in receipt order. A nil entry is the shutdown
	// sentinel: it occupies its own FIFO position, so messages pushed
	// before it drain first and messages pushed after it stay behind it.
	items []message.Message
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a message. It never blocks.
func (q *Queue) Push(m message.Message) {
	q.mu.Lock()
	q.items = append(q.items, m)
	q.mu.Unlock()
	q.cond.Signal()
}

// Shutdown enqueues the shutdown sentinel. Messages already buffered are
// delivered first; a consumer blocked in Pop wakes and observes
// ok == false as soon as the sentinel reaches the head, regardless of
// traffic pushed after it.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	q.items = append(q.items, nil)
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Pop removes and returns the oldest entry. It blocks until a message
// or the shutdown sentinel is available. ok is false when the sentinel
// was consumed; the returned message is nil in that case and the
// consumer must stop consuming.
func (q *Queue) Pop() (m message.Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	m = q.items[0]
	q.items = q.items[1:]
	if m == nil {
		return nil, false
	}
	return m, true
}

// Drain removes and returns every buffered message without blocking,
// in receipt order. Pending sentinels keep their relative order.
func (q *Queue) Drain() []message.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	var drained, rest []message.Message
	for _, m := range q.items {
		if m == nil {
			rest = append(rest, nil)
			continue
		}
		drained = append(drained, m)
	}
	q.items = rest
	return drained
}

// Len reports the number of buffered messages, sentinels excluded.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, m := range q.items {
		if m != nil {
			n++
		}
	}
	return n
}
