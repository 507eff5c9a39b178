package ssdp

import (
	"context"
	"time"
)

// Discover listens passively for SSDP traffic on the multicast group.
//
// With a handler, every received message is forwarded to it one at a
// time in receipt order, and Discover blocks until ctx is cancelled —
// it never returns normally. The returned error is ctx.Err().
//
// With a nil handler, Discover behaves like Search's collection phase:
// it listens for the configured timeout and returns everything that
// arrived, of any of the three message kinds. Callers typically filter
// for *Notification.
//
// Either way the socket and receive loop are released before Discover
// returns, including when the handler panics.
func (e *Engine) Discover(ctx context.Context, handler func(Message)) ([]Message, error) {
	if err := e.openSocket(); err != nil {
		return nil, err
	}
	defer e.teardown()

	e.startListening()

	if handler == nil {
		select {
		case <-ctx.Done():
		case <-time.After(e.timeout):
		}
		return e.currentQueue().Drain(), nil
	}

	q := e.currentQueue()

	// Cancellation wakes the blocked Pop via the shutdown sentinel.
	stop := context.AfterFunc(ctx, q.Shutdown)
	defer stop()

	for {
		msg, ok := q.Pop()
		if !ok {
			return nil, ctx.Err()
		}
		handler(msg)
	}
}
