package ssdp

import (
	"context"
	goerrors "errors"
	"net"

	"go.uber.org/zap"

	"github.com/tindron/ssdp/internal/message"
	"github.com/tindron/ssdp/internal/queue"
	"github.com/tindron/ssdp/internal/transport"
)

// listener is the handle for the background receive loop.
type listener struct {
	done   chan struct{} // closed by stop()
	exited chan struct{} // closed when the loop goroutine returns
}

func (l *listener) stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// alive reports whether the loop goroutine is still running.
func (l *listener) alive() bool {
	select {
	case <-l.exited:
		return false
	default:
		return true
	}
}

// startListening starts the receive loop if none is running. Idempotent:
// a live loop is reused, never duplicated.
func (e *Engine) startListening() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listener != nil && e.listener.alive() {
		return
	}
	l := &listener{
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	e.listener = l
	go e.runListener(l, e.tr, e.queue)
}

// maxReceiveFailures bounds consecutive receive errors before the loop
// gives up. A dead socket otherwise spins the loop hot; any success
// resets the count.
const maxReceiveFailures = 5

// runListener is the receive loop: block on a fixed-size read, classify
// the datagram, log a debug summary, and enqueue the typed message. A
// bad datagram never terminates the loop; only stop(), the socket
// closing, or persistent receive failure does.
func (e *Engine) runListener(l *listener, tr transport.Transport, q *queue.Queue) {
	defer close(l.exited)
	failures := 0
	for {
		packet, src, err := tr.Receive(context.Background())
		if err != nil {
			select {
			case <-l.done:
				return
			default:
			}
			if goerrors.Is(err, net.ErrClosed) {
				return
			}
			failures++
			if failures >= maxReceiveFailures {
				e.log.Warn("receive failing persistently, stopping listener",
					zap.Error(err),
					zap.Int("consecutive", failures),
				)
				return
			}
			e.log.Debug("receive failed", zap.Error(err))
			continue
		}
		failures = 0

		msg, err := message.Classify(packet, udpAddr(src))
		if err != nil {
			e.log.Warn("dropping unparseable datagram",
				zap.Error(err),
				zap.Stringer("from", src),
			)
			continue
		}

		e.logMessage(msg)
		q.Push(msg)
	}
}

// logMessage emits the per-datagram debug line. The type switch is
// exhaustive over the closed message set.
func (e *Engine) logMessage(msg Message) {
	switch m := msg.(type) {
	case *message.Notification:
		e.log.Debug("notification received",
			zap.String("host", m.Host),
			zap.Int("port", m.Port),
			zap.String("nt", m.Type),
			zap.String("nts", m.Status),
		)
	case *message.SearchResponse:
		e.log.Debug("search response received",
			zap.String("host", m.Host),
			zap.Int("port", m.Port),
			zap.String("st", m.Target),
		)
	case *message.SearchRequest:
		e.log.Debug("search request received",
			zap.String("host", m.Host),
			zap.Int("port", m.Port),
			zap.String("st", m.Target),
		)
	}
}

func udpAddr(addr net.Addr) *net.UDPAddr {
	if u, ok := addr.(*net.UDPAddr); ok {
		return u
	}
	return nil
}
