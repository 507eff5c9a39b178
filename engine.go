package ssdp

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tindron/ssdp/internal/errors"
	"github.com/tindron/ssdp/internal/protocol"
	"github.com/tindron/ssdp/internal/queue"
	"github.com/tindron/ssdp/internal/transport"
)

// Engine drives the three SSDP operating modes over one shared
// multicast socket and one background receive loop.
//
// Configuration is set at construction via options and may be adjusted
// through the setters before the first operating-mode call; it must not
// be changed while a mode is running. An Engine holds at most one
// socket and one receive loop at a time: every mode reuses them if
// present and fully releases them before returning, so no resources
// leak across calls.
type Engine struct {
	mu             sync.Mutex
	broadcast      string
	port           int
	ttl            int
	timeout        time.Duration
	notifyInterval time.Duration
	log            *zap.Logger

	// dial opens the shared socket; replaced by tests with in-memory
	// transports.
	dial func() (transport.Transport, error)

	tr       transport.Transport
	listener *listener
	queue    *queue.Queue
}

// New creates an Engine with the protocol defaults: broadcast address
// 239.255.255.250, port 1900, TTL 4, response timeout 1 second.
func New(opts ...Option) *Engine {
	e := &Engine{
		broadcast:      protocol.MulticastAddrIPv4,
		port:           protocol.Port,
		ttl:            protocol.DefaultTTL,
		timeout:        protocol.DefaultTimeoutSeconds * time.Second,
		notifyInterval: 60 * time.Second,
		log:            zap.NewNop(),
		queue:          queue.New(),
	}
	e.dial = func() (transport.Transport, error) {
		return transport.NewUDPv4Transport(e.broadcast, e.port, e.ttl)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BroadcastAddress returns the configured multicast group address.
func (e *Engine) BroadcastAddress() string { return e.broadcast }

// Port returns the configured SSDP port.
func (e *Engine) Port() int { return e.port }

// TTL returns the configured multicast/unicast TTL.
func (e *Engine) TTL() int { return e.ttl }

// Timeout returns the configured response collection window.
func (e *Engine) Timeout() time.Duration { return e.timeout }

// SetBroadcastAddress changes the multicast group address. Only valid
// before an operating mode is started.
func (e *Engine) SetBroadcastAddress(addr string) { e.broadcast = addr }

// SetPort changes the SSDP port. Only valid before an operating mode is
// started.
func (e *Engine) SetPort(port int) { e.port = port }

// SetTTL changes the multicast/unicast TTL. Only valid before an
// operating mode is started.
func (e *Engine) SetTTL(ttl int) { e.ttl = ttl }

// SetTimeout changes the response collection window. Only valid before
// an operating mode is started.
func (e *Engine) SetTimeout(d time.Duration) { e.timeout = d }

// hostHeader is the HOST value carried on every multicast message.
func (e *Engine) hostHeader() string {
	return net.JoinHostPort(e.broadcast, strconv.Itoa(e.port))
}

// serverHeader renders root's identity for the SERVER header.
func serverHeader(root RootDevice) string {
	return root.Kind() + "/" + root.Version()
}

// descriptionURL is the LOCATION advertised for the device tree served
// from host:port.
func descriptionURL(host string, port int) string {
	return fmt.Sprintf("http://%s:%d/description", host, port)
}

// openSocket lazily creates the shared socket. A socket already held by
// a running mode is reused, never duplicated.
func (e *Engine) openSocket() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tr != nil {
		return nil
	}
	tr, err := e.dial()
	if err != nil {
		return err
	}
	e.tr = tr
	return nil
}

// currentQueue returns the live handoff queue. Modes capture it once so
// a later reset cannot swap it out from under a blocked consumer.
func (e *Engine) currentQueue() *queue.Queue {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue
}

// send writes one datagram through the shared socket. A nil dest means
// the multicast group.
func (e *Engine) send(ctx context.Context, packet []byte, dest net.Addr) error {
	e.mu.Lock()
	tr := e.tr
	e.mu.Unlock()
	if tr == nil {
		return &errors.SocketError{
			Operation: "send datagram",
			Err:       net.ErrClosed,
			Details:   "socket not open",
		}
	}
	if dest == nil {
		dest = tr.GroupAddr()
	}
	return tr.Send(ctx, packet, dest)
}

// teardown releases everything a mode acquired: it stops the receive
// loop, closes the socket, waits for the loop goroutine to exit, and
// replaces the handoff queue with a fresh instance so stale messages
// never survive into the next mode invocation. Every mode defers it, so
// cleanup runs on error and panic paths too. Idempotent.
func (e *Engine) teardown() {
	e.mu.Lock()
	l := e.listener
	tr := e.tr
	e.listener = nil
	e.tr = nil
	e.mu.Unlock()

	if l != nil {
		l.stop()
	}
	if tr != nil {
		// Closing the socket unblocks the loop's pending read.
		_ = tr.Close()
	}
	if l != nil {
		<-l.exited
	}

	e.mu.Lock()
	e.queue = queue.New()
	e.mu.Unlock()
}
