package ssdp

import (
	"time"

	"go.uber.org/zap"
)

// Option configures an Engine at construction. Options follow the
// functional options pattern so new knobs can be added without breaking
// callers.
type Option func(*Engine)

// WithBroadcastAddress overrides the multicast group address
// (default 239.255.255.250).
func WithBroadcastAddress(addr string) Option {
	return func(e *Engine) { e.broadcast = addr }
}

// WithPort overrides the SSDP port (default 1900).
func WithPort(port int) Option {
	return func(e *Engine) { e.port = port }
}

// WithTTL overrides the multicast and unicast TTL (default 4).
func WithTTL(ttl int) Option {
	return func(e *Engine) { e.ttl = ttl }
}

// WithTimeout overrides the response collection window used by Search
// and handlerless Discover (default 1 second). The window also feeds
// the MX header on outgoing searches.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithNotifyInterval overrides the cadence of alive announcements while
// advertising (default 60 seconds).
func WithNotifyInterval(d time.Duration) Option {
	return func(e *Engine) { e.notifyInterval = d }
}

// WithLogger sets the logging sink. Without one, log calls are no-ops.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}
