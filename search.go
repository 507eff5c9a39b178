package ssdp

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tindron/ssdp/internal/message"
)

// Search multicasts one M-SEARCH per resolved target and returns the
// messages received within the configured timeout, in receipt order.
//
// With no targets, a single "ssdp:all" search is sent. A raw target
// with an unrecognized shape is skipped silently. Responses arriving
// after the window closes are never collected.
//
// The socket and receive loop are released before Search returns,
// whether it returns the collection or a fatal socket error.
func (e *Engine) Search(ctx context.Context, targets ...SearchTarget) ([]Message, error) {
	if err := e.openSocket(); err != nil {
		return nil, err
	}
	defer e.teardown()

	host := e.hostHeader()
	mx := searchMX(e.timeout)

	if len(targets) == 0 {
		targets = []SearchTarget{All()}
	}
	for _, target := range targets {
		st, ok := target.resolve()
		if !ok {
			e.log.Debug("skipping malformed search target")
			continue
		}
		e.log.Debug("sending search", zap.String("st", st))
		if err := e.send(ctx, message.BuildSearch(host, st, mx), nil); err != nil {
			return nil, err
		}
	}

	e.startListening()

	select {
	case <-ctx.Done():
	case <-time.After(e.timeout):
	}

	return e.currentQueue().Drain(), nil
}

// searchMX maps the collection window to the MX header: whole seconds,
// at least 1 (UPnP Device Architecture 1.1 §1.3.2).
func searchMX(timeout time.Duration) int {
	mx := int(timeout / time.Second)
	if mx < 1 {
		mx = 1
	}
	return mx
}
