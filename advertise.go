package ssdp

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tindron/ssdp/internal/message"
	"github.com/tindron/ssdp/internal/protocol"
	"github.com/tindron/ssdp/internal/queue"
)

// Advertise announces root on every given host and answers incoming
// searches for it until ctx is cancelled.
//
// Two background tasks run alongside the receive loop: a notify loop
// that re-announces the device tree every notify interval (default 60
// seconds, one cycle immediately on start), and a search responder that
// answers M-SEARCH requests for the root device or for matching child
// device types. port is where the description document is served; the
// advertised LOCATION is "http://<host>:<port>/description".
//
// Advertise blocks until ctx is cancelled and then tears down in order:
// queue sentinel first so the responder's blocked pop wakes, then the
// notify loop, then the receive loop and socket.
func (e *Engine) Advertise(ctx context.Context, root RootDevice, port int, hosts ...string) error {
	if root == nil {
		return fmt.Errorf("ssdp: advertise: root device is nil")
	}
	if err := e.openSocket(); err != nil {
		return err
	}
	defer e.teardown()

	e.startListening()

	loopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := e.currentQueue()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		e.notifyLoop(loopCtx, root, port, hosts)
	}()
	go func() {
		defer wg.Done()
		e.respondLoop(loopCtx, q, root, port, hosts)
	}()

	<-ctx.Done()

	q.Shutdown()
	cancel()
	wg.Wait()
	return ctx.Err()
}

// ByeBye withdraws root from the network: for each host it sends byebye
// notifications for the root device, every child device by name and by
// type URN, and every service by type URN. It is a pure send operation;
// no receive loop is started. The socket is released before returning.
func (e *Engine) ByeBye(root RootDevice, hosts ...string) error {
	if root == nil {
		return fmt.Errorf("ssdp: byebye: root device is nil")
	}
	if err := e.openSocket(); err != nil {
		return err
	}
	defer e.teardown()

	ctx := context.Background()
	host := e.hostHeader()
	for range hosts {
		for _, nt := range notifyTargets(root) {
			usn := message.DeriveUSN(nt, root.Name())
			if err := e.send(ctx, message.BuildByeBye(host, nt, usn), nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// notifyLoop announces the full device tree immediately and then every
// notify interval until cancelled.
func (e *Engine) notifyLoop(ctx context.Context, root RootDevice, port int, hosts []string) {
	ticker := time.NewTicker(e.notifyInterval)
	defer ticker.Stop()
	for {
		e.notifyAll(ctx, root, port, hosts)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// notifyAll sends one announcement cycle: per host, an alive NOTIFY for
// the root device, for each child device by name and by type URN, and
// for each service by type URN. Send failures are logged and the cycle
// continues; the loop owns no way to fail the blocked Advertise call.
func (e *Engine) notifyAll(ctx context.Context, root RootDevice, port int, hosts []string) {
	host := e.hostHeader()
	server := serverHeader(root)
	for _, h := range hosts {
		location := descriptionURL(h, port)
		for _, nt := range notifyTargets(root) {
			usn := message.DeriveUSN(nt, root.Name())
			if err := e.send(ctx, message.BuildAlive(host, location, nt, usn, server), nil); err != nil {
				e.log.Warn("notify send failed",
					zap.String("nt", nt),
					zap.Error(err),
				)
			}
		}
	}
}

// notifyTargets is the announcement set for one host: root device,
// child devices keyed by both name and type URN, services keyed by type
// URN. Count = 1 + 2*|devices| + |services|.
func notifyTargets(root RootDevice) []string {
	targets := []string{protocol.TargetRootDevice}
	for _, d := range root.Devices() {
		targets = append(targets, d.Name(), d.TypeURN())
	}
	for _, s := range root.Services() {
		targets = append(targets, s.TypeURN())
	}
	return targets
}

// respondLoop consumes the handoff queue while advertising and answers
// search requests. It exits when the shutdown sentinel arrives.
func (e *Engine) respondLoop(ctx context.Context, q *queue.Queue, root RootDevice, port int, hosts []string) {
	for {
		msg, ok := q.Pop()
		if !ok {
			return
		}
		switch m := msg.(type) {
		case *message.SearchRequest:
			e.respondToSearch(ctx, m, root, port, hosts)
		case *message.Notification, *message.SearchResponse:
			// Other stacks' traffic; nothing to answer.
		}
	}
}

// respondToSearch answers one M-SEARCH.
//
// A target under the device schema prefix (trailing colon included, so
// "urn:schemas-upnp-org:deviceXYZ" does not match) is answered with one
// response per matching child device per host. "upnp:rootdevice" gets
// one root-identity response per host. Anything else is logged as
// unhandled.
func (e *Engine) respondToSearch(ctx context.Context, req *message.SearchRequest, root RootDevice, port int, hosts []string) {
	dest := &net.UDPAddr{IP: net.ParseIP(req.Host), Port: req.Port}
	server := serverHeader(root)

	switch {
	case strings.HasPrefix(req.Target, protocol.DeviceSchemaPrefix):
		for _, d := range root.Devices() {
			if d.TypeURN() != req.Target {
				continue
			}
			usn := message.DeriveUSN(req.Target, root.Name())
			for _, h := range hosts {
				resp := message.BuildResponse(descriptionURL(h, port), req.Target, usn, server)
				if err := e.send(ctx, resp, dest); err != nil {
					e.log.Warn("search response send failed", zap.Error(err))
				}
			}
		}

	case req.Target == protocol.TargetRootDevice:
		usn := message.DeriveUSN(protocol.TargetRootDevice, root.Name())
		for _, h := range hosts {
			resp := message.BuildResponse(descriptionURL(h, port), req.Target, usn, server)
			if err := e.send(ctx, resp, dest); err != nil {
				e.log.Warn("search response send failed", zap.Error(err))
			}
		}

	default:
		e.log.Debug("unhandled search target", zap.String("st", req.Target))
	}
}
