package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"golang.org/x/net/ipv4"

	"github.com/tindron/ssdp/internal/errors"
	"github.com/tindron/ssdp/internal/protocol"
)

// UDPv4Transport is the production IPv4 multicast transport.
//
// UPnP Device Architecture 1.1 §1.2: SSDP traffic uses the multicast
// group 239.255.255.250 on port 1900. The socket is bound to
// 0.0.0.0:<port>, joined to the group on the default interface, with
// multicast loopback disabled and both multicast and unicast TTL set to
// the configured value.
type UDPv4Transport struct {
	conn     net.PacketConn
	ipv4Conn *ipv4.PacketConn
	group    *net.UDPAddr

	closeOnce sync.Once
	closeErr  error
}

// NewUDPv4Transport creates the shared SSDP socket: bind, group join,
// loopback off, TTL configuration. Any failure tears down the partially
// created socket and returns a *errors.SocketError; multicast setup
// failures are fatal to the calling operation and are not retried.
func NewUDPv4Transport(groupIP string, port, ttl int) (*UDPv4Transport, error) {
	group, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(groupIP, strconv.Itoa(port)))
	if err != nil {
		return nil, &errors.SocketError{
			Operation: "resolve multicast address",
			Err:       err,
			Details:   fmt.Sprintf("%s:%d", groupIP, port),
		}
	}

	// SO_REUSEADDR (and SO_REUSEPORT where supported) so an advertiser
	// can share port 1900 with other SSDP stacks on the host.
	lc := net.ListenConfig{Control: controlSocket}
	conn, err := lc.ListenPacket(context.Background(), "udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(port)))
	if err != nil {
		return nil, &errors.SocketError{
			Operation: "bind socket",
			Err:       err,
			Details:   fmt.Sprintf("0.0.0.0:%d", port),
		}
	}

	p := ipv4.NewPacketConn(conn)

	// Group membership is the broadcast address joined on the
	// wildcard interface, matching the bind address.
	if err := p.JoinGroup(nil, &net.UDPAddr{IP: group.IP}); err != nil {
		_ = conn.Close()
		return nil, &errors.SocketError{
			Operation: "join multicast group",
			Err:       err,
			Details:   group.IP.String(),
		}
	}

	// The engine would otherwise hear its own notifications.
	if err := p.SetMulticastLoopback(false); err != nil {
		_ = conn.Close()
		return nil, &errors.SocketError{
			Operation: "disable multicast loopback",
			Err:       err,
		}
	}

	if err := p.SetMulticastTTL(ttl); err != nil {
		_ = conn.Close()
		return nil, &errors.SocketError{
			Operation: "set multicast TTL",
			Err:       err,
			Details:   fmt.Sprintf("ttl=%d", ttl),
		}
	}

	// Unicast TTL covers the direct search responses.
	if err := p.SetTTL(ttl); err != nil {
		_ = conn.Close()
		return nil, &errors.SocketError{
			Operation: "set unicast TTL",
			Err:       err,
			Details:   fmt.Sprintf("ttl=%d", ttl),
		}
	}

	return &UDPv4Transport{
		conn:     conn,
		ipv4Conn: p,
		group:    group,
	}, nil
}

// Send transmits a single datagram to dest.
func (t *UDPv4Transport) Send(ctx context.Context, packet []byte, dest net.Addr) error {
	select {
	case <-ctx.Done():
		return &errors.SocketError{
			Operation: "send datagram",
			Err:       ctx.Err(),
			Details:   "context done before send",
		}
	default:
	}

	n, err := t.conn.WriteTo(packet, dest)
	if err != nil {
		return &errors.SocketError{
			Operation: "send datagram",
			Err:       err,
			Details:   fmt.Sprintf("%d bytes to %s", len(packet), dest),
		}
	}
	if n != len(packet) {
		return &errors.SocketError{
			Operation: "send datagram",
			Err:       fmt.Errorf("partial write: %d/%d bytes", n, len(packet)),
			Details:   dest.String(),
		}
	}
	return nil
}

// Receive blocks on a fixed-size read and returns a copy of the
// datagram with its source address. Closing the transport unblocks a
// pending Receive with an error.
func (t *UDPv4Transport) Receive(ctx context.Context) ([]byte, net.Addr, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := t.conn.SetReadDeadline(deadline); err != nil {
			return nil, nil, &errors.SocketError{
				Operation: "set read deadline",
				Err:       err,
			}
		}
	}

	buf := make([]byte, protocol.MaxDatagramSize)
	n, src, err := t.conn.ReadFrom(buf)
	if err != nil {
		return nil, nil, &errors.SocketError{
			Operation: "receive datagram",
			Err:       err,
		}
	}
	return buf[:n], src, nil
}

// GroupAddr returns the joined multicast group address.
func (t *UDPv4Transport) GroupAddr() *net.UDPAddr { return t.group }

// LocalAddr returns the bound local address.
func (t *UDPv4Transport) LocalAddr() net.Addr { return t.conn.LocalAddr() }

// Close releases the socket. Safe to call more than once.
func (t *UDPv4Transport) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	t.closeOnce.Do(func() {
		if err := t.conn.Close(); err != nil {
			t.closeErr = &errors.SocketError{
				Operation: "close socket",
				Err:       err,
			}
		}
	})
	return t.closeErr
}
