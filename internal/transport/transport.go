// Package transport owns the shared multicast UDP socket used by the
// SSDP engine.
//
// One socket carries both halves of the protocol: operating modes write
// searches, notifications, and responses through it while the receive
// loop reads from it. UDP send and receive are independent operations
// on the same handle, so no locking is layered on top.
package transport

import (
	"context"
	"net"
)

// Transport abstracts the multicast socket for sending and receiving
// SSDP datagrams. The production implementation is UDPv4Transport;
// tests substitute in-memory fakes.
type Transport interface {
	// Send transmits a datagram to dest, typically the multicast
	// group for searches and notifications or a unicast peer for
	// search responses.
	Send(ctx context.Context, packet []byte, dest net.Addr) error

	// Receive blocks until a datagram arrives and returns its payload
	// and source address. It returns an error once the transport is
	// closed, which is how the receive loop is unblocked on shutdown.
	Receive(ctx context.Context) (packet []byte, src net.Addr, err error)

	// GroupAddr returns the multicast group address this transport
	// joined, used as the destination for multicast sends.
	GroupAddr() *net.UDPAddr

	// Close releases the socket. Closing an already-closed transport
	// is a no-op.
	Close() error
}
