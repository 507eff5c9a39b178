// Package errors defines the typed errors shared across the ssdp module.
package errors

import "fmt"

// SocketError reports a failure while creating, configuring, using, or
// closing the shared multicast socket.
//
// Socket setup failures are fatal to the operating-mode call that
// triggered them: they propagate to the caller after cleanup, they are
// never retried.
type SocketError struct {
	// Operation is the socket operation that failed, e.g. "join multicast group".
	Operation string

	// Err is the underlying error.
	Err error

	// Details carries extra diagnostic context, e.g. the address involved.
	Details string
}

func (e *SocketError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ssdp: %s: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("ssdp: %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *SocketError) Unwrap() error { return e.Err }

// UnknownMessageError reports a datagram whose first line is none of
// NOTIFY, M-SEARCH, or an HTTP status line.
//
// It is raised by the message codec and caught at the receive-loop
// boundary: the datagram is logged and dropped, the loop continues.
type UnknownMessageError struct {
	// StartLine is the offending first line, kept for diagnostics.
	StartLine string
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("ssdp: unknown message type %q", e.StartLine)
}
