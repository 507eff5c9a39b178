package ssdp

import (
	"github.com/tindron/ssdp/internal/errors"
	"github.com/tindron/ssdp/internal/message"
)

// Message is the closed set of typed SSDP messages delivered by the
// engine: *Notification, *SearchResponse, or *SearchRequest. Dispatch
// with a type switch over exactly those three.
type Message = message.Message

// Notification is a parsed NOTIFY announcement (ssdp:alive or
// ssdp:byebye).
type Notification = message.Notification

// SearchResponse is a parsed answer to one of our M-SEARCH requests.
type SearchResponse = message.SearchResponse

// SearchRequest is a parsed M-SEARCH from a remote control point,
// surfaced while advertising.
type SearchRequest = message.SearchRequest

// SocketError reports a fatal failure on the shared multicast socket.
type SocketError = errors.SocketError

// UnknownMessageError reports a datagram that is none of the three SSDP
// message shapes. It never escapes the receive loop; it is exported for
// callers classifying raw datagrams themselves.
type UnknownMessageError = errors.UnknownMessageError
