// Package message implements the SSDP message codec.
//
// UPnP Device Architecture 1.1 §1.1: SSDP messages are HTTP-like header
// blocks carried in single UDP datagrams. Three shapes exist on the wire:
//
//   - NOTIFY * HTTP/1.1       — presence announcement (alive or byebye)
//   - HTTP/1.1 200 OK         — unicast answer to an M-SEARCH
//   - M-SEARCH * HTTP/1.1     — multicast search request
//
// Classify turns a raw datagram into exactly one of the three typed
// messages; the Build functions are the byte-exact inverse.
package message

// Message is the closed set of typed SSDP messages. It is implemented
// exactly by *Notification, *SearchResponse, and *SearchRequest;
// consumers dispatch with an exhaustive type switch.
type Message interface {
	// Method returns the wire method that produced the message
	// (NOTIFY, M-SEARCH) or "RESPONSE" for a search response.
	Method() string

	sealed()
}

// Notification is a parsed NOTIFY announcement.
//
// UPnP Device Architecture 1.1 §1.2.2 (alive), §1.2.3 (byebye).
// Immutable once parsed.
type Notification struct {
	// Type is the NT header: the kind of device or service announced.
	Type string

	// Status is the NTS header: "ssdp:alive" or "ssdp:byebye".
	Status string

	// USN is the unique service name of the announced resource.
	USN string

	// Location is the description document URI. Empty on byebye.
	Location string

	// Headers holds every header as sent, names untouched.
	Headers map[string]string

	// Host and Port identify the originating sender.
	Host string
	Port int
}

func (n *Notification) Method() string { return "NOTIFY" }
func (n *Notification) sealed()        {}

// SearchResponse is a parsed HTTP/1.1 200 OK answer to an M-SEARCH.
//
// UPnP Device Architecture 1.1 §1.3.3.
type SearchResponse struct {
	// Target is the ST header echoing the search target matched.
	Target string

	// USN is the unique service name of the responding resource.
	USN string

	// Location is the description document URI.
	Location string

	// Headers holds every header as sent, names untouched.
	Headers map[string]string

	// Host and Port identify the responding sender.
	Host string
	Port int
}

func (r *SearchResponse) Method() string { return "RESPONSE" }
func (r *SearchResponse) sealed()        {}

// SearchRequest is a parsed M-SEARCH request from a remote control point.
//
// UPnP Device Architecture 1.1 §1.3.2.
type SearchRequest struct {
	// Target is the ST header: what the sender is searching for.
	Target string

	// MaxWait is the MX header: the maximum seconds a responder may
	// delay its answer.
	MaxWait int

	// Headers holds every header as sent, names untouched.
	Headers map[string]string

	// Host and Port identify the searching sender.
	Host string
	Port int
}

func (s *SearchRequest) Method() string { return "M-SEARCH" }
func (s *SearchRequest) sealed()        {}
