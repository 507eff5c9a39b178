package message

import (
	"net"
	"strconv"
	"strings"

	"github.com/tindron/ssdp/internal/errors"
)

// Header names extracted by the codec. SSDP senders emit upper-case
// names; parsing is case-sensitive on names as sent.
const (
	headerNT       = "NT"
	headerNTS      = "NTS"
	headerST       = "ST"
	headerUSN      = "USN"
	headerLocation = "LOCATION"
	headerMX       = "MX"
)

// Classify parses a raw SSDP datagram into one of the three typed
// messages based on its first line:
//
//	NOTIFY *   -> *Notification
//	HTTP/...   -> *SearchResponse
//	M-SEARCH * -> *SearchRequest
//
// Anything else fails with an *errors.UnknownMessageError carrying the
// first line for diagnostics. src, when non-nil, supplies the
// originating host and port recorded on the message.
func Classify(data []byte, src *net.UDPAddr) (Message, error) {
	lines := strings.Split(string(data), "\r\n")
	start := strings.TrimSpace(lines[0])
	headers := parseHeaders(lines[1:])

	host, port := splitSource(src)

	switch {
	case strings.HasPrefix(start, "NOTIFY *"):
		return &Notification{
			Type:     headers[headerNT],
			Status:   headers[headerNTS],
			USN:      headers[headerUSN],
			Location: headers[headerLocation],
			Headers:  headers,
			Host:     host,
			Port:     port,
		}, nil

	case strings.HasPrefix(start, "HTTP/"):
		return &SearchResponse{
			Target:   headers[headerST],
			USN:      headers[headerUSN],
			Location: headers[headerLocation],
			Headers:  headers,
			Host:     host,
			Port:     port,
		}, nil

	case strings.HasPrefix(start, "M-SEARCH *"):
		return &SearchRequest{
			Target:  headers[headerST],
			MaxWait: parseMX(headers[headerMX]),
			Headers: headers,
			Host:    host,
			Port:    port,
		}, nil
	}

	return nil, &errors.UnknownMessageError{StartLine: start}
}

// parseHeaders reads "Name: value" lines up to the blank line that
// terminates the header block. Names are kept exactly as sent; header
// order does not matter. Lines without a colon are ignored.
func parseHeaders(lines []string) map[string]string {
	headers := make(map[string]string, len(lines))
	for _, line := range lines {
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers
}

// parseMX reads the MX header, defaulting to 1 when absent or garbage
// so a responder always has a usable wait bound.
func parseMX(raw string) int {
	mx, err := strconv.Atoi(raw)
	if err != nil || mx < 1 {
		return 1
	}
	return mx
}

func splitSource(src *net.UDPAddr) (string, int) {
	if src == nil {
		return "", 0
	}
	return src.IP.String(), src.Port
}
