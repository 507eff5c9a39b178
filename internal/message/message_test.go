package message

import (
	goerrors "errors"
	"net"
	"strings"
	"testing"

	ssdperrors "github.com/tindron/ssdp/internal/errors"
)

const testHost = "239.255.255.250:1900"

// TestClassify_RoundTripAlive verifies classify(build(x)) == x for the
// alive NOTIFY shape.
func TestClassify_RoundTripAlive(t *testing.T) {
	raw := BuildAlive(
		testHost,
		"http://192.168.1.20:8080/description",
		"urn:schemas-upnp-org:device:MediaServer:1",
		"uuid:3c202906-992d-3f0f-b94c-90b1902a3d28::urn:schemas-upnp-org:device:MediaServer:1",
		"Tindron/1.0.0",
	)

	msg, err := Classify(raw, nil)
	if err != nil {
		t.Fatalf("Classify() error = %v, want nil", err)
	}

	n, ok := msg.(*Notification)
	if !ok {
		t.Fatalf("Classify() = %T, want *Notification", msg)
	}

	if got, want := n.Type, "urn:schemas-upnp-org:device:MediaServer:1"; got != want {
		t.Errorf("Type = %q, want %q", got, want)
	}
	if got, want := n.Status, "ssdp:alive"; got != want {
		t.Errorf("Status = %q, want %q", got, want)
	}
	if got, want := n.Location, "http://192.168.1.20:8080/description"; got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	if !strings.HasPrefix(n.USN, "uuid:") {
		t.Errorf("USN = %q, want uuid: prefix", n.USN)
	}
	if got, want := n.Headers["SERVER"], "Tindron/1.0.0"; got != want {
		t.Errorf("Headers[SERVER] = %q, want %q", got, want)
	}
}

// TestClassify_RoundTripByeBye verifies the byebye NOTIFY shape carries
// no LOCATION and parses back with byebye status.
func TestClassify_RoundTripByeBye(t *testing.T) {
	raw := BuildByeBye(testHost, "upnp:rootdevice", "uuid:1234::upnp:rootdevice")

	if strings.Contains(string(raw), "LOCATION") {
		t.Fatalf("BuildByeBye() output contains LOCATION header:\n%s", raw)
	}
	if strings.Contains(string(raw), "CACHE-CONTROL") {
		t.Fatalf("BuildByeBye() output contains CACHE-CONTROL header:\n%s", raw)
	}

	msg, err := Classify(raw, nil)
	if err != nil {
		t.Fatalf("Classify() error = %v, want nil", err)
	}

	n, ok := msg.(*Notification)
	if !ok {
		t.Fatalf("Classify() = %T, want *Notification", msg)
	}
	if got, want := n.Status, "ssdp:byebye"; got != want {
		t.Errorf("Status = %q, want %q", got, want)
	}
	if n.Location != "" {
		t.Errorf("Location = %q, want empty", n.Location)
	}
}

// TestClassify_RoundTripResponse verifies the 200 OK response shape.
func TestClassify_RoundTripResponse(t *testing.T) {
	raw := BuildResponse(
		"http://192.168.1.20:8080/description",
		"upnp:rootdevice",
		"uuid:1234::upnp:rootdevice",
		"Tindron/1.0.0",
	)

	msg, err := Classify(raw, &net.UDPAddr{IP: net.ParseIP("192.168.1.20"), Port: 50000})
	if err != nil {
		t.Fatalf("Classify() error = %v, want nil", err)
	}

	r, ok := msg.(*SearchResponse)
	if !ok {
		t.Fatalf("Classify() = %T, want *SearchResponse", msg)
	}
	if got, want := r.Target, "upnp:rootdevice"; got != want {
		t.Errorf("Target = %q, want %q", got, want)
	}
	if got, want := r.USN, "uuid:1234::upnp:rootdevice"; got != want {
		t.Errorf("USN = %q, want %q", got, want)
	}
	if got, want := r.Host, "192.168.1.20"; got != want {
		t.Errorf("Host = %q, want %q", got, want)
	}
	if got, want := r.Port, 50000; got != want {
		t.Errorf("Port = %d, want %d", got, want)
	}
	if got, want := r.Headers["Content-Length"], "0"; got != want {
		t.Errorf("Headers[Content-Length] = %q, want %q", got, want)
	}
}

// TestClassify_RoundTripSearch verifies the M-SEARCH shape including
// the mandatory quoted MAN value.
func TestClassify_RoundTripSearch(t *testing.T) {
	raw := BuildSearch(testHost, "ssdp:all", 3)

	if !strings.Contains(string(raw), "MAN: \"ssdp:discover\"\r\n") {
		t.Fatalf("BuildSearch() missing quoted MAN header:\n%s", raw)
	}

	msg, err := Classify(raw, nil)
	if err != nil {
		t.Fatalf("Classify() error = %v, want nil", err)
	}

	s, ok := msg.(*SearchRequest)
	if !ok {
		t.Fatalf("Classify() = %T, want *SearchRequest", msg)
	}
	if got, want := s.Target, "ssdp:all"; got != want {
		t.Errorf("Target = %q, want %q", got, want)
	}
	if got, want := s.MaxWait, 3; got != want {
		t.Errorf("MaxWait = %d, want %d", got, want)
	}
}

// TestClassify_Unknown verifies garbage first lines fail with
// UnknownMessageError carrying the offending line.
func TestClassify_Unknown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "GET / HTTP/1.1\r\n\r\n"},
		{name: "empty", raw: ""},
		{name: "binary", raw: "\x00\x01\x02"},
		{name: "notify method with suffix", raw: "NOTIFYX * HTTP/1.1\r\n\r\n"},
		{name: "msearch method with suffix", raw: "M-SEARCHX * HTTP/1.1\r\n\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify([]byte(tt.raw), nil)
			if err == nil {
				t.Fatal("Classify() error = nil, want UnknownMessageError")
			}
			var unknownErr *ssdperrors.UnknownMessageError
			if !goerrors.As(err, &unknownErr) {
				t.Fatalf("Classify() error = %T, want *UnknownMessageError", err)
			}
		})
	}
}

// TestClassify_HeaderOrdering verifies parsing tolerates arbitrary
// header ordering and keeps names case-sensitive as sent.
func TestClassify_HeaderOrdering(t *testing.T) {
	raw := "NOTIFY * HTTP/1.1\r\n" +
		"USN: uuid:abcd\r\n" +
		"NTS: ssdp:alive\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"NT: uuid:abcd\r\n" +
		"X-Custom: kept-as-sent\r\n" +
		"\r\n"

	msg, err := Classify([]byte(raw), nil)
	if err != nil {
		t.Fatalf("Classify() error = %v, want nil", err)
	}

	n := msg.(*Notification)
	if got, want := n.Type, "uuid:abcd"; got != want {
		t.Errorf("Type = %q, want %q", got, want)
	}
	if got, want := n.Headers["X-Custom"], "kept-as-sent"; got != want {
		t.Errorf("Headers[X-Custom] = %q, want %q", got, want)
	}
	if _, ok := n.Headers["x-custom"]; ok {
		t.Error("header name was case-folded, want as-sent")
	}
}

// TestParseMX verifies the MX default of 1 for absent or garbage values.
func TestParseMX(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "3", want: 3},
		{raw: "", want: 1},
		{raw: "zero", want: 1},
		{raw: "0", want: 1},
		{raw: "-2", want: 1},
	}

	for _, tt := range tests {
		if got := parseMX(tt.raw); got != tt.want {
			t.Errorf("parseMX(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

// TestDeriveUSN verifies the unique-name derivation rule.
func TestDeriveUSN(t *testing.T) {
	tests := []struct {
		name   string
		target string
		root   string
		want   string
	}{
		{
			name:   "uuid target uses device name",
			target: "uuid:device-1234",
			root:   "uuid:root-0000",
			want:   "uuid:device-1234",
		},
		{
			name:   "root device scoped under root name",
			target: "upnp:rootdevice",
			root:   "uuid:root-0000",
			want:   "uuid:root-0000::upnp:rootdevice",
		},
		{
			name:   "service urn scoped under root name",
			target: "urn:schemas-upnp-org:service:ContentDirectory:1",
			root:   "uuid:root-0000",
			want:   "uuid:root-0000::urn:schemas-upnp-org:service:ContentDirectory:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveUSN(tt.target, tt.root); got != tt.want {
				t.Errorf("DeriveUSN(%q, %q) = %q, want %q", tt.target, tt.root, got, tt.want)
			}
		})
	}
}
