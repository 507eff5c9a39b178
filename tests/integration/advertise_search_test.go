// Package integration exercises the full receive-classify-respond path
// against a live UDP socket: a unicast M-SEARCH sent to a running
// advertiser must come back as a well-formed search response.
//
// Unicast is used deliberately: the engine disables multicast loopback,
// so a same-host multicast search would never reach it.
package integration

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/tindron/ssdp"
)

const testPort = 19517

type service struct{ urn string }

func (s service) TypeURN() string { return s.urn }

type device struct {
	name     string
	urn      string
	devices  []ssdp.Device
	services []ssdp.Service
}

func (d device) Name() string             { return d.name }
func (d device) TypeURN() string          { return d.urn }
func (d device) Devices() []ssdp.Device   { return d.devices }
func (d device) Services() []ssdp.Service { return d.services }

type rootDevice struct{ device }

func (rootDevice) Version() string { return "1.0.0" }
func (rootDevice) Kind() string    { return "Tindron" }

func TestAdvertiserAnswersUnicastSearch(t *testing.T) {
	root := rootDevice{device: device{
		name: "uuid:integration-root",
		urn:  "urn:schemas-upnp-org:device:MediaServer:1",
		services: []ssdp.Service{
			service{urn: "urn:schemas-upnp-org:service:ContentDirectory:1"},
		},
	}}

	engine := ssdp.New(
		ssdp.WithPort(testPort),
		ssdp.WithNotifyInterval(time.Hour),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	advErr := make(chan error, 1)
	go func() {
		advErr <- engine.Advertise(ctx, root, 8080, "192.0.2.10")
	}()

	// Give the advertiser time to bind; bail out if its socket failed.
	select {
	case err := <-advErr:
		t.Skipf("multicast socket unavailable in this environment: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	conn, err := net.Dial("udp4", fmt.Sprintf("127.0.0.1:%d", testPort))
	if err != nil {
		t.Fatalf("failed to dial advertiser: %v", err)
	}
	defer conn.Close()

	search := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: 239.255.255.250:1900\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"MX: 1\r\n" +
		"ST: upnp:rootdevice\r\n" +
		"\r\n"
	if _, err := conn.Write([]byte(search)); err != nil {
		t.Fatalf("failed to send M-SEARCH: %v", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("failed to set read deadline: %v", err)
	}
	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("no search response within deadline: %v", err)
	}

	resp := string(buf[:n])
	if !strings.HasPrefix(resp, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("response is not an HTTP 200:\n%s", resp)
	}
	if !strings.Contains(resp, "ST: upnp:rootdevice\r\n") {
		t.Errorf("response missing root device ST:\n%s", resp)
	}
	if !strings.Contains(resp, "USN: uuid:integration-root::upnp:rootdevice\r\n") {
		t.Errorf("response missing root identity USN:\n%s", resp)
	}
	if !strings.Contains(resp, "LOCATION: http://192.0.2.10:8080/description\r\n") {
		t.Errorf("response missing advertised location:\n%s", resp)
	}

	cancel()
	select {
	case <-advErr:
	case <-time.After(2 * time.Second):
		t.Fatal("Advertise() did not return after cancellation")
	}
}
