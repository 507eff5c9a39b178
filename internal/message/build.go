package message

import (
	"fmt"
	"strings"
)

// cacheControl is the advertised max-age for alive announcements and
// search responses (UPnP Device Architecture 1.1 §1.2.2 CACHE-CONTROL).
const cacheControl = "max-age=120"

// DeriveUSN produces the unique service name for a notification or
// search response about target.
//
// UPnP Device Architecture 1.1 §1.2.2: announcements keyed by the
// device UUID use the bare UUID as USN; every other target is scoped
// under the root device as "<root name>::<target>".
func DeriveUSN(target, rootName string) string {
	if strings.HasPrefix(target, "uuid:") {
		return target
	}
	return rootName + "::" + target
}

// BuildAlive renders an ssdp:alive NOTIFY datagram.
//
// Header order is fixed so the output is byte-exact and testable:
// HOST, CACHE-CONTROL, LOCATION, NT, NTS, SERVER, USN.
func BuildAlive(host, location, nt, usn, server string) []byte {
	var b strings.Builder
	b.WriteString("NOTIFY * HTTP/1.1\r\n")
	writeHeader(&b, "HOST", host)
	writeHeader(&b, "CACHE-CONTROL", cacheControl)
	writeHeader(&b, "LOCATION", location)
	writeHeader(&b, "NT", nt)
	writeHeader(&b, "NTS", "ssdp:alive")
	writeHeader(&b, "SERVER", server)
	writeHeader(&b, "USN", usn)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// BuildByeBye renders an ssdp:byebye NOTIFY datagram.
//
// UPnP Device Architecture 1.1 §1.2.3: byebye carries no LOCATION,
// CACHE-CONTROL, or SERVER header.
func BuildByeBye(host, nt, usn string) []byte {
	var b strings.Builder
	b.WriteString("NOTIFY * HTTP/1.1\r\n")
	writeHeader(&b, "HOST", host)
	writeHeader(&b, "NT", nt)
	writeHeader(&b, "NTS", "ssdp:byebye")
	writeHeader(&b, "USN", usn)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// BuildResponse renders the unicast HTTP/1.1 200 OK answer to an
// M-SEARCH (UPnP Device Architecture 1.1 §1.3.3). The EXT header is
// required and empty; Content-Length is always 0 since SSDP responses
// carry no body.
func BuildResponse(location, st, usn, server string) []byte {
	var b strings.Builder
	b.WriteString("HTTP/1.1 200 OK\r\n")
	writeHeader(&b, "CACHE-CONTROL", cacheControl)
	writeHeader(&b, "EXT", "")
	writeHeader(&b, "LOCATION", location)
	writeHeader(&b, "SERVER", server)
	writeHeader(&b, "ST", st)
	writeHeader(&b, "NTS", "ssdp:alive")
	writeHeader(&b, "USN", usn)
	writeHeader(&b, "Content-Length", "0")
	b.WriteString("\r\n")
	return []byte(b.String())
}

// BuildSearch renders an M-SEARCH request for st with the given MX
// wait bound in seconds (UPnP Device Architecture 1.1 §1.3.2).
func BuildSearch(host, st string, mx int) []byte {
	var b strings.Builder
	b.WriteString("M-SEARCH * HTTP/1.1\r\n")
	writeHeader(&b, "HOST", host)
	writeHeader(&b, "MAN", `"ssdp:discover"`)
	writeHeader(&b, "MX", fmt.Sprintf("%d", mx))
	writeHeader(&b, "ST", st)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}
