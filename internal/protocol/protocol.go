// Package protocol defines SSDP wire-protocol constants per the UPnP
// Device Architecture 1.1 §1 (Discovery).
package protocol

// UPnP Device Architecture 1.1 §1.2: SSDP messages are sent to the
// site-local multicast group 239.255.255.250 on port 1900.
const (
	// MulticastAddrIPv4 is the SSDP multicast group address.
	MulticastAddrIPv4 = "239.255.255.250"

	// Port is the SSDP UDP port.
	Port = 1900
)

// Default engine configuration. TTL of 4 follows the UPnP Device
// Architecture 1.1 §1.2 recommendation for site-local scope.
const (
	DefaultTTL            = 4
	DefaultTimeoutSeconds = 1
)

// NTS header values (UPnP Device Architecture 1.1 §1.2.2, §1.2.3).
const (
	NTSAlive  = "ssdp:alive"
	NTSByeBye = "ssdp:byebye"
)

// Well-known search targets (UPnP Device Architecture 1.1 §1.3.2).
const (
	TargetAll        = "ssdp:all"
	TargetRootDevice = "upnp:rootdevice"
)

// URN schema prefixes for standard device and service types.
//
// The trailing colon is deliberate: it is the delimiter between the
// schema and the type name, so "urn:schemas-upnp-org:deviceXYZ" does
// not match the device schema.
const (
	DeviceSchemaPrefix  = "urn:schemas-upnp-org:device:"
	ServiceSchemaPrefix = "urn:schemas-upnp-org:service:"
)

// MANDiscover is the mandatory MAN header value on M-SEARCH requests,
// quotes included (UPnP Device Architecture 1.1 §1.3.2).
const MANDiscover = `"ssdp:discover"`

// MaxDatagramSize is the fixed receive buffer size. SSDP discovery
// messages are short header blocks; 1024 bytes covers every message
// this engine produces or consumes.
const MaxDatagramSize = 1024
