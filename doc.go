// Package ssdp implements the discovery half of the Simple Service
// Discovery Protocol, the multicast-UDP announce/search mechanism of
// UPnP device networks (UPnP Device Architecture 1.1 §1).
//
// # Why this package exists
//
// UPnP control points need to find devices on the local network without
// central coordination, and UPnP devices need to make themselves known.
// SSDP covers both directions with three message shapes multicast to
// 239.255.255.250:1900: NOTIFY announcements (ssdp:alive / ssdp:byebye),
// M-SEARCH requests, and unicast HTTP 200 search responses.
//
// # Operating modes
//
// All functionality hangs off one Engine value with three modes:
//
//   - Search: multicast one M-SEARCH per resolved target, collect the
//     responses that arrive within the configured timeout, and return
//     them (UPnP Device Architecture 1.1 §1.3).
//   - Discover: listen passively; either stream every received message
//     to a handler until the context is cancelled, or collect for one
//     timeout window and return the batch.
//   - Advertise / ByeBye: announce a local device tree on a cadence,
//     answer incoming searches for it, and withdraw it with byebye
//     notifications on the way out (UPnP Device Architecture 1.1 §1.2).
//
// Each mode lazily opens the shared multicast socket and starts the
// background receive loop, and tears both down before returning, error
// or not. At most one socket and one receive loop exist per Engine.
//
// # Key concepts
//
//   - Search target (ST/NT): the kind of resource being searched for or
//     announced, e.g. "upnp:rootdevice" or
//     "urn:schemas-upnp-org:device:MediaServer:1".
//   - USN: the unique service name identifying a concrete instance.
//     Targets that are themselves UUIDs are their own USN; everything
//     else is scoped as "<root device name>::<target>".
//   - Device tree: the advertised device/service hierarchy. The engine
//     consumes it read-only through the Device, Service, and RootDevice
//     interfaces; ownership stays with the caller.
//
// # Example usage
//
// Search for media servers:
//
//	engine := ssdp.New(ssdp.WithTimeout(3 * time.Second))
//	msgs, err := engine.Search(ctx, ssdp.DeviceTarget("MediaServer:1"))
//	if err != nil {
//	    return err
//	}
//	for _, msg := range msgs {
//	    if resp, ok := msg.(*ssdp.SearchResponse); ok {
//	        fmt.Println(resp.Location)
//	    }
//	}
//
// Advertise a device tree until interrupted:
//
//	engine := ssdp.New(ssdp.WithLogger(logger))
//	err := engine.Advertise(ctx, root, 8080, "192.168.1.20")
//
// The engine does not fetch or parse description documents, does not
// cache or deduplicate discovered devices, and does not implement UPnP
// control or eventing.
package ssdp
