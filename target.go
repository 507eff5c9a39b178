package ssdp

import (
	"strings"

	"github.com/tindron/ssdp/internal/protocol"
)

type targetKind int

const (
	targetAll targetKind = iota
	targetRoot
	targetDevice
	targetService
	targetRaw
)

// SearchTarget selects what an M-SEARCH asks for. Construct one with
// All, RootDeviceTarget, DeviceTarget, ServiceTarget, or RawTarget; the
// zero value behaves like All. The set is closed so every target either
// resolves to a well-formed ST value or is skipped.
type SearchTarget struct {
	kind  targetKind
	value string
}

// All searches for every device and service (ST: ssdp:all).
func All() SearchTarget {
	return SearchTarget{kind: targetAll}
}

// RootDeviceTarget searches for root devices (ST: upnp:rootdevice).
func RootDeviceTarget() SearchTarget {
	return SearchTarget{kind: targetRoot}
}

// DeviceTarget searches for a standard device type given as
// "Type:version", e.g. DeviceTarget("MediaServer:1") resolves to
// "urn:schemas-upnp-org:device:MediaServer:1".
func DeviceTarget(typeVersion string) SearchTarget {
	return SearchTarget{kind: targetDevice, value: typeVersion}
}

// ServiceTarget searches for a standard service type given as
// "Type:version", e.g. ServiceTarget("ContentDirectory:1") resolves to
// "urn:schemas-upnp-org:service:ContentDirectory:1".
func ServiceTarget(typeVersion string) SearchTarget {
	return SearchTarget{kind: targetService, value: typeVersion}
}

// RawTarget sends s verbatim when it already looks like a search target
// (a "urn:", "uuid:", or "ssdp:" prefix). Anything else is silently
// skipped by Search, preserving permissive call patterns.
func RawTarget(s string) SearchTarget {
	return SearchTarget{kind: targetRaw, value: s}
}

// resolve maps the target to its wire ST value. ok is false for a raw
// target with an unrecognized shape; such targets are skipped, not
// errors.
func (t SearchTarget) resolve() (st string, ok bool) {
	switch t.kind {
	case targetAll:
		return protocol.TargetAll, true
	case targetRoot:
		return protocol.TargetRootDevice, true
	case targetDevice:
		return protocol.DeviceSchemaPrefix + t.value, true
	case targetService:
		return protocol.ServiceSchemaPrefix + t.value, true
	case targetRaw:
		for _, prefix := range []string{"urn:", "uuid:", "ssdp:"} {
			if strings.HasPrefix(t.value, prefix) {
				return t.value, true
			}
		}
	}
	return "", false
}
