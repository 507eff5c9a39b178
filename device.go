package ssdp

// Service is the read-only view of an advertised UPnP service.
type Service interface {
	// TypeURN returns the service type URN, e.g.
	// "urn:schemas-upnp-org:service:ContentDirectory:1".
	TypeURN() string
}

// Device is the read-only view of an advertised UPnP device. The engine
// never mutates the tree; ownership stays entirely with the caller.
type Device interface {
	// Name returns the device's unique name, conventionally
	// "uuid:<identifier>".
	Name() string

	// TypeURN returns the device type URN, e.g.
	// "urn:schemas-upnp-org:device:MediaServer:1".
	TypeURN() string

	// Devices returns the nested devices, in announcement order.
	Devices() []Device

	// Services returns the hosted services, in announcement order.
	Services() []Service
}

// RootDevice is the top of an advertised device tree. Kind and Version
// feed the SERVER header verbatim as "<kind>/<version>".
type RootDevice interface {
	Device

	// Version returns the advertised software version.
	Version() string

	// Kind returns the class label for the SERVER header.
	Kind() string
}
