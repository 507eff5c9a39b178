// Package config loads ssdpctl's YAML configuration: engine settings
// and the device tree to advertise.
//
// The engine consumes the device tree only through the read-only
// interfaces in the root package; this package supplies the concrete
// implementation backing them.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tindron/ssdp"
)

// Config is the top-level ssdpctl configuration file.
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Advertise AdvertiseConfig `yaml:"advertise"`
	Device    DeviceConfig    `yaml:"device"`
}

// EngineConfig overrides engine defaults. Zero values keep the
// protocol defaults.
type EngineConfig struct {
	BroadcastAddress string `yaml:"broadcast_address"`
	Port             int    `yaml:"port"`
	TTL              int    `yaml:"ttl"`

	// TimeoutSeconds is the response collection window.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// NotifyIntervalSeconds is the advertise announcement cadence.
	NotifyIntervalSeconds int `yaml:"notify_interval_seconds"`
}

// AdvertiseConfig tells the advertise and byebye commands where the
// description document is served and on which addresses to announce.
type AdvertiseConfig struct {
	Port  int      `yaml:"port"`
	Hosts []string `yaml:"hosts"`
}

// DeviceConfig describes one device node. At the root it additionally
// carries the identity used in the SERVER header.
type DeviceConfig struct {
	// Name is the device UUID, "uuid:..." form. Generated when empty.
	Name string `yaml:"name"`

	// Type is the device type URN.
	Type string `yaml:"type"`

	// Kind and Version feed the SERVER header as "<kind>/<version>".
	// Root device only.
	Kind    string `yaml:"kind"`
	Version string `yaml:"version"`

	Devices  []DeviceConfig  `yaml:"devices"`
	Services []ServiceConfig `yaml:"services"`
}

// ServiceConfig describes one service node.
type ServiceConfig struct {
	// Type is the service type URN.
	Type string `yaml:"type"`
}

// Load reads and validates a configuration file. Devices without a
// name get a generated "uuid:" name so every announcement has a usable
// USN.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Device.fillNames(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EngineOptions maps the engine section onto functional options,
// leaving unset fields at their defaults.
func (c *Config) EngineOptions() []ssdp.Option {
	var opts []ssdp.Option
	if c.Engine.BroadcastAddress != "" {
		opts = append(opts, ssdp.WithBroadcastAddress(c.Engine.BroadcastAddress))
	}
	if c.Engine.Port != 0 {
		opts = append(opts, ssdp.WithPort(c.Engine.Port))
	}
	if c.Engine.TTL != 0 {
		opts = append(opts, ssdp.WithTTL(c.Engine.TTL))
	}
	if c.Engine.TimeoutSeconds != 0 {
		opts = append(opts, ssdp.WithTimeout(time.Duration(c.Engine.TimeoutSeconds)*time.Second))
	}
	if c.Engine.NotifyIntervalSeconds != 0 {
		opts = append(opts, ssdp.WithNotifyInterval(time.Duration(c.Engine.NotifyIntervalSeconds)*time.Second))
	}
	return opts
}

// Root builds the read-only device tree view for advertising.
func (c *Config) Root() ssdp.RootDevice {
	return rootDevice{
		device:  c.Device.build(),
		version: c.Device.Version,
		kind:    c.Device.Kind,
	}
}

func (d *DeviceConfig) fillNames() error {
	if d.Name == "" {
		d.Name = "uuid:" + uuid.NewString()
	} else if !strings.HasPrefix(d.Name, "uuid:") {
		return fmt.Errorf("device name %q must start with \"uuid:\"", d.Name)
	}
	for i := range d.Devices {
		if err := d.Devices[i].fillNames(); err != nil {
			return err
		}
	}
	return nil
}

func (d DeviceConfig) build() device {
	out := device{name: d.Name, urn: d.Type}
	for _, child := range d.Devices {
		out.devices = append(out.devices, child.build())
	}
	for _, svc := range d.Services {
		out.services = append(out.services, service{urn: svc.Type})
	}
	return out
}

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

type rootDevice struct {
	device
	version string
	kind    string
}

func (r rootDevice) Version() string { return r.version }
func (r rootDevice) Kind() string    { return r.kind }
