package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/tindron/ssdp"
	"github.com/tindron/ssdp/internal/config"
	"github.com/tindron/ssdp/internal/logging"
)

var (
	configPath string
	logLevel   string
	port       int
	ttl        int
	timeout    time.Duration
	targets    []string
)

func init() {
	for _, cmd := range []*cobra.Command{searchCmd, discoverCmd, advertiseCmd, byebyeCmd} {
		cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
		cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent if unset")
		cmd.Flags().IntVar(&port, "port", 0, "SSDP port (default 1900)")
		cmd.Flags().IntVar(&ttl, "ttl", 0, "Multicast TTL (default 4)")
	}
	searchCmd.Flags().DurationVar(&timeout, "timeout", 0, "Response collection window (default 1s)")
	discoverCmd.Flags().DurationVar(&timeout, "timeout", 0, "Collection window; 0 with --follow listens forever")
	searchCmd.Flags().StringArrayVar(&targets, "target", nil,
		`Search target: "root", "device:Type:ver", "service:Type:ver", or a raw urn:/uuid:/ssdp: string; repeatable (default ssdp:all)`)
	discoverCmd.Flags().BoolVar(&follow, "follow", false, "Stream messages until interrupted instead of collecting once")
}

var follow bool

// newEngine builds an engine from config file and flags; flags win.
func newEngine() (*ssdp.Engine, *config.Config, error) {
	logger, err := logging.New(logLevel)
	if err != nil {
		return nil, nil, err
	}

	var opts []ssdp.Option
	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cfg.EngineOptions()...)
	}
	if port != 0 {
		opts = append(opts, ssdp.WithPort(port))
	}
	if ttl != 0 {
		opts = append(opts, ssdp.WithTTL(ttl))
	}
	if timeout != 0 {
		opts = append(opts, ssdp.WithTimeout(timeout))
	}
	opts = append(opts, ssdp.WithLogger(logger))

	return ssdp.New(opts...), cfg, nil
}

func parseTargets(raw []string) []ssdp.SearchTarget {
	var out []ssdp.SearchTarget
	for _, s := range raw {
		switch {
		case s == "root":
			out = append(out, ssdp.RootDeviceTarget())
		case len(s) > 7 && s[:7] == "device:":
			out = append(out, ssdp.DeviceTarget(s[7:]))
		case len(s) > 8 && s[:8] == "service:":
			out = append(out, ssdp.ServiceTarget(s[8:]))
		default:
			out = append(out, ssdp.RawTarget(s))
		}
	}
	return out
}

func printMessage(msg ssdp.Message) {
	switch m := msg.(type) {
	case *ssdp.Notification:
		fmt.Printf("NOTIFY %s %s %s:%d\n  usn=%s location=%s\n",
			m.Status, m.Type, m.Host, m.Port, m.USN, m.Location)
	case *ssdp.SearchResponse:
		fmt.Printf("RESPONSE %s %s:%d\n  usn=%s location=%s\n",
			m.Target, m.Host, m.Port, m.USN, m.Location)
	case *ssdp.SearchRequest:
		fmt.Printf("M-SEARCH %s mx=%d %s:%d\n",
			m.Target, m.MaxWait, m.Host, m.Port)
	}
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Actively search the network for devices",
	Example: `  # Search for everything
  ssdpctl search

  # Search for media servers with a 3 second window
  ssdpctl search --target device:MediaServer:1 --timeout 3s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}
		msgs, err := engine.Search(cmd.Context(), parseTargets(targets)...)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			printMessage(msg)
		}
		return nil
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Listen passively for device announcements",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := newEngine()
		if err != nil {
			return err
		}

		if !follow {
			msgs, err := engine.Discover(cmd.Context(), nil)
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				printMessage(msg)
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		_, err = engine.Discover(ctx, printMessage)
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

var advertiseCmd = &cobra.Command{
	Use:   "advertise",
	Short: "Advertise a device tree and answer searches until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := newEngine()
		if err != nil {
			return err
		}
		if cfg == nil {
			return fmt.Errorf("advertise requires --config with a device tree")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		err = engine.Advertise(ctx, cfg.Root(), cfg.Advertise.Port, cfg.Advertise.Hosts...)
		if err == context.Canceled {
			// Interrupted: withdraw before exiting.
			return engine.ByeBye(cfg.Root(), cfg.Advertise.Hosts...)
		}
		return err
	},
}

var byebyeCmd = &cobra.Command{
	Use:   "byebye",
	Short: "Withdraw an advertised device tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := newEngine()
		if err != nil {
			return err
		}
		if cfg == nil {
			return fmt.Errorf("byebye requires --config with a device tree")
		}
		return engine.ByeBye(cfg.Root(), cfg.Advertise.Hosts...)
	},
}
