// Ssdpctl searches for and advertises UPnP devices over SSDP.
//
// Usage:
//
//	ssdpctl search [flags]
//	ssdpctl discover [flags]
//	ssdpctl advertise --config device.yaml
//	ssdpctl byebye --config device.yaml
//
// See 'ssdpctl --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ssdpctl",
	Short: "SSDP discovery and advertisement",
	Long: `Ssdpctl speaks the discovery half of SSDP, the multicast announce/search
protocol of UPnP networks.

It can search the local network for devices, listen passively for
announcements, advertise a device tree described in a YAML file, and
withdraw it with byebye notifications.`,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(advertiseCmd)
	rootCmd.AddCommand(byebyeCmd)
}
