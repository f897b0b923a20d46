package cmd

import (
	"fmt"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/spf13/cobra"

	"github.com/wyrelab/wyre/capture"
)

var (
	listAll     bool
	listDefault bool
)

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List default or all interfaces on a network",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case listAll:
			return listInterfaces()
		case listDefault:
			return showDefaultInterface()
		default:
			// Same as --default.
			return showDefaultInterface()
		}
	},
}

func listInterfaces() error {
	devs, err := capture.Devices()
	if err != nil {
		return err
	}

	// OS-level metadata (MTU, MAC, flags) is not part of the pcap device
	// list; join it in by name where available.
	osIfs := make(map[string]psnet.InterfaceStat)
	if stats, err := psnet.Interfaces(); err == nil {
		for _, st := range stats {
			osIfs[st.Name] = st
		}
	} else {
		log.WithError(err).Debug("os interface stats unavailable")
	}

	for _, dev := range devs {
		line := dev.Name
		if dev.Description != "" {
			line += " (" + dev.Description + ")"
		}
		if st, ok := osIfs[dev.Name]; ok {
			line += fmt.Sprintf(" mtu=%d", st.MTU)
			if st.HardwareAddr != "" {
				line += " mac=" + st.HardwareAddr
			}
			if len(st.Flags) > 0 {
				line += " flags=" + strings.Join(st.Flags, ",")
			}
		}
		log.Info(line)
		for _, addr := range dev.Addresses {
			log.Infof("    addr %s", addr.IP)
		}
	}
	return nil
}

func showDefaultInterface() error {
	dev, err := capture.DefaultDevice()
	if err != nil {
		return err
	}
	if dev == nil {
		log.Info("no interface found")
		return nil
	}
	log.Infof("default interface: %s", dev.Name)
	return nil
}

func init() {
	interfacesCmd.Flags().BoolVar(&listAll, "all", false, "list every capture-capable interface")
	interfacesCmd.Flags().BoolVar(&listDefault, "default", false, "show the platform default interface (the default behavior)")
	interfacesCmd.MarkFlagsMutuallyExclusive("all", "default")
	rootCmd.AddCommand(interfacesCmd)
}
