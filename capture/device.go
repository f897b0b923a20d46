// Package capture wraps the libpcap primitives the pipeline is built on:
// device enumeration, capture-handle lifecycle and the background frame
// reader that feeds a session.
package capture

import (
	"fmt"
	"strings"

	"github.com/google/gopacket/pcap"
)

// Devices enumerates all capture-capable interfaces on this host.
func Devices() ([]pcap.Interface, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceLookup, err)
	}
	return devs, nil
}

// DefaultDevice resolves the platform default capture device: the first
// non-loopback interface that carries at least one address, falling back to
// the first addressed interface of any kind. Returns nil when the host has
// no usable device, which is not an error.
func DefaultDevice() (*pcap.Interface, error) {
	devs, err := Devices()
	if err != nil {
		return nil, err
	}
	return defaultDevice(devs), nil
}

// FindDevice returns the device whose name matches exactly (case-sensitive).
func FindDevice(name string) (pcap.Interface, error) {
	devs, err := Devices()
	if err != nil {
		return pcap.Interface{}, err
	}
	return findDevice(devs, name)
}

func defaultDevice(devs []pcap.Interface) *pcap.Interface {
	var fallback *pcap.Interface
	for i := range devs {
		dev := &devs[i]
		if len(dev.Addresses) == 0 {
			continue
		}
		if !isLoopback(dev) {
			return dev
		}
		if fallback == nil {
			fallback = dev
		}
	}
	return fallback
}

func findDevice(devs []pcap.Interface, name string) (pcap.Interface, error) {
	for _, dev := range devs {
		if dev.Name == name {
			return dev, nil
		}
	}
	return pcap.Interface{}, fmt.Errorf("%w: %q", ErrNoInterface, name)
}

func isLoopback(dev *pcap.Interface) bool {
	if dev.Flags&flagLoopback != 0 {
		return true
	}
	// Windows device names do not carry the loopback flag reliably.
	return strings.HasPrefix(dev.Name, "lo")
}

// pcap.Interface.Flags mirrors libpcap's PCAP_IF_* bits.
const flagLoopback = 0x00000001
