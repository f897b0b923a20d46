package capture

import (
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"
)

// Default handle settings. The read timeout bounds how long a blocked read
// sleeps before the reader gets a chance to notice a gone consumer.
const (
	DefaultSnaplen     = 64 << 10
	DefaultReadTimeout = 2 * time.Second
)

// FrameSource is the read side of an activated capture handle, live or
// offline. It is the only capability the frame reader needs.
type FrameSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

// HandleConfig carries the open-time settings of a capture handle.
type HandleConfig struct {
	Snaplen     int32
	Promiscuous bool
	ReadTimeout time.Duration
}

// DefaultHandleConfig returns the settings used when the caller supplies
// none: non-promiscuous, full-frame snaplen.
func DefaultHandleConfig() HandleConfig {
	return HandleConfig{
		Snaplen:     DefaultSnaplen,
		Promiscuous: false,
		ReadTimeout: DefaultReadTimeout,
	}
}

// OpenHandle opens and activates a capture handle bound to dev. Construction
// and activation are distinct failure points: a handle that cannot be
// constructed wraps ErrCreateHandle, one that cannot be configured or
// activated wraps ErrOpenHandle. The caller owns the returned handle and
// must close it exactly once.
func OpenHandle(dev pcap.Interface, cfg HandleConfig) (*pcap.Handle, error) {
	if cfg.Snaplen <= 0 {
		cfg.Snaplen = DefaultSnaplen
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}

	inactive, err := pcap.NewInactiveHandle(dev.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: interface %q: %w", ErrCreateHandle, dev.Name, err)
	}
	defer inactive.CleanUp()

	if err = inactive.SetPromisc(cfg.Promiscuous); err != nil {
		return nil, fmt.Errorf("%w: promiscuous mode, interface %q: %w", ErrOpenHandle, dev.Name, err)
	}
	if err = inactive.SetSnapLen(int(cfg.Snaplen)); err != nil {
		return nil, fmt.Errorf("%w: snapshot length, interface %q: %w", ErrOpenHandle, dev.Name, err)
	}
	if err = inactive.SetTimeout(cfg.ReadTimeout); err != nil {
		return nil, fmt.Errorf("%w: read timeout, interface %q: %w", ErrOpenHandle, dev.Name, err)
	}

	handle, err := inactive.Activate()
	if err != nil {
		return nil, fmt.Errorf("%w: interface %q: %w", ErrOpenHandle, dev.Name, err)
	}
	return handle, nil
}

// OpenOffline opens a capture handle over an existing capture file. Offline
// handles feed the same reader loop as live ones.
func OpenOffline(path string) (*pcap.Handle, error) {
	handle, err := pcap.OpenOffline(path)
	if err != nil {
		return nil, fmt.Errorf("%w: file %q: %w", ErrOpenHandle, path, err)
	}
	return handle, nil
}
