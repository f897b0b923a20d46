package capture

import (
	"errors"
	"net"
	"testing"

	"github.com/google/gopacket/pcap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDevices() []pcap.Interface {
	return []pcap.Interface{
		{
			Name:  "lo",
			Flags: flagLoopback,
			Addresses: []pcap.InterfaceAddress{
				{IP: net.ParseIP("127.0.0.1")},
			},
		},
		{
			Name: "docker0",
		},
		{
			Name:        "eth0",
			Description: "primary",
			Addresses: []pcap.InterfaceAddress{
				{IP: net.ParseIP("192.168.2.100")},
			},
		},
		{
			Name: "eth1",
			Addresses: []pcap.InterfaceAddress{
				{IP: net.ParseIP("10.0.0.7")},
			},
		},
	}
}

func TestFindDeviceExactName(t *testing.T) {
	devs := testDevices()
	for _, want := range devs {
		got, err := findDevice(devs, want.Name)
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
	}
}

func TestFindDeviceMiss(t *testing.T) {
	devs := testDevices()

	_, err := findDevice(devs, "wlan0")
	assert.True(t, errors.Is(err, ErrNoInterface))

	// The match is case-sensitive.
	_, err = findDevice(devs, "ETH0")
	assert.True(t, errors.Is(err, ErrNoInterface))
}

func TestDefaultDevicePrefersNonLoopback(t *testing.T) {
	dev := defaultDevice(testDevices())
	require.NotNil(t, dev)
	// eth0 is the first addressed non-loopback device.
	assert.Equal(t, "eth0", dev.Name)
}

func TestDefaultDeviceFallsBackToLoopback(t *testing.T) {
	devs := testDevices()[:2] // lo + addressless docker0
	dev := defaultDevice(devs)
	require.NotNil(t, dev)
	assert.Equal(t, "lo", dev.Name)
}

func TestDefaultDeviceNone(t *testing.T) {
	assert.Nil(t, defaultDevice(nil))
	assert.Nil(t, defaultDevice([]pcap.Interface{{Name: "dummy0"}}))
}
