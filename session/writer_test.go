package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrelab/wyre/model"
)

func TestFrameWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFrameWriter(dir, "roundtrip", 65536)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "roundtrip.pcap"), w.Path())

	ts := time.Unix(1700000000, 42000).UTC()
	frames := []*model.RawFrame{
		model.NewRawFrame(gopacket.CaptureInfo{Timestamp: ts, CaptureLength: 17, Length: 17}, ethFrame("one")),
		model.NewRawFrame(gopacket.CaptureInfo{Timestamp: ts.Add(time.Millisecond), CaptureLength: 17, Length: 17}, ethFrame("two")),
	}
	for _, frame := range frames {
		require.NoError(t, w.WriteFrame(frame))
	}
	require.NoError(t, w.Close())

	f, err := os.Open(w.Path())
	require.NoError(t, err)
	defer f.Close()

	r, err := pcapgo.NewReader(f)
	require.NoError(t, err)
	assert.Equal(t, layers.LinkTypeEthernet, r.LinkType())

	for _, want := range frames {
		data, ci, err := r.ReadPacketData()
		require.NoError(t, err)
		assert.Equal(t, want.Data, data)
		assert.True(t, ci.Timestamp.Equal(want.Timestamp), "timestamp must survive the round trip")
		assert.Equal(t, want.Length, ci.Length)
	}
}

func TestNewFrameWriterBadDir(t *testing.T) {
	_, err := NewFrameWriter("/no/such/directory", "x", 65536)
	assert.Error(t, err)

	// A plain file is not a valid destination directory either.
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = NewFrameWriter(file, "x", 65536)
	assert.Error(t, err)
}

func TestIsValidDir(t *testing.T) {
	assert.NoError(t, IsValidDir(t.TempDir()))
	assert.Error(t, IsValidDir("/no/such/directory"))
}
