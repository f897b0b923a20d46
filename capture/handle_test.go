package capture

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

func writeFixturePcap(t *testing.T, frames [][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := pcapgo.NewWriter(f)
	require.NoError(t, w.WriteFileHeader(DefaultSnaplen, layers.LinkTypeEthernet))
	for i, data := range frames {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000, int64(i)*1000).UTC(),
			CaptureLength: len(data),
			Length:        len(data),
		}
		require.NoError(t, w.WritePacket(ci, data))
	}
	return path
}

// An offline handle feeds the same reader loop as a live one: every record
// comes out in file order, the exhausted file ends the reader without an
// error result, and the handle is released.
func TestOpenOfflineFeedsReader(t *testing.T) {
	frames := [][]byte{
		append(make([]byte, 14), "offline-1"...),
		append(make([]byte, 14), "offline-2"...),
		append(make([]byte, 14), "offline-3"...),
	}
	path := writeFixturePcap(t, frames)

	handle, err := OpenOffline(path)
	require.NoError(t, err)

	out := make(chan model.FrameResult, 8)
	done := make(chan struct{})
	defer close(done)

	go ReadFrames(handle, out, done)
	results := drain(t, out)

	require.Len(t, results, len(frames))
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, frames[i], res.Frame.Data)
		assert.True(t, res.Frame.Timestamp.Equal(time.Unix(1700000000, int64(i)*1000).UTC()))
	}
}

func TestOpenOfflineMissingFile(t *testing.T) {
	_, err := OpenOffline(filepath.Join(t.TempDir(), "no-such.pcap"))
	assert.ErrorIs(t, err, ErrOpenHandle)
}
