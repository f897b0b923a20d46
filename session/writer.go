package session

import (
	"os"
	"path/filepath"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"

	"github.com/wyrelab/wyre/model"
)

// FrameWriter appends captured frames to a .pcap file in the standard
// capture-file record layout, readable by any libpcap-based tool.
type FrameWriter struct {
	path string
	file *os.File
	w    *pcapgo.Writer
}

// NewFrameWriter creates <dir>/<name>.pcap and writes the global file
// header. dir must already exist and be a directory.
func NewFrameWriter(dir, name string, snaplen uint32) (*FrameWriter, error) {
	if err := IsValidDir(dir); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, name+".pcap")
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create capture file %v", path)
	}

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(snaplen, layers.LinkTypeEthernet); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "write capture file header %v", path)
	}
	return &FrameWriter{path: path, file: f, w: w}, nil
}

// IsValidDir reports an error unless dirPath exists and is a directory.
func IsValidDir(dirPath string) error {
	info, err := os.Stat(dirPath)
	if err != nil {
		return errors.Wrap(err, "invalid directory")
	}
	if !info.IsDir() {
		return errors.Errorf("%v is not directory", dirPath)
	}
	return nil
}

// Path returns the file the writer is bound to.
func (fw *FrameWriter) Path() string {
	return fw.path
}

// WriteFrame appends one record: timestamp, lengths and payload.
func (fw *FrameWriter) WriteFrame(frame *model.RawFrame) error {
	return fw.w.WritePacket(frame.CaptureInfo(), frame.Data)
}

// Close closes the underlying file. Call exactly once.
func (fw *FrameWriter) Close() error {
	return fw.file.Close()
}
