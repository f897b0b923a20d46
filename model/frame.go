package model

import (
	"time"

	"github.com/google/gopacket"
)

// RawFrame is one captured link-layer frame: the capture timestamp plus the
// raw payload bytes. It is created once by the frame reader and never
// mutated afterwards; ownership moves to the consumer over the channel.
type RawFrame struct {
	Timestamp     time.Time
	CaptureLength int
	Length        int
	Data          []byte
}

// NewRawFrame copies data so the frame stays valid after the capture
// library reuses its buffer.
func NewRawFrame(ci gopacket.CaptureInfo, data []byte) *RawFrame {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &RawFrame{
		Timestamp:     ci.Timestamp,
		CaptureLength: ci.CaptureLength,
		Length:        ci.Length,
		Data:          buf,
	}
}

// CaptureInfo rebuilds the capture metadata for writers that speak gopacket.
func (f *RawFrame) CaptureInfo() gopacket.CaptureInfo {
	return gopacket.CaptureInfo{
		Timestamp:     f.Timestamp,
		CaptureLength: f.CaptureLength,
		Length:        f.Length,
	}
}

// FrameResult represents data across the reader/consumer boundary.
// Exactly one of Frame and Err is set. An Err result is terminal: the reader
// sends at most one, always as its last message.
type FrameResult struct {
	Frame *RawFrame
	Err   error
}
