package capture

import (
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/google/gopacket/pcap"

	"github.com/wyrelab/wyre/model"
)

// ErrReaderStopped is the terminal message sent, best effort, when the
// consumer went away while the reader still had a frame to hand over.
var ErrReaderStopped = errors.New("reading stopped: consumer gone")

// ReadFrames pulls frames from src until the source fails and forwards each
// one over out. It is the single producer of out and is meant to run on its
// own goroutine, exactly one per open handle.
//
// A terminal read failure ends the loop silently: the failed read is itself
// the end-of-capture signal (interface down, offline file exhausted, handle
// closed). Timeout and temporary errors are re-reads, not failures. When
// done is closed while a send is pending, one ErrReaderStopped result is
// sent best effort and the loop ends. On exit out is closed, so the consumer
// always observes either a terminal error result or a closed channel, and
// src is closed here, never touched again by anyone else.
func ReadFrames(src FrameSource, out chan<- model.FrameResult, done <-chan struct{}) {
	defer close(out)
	defer closeSource(src)

	for {
		data, ci, err := src.ReadPacketData()
		if err != nil {
			if isTransient(err) {
				select {
				case <-done:
					return
				default:
					continue
				}
			}
			// Terminal read failure: normal end of capture.
			return
		}

		select {
		case out <- model.FrameResult{Frame: model.NewRawFrame(ci, data)}:
		case <-done:
			select {
			case out <- model.FrameResult{Err: ErrReaderStopped}:
			default:
			}
			return
		}
	}
}

// closeSource releases the handle behind src. pcap handles close without an
// error return, so both shapes are accepted.
func closeSource(src FrameSource) {
	switch c := src.(type) {
	case interface{ Close() }:
		c.Close()
	case io.Closer:
		c.Close()
	}
}

// isTransient reports whether a read error only means "no frame yet".
func isTransient(err error) bool {
	if errors.Is(err, pcap.NextErrorTimeoutExpired) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno.Temporary() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Temporary() || opErr.Timeout()) {
		return true
	}
	return false
}
