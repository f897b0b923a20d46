// Package session runs one capture session end to end: it spawns the frame
// reader over an open capture handle and consumes its channel until the
// session policy says the run is over.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/wyrelab/wyre/capture"
	"github.com/wyrelab/wyre/decode"
	"github.com/wyrelab/wyre/model"
)

// DefaultChannelSize is the frame channel buffer between the reader and the
// consumer. It only has to absorb bursts; the consumer handles one frame at
// a time.
const DefaultChannelSize = 4096

// Session is the consumer side of one capture run. A bounded session writes
// every frame to its destination and stops after the configured count; a
// live session only formats frames and runs until the source ends or the
// context is cancelled.
type Session struct {
	id        string
	device    string
	limit     uint64
	bounded   bool
	writer    *FrameWriter
	formatter *decode.Formatter
	log       *logrus.Logger
	chanSize  int
	processed uint64
}

// Option adjusts session construction.
type Option func(*Session)

// WithChannelSize overrides the frame channel buffer size.
func WithChannelSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.chanSize = n
		}
	}
}

// NewBounded returns a session that captures limit frames from device into
// writer, then stops. Limit zero is valid and terminates before the first
// frame.
func NewBounded(device string, limit uint64, writer *FrameWriter, log *logrus.Logger, opts ...Option) *Session {
	s := newSession(device, log, opts...)
	s.limit = limit
	s.bounded = true
	s.writer = writer
	s.formatter = decode.NewFormatter(log, "CAPTURE")
	return s
}

// NewLive returns an unbounded session that streams formatted summaries and
// persists nothing.
func NewLive(device string, log *logrus.Logger, opts ...Option) *Session {
	s := newSession(device, log, opts...)
	s.formatter = decode.NewFormatter(log, "STREAM")
	return s
}

func newSession(device string, log *logrus.Logger, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		device:   device,
		log:      log,
		chanSize: DefaultChannelSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier used in log lines.
func (s *Session) ID() string {
	return s.id
}

// Processed returns how many frames the session has consumed so far.
func (s *Session) Processed() uint64 {
	return s.processed
}

// Run spawns exactly one reader goroutine over src and consumes its frames
// until the session policy ends the run. The handle behind src belongs to
// the reader from here on: the reader closes it when its loop ends, and the
// done channel tells a reader that outlives the consumer to stop.
func (s *Session) Run(ctx context.Context, src capture.FrameSource) error {
	results := make(chan model.FrameResult, s.chanSize)
	done := make(chan struct{})
	defer close(done)

	go capture.ReadFrames(src, results, done)
	return s.consume(ctx, results)
}

// consume applies the session policy to the result stream. Frames arrive in
// capture order and each one is fully written and formatted before the next
// receive, so at most one frame is in flight inside the consumer.
func (s *Session) consume(ctx context.Context, results <-chan model.FrameResult) error {
	log := s.log.WithFields(logrus.Fields{"session": s.id, "interface": s.device})

	for {
		if s.bounded && s.processed >= s.limit {
			log.Infof("saved %d frames to %s", s.processed, s.writer.Path())
			return nil
		}

		select {
		case res, ok := <-results:
			if !ok {
				// Reader ended: end of capture.
				log.Infof("capture ended, %d frames processed", s.processed)
				return nil
			}
			if res.Err != nil {
				log.WithError(res.Err).Errorf("capture error, %d frames processed", s.processed)
				return res.Err
			}
			if err := s.handleFrame(res.Frame); err != nil {
				log.WithError(err).Errorf("write failed, %d frames processed", s.processed)
				return err
			}
		case <-ctx.Done():
			log.Infof("capture interrupted, %d frames processed", s.processed)
			return ctx.Err()
		}
	}
}

// handleFrame persists the frame first, then formats it. A frame that fails
// to decode still counts and is still persisted; decoding is advisory.
func (s *Session) handleFrame(frame *model.RawFrame) error {
	if s.writer != nil {
		if err := s.writer.WriteFrame(frame); err != nil {
			return err
		}
	}
	s.formatter.LogFrame(frame)
	s.processed++
	return nil
}
