package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// CaptureState is the press-to-talk state machine phase.
type CaptureState int

const (
	StateIdle CaptureState = iota
	StateRecording
	StateProcessing
)

func (s CaptureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// captureSession is one recording attempt. The segment slice is owned by
// the collector goroutine; it is written only there and read only after
// done is closed, so an abandoned session's collector can never touch a
// later session's buffer.
type captureSession struct {
	handle   RecordingHandle
	done     chan struct{}
	segments [][]byte
}

// CaptureController owns the recording session. At most one session exists
// at any time; the input device is acquired no earlier than Start and
// released no later than the end of Stop, on every exit path.
type CaptureController struct {
	recorder Recorder
	mime     string

	mu      sync.Mutex
	state   CaptureState
	session *captureSession
	lastErr error
}

func NewCaptureController(recorder Recorder, mime string) *CaptureController {
	return &CaptureController{
		recorder: recorder,
		mime:     mime,
	}
}

// State returns the current phase.
func (c *CaptureController) State() CaptureState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the most recent capture error, if any. Surfacing it is
// the caller's responsibility; no retry is attempted here.
func (c *CaptureController) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Start acquires the input device and begins buffering segments. Rejected
// without side effects while a session is active. Acquisition failure
// (permission denial, device error) leaves the controller Idle.
func (c *CaptureController) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return fmt.Errorf("%w: state is %s", ErrBusy, c.state)
	}

	handle, err := c.recorder.Start(ctx)
	if err != nil {
		c.lastErr = err
		log.Warn().Err(err).Msg("Failed to start recording")
		return err
	}

	session := &captureSession{
		handle: handle,
		done:   make(chan struct{}),
	}
	c.state = StateRecording
	c.session = session
	c.lastErr = nil

	go collect(session)

	log.Debug().Msg("Recording started")
	return nil
}

// collect buffers segments in arrival order until the handle's channel
// closes after finalization.
func collect(s *captureSession) {
	defer close(s.done)
	for segment := range s.handle.Segments() {
		s.segments = append(s.segments, segment)
	}
}

// Stop finalizes the session and yields the clip. Calling it while not
// Recording is a no-op that yields no clip and no error, the expected
// shape of a press-and-release gesture racing an unrelated state change.
func (c *CaptureController) Stop(ctx context.Context) (*Clip, error) {
	c.mu.Lock()
	if c.state != StateRecording {
		c.mu.Unlock()
		return nil, nil
	}
	c.state = StateProcessing
	session := c.session
	c.session = nil
	c.mu.Unlock()

	finErr := session.handle.Finalize()

	// Await the final segment unless the caller gives up first. On the
	// cancelled path the session is abandoned with its collector; the
	// collector only ever writes into that session's own buffer, so it
	// cannot pollute a later recording.
	var ctxErr error
	select {
	case <-session.done:
	case <-ctx.Done():
		ctxErr = ctx.Err()
	}

	// The device is released before any result is produced, even when
	// finalization failed.
	relErr := session.handle.Release()

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()

	switch {
	case finErr != nil:
		err := fmt.Errorf("%w: finalize: %v", ErrDeviceError, finErr)
		c.setLastErr(err)
		return nil, err
	case ctxErr != nil:
		err := fmt.Errorf("recording finalization aborted: %w", ctxErr)
		c.setLastErr(err)
		return nil, err
	case relErr != nil:
		err := fmt.Errorf("%w: release: %v", ErrDeviceError, relErr)
		c.setLastErr(err)
		return nil, err
	}

	// session.done closed above, so the collector is finished and the
	// segment slice is safe to read.
	var size int
	for _, segment := range session.segments {
		size += len(segment)
	}
	data := make([]byte, 0, size)
	for _, segment := range session.segments {
		data = append(data, segment...)
	}

	log.Debug().
		Int("segments", len(session.segments)).
		Int("clip_bytes", len(data)).
		Msg("Recording finalized")

	return &Clip{Data: data, MIME: c.mime}, nil
}

func (c *CaptureController) setLastErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}
