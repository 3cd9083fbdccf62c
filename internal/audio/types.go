package audio

import (
	"context"
	"errors"
)

// Clip is a finalized, immutable audio payload produced by one recording
// session. Ownership transfers to whichever caller requested it.
type Clip struct {
	Data []byte
	MIME string
}

var (
	// ErrPermissionDenied means the platform refused access to the input device.
	ErrPermissionDenied = errors.New("audio input permission denied")
	// ErrDeviceError covers capture/playback device failures.
	ErrDeviceError = errors.New("audio device error")
	// ErrBusy means a recording session is already active.
	ErrBusy = errors.New("recording already in progress")
	// ErrNoPlayback means TogglePause was called with no active session.
	ErrNoPlayback = errors.New("no active playback session")
)

// Recorder acquires the platform audio input device and produces encoded
// byte segments until finalized. Encoding is the platform's job; nothing
// here touches raw samples.
type Recorder interface {
	Start(ctx context.Context) (RecordingHandle, error)
}

// RecordingHandle is one exclusive capture session on the input device.
type RecordingHandle interface {
	// Segments yields encoded audio in arrival order. The channel closes
	// after the final segment once Finalize has been called.
	Segments() <-chan []byte
	// Finalize asks the device to flush and stop producing segments.
	Finalize() error
	// Release frees the input device. Must be called on every exit path.
	Release() error
}

// Player starts platform playback of an audio file path or URL.
type Player interface {
	Start(source string) (PlaybackHandle, error)
}

// PlaybackHandle is one playback session on the output channel.
type PlaybackHandle interface {
	Pause() error
	Resume() error
	Stop() error
	// Done is closed when playback ends for any reason.
	Done() <-chan struct{}
}
