package audio

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// PlaybackController owns at most one active playback session. Embedded
// byte payloads become a temp file (the transient resource) which is
// released exactly once, on the first of natural completion, explicit Stop,
// or a superseding Play.
type PlaybackController struct {
	player Player

	mu      sync.Mutex
	current *playbackSession
}

type playbackSession struct {
	handle   PlaybackHandle
	tempPath string // empty for server-hosted resources
	paused   bool
	released bool
}

func NewPlaybackController(player Player) *PlaybackController {
	return &PlaybackController{player: player}
}

// PlayEmbedded plays an inline audio payload. Any active session is stopped
// and released first.
func (p *PlaybackController) PlayEmbedded(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty audio payload")
	}

	tmp, err := os.CreateTemp("", "assistant-audio-*.wav")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}

	return p.play(tmp.Name(), tmp.Name())
}

// PlayRef plays audio by reference: a server URL or an existing local file.
// No transient resource is created; the referenced audio outlives the
// session.
func (p *PlaybackController) PlayRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("empty audio reference")
	}
	return p.play(ref, "")
}

func (p *PlaybackController) play(source, tempPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// No two sessions ever produce sound concurrently.
	p.stopLocked()

	handle, err := p.player.Start(source)
	if err != nil {
		if tempPath != "" {
			os.Remove(tempPath)
		}
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}

	session := &playbackSession{handle: handle, tempPath: tempPath}
	p.current = session
	go p.watch(session)

	log.Debug().Str("source", source).Bool("transient", tempPath != "").Msg("Playback started")
	return nil
}

// watch releases the session's transient resource on natural completion.
func (p *PlaybackController) watch(session *playbackSession) {
	<-session.handle.Done()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == session {
		p.releaseLocked(session)
		p.current = nil
	}
}

// TogglePause flips between playing and paused without discarding the
// session or its resource. Valid only while a session is active.
func (p *PlaybackController) TogglePause() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNoPlayback
	}

	var err error
	if p.current.paused {
		err = p.current.handle.Resume()
	} else {
		err = p.current.handle.Pause()
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceError, err)
	}

	p.current.paused = !p.current.paused
	return nil
}

// Stop halts playback and releases any transient resource. Idempotent when
// no session is active.
func (p *PlaybackController) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Active reports whether a session exists, and whether it is paused.
func (p *PlaybackController) Active() (active, paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return false, false
	}
	return true, p.current.paused
}

func (p *PlaybackController) stopLocked() {
	if p.current == nil {
		return
	}
	if err := p.current.handle.Stop(); err != nil {
		log.Warn().Err(err).Msg("Failed to stop playback cleanly")
	}
	p.releaseLocked(p.current)
	p.current = nil
}

func (p *PlaybackController) releaseLocked(session *playbackSession) {
	if session.released {
		return
	}
	session.released = true
	if session.tempPath != "" {
		if err := os.Remove(session.tempPath); err != nil {
			log.Warn().Err(err).Str("path", session.tempPath).Msg("Failed to remove playback temp file")
		} else {
			log.Debug().Str("path", session.tempPath).Msg("Released playback temp file")
		}
	}
}
