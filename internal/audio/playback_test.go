package audio

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	mu       sync.Mutex
	startErr error
	handles  []*fakePlayback
}

func (p *fakePlayer) Start(source string) (PlaybackHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.startErr != nil {
		return nil, p.startErr
	}
	h := &fakePlayback{source: source, done: make(chan struct{})}
	p.handles = append(p.handles, h)
	return h, nil
}

type fakePlayback struct {
	source string
	done   chan struct{}

	mu      sync.Mutex
	paused  bool
	stopped bool
}

func (h *fakePlayback) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paused = true
	return nil
}

func (h *fakePlayback) Resume() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paused = false
	return nil
}

func (h *fakePlayback) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
	return nil
}

func (h *fakePlayback) Done() <-chan struct{} { return h.done }

func (h *fakePlayback) finish() {
	h.Stop()
}

func (h *fakePlayback) isStopped() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stopped
}

func TestPlayEmbeddedCreatesAndReleasesTempFile(t *testing.T) {
	player := &fakePlayer{}
	p := NewPlaybackController(player)

	require.NoError(t, p.PlayEmbedded([]byte("wav bytes")))
	require.Len(t, player.handles, 1)

	path := player.handles[0].source
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("wav bytes"), data)

	p.Stop()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "transient resource must be released on Stop")
}

func TestSupersedingPlayStopsAndReleasesPrevious(t *testing.T) {
	player := &fakePlayer{}
	p := NewPlaybackController(player)

	require.NoError(t, p.PlayEmbedded([]byte("first")))
	first := player.handles[0]
	firstPath := first.source

	require.NoError(t, p.PlayEmbedded([]byte("second")))
	require.Len(t, player.handles, 2)

	assert.True(t, first.isStopped(), "superseded session must be stopped")
	_, err := os.Stat(firstPath)
	assert.True(t, os.IsNotExist(err), "superseded temp file must be released")

	// The second session is the only one alive.
	active, _ := p.Active()
	assert.True(t, active)
	assert.False(t, player.handles[1].isStopped())

	p.Stop()
}

func TestNaturalCompletionReleasesOnce(t *testing.T) {
	player := &fakePlayer{}
	p := NewPlaybackController(player)

	require.NoError(t, p.PlayEmbedded([]byte("clip")))
	handle := player.handles[0]
	path := handle.source

	handle.finish()

	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return os.IsNotExist(err)
	}, time.Second, time.Millisecond, "temp file must be released on natural completion")

	// A later Stop must not double-release anything.
	p.Stop()
	active, _ := p.Active()
	assert.False(t, active)
}

func TestPlayRefCreatesNoTransientResource(t *testing.T) {
	player := &fakePlayer{}
	p := NewPlaybackController(player)

	require.NoError(t, p.PlayRef("http://backend/audio/answer.wav"))
	require.Len(t, player.handles, 1)
	assert.Equal(t, "http://backend/audio/answer.wav", player.handles[0].source)

	p.Stop()
}

func TestPlayRefLeavesReferencedFileIntact(t *testing.T) {
	player := &fakePlayer{}
	p := NewPlaybackController(player)

	f, err := os.CreateTemp(t.TempDir(), "retained-*.wav")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, p.PlayRef(f.Name()))
	p.Stop()

	_, err = os.Stat(f.Name())
	assert.NoError(t, err, "referenced audio must survive the session for replay")
}

func TestTogglePause(t *testing.T) {
	player := &fakePlayer{}
	p := NewPlaybackController(player)

	require.ErrorIs(t, p.TogglePause(), ErrNoPlayback)

	require.NoError(t, p.PlayEmbedded([]byte("clip")))

	require.NoError(t, p.TogglePause())
	_, paused := p.Active()
	assert.True(t, paused)

	require.NoError(t, p.TogglePause())
	_, paused = p.Active()
	assert.False(t, paused)

	p.Stop()
}

func TestStopIsIdempotent(t *testing.T) {
	p := NewPlaybackController(&fakePlayer{})
	p.Stop()
	p.Stop()

	active, _ := p.Active()
	assert.False(t, active)
}

func TestPlayerStartFailureReleasesTempFile(t *testing.T) {
	player := &fakePlayer{startErr: errors.New("no output device")}
	p := NewPlaybackController(player)

	err := p.PlayEmbedded([]byte("clip"))
	require.ErrorIs(t, err, ErrDeviceError)

	// Nothing left behind.
	active, _ := p.Active()
	assert.False(t, active)
}
