package audio

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
)

// ExecPlayer delegates playback to a platform player process. The source
// (file path or URL) is appended as the final argument. Pause and resume
// are implemented with SIGSTOP/SIGCONT.
type ExecPlayer struct {
	argv []string
}

func NewExecPlayer(command string) (*ExecPlayer, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, fmt.Errorf("player command is empty")
	}
	return &ExecPlayer{argv: argv}, nil
}

func (p *ExecPlayer) Start(source string) (PlaybackHandle, error) {
	args := append(append([]string{}, p.argv[1:]...), source)
	cmd := exec.Command(p.argv[0], args...)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	log.Debug().Strs("argv", p.argv).Int("pid", cmd.Process.Pid).Msg("Player process started")

	h := &execPlayback{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		cmd.Wait()
		close(h.done)
	}()

	return h, nil
}

type execPlayback struct {
	cmd      *exec.Cmd
	done     chan struct{}
	stopOnce sync.Once
}

func (h *execPlayback) Pause() error {
	return h.cmd.Process.Signal(syscall.SIGSTOP)
}

func (h *execPlayback) Resume() error {
	return h.cmd.Process.Signal(syscall.SIGCONT)
}

func (h *execPlayback) Stop() error {
	h.stopOnce.Do(func() {
		// Resume first so a paused process can honor the kill.
		h.cmd.Process.Signal(syscall.SIGCONT)
		h.cmd.Process.Kill()
	})
	return nil
}

func (h *execPlayback) Done() <-chan struct{} {
	return h.done
}
