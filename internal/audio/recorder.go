package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ExecRecorder delegates capture to a platform recorder process that writes
// the encoded clip to stdout and finalizes it when stdin closes (an
// interrupt is sent as well for recorders that ignore stdin).
type ExecRecorder struct {
	argv []string
}

func NewExecRecorder(command string) (*ExecRecorder, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		return nil, fmt.Errorf("recorder command is empty")
	}
	return &ExecRecorder{argv: argv}, nil
}

func (r *ExecRecorder) Start(ctx context.Context) (RecordingHandle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cmd := exec.Command(r.argv[0], r.argv[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceError, err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceError, err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrDeviceError, err)
	}

	log.Debug().Strs("argv", r.argv).Int("pid", cmd.Process.Pid).Msg("Recorder process started")

	h := &execRecording{
		cmd:      cmd,
		stdin:    stdin,
		segments: make(chan []byte, 16),
	}
	go h.read(stdout)

	return h, nil
}

type execRecording struct {
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	segments chan []byte

	finalizeOnce sync.Once
	releaseOnce  sync.Once
}

func (h *execRecording) read(stdout io.Reader) {
	defer close(h.segments)

	buf := make([]byte, 4096)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			segment := make([]byte, n)
			copy(segment, buf[:n])
			h.segments <- segment
		}
		if err != nil {
			return
		}
	}
}

func (h *execRecording) Segments() <-chan []byte {
	return h.segments
}

func (h *execRecording) Finalize() error {
	h.finalizeOnce.Do(func() {
		h.stdin.Close()
		if h.cmd.Process != nil {
			h.cmd.Process.Signal(os.Interrupt)
		}
	})
	return nil
}

func (h *execRecording) Release() error {
	var err error
	h.releaseOnce.Do(func() {
		if h.cmd.Process != nil {
			h.cmd.Process.Kill()
		}
		// Reap the process. An exit error is expected: the recorder is
		// stopped by signal on every path.
		waitErr := h.cmd.Wait()
		var exitErr *exec.ExitError
		if waitErr != nil && !errors.As(waitErr, &exitErr) {
			err = waitErr
			return
		}
		log.Debug().Msg("Recorder process released")
	})
	return err
}
