package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Recorder captures one utterance as audio bytes.
type Recorder interface {
	Record(ctx context.Context, timeout time.Duration) ([]byte, error)
}

// DefaultRecordCommand captures 16 kHz mono LINEAR16 WAV on stdout.
const DefaultRecordCommand = "arecord -q -f S16_LE -r 16000 -c 1 -t wav -d {seconds} -"

// recordGrace lets the recorder flush after its own duration elapses.
const recordGrace = 2 * time.Second

// CommandRecorder runs an external capture program and reads its stdout.
// The literal {seconds} in the command is replaced with the timeout.
type CommandRecorder struct {
	Command string
}

func NewCommandRecorder(command string) *CommandRecorder {
	if strings.TrimSpace(command) == "" {
		command = DefaultRecordCommand
	}
	return &CommandRecorder{Command: command}
}

func (r *CommandRecorder) Record(ctx context.Context, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultListenTimeout
	}
	seconds := strconv.Itoa(int((timeout + time.Second - 1) / time.Second))
	args := strings.Fields(strings.ReplaceAll(r.Command, "{seconds}", seconds))
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty record command", ErrService)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout+recordGrace)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			if stdout.Len() > 0 {
				return stdout.Bytes(), nil
			}
			return nil, ErrTimeout
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrService, args[0], err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, ErrTimeout
	}
	return stdout.Bytes(), nil
}
