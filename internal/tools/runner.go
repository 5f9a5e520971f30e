package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ExitLaunchFailure int32 = 127
	ExitDeadline      int32 = 124
	ExitCanceled      int32 = 130

	defaultWaitDelay = 5 * time.Second
)

// ErrLaunch marks a command that never started (missing or non-executable binary).
var ErrLaunch = errors.New("tools: command could not be started")

// CommandRunner abstracts external command execution for the invoker.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, int32, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct {
	// WaitDelay bounds how long Wait blocks on output pipes once the child
	// has been killed. Zero uses a five second default.
	WaitDelay time.Duration
}

// Run starts name with args, blocks until it exits and returns the combined
// stdout/stderr text and exit code. The child is killed when ctx ends.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, int32, error) {
	log.Debug().
		Str("cmd", CommandLine(name, args...)).
		Msg("tools.ExecRunner.Run start")

	cmd := exec.CommandContext(ctx, name, args...)
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	cmd.WaitDelay = r.waitDelay()

	if err := cmd.Start(); err != nil {
		return nil, ExitLaunchFailure, fmt.Errorf("%w: %s: %w", ErrLaunch, name, err)
	}

	err := cmd.Wait()
	if err == nil {
		return combined.Bytes(), 0, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		code := ExitCanceled
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			code = ExitDeadline
		}
		return combined.Bytes(), code, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return combined.Bytes(), int32(exitErr.ExitCode()), err
	}
	return combined.Bytes(), 1, err
}

func (r ExecRunner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}
	return defaultWaitDelay
}

// CommandLine renders name and args as one space-separated line for display.
func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
