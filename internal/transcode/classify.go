package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/danmuck/transcodectl/internal/tools"
)

// MissingInputMarker is what ffmpeg and ffprobe print for an absent input.
const MissingInputMarker = "No such file or directory"

// classify maps one finished process onto an error, or nil for success.
// A failed run counts as a missing input only when a marker line names
// input; the same text for an output path is an ordinary tool failure.
func classify(tool, input string, output []byte, code int32, runErr error) error {
	switch {
	case errors.Is(runErr, tools.ErrLaunch):
		return fmt.Errorf("%w: %w", ErrToolNotLocated, runErr)
	case errors.Is(runErr, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimedOut, tool)
	case errors.Is(runErr, context.Canceled):
		return fmt.Errorf("%w: %s", ErrCanceled, tool)
	}

	if code == 0 && runErr == nil {
		return nil
	}
	if namesMissingInput(output, input) {
		return ErrInputNotFound
	}
	detail := lastLine(output)
	if detail == "" && runErr != nil {
		detail = runErr.Error()
	}
	if detail == "" {
		return fmt.Errorf("%w: %s exited with status %d", ErrToolFailed, tool, code)
	}
	return fmt.Errorf("%w: %s exited with status %d: %s", ErrToolFailed, tool, code, detail)
}

func lastLine(output []byte) string {
	lines := bytes.Split(bytes.TrimSpace(output), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if line := bytes.TrimSpace(lines[i]); len(line) > 0 {
			return string(line)
		}
	}
	return ""
}

// namesMissingInput reports whether output holds the tool's
// "<input>: No such file or directory" line.
func namesMissingInput(output []byte, input string) bool {
	if input == "" {
		return false
	}
	return bytes.Contains(output, []byte(input+": "+MissingInputMarker))
}
