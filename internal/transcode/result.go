package transcode

import (
	"errors"
	"fmt"
	"time"

	"github.com/danmuck/transcodectl/internal/operations"
)

var (
	ErrToolNotLocated = errors.New("tool not located")
	ErrInputNotFound  = errors.New("file or directory not found")
	ErrToolFailed     = errors.New("tool failed")
	ErrTimedOut       = errors.New("timed out")
	ErrCanceled       = errors.New("canceled")
)

// Status is the lifecycle phase of one invocation.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusRunning    Status = "running"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Result is the outcome of one operation execution.
type Result struct {
	Operation  operations.Operation
	Status     Status
	Message    string
	Err        error
	ExitCode   int32
	OutputPath string
	Output     []byte
	Elapsed    time.Duration
}

func (r Result) OK() bool {
	return r.Status == StatusSucceeded
}

// String is the user-facing result line.
func (r Result) String() string {
	if r.OK() {
		return r.Message
	}
	return fmt.Sprintf("%s failed: %v", r.Operation.Name, r.Err)
}

func succeeded(op operations.Operation, message string) Result {
	return Result{Operation: op, Status: StatusSucceeded, Message: message}
}

func failed(op operations.Operation, err error) Result {
	return Result{Operation: op, Status: StatusFailed, Err: err}
}
