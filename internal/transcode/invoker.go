package transcode

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/transcodectl/internal/operations"
	"github.com/danmuck/transcodectl/internal/tools"
)

type resolvedTool struct {
	path string
	err  error
}

// Invoker runs operations against one configured input file.
type Invoker struct {
	cfg      Config
	runner   tools.CommandRunner
	lookPath func(string) (string, error)
	tools    map[operations.Tool]resolvedTool
	now      func() time.Time
}

// Option customizes an Invoker at construction.
type Option func(*Invoker)

// WithLookPath replaces exec.LookPath for tool resolution.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(i *Invoker) {
		i.lookPath = fn
	}
}

// NewInvoker resolves both tools up front. A tool that cannot be resolved
// is recorded, not fatal: only operations needing it will fail.
func NewInvoker(cfg Config, runner tools.CommandRunner, opts ...Option) *Invoker {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	i := &Invoker{
		cfg:      cfg.WithDefaults(),
		runner:   runner,
		lookPath: exec.LookPath,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	i.tools = map[operations.Tool]resolvedTool{
		operations.ToolTranscoder: i.resolve(i.cfg.FFmpegPath),
		operations.ToolProber:     i.resolve(i.cfg.FFprobePath),
	}
	return i
}

func (i *Invoker) resolve(path string) resolvedTool {
	resolved, err := i.lookPath(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("transcode.Invoker.resolve tool not located")
		return resolvedTool{path: path, err: fmt.Errorf("%w: %q: %w", ErrToolNotLocated, path, err)}
	}
	log.Debug().Str("path", resolved).Msg("transcode.Invoker.resolve ok")
	return resolvedTool{path: resolved}
}

// Config returns the effective configuration after defaults.
func (i *Invoker) Config() Config {
	return i.cfg
}

// Preflight reports every tool that failed to resolve at construction.
func (i *Invoker) Preflight() []error {
	var errs []error
	for _, tool := range []operations.Tool{operations.ToolTranscoder, operations.ToolProber} {
		if err := i.tools[tool].err; err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Command returns the executable and arguments op would run.
func (i *Invoker) Command(op operations.Operation) (string, []string) {
	return i.tools[op.Tool].path, op.Args(i.cfg.InputPath, i.cfg.OutputDir)
}

// Execute runs op to completion and classifies the outcome. It never panics
// on tool failure; every failure comes back as a failed Result.
func (i *Invoker) Execute(ctx context.Context, op operations.Operation) Result {
	tool, ok := i.tools[op.Tool]
	if !ok {
		return failed(op, fmt.Errorf("%w: unknown tool %q", ErrToolNotLocated, op.Tool))
	}

	name, args := i.Command(op)
	line := tools.CommandLine(name, args...)
	// dry runs print the configured command even when the tool is missing
	if i.cfg.DryRun {
		res := succeeded(op, "+ "+line)
		res.OutputPath = op.OutputPath(i.cfg.OutputDir)
		return res
	}
	if tool.err != nil {
		return failed(op, tool.err)
	}
	if err := ctx.Err(); err != nil {
		return failed(op, fmt.Errorf("%w: %s", ErrCanceled, op.Name))
	}

	runCtx := ctx
	if i.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, i.cfg.Timeout)
		defer cancel()
	}

	log.Info().
		Str("operation", op.Name).
		Str("cmd", line).
		Str("status", string(StatusRunning)).
		Msg("transcode.Invoker.Execute start")

	start := i.now()
	output, code, runErr := i.runner.Run(runCtx, name, args...)
	elapsed := i.now().Sub(start)

	var res Result
	if err := classify(string(op.Tool), i.cfg.InputPath, output, code, runErr); err != nil {
		// surface ffprobe's own diagnostic
		if op.Kind == operations.KindDetails && errors.Is(err, ErrInputNotFound) {
			if detail := lastLine(output); detail != "" {
				err = fmt.Errorf("%w: %s", err, detail)
			}
		}
		res = failed(op, err)
	} else if op.Kind == operations.KindDetails {
		res = succeeded(op, strings.TrimRight(string(output), "\n"))
	} else {
		res = succeeded(op, op.Success)
	}
	res.ExitCode = code
	res.Output = output
	res.Elapsed = elapsed
	if res.OK() {
		res.OutputPath = op.OutputPath(i.cfg.OutputDir)
	}

	event := log.Info()
	if !res.OK() {
		event = log.Warn().Err(res.Err)
	}
	event.
		Str("operation", op.Name).
		Str("status", string(res.Status)).
		Int32("exit_code", code).
		Dur("elapsed", elapsed).
		Msg("transcode.Invoker.Execute done")
	return res
}
