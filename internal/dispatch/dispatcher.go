package dispatch

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/transcodectl/internal/observability"
	"github.com/danmuck/transcodectl/internal/operations"
	"github.com/danmuck/transcodectl/internal/transcode"
)

// Executor runs one resolved operation.
type Executor interface {
	Execute(ctx context.Context, op operations.Operation) transcode.Result
}

// Summary tallies one request.
type Summary struct {
	RunID     string
	Requested int
	Succeeded int
	Failed    int
	Unknown   []string
	Results   []transcode.Result
}

// OK reports whether every token resolved and succeeded.
func (s Summary) OK() bool {
	return s.Failed == 0 && len(s.Unknown) == 0
}

// Dispatcher resolves tokens against a registry and runs them in order.
type Dispatcher struct {
	registry *operations.Registry
	exec     Executor
	out      io.Writer
}

func NewDispatcher(registry *operations.Registry, exec Executor, out io.Writer) *Dispatcher {
	if registry == nil {
		registry = operations.DefaultRegistry()
	}
	return &Dispatcher{registry: registry, exec: exec, out: out}
}

// UnknownLine is printed for a token that names no operation.
func UnknownLine(token string) string {
	return fmt.Sprintf("---Unable to perform: %s, it is not a valid operation.", token)
}

// Run processes every token of line sequentially and prints one result
// line per token.
func (d *Dispatcher) Run(ctx context.Context, line string) Summary {
	summary := Summary{RunID: uuid.NewString()}
	logger := log.With().Str("run", summary.RunID).Logger()

	for _, token := range SplitOperations(line) {
		summary.Requested++

		op, ok := d.registry.Lookup(token)
		if !ok {
			summary.Unknown = append(summary.Unknown, token)
			observability.RecordUnknownOperation()
			logger.Warn().Str("token", token).Msg("dispatch.Dispatcher.Run unknown operation")
			d.println(UnknownLine(token))
			continue
		}

		d.println(fmt.Sprintf("Processing %s...", op.Name))
		res := d.exec.Execute(ctx, op)
		observability.RecordOperation(op.Name, res.OK(), res.Elapsed)
		if res.OK() {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, res)
		d.println(res.String())
	}

	logger.Info().
		Int("requested", summary.Requested).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("unknown", len(summary.Unknown)).
		Msg("dispatch.Dispatcher.Run done")
	return summary
}

func (d *Dispatcher) println(line string) {
	if d.out == nil {
		return
	}
	if _, err := fmt.Fprintln(d.out, line); err != nil {
		log.Error().Err(err).Msg("dispatch.Dispatcher.println write failed")
	}
}
