package operations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOperationExists  = errors.New("operation already registered")
	ErrInvalidOperation = errors.New("invalid operation")
)

// Registry maps canonical operation names to definitions.
type Registry struct {
	items map[string]Operation
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Operation)}
}

// DefaultRegistry returns a registry holding every catalog operation.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	catalog := Catalog()
	for _, kind := range Kinds() {
		if err := r.Register(catalog[kind]); err != nil {
			panic(fmt.Sprintf("operations: default registry: %v", err))
		}
	}
	return r
}

// Normalize turns user input into lookup form.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds op under its canonical name.
func (r *Registry) Register(op Operation) error {
	name := Normalize(op.Name)
	if name == "" || name != op.Name {
		return fmt.Errorf("%w: name %q must be lowercase and trimmed", ErrInvalidOperation, op.Name)
	}
	if op.Tool != ToolTranscoder && op.Tool != ToolProber {
		return fmt.Errorf("%w: %q has unknown tool %q", ErrInvalidOperation, op.Name, op.Tool)
	}
	if op.Tool == ToolTranscoder && op.OutputFile == "" {
		return fmt.Errorf("%w: %q writes no output file", ErrInvalidOperation, op.Name)
	}
	if _, ok := r.items[name]; ok {
		return fmt.Errorf("%w: %q", ErrOperationExists, name)
	}
	r.items[name] = op
	r.order = append(r.order, name)
	return nil
}

// Lookup resolves a user-supplied name, ignoring case and surrounding space.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.items[Normalize(name)]
	return op, ok
}

// List returns operations in registration order.
func (r *Registry) List() []Operation {
	out := make([]Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.items[name])
	}
	return out
}

// Names returns canonical names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
