// Package backend turns a finished IR program into something that runs.
// A Backend is handed the program once and returns an Entry that executes
// it against a caller supplied tape.
package backend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/raymyers/ralph-bf/pkg/ir"
)

// Entry runs a compiled program on tape and returns its status code.
// The tape must hold at least the program's TapeSize cells and must not be
// shared with a concurrent run.
type Entry func(tape []byte) (int32, error)

// Backend compiles IR programs
type Backend interface {
	Compile(prog *ir.Program) (Entry, error)
}

// ErrCompile matches every *CompileError
var ErrCompile = errors.New("compilation failed")

// CompileError reports a backend that could not produce an entry point
type CompileError struct {
	Backend string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s backend: %v: %v", e.Backend, ErrCompile, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is reports ErrCompile as a match in addition to the wrapped error
func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

// Factory creates a backend bound to a runtime
type Factory func(rt Runtime) Backend

var registry = map[string]Factory{
	"interp": func(rt Runtime) Backend { return NewInterp(rt) },
}

// DefaultName is the backend used when none is configured
const DefaultName = "interp"

// New creates the backend registered under name
func New(name string, rt Runtime) (Backend, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, Names())
	}
	return f(rt), nil
}

// Names lists the registered backends in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTape returns a zeroed tape of at least ir.MinTapeSize cells
func NewTape(size int) []byte {
	if size < ir.MinTapeSize {
		size = ir.MinTapeSize
	}
	return make([]byte, size)
}
