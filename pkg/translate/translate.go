// Package translate lowers tape-language source to IR in a single pass.
// Pointer movement is folded into a compile-time offset and cell values are
// cached per block, so straight-line runs touch memory once per cell. The
// cache is flushed before every branch and before the final return.
package translate

import (
	"log/slog"

	"github.com/raymyers/ralph-bf/pkg/ir"
	"github.com/raymyers/ralph-bf/pkg/lexer"
)

// DefaultName is the program name used when none is given
const DefaultName = "main"

// Options controls a translation.
type Options struct {
	Name     string       // program name, DefaultName if empty
	TapeSize int          // recorded on the program, at least ir.MinTapeSize
	Logger   *slog.Logger // nil disables logging
}

// Translate reads src to the end and returns the finished program.
// Unbalanced brackets yield a *WellFormednessError and no program.
func Translate(src []byte, opts Options) (*ir.Program, error) {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}

	prog := ir.NewProgram(name, opts.TapeSize)
	b := NewBuilder(prog)
	l := lexer.New(src)

	for {
		tok, ok := l.Next()
		if !ok {
			break
		}
		if err := step(b, tok); err != nil {
			return nil, err
		}
	}

	if err := b.Finish(); err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		s := prog.Stats()
		opts.Logger.Debug("translated program",
			"name", prog.Name,
			"bytes", len(src),
			"blocks", s.Blocks,
			"loads", s.Loads,
			"stores", s.Stores,
			"ptr_updates", s.PtrUpdates,
			"ops", s.Ops,
			"calls", s.Calls,
			"unreachable", s.Unreachable,
		)
	}
	return prog, nil
}

// step dispatches one command to the builder.
func step(b *Builder, tok lexer.Token) error {
	switch tok.Cmd {
	case lexer.MoveRight:
		b.Move(1)
	case lexer.MoveLeft:
		b.Move(-1)
	case lexer.Increment:
		b.EmitArith(ir.Oaddimm{N: 1})
	case lexer.Decrement:
		b.EmitArith(ir.Osubimm{N: 1})
	case lexer.Output:
		b.EmitOutput()
	case lexer.Input:
		b.EmitInput()
	case lexer.LoopOpen:
		b.EnterLoop(tok)
	case lexer.LoopClose:
		return b.ExitLoop(tok)
	}
	return nil
}
