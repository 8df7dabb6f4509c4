package translate

import (
	"github.com/raymyers/ralph-bf/pkg/ir"
	"github.com/raymyers/ralph-bf/pkg/lexer"
)

// Builder owns the block being filled and the stack of open loops.
// Blocks live in the program arena and are referred to by ID only.
type Builder struct {
	prog    *ir.Program
	cur     ir.BlockID
	cache   *CellCache
	loops   LoopStack
	nextReg ir.Reg
	done    bool
}

// NewBuilder creates a builder positioned at a fresh entry block of prog.
func NewBuilder(prog *ir.Program) *Builder {
	b := &Builder{
		prog:    prog,
		nextReg: 1, // Register IDs start at 1
	}
	b.cache = NewCellCache(b)
	b.cur = prog.NewBlock()
	prog.Entry = b.cur
	return b
}

// Program returns the program under construction
func (b *Builder) Program() *ir.Program {
	return b.prog
}

// Current returns the block instructions are appended to
func (b *Builder) Current() ir.BlockID {
	return b.cur
}

// Cache returns the builder's cell cache
func (b *Builder) Cache() *CellCache {
	return b.cache
}

// Depth returns the loop nesting depth
func (b *Builder) Depth() int {
	return b.loops.Depth()
}

// AllocReg allocates a fresh virtual register.
func (b *Builder) AllocReg() ir.Reg {
	r := b.nextReg
	b.nextReg++
	return r
}

// Emit appends an instruction to the current block.
func (b *Builder) Emit(instr ir.Instruction) {
	blk := b.prog.Block(b.cur)
	blk.Instrs = append(blk.Instrs, instr)
}

// seal terminates the current block
func (b *Builder) seal(term ir.Terminator) {
	b.prog.Block(b.cur).Term = term
}

// Move folds pointer movement into the pending offset.
func (b *Builder) Move(delta int64) {
	b.cache.Move(delta)
}

// EmitArith applies op to the cell under the pointer.
func (b *Builder) EmitArith(op ir.Operation) {
	off := b.cache.Pending()
	v := b.cache.Read(off)
	d := b.AllocReg()
	b.Emit(ir.Iop{Op: op, Args: []ir.Reg{v}, Dest: d})
	b.cache.Write(off, d)
}

// EmitOutput writes the cell under the pointer to the output.
func (b *Builder) EmitOutput() {
	v := b.cache.Read(b.cache.Pending())
	b.Emit(ir.Icall{Fn: ir.PutChar, Args: []ir.Reg{v}})
}

// EmitInput reads one byte into the cell under the pointer.
func (b *Builder) EmitInput() {
	d := b.AllocReg()
	b.Emit(ir.Icall{Fn: ir.GetChar, Dest: &d})
	b.cache.Write(b.cache.Pending(), d)
}

// branchOnCell flushes and ends the current block with a test of the cell
// under the pointer.
func (b *Builder) branchOnCell(ifSo, ifNot ir.BlockID) {
	b.cache.Flush()
	cond := b.AllocReg()
	b.Emit(ir.Iload{Offset: 0, Dest: cond})
	b.seal(ir.Icond{Arg: cond, IfSo: ifSo, IfNot: ifNot})
}

// EnterLoop handles '['. The current block branches into a new body block
// when the cell is non-zero and to a new exit block otherwise. Building
// continues in the body.
func (b *Builder) EnterLoop(tok lexer.Token) {
	body := b.prog.NewBlock()
	exit := b.prog.NewBlock()

	b.branchOnCell(body, exit)

	b.loops.Push(LoopFrame{Body: body, Exit: exit, Open: tok})
	b.cur = body
}

// ExitLoop handles ']'. The current block retests the cell and branches back
// to the start of the loop body or on to the exit block, where building
// continues.
func (b *Builder) ExitLoop(tok lexer.Token) error {
	frame, ok := b.loops.Pop()
	if !ok {
		return &WellFormednessError{Err: ErrUnmatchedClose, At: tok}
	}

	b.branchOnCell(frame.Body, frame.Exit)

	b.cur = frame.Exit
	return nil
}

// Finish flushes the cache and ends the current block with a return.
// It fails if a loop is still open.
func (b *Builder) Finish() error {
	if frame, ok := b.loops.Top(); ok {
		return &WellFormednessError{Err: ErrUnmatchedOpen, At: frame.Open}
	}
	if b.done {
		return nil
	}
	b.cache.Flush()
	b.seal(ir.Ireturn{Value: 0})
	b.done = true
	return nil
}
