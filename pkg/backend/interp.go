package backend

import (
	"errors"
	"fmt"

	"github.com/raymyers/ralph-bf/pkg/ir"
)

// ErrTapeBounds is returned when a program touches a cell outside the tape
var ErrTapeBounds = errors.New("pointer outside tape")

type opcode uint8

const (
	opLoad opcode = iota
	opStore
	opAddImm
	opPtrAdd
	opPut
	opGet
	opBranch
	opReturn
)

// insn is one instruction of linearized code. Branch targets are indices
// into the code array.
type insn struct {
	op    opcode
	imm   int64 // offset, immediate, pointer delta or return value
	dst   ir.Reg
	src   ir.Reg
	ifSo  int
	ifNot int
}

// Interp is a local backend. It lays the CFG out in reverse postorder and
// executes the resulting flat code with one byte per virtual register.
type Interp struct {
	rt Runtime
}

// NewInterp creates an interpreter backend doing I/O through rt
func NewInterp(rt Runtime) *Interp {
	return &Interp{rt: rt}
}

// compiled holds linearized code ready to run
type compiled struct {
	code     []insn
	nregs    int
	tapeSize int
	rt       Runtime
}

// Compile validates and linearizes prog
func (it *Interp) Compile(prog *ir.Program) (Entry, error) {
	if err := prog.Validate(); err != nil {
		return nil, &CompileError{Backend: "interp", Err: err}
	}
	if it.rt == nil {
		return nil, &CompileError{Backend: "interp", Err: errors.New("no runtime bound")}
	}

	c := &compiled{tapeSize: prog.TapeSize, rt: it.rt}
	if err := c.linearize(prog); err != nil {
		return nil, &CompileError{Backend: "interp", Err: err}
	}
	return c.run, nil
}

// linearize emits blocks in reverse postorder. Blocks that cannot be reached
// from the entry are dropped. Every branch names both targets explicitly.
func (c *compiled) linearize(prog *ir.Program) error {
	order := prog.ReversePostorder()
	start := make(map[ir.BlockID]int, len(order))

	// branch slots are patched once every block has a start index
	type fixup struct {
		pc          int
		ifSo, ifNot ir.BlockID
	}
	var fixups []fixup
	var maxReg ir.Reg

	use := func(regs ...ir.Reg) {
		for _, r := range regs {
			if r > maxReg {
				maxReg = r
			}
		}
	}

	for _, id := range order {
		start[id] = len(c.code)
		blk := prog.Block(id)

		for _, instr := range blk.Instrs {
			switch i := instr.(type) {
			case ir.Iload:
				use(i.Dest)
				c.code = append(c.code, insn{op: opLoad, imm: i.Offset, dst: i.Dest})
			case ir.Istore:
				use(i.Src)
				c.code = append(c.code, insn{op: opStore, imm: i.Offset, src: i.Src})
			case ir.Iptradd:
				c.code = append(c.code, insn{op: opPtrAdd, imm: i.N})
			case ir.Iop:
				in, err := lowerOp(i)
				if err != nil {
					return fmt.Errorf("block %d: %w", id, err)
				}
				use(i.Dest)
				use(i.Args...)
				c.code = append(c.code, in)
			case ir.Icall:
				in, err := lowerCall(i)
				if err != nil {
					return fmt.Errorf("block %d: %w", id, err)
				}
				use(in.dst, in.src)
				c.code = append(c.code, in)
			default:
				return fmt.Errorf("block %d: unsupported instruction %T", id, instr)
			}
		}

		switch t := blk.Term.(type) {
		case ir.Icond:
			use(t.Arg)
			fixups = append(fixups, fixup{pc: len(c.code), ifSo: t.IfSo, ifNot: t.IfNot})
			c.code = append(c.code, insn{op: opBranch, src: t.Arg})
		case ir.Ireturn:
			c.code = append(c.code, insn{op: opReturn, imm: int64(t.Value)})
		default:
			return fmt.Errorf("block %d: unsupported terminator %T", id, blk.Term)
		}
	}

	for _, f := range fixups {
		c.code[f.pc].ifSo = start[f.ifSo]
		c.code[f.pc].ifNot = start[f.ifNot]
	}
	c.nregs = int(maxReg) + 1
	return nil
}

func lowerOp(i ir.Iop) (insn, error) {
	switch o := i.Op.(type) {
	case ir.Oaddimm:
		if len(i.Args) != 1 {
			return insn{}, fmt.Errorf("addimm takes 1 argument, got %d", len(i.Args))
		}
		return insn{op: opAddImm, imm: int64(o.N), dst: i.Dest, src: i.Args[0]}, nil
	case ir.Osubimm:
		if len(i.Args) != 1 {
			return insn{}, fmt.Errorf("subimm takes 1 argument, got %d", len(i.Args))
		}
		return insn{op: opAddImm, imm: -int64(o.N), dst: i.Dest, src: i.Args[0]}, nil
	}
	return insn{}, fmt.Errorf("unsupported operation %T", i.Op)
}

func lowerCall(i ir.Icall) (insn, error) {
	switch i.Fn {
	case ir.PutChar:
		return insn{op: opPut, src: i.Args[0]}, nil
	case ir.GetChar:
		if i.Dest == nil {
			// result discarded; still consumes a byte
			return insn{op: opGet}, nil
		}
		return insn{op: opGet, dst: *i.Dest}, nil
	}
	return insn{}, fmt.Errorf("no runtime binding for %q", i.Fn)
}

// run executes the linearized code. Register 0 is never allocated by the
// translator and absorbs discarded results.
func (c *compiled) run(tape []byte) (int32, error) {
	if len(tape) < c.tapeSize {
		return 0, fmt.Errorf("tape has %d cells, program needs %d", len(tape), c.tapeSize)
	}

	regs := make([]byte, c.nregs)
	size := int64(len(tape))
	var ptr int64
	pc := 0

	for {
		in := &c.code[pc]
		switch in.op {
		case opLoad:
			addr := ptr + in.imm
			if addr < 0 || addr >= size {
				return 0, fmt.Errorf("%w: load of cell %d", ErrTapeBounds, addr)
			}
			regs[in.dst] = tape[addr]
		case opStore:
			addr := ptr + in.imm
			if addr < 0 || addr >= size {
				return 0, fmt.Errorf("%w: store to cell %d", ErrTapeBounds, addr)
			}
			tape[addr] = regs[in.src]
		case opAddImm:
			regs[in.dst] = regs[in.src] + byte(in.imm)
		case opPtrAdd:
			ptr += in.imm
		case opPut:
			c.rt.OutputByte(regs[in.src])
		case opGet:
			regs[in.dst] = c.rt.InputByte()
		case opBranch:
			if regs[in.src] != 0 {
				pc = in.ifSo
			} else {
				pc = in.ifNot
			}
			continue
		case opReturn:
			return int32(in.imm), nil
		}
		pc++
	}
}
