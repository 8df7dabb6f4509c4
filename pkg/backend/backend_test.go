package backend

import (
	"errors"
	"strings"
	"testing"

	"github.com/raymyers/ralph-bf/pkg/ir"
)

func TestNewKnownBackend(t *testing.T) {
	b, err := New(DefaultName, NewStreamRuntime(nil, nil))
	if err != nil {
		t.Fatalf("New(%q): %v", DefaultName, err)
	}
	if _, ok := b.(*Interp); !ok {
		t.Errorf("New(%q) = %T, want *Interp", DefaultName, b)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New("llvm", nil)
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), `unknown backend "llvm"`) {
		t.Errorf("error = %q", err.Error())
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) == 0 || names[0] != "interp" {
		t.Errorf("Names() = %v, want [interp]", names)
	}
}

func TestNewTape(t *testing.T) {
	if n := len(NewTape(10)); n != ir.MinTapeSize {
		t.Errorf("len(NewTape(10)) = %d, want %d", n, ir.MinTapeSize)
	}
	tape := NewTape(40000)
	if len(tape) != 40000 {
		t.Errorf("len(NewTape(40000)) = %d", len(tape))
	}
	for i, c := range tape {
		if c != 0 {
			t.Fatalf("tape[%d] = %d, want 0", i, c)
		}
	}
}

func TestCompileError(t *testing.T) {
	inner := errors.New("boom")
	err := error(&CompileError{Backend: "interp", Err: inner})

	if !errors.Is(err, ErrCompile) {
		t.Error("CompileError should match ErrCompile")
	}
	if !errors.Is(err, inner) {
		t.Error("CompileError should unwrap to its cause")
	}
	if err.Error() != "interp backend: compilation failed: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestLinearizeLayout(t *testing.T) {
	prog := ir.NewProgram("loop", ir.MinTapeSize)
	entry := prog.NewBlock()
	body := prog.NewBlock()
	exit := prog.NewBlock()
	prog.Entry = entry
	prog.Block(entry).Instrs = []ir.Instruction{ir.Iload{Dest: 1}}
	prog.Block(entry).Term = ir.Icond{Arg: 1, IfSo: body, IfNot: exit}
	prog.Block(body).Instrs = []ir.Instruction{
		ir.Iop{Op: ir.Osubimm{N: 1}, Args: []ir.Reg{1}, Dest: 2},
		ir.Istore{Src: 2},
		ir.Iload{Dest: 3},
	}
	prog.Block(body).Term = ir.Icond{Arg: 3, IfSo: body, IfNot: exit}
	prog.Block(exit).Term = ir.Ireturn{Value: 0}

	c := &compiled{}
	if err := c.linearize(prog); err != nil {
		t.Fatalf("linearize: %v", err)
	}

	wantOps := []opcode{opLoad, opBranch, opAddImm, opStore, opLoad, opBranch, opReturn}
	if len(c.code) != len(wantOps) {
		t.Fatalf("code has %d insns, want %d", len(c.code), len(wantOps))
	}
	for i, op := range wantOps {
		if c.code[i].op != op {
			t.Errorf("code[%d].op = %d, want %d", i, c.code[i].op, op)
		}
	}

	// entry branch: body starts at 2, exit at 6
	if c.code[1].ifSo != 2 || c.code[1].ifNot != 6 {
		t.Errorf("entry branch targets = %d/%d, want 2/6", c.code[1].ifSo, c.code[1].ifNot)
	}
	// back edge returns to the body start
	if c.code[5].ifSo != 2 || c.code[5].ifNot != 6 {
		t.Errorf("back edge targets = %d/%d, want 2/6", c.code[5].ifSo, c.code[5].ifNot)
	}
	if c.code[2].imm != -1 {
		t.Errorf("subimm lowered to addimm %d, want -1", c.code[2].imm)
	}
	if c.nregs != 4 {
		t.Errorf("nregs = %d, want 4", c.nregs)
	}
}
