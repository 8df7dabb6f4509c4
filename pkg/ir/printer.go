package ir

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs a program in a readable text form.
// Blocks are printed in arena order so output is stable across runs.
type Printer struct {
	w io.Writer
}

// NewPrinter creates a new IR printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	for _, e := range prog.Externs {
		fmt.Fprintf(p.w, "extern %s(%s): %s\n", e.Name, strings.Join(e.Sig.Args, ", "), e.Sig.Return)
	}
	fmt.Fprintf(p.w, "tape %d\n\n", prog.TapeSize)

	fmt.Fprintf(p.w, "%s(p) {\n", prog.Name)
	for _, b := range prog.Blocks {
		p.PrintBlock(b)
	}
	fmt.Fprintln(p.w, "}")
	fmt.Fprintf(p.w, "entry: b%d\n", prog.Entry)
}

// PrintBlock prints one block with its label
func (p *Printer) PrintBlock(b *Block) {
	fmt.Fprintf(p.w, "  b%d:\n", b.ID)
	for _, instr := range b.Instrs {
		fmt.Fprint(p.w, "    ")
		p.printInstruction(instr)
		fmt.Fprintln(p.w)
	}
	fmt.Fprint(p.w, "    ")
	p.printTerminator(b.Term)
	fmt.Fprintln(p.w)
}

func (p *Printer) printInstruction(instr Instruction) {
	switch i := instr.(type) {
	case Iload:
		fmt.Fprintf(p.w, "x%d = int8[p%s]", i.Dest, offsetString(i.Offset))
	case Istore:
		fmt.Fprintf(p.w, "int8[p%s] = x%d", offsetString(i.Offset), i.Src)
	case Iop:
		fmt.Fprintf(p.w, "x%d = ", i.Dest)
		p.printOperation(i.Op)
		fmt.Fprintf(p.w, "(%s)", regList(i.Args))
	case Iptradd:
		fmt.Fprintf(p.w, "p = p%s", offsetString(i.N))
	case Icall:
		if i.Dest != nil {
			fmt.Fprintf(p.w, "x%d = ", *i.Dest)
		}
		fmt.Fprintf(p.w, "call %s(%s)", i.Fn, regList(i.Args))
	default:
		fmt.Fprint(p.w, "???")
	}
}

func (p *Printer) printOperation(op Operation) {
	switch o := op.(type) {
	case Oaddimm:
		fmt.Fprintf(p.w, "addimm %d", o.N)
	case Osubimm:
		fmt.Fprintf(p.w, "subimm %d", o.N)
	default:
		fmt.Fprint(p.w, "???")
	}
}

func (p *Printer) printTerminator(term Terminator) {
	switch t := term.(type) {
	case Icond:
		fmt.Fprintf(p.w, "if (x%d != 0) goto b%d else goto b%d", t.Arg, t.IfSo, t.IfNot)
	case Ireturn:
		fmt.Fprintf(p.w, "return %d", t.Value)
	case nil:
		fmt.Fprint(p.w, "<unterminated>")
	default:
		fmt.Fprint(p.w, "???")
	}
}

func offsetString(n int64) string {
	switch {
	case n > 0:
		return fmt.Sprintf(" + %d", n)
	case n < 0:
		return fmt.Sprintf(" - %d", -n)
	}
	return ""
}

func regList(regs []Reg) string {
	parts := make([]string, len(regs))
	for i, r := range regs {
		parts[i] = fmt.Sprintf("x%d", r)
	}
	return strings.Join(parts, ", ")
}
