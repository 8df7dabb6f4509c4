package ir

import "fmt"

// ValidationError reports a structural problem in a program
type ValidationError struct {
	Block BlockID
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Block == NoBlock {
		return fmt.Sprintf("invalid program: %s", e.Msg)
	}
	return fmt.Sprintf("invalid program: block %d: %s", e.Block, e.Msg)
}

// Validate checks that every block is terminated, every branch targets a
// block in the arena and every call names a declared extern with the right
// number of arguments.
func (p *Program) Validate() error {
	if p.Block(p.Entry) == nil {
		return &ValidationError{Block: NoBlock, Msg: fmt.Sprintf("entry block %d does not exist", p.Entry)}
	}
	for i, b := range p.Blocks {
		if b == nil || b.ID != BlockID(i) {
			return &ValidationError{Block: BlockID(i), Msg: "arena slot does not hold its own block"}
		}
		if b.Term == nil {
			return &ValidationError{Block: b.ID, Msg: "missing terminator"}
		}
		for _, s := range b.Successors() {
			if p.Block(s) == nil {
				return &ValidationError{Block: b.ID, Msg: fmt.Sprintf("branch to unknown block %d", s)}
			}
		}
		for _, instr := range b.Instrs {
			call, ok := instr.(Icall)
			if !ok {
				continue
			}
			ext, ok := p.LookupExtern(call.Fn)
			if !ok {
				return &ValidationError{Block: b.ID, Msg: fmt.Sprintf("call to undeclared function %q", call.Fn)}
			}
			if len(call.Args) != len(ext.Sig.Args) {
				return &ValidationError{Block: b.ID, Msg: fmt.Sprintf("call to %s with %d args, want %d", call.Fn, len(call.Args), len(ext.Sig.Args))}
			}
		}
	}
	return nil
}

// Stats counts instructions by kind
type Stats struct {
	Blocks     int
	Loads      int
	Stores     int
	PtrUpdates int
	Ops        int
	Calls      int
	Branches   int

	// Unreachable counts non-entry blocks that no branch targets
	Unreachable int
}

// Stats returns instruction counts over all blocks
func (p *Program) Stats() Stats {
	var s Stats
	s.Blocks = len(p.Blocks)
	preds := p.Predecessors()
	for _, b := range p.Blocks {
		if b.ID != p.Entry && len(preds[b.ID]) == 0 {
			s.Unreachable++
		}
		for _, instr := range b.Instrs {
			switch instr.(type) {
			case Iload:
				s.Loads++
			case Istore:
				s.Stores++
			case Iptradd:
				s.PtrUpdates++
			case Iop:
				s.Ops++
			case Icall:
				s.Calls++
			}
		}
		if _, ok := b.Term.(Icond); ok {
			s.Branches++
		}
	}
	return s
}
