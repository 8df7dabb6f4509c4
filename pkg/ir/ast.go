// Package ir defines the block-structured intermediate representation
// produced by the translator and consumed by code-generation backends.
// A program is an arena of basic blocks addressed by BlockID. Each block
// holds straight-line instructions over virtual registers and ends in
// exactly one terminator.
package ir

// BlockID indexes a block in the program arena
type BlockID int

// Reg represents a virtual register (positive integer, infinite supply)
type Reg int

// NoBlock marks an unset block reference
const NoBlock BlockID = -1

// MinTapeSize is the smallest tape the language allows
const MinTapeSize = 30000

// Extern names declared for runtime I/O
const (
	PutChar = "putchar"
	GetChar = "getchar"
)

// --- Operation Types ---

// Operation is an arithmetic operation on 8-bit cell values
type Operation interface {
	implOperation()
}

type Oaddimm struct{ N int8 } // rd = rs + n (wrapping)
type Osubimm struct{ N int8 } // rd = rs - n (wrapping)

func (Oaddimm) implOperation() {}
func (Osubimm) implOperation() {}

// --- Instruction Types ---

// Instruction is a non-terminating instruction inside a block
type Instruction interface {
	implInstruction()
}

// Iload reads a cell: dest = tape[ptr+Offset]
type Iload struct {
	Offset int64
	Dest   Reg
}

// Istore writes a cell: tape[ptr+Offset] = src
type Istore struct {
	Offset int64
	Src    Reg
}

// Iop performs an operation: dest = op(args...)
type Iop struct {
	Op   Operation
	Args []Reg
	Dest Reg
}

// Iptradd moves the runtime pointer: ptr = ptr + N
type Iptradd struct {
	N int64
}

// Icall calls a declared external function
type Icall struct {
	Fn   string
	Args []Reg
	Dest *Reg // nil when the callee returns nothing
}

func (Iload) implInstruction()   {}
func (Istore) implInstruction()  {}
func (Iop) implInstruction()     {}
func (Iptradd) implInstruction() {}
func (Icall) implInstruction()   {}

// --- Terminators ---

// Terminator ends a block and names its successors
type Terminator interface {
	implTerminator()
	Successors() []BlockID
}

// Icond branches to IfSo when Arg is non-zero, else to IfNot
type Icond struct {
	Arg   Reg
	IfSo  BlockID
	IfNot BlockID
}

// Ireturn returns a status code from the program
type Ireturn struct {
	Value int32
}

func (Icond) implTerminator()   {}
func (Ireturn) implTerminator() {}

func (i Icond) Successors() []BlockID   { return []BlockID{i.IfSo, i.IfNot} }
func (i Ireturn) Successors() []BlockID { return nil }

// --- Blocks and Program ---

// Block is a basic block: instructions followed by one terminator
type Block struct {
	ID     BlockID
	Instrs []Instruction
	Term   Terminator // nil until the block is sealed
}

// Successors returns the successor blocks (none if unterminated)
func (b *Block) Successors() []BlockID {
	if b.Term == nil {
		return nil
	}
	return b.Term.Successors()
}

// Sig describes an external function signature
type Sig struct {
	Args   []string
	Return string // "void" if none
}

// Extern declares a runtime function the generated code may call
type Extern struct {
	Name string
	Sig  Sig
}

// Program is a complete translated program
type Program struct {
	Name     string
	Blocks   []*Block // arena, indexed by BlockID
	Entry    BlockID
	Externs  []Extern
	TapeSize int
}

// NewProgram creates an empty program with the runtime I/O externs declared
func NewProgram(name string, tapeSize int) *Program {
	if tapeSize < MinTapeSize {
		tapeSize = MinTapeSize
	}
	return &Program{
		Name:  name,
		Entry: NoBlock,
		Externs: []Extern{
			{Name: PutChar, Sig: Sig{Args: []string{"int8"}, Return: "void"}},
			{Name: GetChar, Sig: Sig{Return: "int8"}},
		},
		TapeSize: tapeSize,
	}
}

// NewBlock allocates an empty block in the arena and returns its ID
func (p *Program) NewBlock() BlockID {
	id := BlockID(len(p.Blocks))
	p.Blocks = append(p.Blocks, &Block{ID: id})
	return id
}

// Block returns the block with the given ID, or nil if out of range
func (p *Program) Block(id BlockID) *Block {
	if id < 0 || int(id) >= len(p.Blocks) {
		return nil
	}
	return p.Blocks[id]
}

// LookupExtern returns the declared extern with the given name
func (p *Program) LookupExtern(name string) (Extern, bool) {
	for _, e := range p.Externs {
		if e.Name == name {
			return e, true
		}
	}
	return Extern{}, false
}
