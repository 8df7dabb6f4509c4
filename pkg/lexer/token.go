package lexer

// Command classifies one source byte
type Command int

const (
	Comment   Command = iota // any byte that is not a command
	MoveRight                // >
	MoveLeft                 // <
	Increment                // +
	Decrement                // -
	Output                   // .
	Input                    // ,
	LoopOpen                 // [
	LoopClose                // ]
)

var commandSymbols = map[Command]string{
	Comment:   "comment",
	MoveRight: ">",
	MoveLeft:  "<",
	Increment: "+",
	Decrement: "-",
	Output:    ".",
	Input:     ",",
	LoopOpen:  "[",
	LoopClose: "]",
}

func (c Command) String() string {
	if s, ok := commandSymbols[c]; ok {
		return s
	}
	return "UNKNOWN"
}

// Classify maps a single source byte to its command.
// Bytes outside the eight command symbols are comments.
func Classify(b byte) Command {
	switch b {
	case '>':
		return MoveRight
	case '<':
		return MoveLeft
	case '+':
		return Increment
	case '-':
		return Decrement
	case '.':
		return Output
	case ',':
		return Input
	case '[':
		return LoopOpen
	case ']':
		return LoopClose
	default:
		return Comment
	}
}

// Token is a command together with where it appeared in the source
type Token struct {
	Cmd    Command
	Offset int // byte offset into the source
	Line   int
	Column int
}
