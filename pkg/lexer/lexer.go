// Package lexer turns raw source bytes into a stream of commands.
package lexer

// Lexer scans source bytes one command at a time.
// It is single use: once Next reports the end of input it keeps doing so.
type Lexer struct {
	input  []byte
	pos    int // next byte to read
	line   int
	column int
}

// New creates a new Lexer for the given input
func New(input []byte) *Lexer {
	return &Lexer{input: input, line: 1, column: 0}
}

// Next returns the next command, skipping comments.
// The second result is false at end of input.
func (l *Lexer) Next() (Token, bool) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		offset := l.pos
		l.pos++
		l.column++

		cmd := Classify(ch)
		tok := Token{Cmd: cmd, Offset: offset, Line: l.line, Column: l.column}

		if ch == '\n' {
			l.line++
			l.column = 0
		}
		if cmd != Comment {
			return tok, true
		}
	}
	return Token{}, false
}
