package translate

import (
	"errors"
	"fmt"

	"github.com/raymyers/ralph-bf/pkg/lexer"
)

var (
	// ErrUnmatchedOpen is reported for a '[' with no matching ']'
	ErrUnmatchedOpen = errors.New("unmatched '['")
	// ErrUnmatchedClose is reported for a ']' with no open loop
	ErrUnmatchedClose = errors.New("unmatched ']'")
)

// WellFormednessError reports unbalanced brackets. The source is rejected
// as a whole; no program is produced.
type WellFormednessError struct {
	Err error       // ErrUnmatchedOpen or ErrUnmatchedClose
	At  lexer.Token // the offending bracket
}

func (e *WellFormednessError) Error() string {
	return fmt.Sprintf("%d:%d: %v", e.At.Line, e.At.Column, e.Err)
}

func (e *WellFormednessError) Unwrap() error {
	return e.Err
}
