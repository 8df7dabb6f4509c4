package translate

import (
	"github.com/raymyers/ralph-bf/pkg/ir"
	"github.com/raymyers/ralph-bf/pkg/lexer"
)

// LoopFrame records the blocks of a loop whose ']' has not been seen yet
type LoopFrame struct {
	Body ir.BlockID  // first block of the loop body, target of the back edge
	Exit ir.BlockID  // block that follows the loop
	Open lexer.Token // the '[' that opened the loop
}

// LoopStack tracks open loops, innermost last.
type LoopStack struct {
	frames []LoopFrame
}

// Push adds a frame for a newly opened loop.
func (s *LoopStack) Push(f LoopFrame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the innermost frame.
// Returns false if no loop is open.
func (s *LoopStack) Pop() (LoopFrame, bool) {
	if len(s.frames) == 0 {
		return LoopFrame{}, false
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, true
}

// Top returns the innermost frame without removing it.
func (s *LoopStack) Top() (LoopFrame, bool) {
	if len(s.frames) == 0 {
		return LoopFrame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Depth returns the current nesting depth.
func (s *LoopStack) Depth() int {
	return len(s.frames)
}
