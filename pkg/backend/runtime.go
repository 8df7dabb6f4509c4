package backend

import (
	"bufio"
	"io"
)

// Runtime provides byte I/O to generated code
type Runtime interface {
	OutputByte(b byte)
	InputByte() byte // 0 at end of input
}

// StreamRuntime implements Runtime over a reader and a writer.
// Output is buffered; call Flush when the program is done.
type StreamRuntime struct {
	in  *bufio.Reader
	out *bufio.Writer
	err error // first write error, if any
}

// NewStreamRuntime creates a runtime reading from in and writing to out.
// Either may be nil.
func NewStreamRuntime(in io.Reader, out io.Writer) *StreamRuntime {
	rt := &StreamRuntime{}
	if in != nil {
		rt.in = bufio.NewReader(in)
	}
	if out != nil {
		rt.out = bufio.NewWriter(out)
	}
	return rt
}

// OutputByte writes one byte
func (rt *StreamRuntime) OutputByte(b byte) {
	if rt.out == nil || rt.err != nil {
		return
	}
	rt.err = rt.out.WriteByte(b)
}

// InputByte reads one byte. End of input and read errors both yield 0.
func (rt *StreamRuntime) InputByte() byte {
	if rt.in == nil {
		return 0
	}
	b, err := rt.in.ReadByte()
	if err != nil {
		return 0
	}
	return b
}

// Flush writes any buffered output and returns the first write error
func (rt *StreamRuntime) Flush() error {
	if rt.out == nil {
		return rt.err
	}
	if err := rt.out.Flush(); err != nil && rt.err == nil {
		rt.err = err
	}
	return rt.err
}
