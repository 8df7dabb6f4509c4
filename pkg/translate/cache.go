package translate

import (
	"sort"

	"github.com/raymyers/ralph-bf/pkg/ir"
)

// emitter is the part of the block builder the cell cache needs
type emitter interface {
	Emit(instr ir.Instruction)
	AllocReg() ir.Reg
}

// CellCache folds pointer movement and caches cell values between flush
// points. An entry for offset k is the current value of tape[ptr+k], which
// memory may not hold yet. Every entry is stored and the pending offset is
// applied to the pointer at the next Flush.
type CellCache struct {
	e       emitter
	entries map[int64]ir.Reg // offset -> value of tape[ptr+offset]
	pending int64            // pointer movement not yet applied
}

// NewCellCache creates an empty cache that emits through e
func NewCellCache(e emitter) *CellCache {
	return &CellCache{
		e:       e,
		entries: make(map[int64]ir.Reg),
	}
}

// Read returns the value of the cell at offset, loading it on first use.
func (c *CellCache) Read(offset int64) ir.Reg {
	if r, ok := c.entries[offset]; ok {
		return r
	}
	r := c.e.AllocReg()
	c.e.Emit(ir.Iload{Offset: offset, Dest: r})
	c.entries[offset] = r
	return r
}

// Write records value as the cell at offset. No store is emitted until Flush.
func (c *CellCache) Write(offset int64, value ir.Reg) {
	c.entries[offset] = value
}

// Move shifts the pending offset without emitting anything
func (c *CellCache) Move(delta int64) {
	c.pending += delta
}

// Pending returns the pointer movement not yet applied
func (c *CellCache) Pending() int64 {
	return c.pending
}

// Len returns the number of cached cells
func (c *CellCache) Len() int {
	return len(c.entries)
}

// Flush stores every cached cell in ascending offset order, applies the
// pending offset to the pointer and empties the cache.
func (c *CellCache) Flush() {
	offsets := make([]int64, 0, len(c.entries))
	for off := range c.entries {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool {
		return offsets[i] < offsets[j]
	})

	for _, off := range offsets {
		c.e.Emit(ir.Istore{Offset: off, Src: c.entries[off]})
	}

	// Stores above are relative to the old pointer, so the pointer moves last.
	if c.pending != 0 {
		c.e.Emit(ir.Iptradd{N: c.pending})
	}

	clear(c.entries)
	c.pending = 0
}
