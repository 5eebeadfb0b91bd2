package funge

import (
	"fmt"
	"io"
)

// Engine executes one Befunge-93 program. It owns the playfield, the value
// stack, the block cache and the program counter; input and output go through
// the adapters handed to New. The engine is single-threaded: a running block
// has exclusive access to all state.
type Engine struct {
	grid  *Grid
	stack *Stack
	pc    PC
	io    *ioPort
	rng   RandomSource
	cache *blockCache
	steps uint64
}

// New parses source into a playfield and returns an engine reading program
// input from in and writing program output to out. The random source is
// seeded from the wall clock; use SetRandomSource for reproducible runs.
func New(source string, in io.Reader, out io.Writer) (*Engine, error) {
	grid, err := ParseGrid(source)
	if err != nil {
		return nil, err
	}
	return &Engine{
		grid:  grid,
		stack: &Stack{},
		io:    newIOPort(in, out),
		rng:   newTimeSeededSource(),
		cache: newBlockCache(),
	}, nil
}

// SetRandomSource replaces the source of randomness for the ? command.
func (e *Engine) SetRandomSource(r RandomSource) {
	e.rng = r
}

// Step ensures a block exists for the current PC, executes it, and resolves
// its terminator to the next PC. done is true once the program has ended.
func (e *Engine) Step() (done bool, err error) {
	block, err := e.cache.Ensure(e.grid, e.pc)
	if err != nil {
		return false, fmt.Errorf("compile error at (%d,%d): %w", e.pc.Pos.X, e.pc.Pos.Y, err)
	}
	term, err := e.execute(block)
	if err != nil {
		return false, fmt.Errorf("runtime error at (%d,%d): %w", e.pc.Pos.X, e.pc.Pos.Y, err)
	}
	e.steps++
	switch term.Kind {
	case TermJump:
		e.pc = term.Target
	case TermBranch:
		if e.stack.Pop() != 0 {
			e.pc = term.True
		} else {
			e.pc = term.False
		}
	case TermRandom:
		e.pc = term.Choices[e.rng.Direction()]
	case TermEnd:
		return true, nil
	}
	return false, nil
}

// Run executes blocks until the program ends or fails.
func (e *Engine) Run() error {
	for {
		done, err := e.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Position returns the current playfield position.
func (e *Engine) Position() Position {
	return e.pc.Pos
}

// Direction returns the current movement direction.
func (e *Engine) Direction() Direction {
	return e.pc.Dir
}

// Steps returns the number of basic blocks dispatched so far.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// Compiles returns the number of blocks compiled so far. It advances only on
// cache misses.
func (e *Engine) Compiles() uint64 {
	return e.cache.compiles
}

// StackValues returns a copy of the value stack, bottom first.
func (e *Engine) StackValues() []int64 {
	return e.stack.Values()
}

// Row renders playfield row y, trailing spaces stripped. Used by the
// debugger view.
func (e *Engine) Row(y int) string {
	return e.grid.Row(y)
}

// CurrentBlock returns the cached block for the current PC, or nil if it has
// not been compiled yet.
func (e *Engine) CurrentBlock() *BasicBlock {
	return e.cache.Lookup(e.pc)
}
