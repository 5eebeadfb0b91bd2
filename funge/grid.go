// Package funge implements a Befunge-93 execution engine built around a
// tracing just-in-time compiler. The playfield is compiled into basic blocks
// of linear byte code on demand; self-modifying stores invalidate affected
// blocks with cell-level granularity.
// References:
//   https://esolangs.org/wiki/Befunge
//   https://github.com/catseye/Befunge-93/blob/master/doc/Befunge-93.markdown
package funge

import (
	"fmt"
	"strings"
	"unicode"
)

// Playfield dimensions fixed by the Befunge-93 language.
const (
	GridWidth  = 80
	GridHeight = 25
)

// Position is a location on the playfield. Values outside the playfield occur
// transiently while stepping and are normalized by toroidal wrap.
type Position struct {
	X int
	Y int
}

// InGrid reports whether the position is on the playfield.
func (p Position) InGrid() bool {
	return 0 <= p.X && p.X < GridWidth && 0 <= p.Y && p.Y < GridHeight
}

// Direction is the movement direction of the program counter. The zero value
// is Right, the direction a program starts with.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
	numDirections
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "?"
}

// delta returns the unit step for the direction.
func (d Direction) delta() (int, int) {
	switch d {
	case Right:
		return 1, 0
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	default:
		return 0, 1
	}
}

// PC is a program counter: a playfield position plus a movement direction.
// Two PCs at the same position with different directions are distinct and
// compile into distinct basic blocks.
type PC struct {
	Pos Position
	Dir Direction
}

func (pc PC) String() string {
	return fmt.Sprintf("(%d,%d %s)", pc.Pos.X, pc.Pos.Y, pc.Dir)
}

// Step moves the PC one cell along its direction, wrapping around the
// playfield edges (the playfield is a torus).
func (pc PC) Step() PC {
	dx, dy := pc.Dir.delta()
	pc.Pos.X = (pc.Pos.X + dx + GridWidth) % GridWidth
	pc.Pos.Y = (pc.Pos.Y + dy + GridHeight) % GridHeight
	return pc
}

// Turn returns the PC redirected to d, position unchanged.
func (pc PC) Turn(d Direction) PC {
	pc.Dir = d
	return pc
}

// Grid is the 80x25 Befunge-93 playfield. Cells are stored as raw bytes and
// read back as signed 8-bit values widened to int64, so a cell holding 0xFF
// reads as -1.
type Grid struct {
	cells [GridHeight][GridWidth]byte
}

// ParseGrid builds a playfield from source text. Lines are rows; short rows
// are right-padded with spaces and missing rows are all-space. Non-ASCII
// characters and programs larger than 80x25 are rejected.
func ParseGrid(source string) (*Grid, error) {
	g := &Grid{}
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = ' '
		}
	}
	lines := splitLines(source)
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	if len(lines) > GridHeight || width > GridWidth {
		return nil, &InvalidGridSizeError{Width: width, Height: len(lines)}
	}
	for y, line := range lines {
		for x, r := range []rune(line) {
			if r > unicode.MaxASCII {
				return nil, &NonASCIIError{Value: int64(r)}
			}
			g.cells[y][x] = byte(r)
		}
	}
	return g, nil
}

// splitLines splits source text on line feeds, tolerating CRLF endings. A
// trailing newline does not produce an extra empty row.
func splitLines(source string) []string {
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// At returns the raw byte at p. p must be on the playfield.
func (g *Grid) At(p Position) byte {
	return g.cells[p.Y][p.X]
}

// Peek reads the cell at p as a signed 8-bit value widened to int64. Reads
// outside the playfield yield 0.
func (g *Grid) Peek(p Position) int64 {
	if !p.InGrid() {
		return 0
	}
	return int64(int8(g.cells[p.Y][p.X]))
}

// Poke stores the low byte of v at p. Writes outside the playfield are
// ignored; the caller is responsible for cache invalidation.
func (g *Grid) Poke(p Position, v int64) {
	if !p.InGrid() {
		return
	}
	g.cells[p.Y][p.X] = byte(v)
}

// Row renders row y as a string with trailing spaces stripped.
func (g *Grid) Row(y int) string {
	return strings.TrimRight(string(g.cells[y][:]), " ")
}

// Lines renders the playfield back to source lines, trailing space rows and
// trailing spaces within rows stripped.
func (g *Grid) Lines() []string {
	last := -1
	for y := 0; y < GridHeight; y++ {
		if g.Row(y) != "" {
			last = y
		}
	}
	lines := make([]string, last+1)
	for y := 0; y <= last; y++ {
		lines[y] = g.Row(y)
	}
	return lines
}
