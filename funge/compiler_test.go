package funge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, source string) *Grid {
	t.Helper()
	g, err := ParseGrid(source)
	require.NoError(t, err)
	return g
}

func opKinds(b *BasicBlock) []OpKind {
	kinds := make([]OpKind, len(b.Ops))
	for i, op := range b.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

func TestCompileLinear(t *testing.T) {
	g := mustGrid(t, `12+.@`)
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	assert.Equal(t, []OpKind{OpPush, OpPush, OpBinary, OpOutput}, opKinds(b))
	assert.Equal(t, int64(1), b.Ops[0].Val)
	assert.Equal(t, int64(2), b.Ops[1].Val)
	assert.Equal(t, BinAdd, b.Ops[2].Bin)
	assert.Equal(t, ModeDecimal, b.Ops[3].Mode)
	assert.Equal(t, TermEnd, b.Term.Kind)
	assert.Equal(t, []Position{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, b.cells)
}

func TestCompileStringMode(t *testing.T) {
	g := mustGrid(t, `"AB"@`)
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	require.Len(t, b.Ops, 2)
	assert.Equal(t, int64('A'), b.Ops[0].Val)
	assert.Equal(t, int64('B'), b.Ops[1].Val)
	assert.Equal(t, TermEnd, b.Term.Kind)
	// the quote cells are visited even though they emit nothing
	assert.Contains(t, b.cells, Position{X: 0, Y: 0})
	assert.Contains(t, b.cells, Position{X: 3, Y: 0})
}

func TestCompileRedirections(t *testing.T) {
	g := mustGrid(t, "v\n>@")
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	assert.Empty(t, b.Ops)
	assert.Equal(t, TermEnd, b.Term.Kind)
	assert.Equal(t, []Position{{0, 0}, {0, 1}, {1, 1}}, b.cells)
}

func TestCompileBridge(t *testing.T) {
	// # jumps over the cell behind it; the skipped cell is not part of
	// the trace and must not land in the reverse index.
	g := mustGrid(t, `#,@`)
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	assert.Empty(t, b.Ops)
	assert.Equal(t, TermEnd, b.Term.Kind)
	assert.Equal(t, []Position{{0, 0}, {2, 0}}, b.cells)
}

func TestCompileBranchTargets(t *testing.T) {
	g := mustGrid(t, ` _ `)
	b, err := compileBlock(g, PC{Pos: Position{X: 1, Y: 0}})
	require.NoError(t, err)
	require.Equal(t, TermBranch, b.Term.Kind)
	assert.Equal(t, PC{Pos: Position{X: 0, Y: 0}, Dir: Left}, b.Term.True)
	assert.Equal(t, PC{Pos: Position{X: 2, Y: 0}, Dir: Right}, b.Term.False)

	g = mustGrid(t, " \n|\n ")
	b, err = compileBlock(g, PC{Pos: Position{X: 0, Y: 1}, Dir: Down})
	require.NoError(t, err)
	require.Equal(t, TermBranch, b.Term.Kind)
	assert.Equal(t, PC{Pos: Position{X: 0, Y: 0}, Dir: Up}, b.Term.True)
	assert.Equal(t, PC{Pos: Position{X: 0, Y: 2}, Dir: Down}, b.Term.False)
}

func TestCompileRandomTargets(t *testing.T) {
	g := mustGrid(t, " ? ")
	b, err := compileBlock(g, PC{Pos: Position{X: 1, Y: 0}})
	require.NoError(t, err)
	require.Equal(t, TermRandom, b.Term.Kind)
	assert.Equal(t, PC{Pos: Position{X: 2, Y: 0}, Dir: Right}, b.Term.Choices[Right])
	assert.Equal(t, PC{Pos: Position{X: 0, Y: 0}, Dir: Left}, b.Term.Choices[Left])
	assert.Equal(t, PC{Pos: Position{X: 1, Y: 24}, Dir: Up}, b.Term.Choices[Up])
	assert.Equal(t, PC{Pos: Position{X: 1, Y: 1}, Dir: Down}, b.Term.Choices[Down])
}

func TestCompileSetValueResume(t *testing.T) {
	g := mustGrid(t, `p@`)
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	require.Equal(t, []OpKind{OpSet}, opKinds(b))
	assert.Equal(t, PC{Pos: Position{X: 1, Y: 0}, Dir: Right}, b.Ops[0].After)
	assert.Equal(t, TermEnd, b.Term.Kind)
}

func TestCompileIllegalCommand(t *testing.T) {
	g := mustGrid(t, `1a@`)
	_, err := compileBlock(g, PC{})
	var illegal *IllegalCommandError
	require.True(t, errors.As(err, &illegal))
	assert.Equal(t, byte('a'), illegal.Command)
	assert.Equal(t, Position{X: 1, Y: 0}, illegal.Pos)
}

func TestCompileTraceCap(t *testing.T) {
	// A ring of redirections never reaches a terminator; the trace is cut
	// with a self-jump after maxTraceLength visited cells.
	g := mustGrid(t, "v<\n>^")
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	assert.Empty(t, b.Ops)
	assert.Equal(t, TermJump, b.Term.Kind)
	assert.Len(t, b.cells, maxTraceLength)
}

func TestCompileStringModeAcceptsAnything(t *testing.T) {
	// Bytes that are illegal commands are plain data inside a string.
	g := mustGrid(t, `"a"@`)
	b, err := compileBlock(g, PC{})
	require.NoError(t, err)
	require.Len(t, b.Ops, 1)
	assert.Equal(t, int64('a'), b.Ops[0].Val)
}
