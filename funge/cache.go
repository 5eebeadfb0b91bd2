package funge

import "github.com/golang/glog"

// blockCache holds compiled basic blocks keyed by entry PC, plus the reverse
// index from playfield cell to the entry PCs whose traces visited that cell.
// The forward map is the source of truth; reverse entries may go stale after
// an invalidation and are cleaned up lazily.
type blockCache struct {
	blocks   map[PC]*BasicBlock
	byCell   map[Position][]PC
	compiles uint64
}

func newBlockCache() *blockCache {
	return &blockCache{
		blocks: make(map[PC]*BasicBlock),
		byCell: make(map[Position][]PC),
	}
}

// Ensure returns the cached block for pc, compiling it on a miss. A failed
// compilation caches nothing.
func (c *blockCache) Ensure(g *Grid, pc PC) (*BasicBlock, error) {
	if b, ok := c.blocks[pc]; ok {
		return b, nil
	}
	b, err := compileBlock(g, pc)
	if err != nil {
		return nil, err
	}
	c.compiles++
	c.blocks[pc] = b
	seen := make(map[Position]struct{}, len(b.cells))
	for _, cell := range b.cells {
		if _, dup := seen[cell]; dup {
			continue
		}
		seen[cell] = struct{}{}
		c.byCell[cell] = append(c.byCell[cell], pc)
	}
	glog.V(1).Infof("compiled %v: %d ops over %d cells", pc, len(b.Ops), len(b.cells))
	if glog.V(2) {
		glog.Info("\n" + b.String())
	}
	return b, nil
}

// Invalidate drops every block whose trace visited cell and returns their
// entry PCs. Entries already evicted through another cell are skipped.
func (c *blockCache) Invalidate(cell Position) []PC {
	entries := c.byCell[cell]
	if len(entries) == 0 {
		return nil
	}
	delete(c.byCell, cell)
	var removed []PC
	for _, entry := range entries {
		if _, ok := c.blocks[entry]; !ok {
			continue
		}
		delete(c.blocks, entry)
		removed = append(removed, entry)
	}
	if len(removed) > 0 {
		glog.V(1).Infof("store at (%d,%d) invalidated %d block(s)", cell.X, cell.Y, len(removed))
	}
	return removed
}

// Lookup returns the cached block for pc without compiling.
func (c *blockCache) Lookup(pc PC) *BasicBlock {
	return c.blocks[pc]
}

// Len returns the number of cached blocks.
func (c *blockCache) Len() int {
	return len(c.blocks)
}
