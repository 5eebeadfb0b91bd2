package funge

import "github.com/golang/glog"

// execute runs the block's byte code against the machine state and returns
// the terminator to resolve next. If an OpSet invalidates the running block
// itself, execution stops at that op and a synthetic jump to the op's resume
// PC replaces the block's own terminator; effects of ops already executed are
// kept. The returned error aborts the program.
func (e *Engine) execute(b *BasicBlock) (Terminator, error) {
	for _, op := range b.Ops {
		switch op.Kind {
		case OpPush:
			e.stack.Push(op.Val)
		case OpDup:
			v := e.stack.Pop()
			e.stack.Push(v)
			e.stack.Push(v)
		case OpSwap:
			top := e.stack.Pop()
			under := e.stack.Pop()
			e.stack.Push(top)
			e.stack.Push(under)
		case OpDrop:
			e.stack.Pop()
		case OpBinary:
			rhs := e.stack.Pop()
			lhs := e.stack.Pop()
			e.stack.Push(op.Bin.Apply(lhs, rhs))
		case OpNegate:
			if e.stack.Pop() == 0 {
				e.stack.Push(1)
			} else {
				e.stack.Push(0)
			}
		case OpInput:
			if err := e.input(op.Mode); err != nil {
				return Terminator{}, err
			}
		case OpOutput:
			if err := e.output(op.Mode); err != nil {
				return Terminator{}, err
			}
		case OpGet:
			y := e.stack.Pop()
			x := e.stack.Pop()
			e.stack.Push(e.grid.Peek(Position{X: int(x), Y: int(y)}))
		case OpSet:
			y := e.stack.Pop()
			x := e.stack.Pop()
			v := e.stack.Pop()
			p := Position{X: int(x), Y: int(y)}
			if !p.InGrid() {
				continue
			}
			e.grid.Poke(p, v)
			for _, entry := range e.cache.Invalidate(p) {
				if entry == b.Entry {
					// The block just destroyed itself. Later
					// ops belong to code that no longer
					// exists; resume at the compile-time
					// successor of the store.
					glog.V(1).Infof("self-invalidation in %v, resuming at %v", b.Entry, op.After)
					return Terminator{Kind: TermJump, Target: op.After}, nil
				}
			}
		}
	}
	return b.Term, nil
}

func (e *Engine) input(mode IOMode) error {
	if mode == ModeASCII {
		b, eos, err := e.io.readByte()
		if err != nil {
			return err
		}
		if eos {
			e.stack.Push(-1)
			return nil
		}
		e.stack.Push(int64(b))
		return nil
	}
	v, err := e.io.readDecimal()
	if err != nil {
		return err
	}
	e.stack.Push(v)
	return nil
}

func (e *Engine) output(mode IOMode) error {
	v := e.stack.Pop()
	if mode == ModeASCII {
		if v < 0 || v > 127 {
			return &NonASCIIError{Value: v}
		}
		return e.io.writeAll([]byte{byte(v)})
	}
	return e.io.writeDecimal(v)
}
