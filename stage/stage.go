// Package stage implements the staging builder: it records the sequence of
// definitions created during a delimited staging scope and turns them into
// an ordered statement list plus a result expression.
//
// A Builder threads an explicit session through Reflect and Reify calls
// rather than relying on ambient global state, so staging is reentrant and
// testable. Exactly one session is open per builder at a time; nesting is
// handled by Reify saving and restoring the caller's session around the
// thunk, on every exit path including panics.
package stage

import (
	"github.com/cloudcmds/graft/errz"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/node"
	"github.com/cloudcmds/graft/op"
)

// session is the mutable state of one open reification: the layout under
// construction and the open statement list. The Nth Reflect call during one
// reification produces the Nth statement of the resulting block.
type session struct {
	layout *frame.Layout
	stmts  []*node.Assign
}

// Builder stages definitions into blocks. The zero state has no open
// session; calling Reflect, Lift, Allocate, or a staged operator outside a
// Reify thunk is a fatal programmer error and panics with *errz.Error.
type Builder struct {
	cur *session
}

// New creates a builder with no open session.
func New() *Builder {
	return &Builder{}
}

func (b *Builder) session() *session {
	if b.cur == nil {
		panic(errz.Staging("no open staging session"))
	}
	return b.cur
}

// Layout returns the layout of the currently open session.
func (b *Builder) Layout() *frame.Layout {
	return b.session().layout
}

// Allocate appends a fresh slot of the given kind to the current session's
// layout.
func (b *Builder) Allocate(kind frame.Kind) *frame.Slot {
	return b.session().layout.NewSlot(kind)
}

// Reflect interns a definition as a named intermediate value: it allocates
// a fresh slot sized for the definition's result kind, appends an
// assignment to the open statement list, and returns a symbol read of the
// slot. Common intermediate results are therefore computed once and
// referenced by symbol rather than recomputed.
func (b *Builder) Reflect(def node.Def) node.Expr {
	s := b.session()
	slot := s.layout.NewSlot(def.Kind())
	s.stmts = append(s.stmts, node.NewAssign(slot, def))
	return node.NewSym(slot)
}

// Lift wraps a host-level constant as a staged constant expression. Int
// values are normalized to int64.
func (b *Builder) Lift(v interface{}) node.Expr {
	b.session()
	switch val := v.(type) {
	case int:
		return node.NewConst(int64(val), frame.Int)
	case int64:
		return node.NewConst(val, frame.Int)
	case bool:
		return node.NewConst(val, frame.Bool)
	default:
		return node.NewConst(val, frame.Object)
	}
}

// Reify runs the thunk in a fresh session over a fresh layout and returns
// the staged block. The caller's session, if any, is saved before the thunk
// runs and restored when Reify returns, so nested reifications never leak
// statements into the enclosing session.
func (b *Builder) Reify(thunk func() node.Expr) *node.Block {
	return b.ReifyInLayout(frame.NewLayout(), thunk)
}

// ReifyInLayout is Reify staging into a caller-owned layout, continuing its
// slot numbering. Call-target packaging uses it so the target owns the
// layout its record is built from, and a speculation node uses it to
// locally extend the layout of an already-finalized unit for its private
// rebuilt sub-tree.
func (b *Builder) ReifyInLayout(layout *frame.Layout, thunk func() node.Expr) *node.Block {
	saved := b.cur
	b.cur = &session{layout: layout}
	defer func() {
		b.cur = saved
	}()
	result := thunk()
	return node.NewBlock(b.cur.stmts, result)
}

// Staged operator surface. Each operator interns its definition via
// Reflect, so issuing order determines statement order.

// IntPlus stages x + y.
func (b *Builder) IntPlus(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntPlus, x, y))
}

// IntMinus stages x - y.
func (b *Builder) IntMinus(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntMinus, x, y))
}

// IntTimes stages x * y.
func (b *Builder) IntTimes(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntTimes, x, y))
}

// IntDiv stages x / y.
func (b *Builder) IntDiv(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntDiv, x, y))
}

// IntMod stages x % y.
func (b *Builder) IntMod(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntMod, x, y))
}

// IntEq stages x == y.
func (b *Builder) IntEq(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntEq, x, y))
}

// IntNe stages x != y.
func (b *Builder) IntNe(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntNe, x, y))
}

// IntLt stages x < y.
func (b *Builder) IntLt(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntLt, x, y))
}

// IntLe stages x <= y.
func (b *Builder) IntLe(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntLe, x, y))
}

// IntGt stages x > y.
func (b *Builder) IntGt(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntGt, x, y))
}

// IntGe stages x >= y.
func (b *Builder) IntGe(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.IntGe, x, y))
}

// BoolAnd stages x && y. Both operands are staged; there is no
// short-circuit at run time.
func (b *Builder) BoolAnd(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.BoolAnd, x, y))
}

// BoolOr stages x || y.
func (b *Builder) BoolOr(x, y node.Expr) node.Expr {
	return b.Reflect(node.NewBinary(op.BoolOr, x, y))
}

// Arg stages a read of the i-th call argument.
func (b *Builder) Arg(i int, kind frame.Kind) node.Expr {
	return b.Reflect(node.NewGetArg(i, kind))
}
