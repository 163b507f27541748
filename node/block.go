package node

import (
	"fmt"
	"strings"

	"github.com/cloudcmds/graft/errz"
	"github.com/cloudcmds/graft/frame"
)

// Assign evaluates a definition and stores its value into a slot through
// the slot's typed accessor.
type Assign struct {
	slot *frame.Slot
	def  Def
}

// NewAssign creates an assignment of def's value into slot.
func NewAssign(slot *frame.Slot, def Def) *Assign {
	return &Assign{slot: slot, def: def}
}

func (s *Assign) stmtNode() {}

// Slot returns the assignment's target slot.
func (s *Assign) Slot() *frame.Slot { return s.slot }

// Def returns the assigned definition.
func (s *Assign) Def() Def { return s.def }

func (s *Assign) Operands() []Node { return []Node{s.def} }

func (s *Assign) Exec(r *frame.Record) error {
	v, err := s.def.Eval(r)
	if err != nil {
		return err
	}
	switch s.slot.Kind() {
	case frame.Int:
		iv, ok := v.(int64)
		if !ok {
			return errz.KindMismatch("cannot store %T into int slot %s", v, s.slot.Name())
		}
		r.SetInt(s.slot, iv)
	case frame.Bool:
		bv, ok := v.(bool)
		if !ok {
			return errz.KindMismatch("cannot store %T into bool slot %s", v, s.slot.Name())
		}
		r.SetBool(s.slot, bv)
	default:
		r.SetObject(s.slot, v)
	}
	return nil
}

func (s *Assign) String() string {
	return fmt.Sprintf("Assign(%s, %s)", s.slot.Name(), s.def)
}

// Block is an ordered sequence of assignment statements plus a trailing
// result expression. Statement order is the order the operations were
// issued during staging; the list is immutable once the block is returned
// from reification.
type Block struct {
	stmts  []*Assign
	result Expr
}

// NewBlock creates a block over the given statements and result. The
// statement slice is copied.
func NewBlock(stmts []*Assign, result Expr) *Block {
	owned := make([]*Assign, len(stmts))
	copy(owned, stmts)
	return &Block{stmts: owned, result: result}
}

// NumStatements returns the number of statements in the block.
func (b *Block) NumStatements() int {
	return len(b.stmts)
}

// Statement returns the i-th statement.
func (b *Block) Statement(i int) *Assign {
	return b.stmts[i]
}

// Result returns the block's trailing result expression.
func (b *Block) Result() Expr {
	return b.result
}

func (b *Block) Kind() frame.Kind {
	return b.result.Kind()
}

func (b *Block) Operands() []Node {
	nodes := make([]Node, 0, len(b.stmts)+1)
	for _, s := range b.stmts {
		nodes = append(nodes, s)
	}
	return append(nodes, b.result)
}

// Eval executes every statement exactly once, in list order, then evaluates
// and returns the result expression. This is the hottest path in the
// module: it is a flat bounded iteration with no recursion and no
// intermediate containers, so an executing engine can specialize it per
// fixed statement count.
func (b *Block) Eval(r *frame.Record) (interface{}, error) {
	stmts := b.stmts
	for i := 0; i < len(stmts); i++ {
		if err := stmts[i].Exec(r); err != nil {
			return nil, err
		}
	}
	return b.result.Eval(r)
}

// String renders the canonical textual form: statements in issue order, one
// per line, followed by the result expression.
func (b *Block) String() string {
	var out strings.Builder
	for _, s := range b.stmts {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	out.WriteString(b.result.String())
	return out.String()
}
