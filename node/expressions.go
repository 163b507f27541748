package node

import (
	"fmt"

	"github.com/cloudcmds/graft/frame"
)

// Sym is a symbol read: it reads the named intermediate value stored in a
// slot, dispatching on the slot's storage kind to the matching typed
// accessor. Reading a slot whose stored kind disagrees is an error.
type Sym struct {
	slot *frame.Slot
}

// NewSym creates a symbol read of the given slot.
func NewSym(slot *frame.Slot) *Sym {
	return &Sym{slot: slot}
}

func (x *Sym) exprNode() {}

// A symbol read is also usable as a generic definition.
func (x *Sym) DefNode() {}

// Slot returns the slot this symbol reads.
func (x *Sym) Slot() *frame.Slot { return x.slot }

func (x *Sym) Kind() frame.Kind { return x.slot.Kind() }

func (x *Sym) Eval(r *frame.Record) (interface{}, error) {
	switch x.slot.Kind() {
	case frame.Int:
		return r.GetInt(x.slot)
	case frame.Bool:
		return r.GetBool(x.slot)
	default:
		return r.GetObject(x.slot)
	}
}

func (x *Sym) String() string {
	return fmt.Sprintf("Sym(%s)", x.slot.Name())
}

// Const is a compile-time constant lifted into the staged representation.
// It ignores the activation record.
type Const struct {
	value interface{}
	kind  frame.Kind
}

// NewConst creates a constant of the given kind.
func NewConst(value interface{}, kind frame.Kind) *Const {
	return &Const{value: value, kind: kind}
}

func (x *Const) exprNode() {}

// A constant is also usable as a generic definition.
func (x *Const) DefNode() {}

// Value returns the constant's value.
func (x *Const) Value() interface{} { return x.value }

func (x *Const) Kind() frame.Kind { return x.kind }

func (x *Const) Eval(r *frame.Record) (interface{}, error) {
	return x.value, nil
}

func (x *Const) String() string {
	return fmt.Sprintf("Const(%v)", x.value)
}
