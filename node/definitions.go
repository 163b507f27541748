package node

import (
	"fmt"

	"github.com/cloudcmds/graft/errz"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/op"
)

// Binary is an arithmetic, comparison, or boolean definition over two
// expression operands.
type Binary struct {
	op op.Code
	x  Expr
	y  Expr
}

// NewBinary creates a binary definition.
func NewBinary(code op.Code, x, y Expr) *Binary {
	return &Binary{op: code, x: x, y: y}
}

func (d *Binary) DefNode() {}

// Op returns the operator code.
func (d *Binary) Op() op.Code { return d.op }

func (d *Binary) Operands() []Node { return []Node{d.x, d.y} }

func (d *Binary) Kind() frame.Kind {
	if d.op.IsCompare() || d.op.IsBool() {
		return frame.Bool
	}
	return frame.Int
}

func (d *Binary) Eval(r *frame.Record) (interface{}, error) {
	xv, err := d.x.Eval(r)
	if err != nil {
		return nil, err
	}
	yv, err := d.y.Eval(r)
	if err != nil {
		return nil, err
	}
	if d.op.IsBool() {
		xb, ok := xv.(bool)
		if !ok {
			return nil, errz.KindMismatch("%s operand %v is not bool", d.op, xv)
		}
		yb, ok := yv.(bool)
		if !ok {
			return nil, errz.KindMismatch("%s operand %v is not bool", d.op, yv)
		}
		if d.op == op.BoolAnd {
			return xb && yb, nil
		}
		return xb || yb, nil
	}
	xi, ok := xv.(int64)
	if !ok {
		return nil, errz.KindMismatch("%s operand %v is not int", d.op, xv)
	}
	yi, ok := yv.(int64)
	if !ok {
		return nil, errz.KindMismatch("%s operand %v is not int", d.op, yv)
	}
	switch d.op {
	case op.IntPlus:
		return xi + yi, nil
	case op.IntMinus:
		return xi - yi, nil
	case op.IntTimes:
		return xi * yi, nil
	case op.IntDiv:
		if yi == 0 {
			return nil, errz.Arith("division by zero")
		}
		return xi / yi, nil
	case op.IntMod:
		if yi == 0 {
			return nil, errz.Arith("division by zero")
		}
		return xi % yi, nil
	case op.IntEq:
		return xi == yi, nil
	case op.IntNe:
		return xi != yi, nil
	case op.IntLt:
		return xi < yi, nil
	case op.IntLe:
		return xi <= yi, nil
	case op.IntGt:
		return xi > yi, nil
	case op.IntGe:
		return xi >= yi, nil
	default:
		return nil, errz.Arith("invalid operator code %d", d.op)
	}
}

func (d *Binary) String() string {
	return fmt.Sprintf("%s(%s, %s)", d.op, d.x, d.y)
}

// GetArg reads the i-th marshalled call argument of the current invocation.
type GetArg struct {
	index int
	kind  frame.Kind
}

// NewGetArg creates an argument read of the given index and expected kind.
func NewGetArg(index int, kind frame.Kind) *GetArg {
	return &GetArg{index: index, kind: kind}
}

func (d *GetArg) DefNode() {}

// Index returns the argument index.
func (d *GetArg) Index() int { return d.index }

func (d *GetArg) Kind() frame.Kind { return d.kind }

func (d *GetArg) Eval(r *frame.Record) (interface{}, error) {
	v, err := r.Arg(d.index)
	if err != nil {
		return nil, err
	}
	switch d.kind {
	case frame.Int:
		if _, ok := v.(int64); !ok {
			return nil, errz.KindMismatch("argument %d is %T, not int", d.index, v)
		}
	case frame.Bool:
		if _, ok := v.(bool); !ok {
			return nil, errz.KindMismatch("argument %d is %T, not bool", d.index, v)
		}
	}
	return v, nil
}

func (d *GetArg) String() string {
	return fmt.Sprintf("GetArg(%d)", d.index)
}
