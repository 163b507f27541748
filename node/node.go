// Package node defines the executable tree representation produced by the
// staging builder: expressions, definitions, statements, and blocks.
//
// Expressions are side-effect free and evaluate to a value given an
// activation record. Definitions compute a value with possible use of prior
// assignments. The only statement form is assignment of a definition's
// value into a slot.
package node

import (
	"github.com/cloudcmds/graft/frame"
)

// Node is implemented by every element of an executable tree. String
// returns the canonical textual form, which is stable and deterministic
// across runs for the same staged program.
type Node interface {
	String() string
}

// Expr is an expression node. Expressions are side-effect free.
type Expr interface {
	Node

	// Eval computes the expression's value against the given record.
	Eval(r *frame.Record) (interface{}, error)

	// Kind is the storage kind of the expression's result.
	Kind() frame.Kind

	exprNode()
}

// Def is a definition node: it computes a value, possibly reading
// prior assignments or call arguments.
type Def interface {
	Node

	// Eval computes the definition's value against the given record.
	Eval(r *frame.Record) (interface{}, error)

	// Kind is the storage kind of the definition's result.
	Kind() frame.Kind

	DefNode()
}

// Stmt is a statement node. Statements cause side effects but do not
// evaluate to a value.
type Stmt interface {
	Node

	// Exec runs the statement's side effect against the given record.
	Exec(r *frame.Record) error

	stmtNode()
}

// Composite is implemented by nodes with operand sub-nodes. Nodes that form
// a call boundary (nested call targets, speculation kernels) deliberately do
// not expose what lies beyond the boundary.
type Composite interface {
	Operands() []Node
}

// Walk visits n and, pre-order, every operand reachable from it without
// crossing a call boundary. Returning false from fn stops descent below
// the current node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if c, ok := n.(Composite); ok {
		for _, operand := range c.Operands() {
			Walk(operand, fn)
		}
	}
}
