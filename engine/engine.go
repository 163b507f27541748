// Package engine defines the capability interface a host tree-execution
// engine provides to the staging core, and a reference implementation that
// simulates tiered execution.
//
// The core never assumes a particular compilation strategy. It consumes
// exactly four operations: an interpreted/compiled query, a
// deoptimization action, call-target creation, and activation-record
// materialization for cross-call sharing.
package engine

import (
	"github.com/cloudcmds/graft/frame"
)

// Unit is an executable unit of staged code that can be registered with a
// host engine. Call targets implement this.
type Unit interface {
	// ID is a process-unique identity for the unit.
	ID() string

	// Name is a human-readable label used in logs.
	Name() string

	// Execute runs the unit against the given marshalled arguments.
	Execute(args ...interface{}) (interface{}, error)
}

// Invocable is the host-side handle for a registered unit.
type Invocable interface {
	Call(args ...interface{}) (interface{}, error)
}

// Host is the injected capability interface of the tree-execution engine.
type Host interface {
	// RunningInterpreted reports whether the innermost active unit is
	// currently executing as interpreted tree code rather than as
	// compiled code.
	RunningInterpreted() bool

	// InvalidateAndDeopt discards any compiled version of the active
	// units and returns them to tree interpretation. Deoptimization is a
	// control signal, not a fault: it never surfaces as an error.
	InvalidateAndDeopt()

	// CreateCallTarget registers a unit and returns its invocable handle.
	CreateCallTarget(u Unit) Invocable

	// MaterializeRecord produces a reference to the given activation
	// record that can be passed across an engine-level call boundary.
	MaterializeRecord(r *frame.Record) *frame.Record
}
