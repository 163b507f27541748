package engine

import (
	"github.com/cloudcmds/graft/frame"
	"github.com/rs/zerolog"
)

// DefaultCompileThreshold is the number of calls after which the reference
// engine considers a unit hot and marks it compiled.
const DefaultCompileThreshold = 10

// Tiered is a reference host engine. It counts calls per registered unit
// and promotes a unit to "compiled" once its call count reaches a
// threshold; InvalidateAndDeopt demotes every unit on the active call
// stack back to interpreted and resets its count. No machine code is
// generated: compiled state only changes what RunningInterpreted reports
// and which execution paths the staged nodes take, which is the entire
// contract the core depends on.
//
// Tiered is not safe for concurrent use; each logical call chain needs its
// own instance.
type Tiered struct {
	threshold int
	logger    zerolog.Logger
	stack     []*unitState
}

type unitState struct {
	unit     Unit
	calls    int
	compiled bool
}

// Option configures a Tiered engine.
type Option func(*Tiered)

// WithCompileThreshold sets the call count at which units are promoted.
func WithCompileThreshold(n int) Option {
	return func(e *Tiered) {
		e.threshold = n
	}
}

// WithLogger sets the logger used for promote and deopt events. The
// default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Tiered) {
		e.logger = logger
	}
}

// New creates a Tiered engine.
func New(opts ...Option) *Tiered {
	e := &Tiered{
		threshold: DefaultCompileThreshold,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// RunningInterpreted reports whether the innermost active unit is
// interpreted. With no unit active, execution is by definition
// interpreted.
func (e *Tiered) RunningInterpreted() bool {
	if len(e.stack) == 0 {
		return true
	}
	return !e.stack[len(e.stack)-1].compiled
}

// InvalidateAndDeopt demotes every unit on the active call stack. Promoted
// callers are part of the same compilation unit as the node requesting
// deoptimization, so all of them must fall back to interpretation.
func (e *Tiered) InvalidateAndDeopt() {
	for _, st := range e.stack {
		if st.compiled {
			e.logger.Debug().
				Str("unit", st.unit.Name()).
				Str("id", st.unit.ID()).
				Msg("deopt")
		}
		st.compiled = false
		st.calls = 0
	}
}

// CreateCallTarget registers a unit and returns its invocable handle.
func (e *Tiered) CreateCallTarget(u Unit) Invocable {
	return &tieredInvocable{engine: e, state: &unitState{unit: u}}
}

// MaterializeRecord returns the record itself: records are ordinary heap
// values in the reference engine, so the cross-call reference is the
// pointer. A compiling host would substitute its own materialization.
func (e *Tiered) MaterializeRecord(r *frame.Record) *frame.Record {
	return r
}

type tieredInvocable struct {
	engine *Tiered
	state  *unitState
}

func (i *tieredInvocable) Call(args ...interface{}) (interface{}, error) {
	st := i.state
	st.calls++
	if !st.compiled && st.calls >= i.engine.threshold {
		st.compiled = true
		i.engine.logger.Debug().
			Str("unit", st.unit.Name()).
			Str("id", st.unit.ID()).
			Int("calls", st.calls).
			Msg("promote")
	}
	e := i.engine
	e.stack = append(e.stack, st)
	defer func() {
		e.stack = e.stack[:len(e.stack)-1]
	}()
	return st.unit.Execute(args...)
}

// Compiled reports whether the unit behind this invocable currently has a
// compiled version. Used by the OSR loop node as the escape side-band.
func (i *tieredInvocable) Compiled() bool {
	return i.state.compiled
}
