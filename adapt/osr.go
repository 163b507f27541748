package adapt

import (
	"fmt"

	"github.com/cloudcmds/graft/engine"
	"github.com/cloudcmds/graft/errz"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/target"
)

// Loop is a definition that repeatedly evaluates a loop condition block
// packaged as a nested target, so the body can be compiled independently
// of the code around it.
//
// While the surrounding code is interpreted, each iteration is a full
// out-of-line call through the host. That gives the host a per-iteration
// call count for the body alone, so a long-running loop first discovered
// while interpreting becomes hot and is compiled without waiting for the
// whole enclosing unit. The body's promotion is the escape side-band,
// distinct from its boolean continuation value: when it trips, the
// interpreted calling loop stops immediately and iteration resumes
// against the same record through the compiled body. No iteration state
// is lost because all of it lives in the shared activation record.
//
// While the surrounding code is already compiled there is nothing to
// escape to, and the body runs inline in a plain bounded loop.
//
// In either mode the loop exits when the continuation value is false, and
// the definition evaluates to false.
type Loop struct {
	host engine.Host
	body *target.Nested
}

// NewLoop creates an OSR loop node over the given body target. The body's
// block must evaluate to the loop's boolean continuation value.
func NewLoop(host engine.Host, body *target.Nested) *Loop {
	return &Loop{host: host, body: body}
}

func (d *Loop) DefNode() {}

func (d *Loop) Kind() frame.Kind { return frame.Bool }

// Body returns the loop's body target.
func (d *Loop) Body() *target.Nested { return d.body }

func (d *Loop) Eval(r *frame.Record) (interface{}, error) {
	if d.host.RunningInterpreted() {
		for {
			v, err := d.body.CallThroughHost(r)
			if err != nil {
				return nil, err
			}
			cont, ok := v.(bool)
			if !ok {
				return nil, errz.KindMismatch("loop body returned %T, not bool", v)
			}
			if !cont {
				return false, nil
			}
			if d.body.Promoted() {
				break
			}
		}
	}
	for {
		v, err := d.body.Inline(r)
		if err != nil {
			return nil, err
		}
		cont, ok := v.(bool)
		if !ok {
			return nil, errz.KindMismatch("loop body returned %T, not bool", v)
		}
		if !cont {
			return false, nil
		}
	}
}

func (d *Loop) String() string {
	return fmt.Sprintf("OSRLoop(%s)", d.body.Name())
}
