// Package adapt provides the node kinds that interact with the host
// engine's interpreter/compiled-code duality: value speculation and
// on-stack-replacement loops.
package adapt

import (
	"fmt"

	"github.com/cloudcmds/graft/engine"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/node"
	"github.com/cloudcmds/graft/stage"
)

// Kernel stages the body of a speculation node. It receives the staged
// fixed input and the current concrete value of the watched input, which
// it may treat as a staging-time constant: a kernel that is recursive in
// the watched value unrolls to a flat chain of operations specialized to
// that value.
type Kernel func(b *stage.Builder, fixed node.Expr, watched interface{}) node.Expr

// Speculate is a definition that holds a sub-tree specialized to the
// last-seen value of a watched runtime expression. On each evaluation it
// reads the watched value; if it differs from the value the cached
// sub-tree was built for, the node signals the host to deoptimize,
// rebuilds the sub-tree specialized to the new value, and continues. The
// rebuild replaces only the owned cached block; the node's own identity
// never changes.
//
// If the watched value changes on every call this degrades to rebuilding
// every call. That is intrinsic to the design: no history of prior
// specializations is kept.
//
// Speculate is not safe for concurrent evaluation: the rebuild swaps the
// cached block in place with no synchronization against readers.
type Speculate struct {
	builder  *stage.Builder
	host     engine.Host
	kernel   Kernel
	fixed    node.Expr
	watched  node.Expr
	layout   *frame.Layout
	kind     frame.Kind
	seen     interface{}
	cached   *node.Block
	rebuilds int
}

// NewSpeculate creates a speculation node over the current staging
// session's layout, which its rebuilt sub-trees will locally extend. It
// must therefore be called during staging. kind is the result kind of the
// kernel.
func NewSpeculate(b *stage.Builder, host engine.Host, kind frame.Kind, fixed, watched node.Expr, kernel Kernel) *Speculate {
	return &Speculate{
		builder: b,
		host:    host,
		kernel:  kernel,
		fixed:   fixed,
		watched: watched,
		layout:  b.Layout(),
		kind:    kind,
	}
}

func (d *Speculate) DefNode() {}

func (d *Speculate) Kind() frame.Kind { return d.kind }

func (d *Speculate) Operands() []node.Node {
	return []node.Node{d.fixed, d.watched}
}

// Rebuilds returns how many times the cached sub-tree has been rebuilt.
func (d *Speculate) Rebuilds() int { return d.rebuilds }

// Cached returns the current cached sub-tree, or nil before the first
// evaluation. The returned block's identity changes exactly when the
// watched value differs from the previous call's value.
func (d *Speculate) Cached() *node.Block { return d.cached }

// LastValue returns the watched value the cached sub-tree is specialized
// to.
func (d *Speculate) LastValue() interface{} { return d.seen }

func (d *Speculate) Eval(r *frame.Record) (interface{}, error) {
	v, err := d.watched.Eval(r)
	if err != nil {
		return nil, err
	}
	if d.cached == nil || v != d.seen {
		// The speculation no longer holds: any compiled version of the
		// enclosing code is specialized to the old value and must be
		// abandoned before the rebuilt sub-tree runs.
		d.host.InvalidateAndDeopt()
		d.seen = v
		d.cached = d.builder.ReifyInLayout(d.layout, func() node.Expr {
			return d.kernel(d.builder, d.fixed, v)
		})
		d.rebuilds++
	}
	return d.cached.Eval(r)
}

func (d *Speculate) String() string {
	return fmt.Sprintf("Speculate(%s)", d.watched)
}
