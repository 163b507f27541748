// Package graft builds executable interpreter trees in two stages: a
// staging pass that records the definitions a host-level function issues
// and reifies them into a block of assignment statements plus a result
// expression, and a run-time pass that evaluates the block against an
// activation record. Specialized node kinds rebuild parts of the tree when
// watched run-time values change, coordinating with the host engine's
// interpreted/compiled duality.
package graft

import (
	"github.com/cloudcmds/graft/engine"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/node"
	"github.com/cloudcmds/graft/stage"
	"github.com/cloudcmds/graft/target"
	"github.com/rs/zerolog"
)

// Option configures staging or call-target compilation.
type Option func(*options)

type options struct {
	host      engine.Host
	logger    zerolog.Logger
	threshold int
}

func collectOptions(opts ...Option) *options {
	o := &options{
		logger:    zerolog.Nop(),
		threshold: engine.DefaultCompileThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// WithHost supplies the host engine that call targets are registered
// with. By default a fresh reference engine is created per Compile call.
func WithHost(host engine.Host) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithLogger sets the logger the default reference engine emits promote
// and deopt events to. Ignored when WithHost is given.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCompileThreshold sets the default reference engine's promotion
// threshold. Ignored when WithHost is given.
func WithCompileThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// NewBuilder returns a staging builder with no open session.
func NewBuilder() *stage.Builder {
	return stage.New()
}

// Stage reifies fn with a fresh builder and returns the staged block.
func Stage(fn func(b *stage.Builder) node.Expr) *node.Block {
	b := stage.New()
	return b.Reify(func() node.Expr {
		return fn(b)
	})
}

// Compile stages fn as a root call target with the given parameter kinds
// and registers it with the configured host.
func Compile(name string, params []frame.Kind, fn target.StagedFunc, opts ...Option) (*target.Root, error) {
	o := collectOptions(opts...)
	host := o.host
	if host == nil {
		host = engine.New(
			engine.WithCompileThreshold(o.threshold),
			engine.WithLogger(o.logger),
		)
	}
	return target.NewRoot(stage.New(), host, name, params, fn)
}
