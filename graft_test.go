package graft

import (
	"testing"

	"github.com/cloudcmds/graft/engine"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/node"
	"github.com/cloudcmds/graft/stage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	block := Stage(func(b *stage.Builder) node.Expr {
		return b.IntPlus(b.Lift(20), b.Lift(22))
	})
	want := "Assign(slot0, IntPlus(Const(20), Const(22)))\nSym(slot0)"
	if diff := cmp.Diff(want, block.String()); diff != "" {
		t.Errorf("canonical text mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileAndCall(t *testing.T) {
	add22, err := Compile("add22", []frame.Kind{frame.Int},
		func(b *stage.Builder, args []node.Expr) node.Expr {
			return b.IntPlus(args[0], b.Lift(22))
		})
	require.Nil(t, err)

	v, err := add22.Call(int64(20))
	require.Nil(t, err)
	require.Equal(t, int64(42), v)
}

func TestCompileWithHost(t *testing.T) {
	host := engine.New(engine.WithCompileThreshold(2))
	sq, err := Compile("square", []frame.Kind{frame.Int},
		func(b *stage.Builder, args []node.Expr) node.Expr {
			return b.IntTimes(args[0], args[0])
		}, WithHost(host))
	require.Nil(t, err)

	for i := 0; i < 4; i++ {
		v, err := sq.Call(int64(6))
		require.Nil(t, err)
		require.Equal(t, int64(36), v)
	}
}

func TestCompileThresholdOption(t *testing.T) {
	o := collectOptions(WithCompileThreshold(99))
	require.Equal(t, 99, o.threshold)
	require.Nil(t, o.host)

	o = collectOptions(nil)
	require.Equal(t, engine.DefaultCompileThreshold, o.threshold)
}

func TestStageDeterminism(t *testing.T) {
	// Two stagings of the same function produce identical canonical text.
	fn := func(b *stage.Builder) node.Expr {
		x := b.IntTimes(b.Lift(3), b.Lift(4))
		return b.IntMinus(x, b.Lift(5))
	}
	require.Equal(t, Stage(fn).String(), Stage(fn).String())
}
