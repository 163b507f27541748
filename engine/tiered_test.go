package engine

import (
	"testing"

	"github.com/cloudcmds/graft/frame"
	"github.com/stretchr/testify/require"
)

// stubUnit lets tests observe tier state from inside an execution.
type stubUnit struct {
	id   string
	name string
	fn   func(args ...interface{}) (interface{}, error)
}

func (u *stubUnit) ID() string   { return u.id }
func (u *stubUnit) Name() string { return u.name }

func (u *stubUnit) Execute(args ...interface{}) (interface{}, error) {
	return u.fn(args...)
}

func TestPromotionAtThreshold(t *testing.T) {
	e := New(WithCompileThreshold(3))

	var interpreted []bool
	unit := &stubUnit{id: "u1", name: "unit", fn: func(args ...interface{}) (interface{}, error) {
		interpreted = append(interpreted, e.RunningInterpreted())
		return nil, nil
	}}
	inv := e.CreateCallTarget(unit)

	for i := 0; i < 5; i++ {
		_, err := inv.Call()
		require.Nil(t, err)
	}
	// Calls 1 and 2 run interpreted; the third call trips the threshold
	// before the unit executes.
	require.Equal(t, []bool{true, true, false, false, false}, interpreted)
}

func TestRunningInterpretedOutsideAnyUnit(t *testing.T) {
	e := New()
	require.True(t, e.RunningInterpreted())
}

func TestDeoptDemotesActiveUnits(t *testing.T) {
	e := New(WithCompileThreshold(1))

	inner := &stubUnit{id: "i", name: "inner", fn: func(args ...interface{}) (interface{}, error) {
		require.False(t, e.RunningInterpreted())
		e.InvalidateAndDeopt()
		require.True(t, e.RunningInterpreted())
		return nil, nil
	}}
	innerInv := e.CreateCallTarget(inner)

	outer := &stubUnit{id: "o", name: "outer", fn: func(args ...interface{}) (interface{}, error) {
		return innerInv.Call()
	}}
	outerInv := e.CreateCallTarget(outer)

	_, err := outerInv.Call()
	require.Nil(t, err)

	// Deopt demoted the whole active chain, not just the innermost unit.
	type compiled interface{ Compiled() bool }
	require.False(t, innerInv.(compiled).Compiled())
	require.False(t, outerInv.(compiled).Compiled())
}

func TestDeoptResetsCallCount(t *testing.T) {
	e := New(WithCompileThreshold(2))

	deoptOnce := true
	unit := &stubUnit{id: "u", name: "unit", fn: func(args ...interface{}) (interface{}, error) {
		if deoptOnce && !e.RunningInterpreted() {
			deoptOnce = false
			e.InvalidateAndDeopt()
		}
		return nil, nil
	}}
	inv := e.CreateCallTarget(unit)
	type compiled interface{ Compiled() bool }

	_, _ = inv.Call() // calls=1, interpreted
	_, _ = inv.Call() // calls=2, promoted, then deopts itself
	require.False(t, inv.(compiled).Compiled())

	// The count restarted from zero: one more call is not enough.
	_, _ = inv.Call()
	require.False(t, inv.(compiled).Compiled())
	_, _ = inv.Call()
	require.True(t, inv.(compiled).Compiled())
}

func TestStackUnwindsOnError(t *testing.T) {
	e := New()
	unit := &stubUnit{id: "u", name: "unit", fn: func(args ...interface{}) (interface{}, error) {
		return nil, frameError{}
	}}
	inv := e.CreateCallTarget(unit)
	_, err := inv.Call()
	require.NotNil(t, err)
	require.True(t, e.RunningInterpreted())
	require.Equal(t, 0, len(e.stack))
}

type frameError struct{}

func (frameError) Error() string { return "unit failed" }

func TestMaterializeRecordIdentity(t *testing.T) {
	e := New()
	layout := frame.NewLayout()
	rec := frame.NewRecord(layout, nil)
	require.Same(t, rec, e.MaterializeRecord(rec))
}

func TestArgumentsPassThrough(t *testing.T) {
	e := New()
	unit := &stubUnit{id: "u", name: "echo", fn: func(args ...interface{}) (interface{}, error) {
		return args[0], nil
	}}
	inv := e.CreateCallTarget(unit)
	v, err := inv.Call(int64(42))
	require.Nil(t, err)
	require.Equal(t, int64(42), v)
}
