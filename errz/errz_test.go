package errz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := Staging("no open staging session")
	require.Equal(t, "staging error: no open staging session", err.Error())
	require.Equal(t, ErrStaging, err.Kind())

	err = KindMismatch("slot0 holds bool, not int")
	require.Equal(t, "kind mismatch: slot0 holds bool, not int", err.Error())

	err = Arith("division by zero")
	require.Equal(t, "arithmetic error: division by zero", err.Error())

	err = Target("slot3 is read but belongs to a different layout")
	require.Equal(t, "target error: slot3 is read but belongs to a different layout", err.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(ErrTarget, cause, "packaging failed")
	require.Equal(t, cause, errors.Unwrap(err))
	require.True(t, errors.Is(err, cause))
}

func TestIsKind(t *testing.T) {
	require.True(t, IsKind(Arith("division by zero"), ErrArith))
	require.False(t, IsKind(Arith("division by zero"), ErrStaging))
	require.False(t, IsKind(fmt.Errorf("plain"), ErrArith))
	require.False(t, IsKind(nil, ErrArith))
}
