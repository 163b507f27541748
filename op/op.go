// Package op defines the closed set of operator codes used by staged
// binary operations.
package op

// Code identifies one staged binary operation.
type Code uint16

const (
	Invalid Code = 0

	// Integer arithmetic
	IntPlus  Code = 1
	IntMinus Code = 2
	IntTimes Code = 3
	IntDiv   Code = 4
	IntMod   Code = 5

	// Integer comparison (result kind is Bool)
	IntEq Code = 10
	IntNe Code = 11
	IntLt Code = 12
	IntLe Code = 13
	IntGt Code = 14
	IntGe Code = 15

	// Boolean
	BoolAnd Code = 20
	BoolOr  Code = 21
)

// String returns the canonical name of the operation as it appears in the
// textual form of a staged block, e.g. "IntPlus".
func (c Code) String() string {
	switch c {
	case IntPlus:
		return "IntPlus"
	case IntMinus:
		return "IntMinus"
	case IntTimes:
		return "IntTimes"
	case IntDiv:
		return "IntDiv"
	case IntMod:
		return "IntMod"
	case IntEq:
		return "IntEq"
	case IntNe:
		return "IntNe"
	case IntLt:
		return "IntLt"
	case IntLe:
		return "IntLe"
	case IntGt:
		return "IntGt"
	case IntGe:
		return "IntGe"
	case BoolAnd:
		return "BoolAnd"
	case BoolOr:
		return "BoolOr"
	default:
		return "Invalid"
	}
}

// IsCompare returns true for operations whose result kind is Bool even
// though their operands are Int.
func (c Code) IsCompare() bool {
	return c >= IntEq && c <= IntGe
}

// IsBool returns true for operations over Bool operands.
func (c Code) IsBool() bool {
	return c == BoolAnd || c == BoolOr
}
