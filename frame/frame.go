// Package frame provides the storage model for staged execution: kind-tagged
// slots grouped into an activation layout, and the per-invocation activation
// record that nodes evaluate against.
package frame

import "fmt"

// Kind is the storage kind of a slot. The set is closed: the runtime
// speculates only on these kinds, never on open subtype polymorphism.
type Kind uint16

const (
	// Unset marks a record cell that has not been written yet.
	Unset Kind = iota
	// Int slots hold int64 values.
	Int
	// Bool slots hold bool values.
	Bool
	// Object slots hold arbitrary values with no fast path.
	Object
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Object:
		return "object"
	default:
		return "unset"
	}
}

// Slot is one named, kind-tagged storage location within a layout. Slots are
// allocated once and never reused within their layout.
type Slot struct {
	name  string
	index int
	kind  Kind
}

// Name returns the slot's name, e.g. "slot3".
func (s *Slot) Name() string { return s.name }

// Index returns the slot's position within its layout.
func (s *Slot) Index() int { return s.index }

// Kind returns the slot's storage kind.
func (s *Slot) Kind() Kind { return s.kind }

func (s *Slot) String() string { return s.name }

// Layout is the ordered set of slots for one staged unit. A layout is owned
// by exactly one staging session and is extended only through NewSlot; the
// staging builder is the sole caller once a unit's block is finalized, and
// then only to grow a speculation node's private rebuilt sub-tree.
type Layout struct {
	slots []*Slot
}

// NewLayout creates an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// NewSlot appends a fresh slot of the given kind and returns it. Names are
// assigned monotonically and are unique within the layout.
func (l *Layout) NewSlot(kind Kind) *Slot {
	s := &Slot{
		name:  fmt.Sprintf("slot%d", len(l.slots)),
		index: len(l.slots),
		kind:  kind,
	}
	l.slots = append(l.slots, s)
	return s
}

// Size returns the number of slots in the layout.
func (l *Layout) Size() int {
	return len(l.slots)
}

// Slot returns the slot at the given index.
func (l *Layout) Slot(index int) *Slot {
	return l.slots[index]
}

// Contains reports whether s was allocated from this layout.
func (l *Layout) Contains(s *Slot) bool {
	return s.index < len(l.slots) && l.slots[s.index] == s
}
