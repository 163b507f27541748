package frame

import "github.com/cloudcmds/graft/errz"

// Record is the activation record for one invocation of a staged unit. It
// carries the marshalled call arguments and one storage cell per layout
// slot, each tagged with the kind actually stored.
//
// Records are not safe for mutation from multiple call chains; each chain
// must use its own record.
type Record struct {
	layout *Layout
	values []interface{}
	stored []Kind
	args   []interface{}
}

// NewRecord creates a record for the given layout with the given marshalled
// arguments.
func NewRecord(layout *Layout, args []interface{}) *Record {
	size := layout.Size()
	return &Record{
		layout: layout,
		values: make([]interface{}, size),
		stored: make([]Kind, size),
		args:   args,
	}
}

// Layout returns the layout this record was created for.
func (r *Record) Layout() *Layout {
	return r.layout
}

// Arg returns the i-th marshalled call argument.
func (r *Record) Arg(i int) (interface{}, error) {
	if i < 0 || i >= len(r.args) {
		return nil, errz.Target("argument %d out of range (have %d)", i, len(r.args))
	}
	return r.args[i], nil
}

// grow extends the record's storage to cover slots allocated after the
// record was created. A speculation rebuild may extend the layout while
// records for it are live.
func (r *Record) grow(index int) {
	for index >= len(r.values) {
		r.values = append(r.values, nil)
		r.stored = append(r.stored, Unset)
	}
}

// GetInt reads an int64 from the slot, failing if the stored kind differs.
func (r *Record) GetInt(s *Slot) (int64, error) {
	r.grow(s.index)
	if r.stored[s.index] != Int {
		return 0, errz.KindMismatch("%s holds %s, not int", s.name, r.stored[s.index])
	}
	return r.values[s.index].(int64), nil
}

// SetInt stores an int64 into the slot.
func (r *Record) SetInt(s *Slot, v int64) {
	r.grow(s.index)
	r.values[s.index] = v
	r.stored[s.index] = Int
}

// GetBool reads a bool from the slot, failing if the stored kind differs.
func (r *Record) GetBool(s *Slot) (bool, error) {
	r.grow(s.index)
	if r.stored[s.index] != Bool {
		return false, errz.KindMismatch("%s holds %s, not bool", s.name, r.stored[s.index])
	}
	return r.values[s.index].(bool), nil
}

// SetBool stores a bool into the slot.
func (r *Record) SetBool(s *Slot, v bool) {
	r.grow(s.index)
	r.values[s.index] = v
	r.stored[s.index] = Bool
}

// GetObject reads an arbitrary value from the slot, failing if the stored
// kind differs.
func (r *Record) GetObject(s *Slot) (interface{}, error) {
	r.grow(s.index)
	if r.stored[s.index] != Object {
		return nil, errz.KindMismatch("%s holds %s, not object", s.name, r.stored[s.index])
	}
	return r.values[s.index], nil
}

// SetObject stores an arbitrary value into the slot.
func (r *Record) SetObject(s *Slot, v interface{}) {
	r.grow(s.index)
	r.values[s.index] = v
	r.stored[s.index] = Object
}
