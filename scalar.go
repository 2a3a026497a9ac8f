package safebytes

// scalarLayout is the recursion's base case: scalar representations are
// all data, so there is nothing to fill.
type scalarLayout struct {
	size uintptr
}

// Scalar returns the layout of a type with no internal padding: booleans,
// fixed-width integers, floats, complex numbers, raw pointers, the
// sync/atomic value types, and zero-size markers. Both operations of the
// contract degenerate: no fields, no writes.
func Scalar(size uintptr) Layout {
	return scalarLayout{size: size}
}

func (l scalarLayout) Size() uintptr {
	return l.size
}

func (l scalarLayout) Fields() []TypedField {
	return nil
}

func (l scalarLayout) InitPadding([]byte) {}
