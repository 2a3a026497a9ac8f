package safebytes

// Sentinel is the byte written into every padding location. The value is
// chosen to stand out in hex dumps; it is documented but not contractual.
const Sentinel byte = 0xFE

// Field locates one field inside its parent value's byte image.
// Offset and Size are byte quantities relative to the parent's base
// address, with Offset+Size never exceeding the parent's size.
type Field struct {
	Offset uintptr
	Size   uintptr
}

// End returns the offset one past the field's last byte.
func (f Field) End() uintptr {
	return f.Offset + f.Size
}

// TypedField pairs a field's location with the layout of the field's own
// type, so padding interior to the field is reachable by recursion.
type TypedField struct {
	Field
	Sub Layout
}

// FieldOf builds a TypedField from an offset, a size, and the layout of
// the field's type. Offsets come from reflect.StructField.Offset or
// unsafe.Offsetof; both measure the address delta between the field and
// the enclosing value, so the result is identical for every instance.
func FieldOf(offset, size uintptr, sub Layout) TypedField {
	return TypedField{
		Field: Field{Offset: offset, Size: size},
		Sub:   sub,
	}
}

// Layout is the layout-aware contract a type's byte image satisfies.
//
// Implementations describe a single concrete type: Size reports the
// type's byte size, Fields its top-level field descriptors, and
// InitPadding writes the sentinel into every byte of b not covered by a
// (possibly nested) field.
//
// InitPadding preconditions, trusted rather than checked: b must be
// exactly Size bytes and must be (or alias) the storage of a value of the
// described type. Field bytes are never written; the operation is
// idempotent and performs no allocation.
type Layout interface {
	Size() uintptr
	Fields() []TypedField
	InitPadding(b []byte)
}

// LayoutProvider is the manual conformance path. A type that implements
// it supplies its own Layout instead of being compiled through reflection;
// generated boilerplate also satisfies this interface.
//
// The returned Layout must be identical for every instance of the type
// and must describe the type's actual in-memory representation.
type LayoutProvider interface {
	PaddingLayout() Layout
}
