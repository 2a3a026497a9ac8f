package safebytes

import (
	"sort"
)

// structLayout implements the contract for composite values: fill every
// gap between fields with the sentinel, then recurse into each field.
type structLayout struct {
	size     uintptr
	fields   []TypedField
	byOffset []Field
}

// StructOf builds the layout of a composite value of the given total size
// from its field descriptors. Fields may be supplied in any order;
// declaration order and memory order need not agree. Two fields must not
// claim the same offset with nonzero size — such metadata is malformed
// and the fill behavior for it is unspecified.
func StructOf(size uintptr, fields ...TypedField) Layout {
	l := &structLayout{
		size:     size,
		fields:   fields,
		byOffset: make([]Field, len(fields)),
	}
	for i, f := range fields {
		l.byOffset[i] = f.Field
	}
	sort.Slice(l.byOffset, func(i, j int) bool {
		return l.byOffset[i].Offset < l.byOffset[j].Offset
	})
	return l
}

func (l *structLayout) Size() uintptr {
	return l.size
}

func (l *structLayout) Fields() []TypedField {
	return l.fields
}

func (l *structLayout) InitPadding(b []byte) {
	// Walk fields in memory order, filling every gap the cursor skips.
	var cursor uintptr
	for _, f := range l.byOffset {
		if f.Offset > cursor {
			fill(b[cursor:f.Offset])
		}
		cursor = f.End()
	}
	if cursor < l.size {
		fill(b[cursor:l.size])
	}

	// The top-level pass cannot see padding interior to a field; hand
	// each field's byte range to its own layout.
	for _, f := range l.fields {
		f.Sub.InitPadding(b[f.Offset:f.End()])
	}
}

func fill(b []byte) {
	for i := range b {
		b[i] = Sentinel
	}
}
