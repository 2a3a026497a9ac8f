package safebytes

import (
	"bytes"
	"testing"
)

// dirty returns a buffer pre-filled with a value that is neither zero nor
// the sentinel, so untouched bytes are detectable.
func dirty(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xAA
	}
	return b
}

func TestStructOfGapFill(t *testing.T) {
	tests := []struct {
		name   string
		size   uintptr
		fields []TypedField
		want   []byte
	}{
		{
			name: "no_gaps",
			size: 4,
			fields: []TypedField{
				FieldOf(0, 2, Scalar(2)),
				FieldOf(2, 2, Scalar(2)),
			},
			want: []byte{0xAA, 0xAA, 0xAA, 0xAA},
		},
		{
			name: "inter_field_gap",
			size: 6,
			fields: []TypedField{
				FieldOf(0, 1, Scalar(1)),
				FieldOf(4, 2, Scalar(2)),
			},
			want: []byte{0xAA, 0xFE, 0xFE, 0xFE, 0xAA, 0xAA},
		},
		{
			name: "trailing_gap",
			size: 8,
			fields: []TypedField{
				FieldOf(0, 4, Scalar(4)),
				FieldOf(4, 1, Scalar(1)),
			},
			want: []byte{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xFE, 0xFE, 0xFE},
		},
		{
			name: "leading_gap",
			size: 4,
			fields: []TypedField{
				FieldOf(2, 2, Scalar(2)),
			},
			want: []byte{0xFE, 0xFE, 0xAA, 0xAA},
		},
		{
			name:   "no_fields_all_padding",
			size:   3,
			fields: nil,
			want:   []byte{0xFE, 0xFE, 0xFE},
		},
		{
			// Declaration order and memory order disagree; the fill pass
			// must sort by offset before walking.
			name: "unordered_fields",
			size: 8,
			fields: []TypedField{
				FieldOf(6, 2, Scalar(2)),
				FieldOf(0, 1, Scalar(1)),
				FieldOf(3, 2, Scalar(2)),
			},
			want: []byte{0xAA, 0xFE, 0xFE, 0xAA, 0xAA, 0xFE, 0xAA, 0xAA},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lt := StructOf(tc.size, tc.fields...)
			b := dirty(int(tc.size))
			lt.InitPadding(b)
			if !bytes.Equal(b, tc.want) {
				t.Errorf("InitPadding:\n got %x\nwant %x", b, tc.want)
			}
		})
	}
}

func TestStructOfRecursesIntoFields(t *testing.T) {
	// Inner: 1 data byte, 1 interior padding byte.
	inner := StructOf(2, FieldOf(0, 1, Scalar(1)))
	// Outer: inner at offset 0, one byte of outer padding, data at 3.
	outer := StructOf(4,
		FieldOf(0, 2, inner),
		FieldOf(3, 1, Scalar(1)),
	)

	b := dirty(4)
	outer.InitPadding(b)

	want := []byte{0xAA, 0xFE, 0xFE, 0xAA}
	if !bytes.Equal(b, want) {
		t.Errorf("nested fill:\n got %x\nwant %x", b, want)
	}
}

func TestStructOfIdempotent(t *testing.T) {
	inner := StructOf(4, FieldOf(0, 1, Scalar(1)), FieldOf(2, 1, Scalar(1)))
	lt := StructOf(8, FieldOf(0, 4, inner), FieldOf(6, 1, Scalar(1)))

	b := dirty(8)
	lt.InitPadding(b)
	first := bytes.Clone(b)
	lt.InitPadding(b)
	if !bytes.Equal(b, first) {
		t.Errorf("second fill changed bytes:\n got %x\nwant %x", b, first)
	}
}

func TestStructOfPreservesFieldOrder(t *testing.T) {
	fields := []TypedField{
		FieldOf(4, 2, Scalar(2)),
		FieldOf(0, 2, Scalar(2)),
	}
	lt := StructOf(8, fields...)

	got := lt.Fields()
	if len(got) != 2 || got[0].Offset != 4 || got[1].Offset != 0 {
		t.Errorf("Fields() must report declaration order, got %+v", got)
	}
}

func TestScalar(t *testing.T) {
	lt := Scalar(8)
	if lt.Size() != 8 {
		t.Errorf("Size = %d, want 8", lt.Size())
	}
	if lt.Fields() != nil {
		t.Errorf("Fields = %v, want nil", lt.Fields())
	}

	b := dirty(8)
	lt.InitPadding(b)
	if !bytes.Equal(b, dirty(8)) {
		t.Errorf("scalar fill must be a no-op, got %x", b)
	}
}

func TestArrayOf(t *testing.T) {
	// Element: 1 data byte, 1 interior padding byte.
	elem := StructOf(2, FieldOf(0, 1, Scalar(1)))
	lt := ArrayOf(3, elem)

	if lt.Size() != 6 {
		t.Errorf("Size = %d, want 6", lt.Size())
	}

	b := dirty(6)
	lt.InitPadding(b)
	want := []byte{0xAA, 0xFE, 0xAA, 0xFE, 0xAA, 0xFE}
	if !bytes.Equal(b, want) {
		t.Errorf("array fill:\n got %x\nwant %x", b, want)
	}

	// The representative element's descriptors stand in for every element.
	fields := lt.Fields()
	if len(fields) != 1 || fields[0].Offset != 0 || fields[0].Size != 1 {
		t.Errorf("Fields() = %+v, want the element's descriptors", fields)
	}
}

func TestTransparent(t *testing.T) {
	inner := StructOf(4, FieldOf(0, 1, Scalar(1)))
	lt := Transparent(inner)

	if lt.Size() != inner.Size() {
		t.Errorf("Size = %d, want %d", lt.Size(), inner.Size())
	}

	b := dirty(4)
	lt.InitPadding(b)
	want := dirty(4)
	inner.InitPadding(want)
	if !bytes.Equal(b, want) {
		t.Errorf("transparent fill:\n got %x\nwant %x", b, want)
	}
}

func TestFieldEnd(t *testing.T) {
	f := Field{Offset: 8, Size: 4}
	if f.End() != 12 {
		t.Errorf("End = %d, want 12", f.End())
	}
}
