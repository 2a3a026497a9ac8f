package safebytes

import (
	"bytes"
	"reflect"
	"testing"
	"unsafe"
)

// header matches the reference layout scenario: on 64-bit platforms the
// compiler places Tag at 0, Seq at 8, Flags at 16, total size 24, leaving
// 7 interior and 6 trailing padding bytes.
type header struct {
	Tag   uint8
	Seq   uint64
	Flags uint16
}

func isLittleEndian() bool {
	x := uint16(0x0102)
	return *(*byte)(unsafe.Pointer(&x)) == 0x02
}

func TestBytesReferenceScenario(t *testing.T) {
	h := header{Tag: 1, Seq: 2, Flags: 3}
	if unsafe.Sizeof(h) != 24 || !isLittleEndian() {
		t.Skip("reference scenario assumes 64-bit little-endian layout")
	}

	got, err := Bytes(&h)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	want := []byte{
		0x01,                                     // Tag
		0xFE, 0xFE, 0xFE, 0xFE, 0xFE, 0xFE, 0xFE, // padding
		0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Seq
		0x03, 0x00, // Flags
		0xFE, 0xFE, 0xFE, 0xFE, 0xFE, 0xFE, // padding
	}
	if !bytes.Equal(got, want) {
		t.Errorf("byte view:\n got %x\nwant %x", got, want)
	}
}

func TestBytesNestedScenario(t *testing.T) {
	// The inner 24-byte pattern must survive unchanged at its nested
	// offset, with the appended field gap-filled around.
	type outer struct {
		In   header
		Tail uint32
	}

	o := outer{In: header{Tag: 1, Seq: 2, Flags: 3}, Tail: 4}
	if unsafe.Sizeof(o.In) != 24 || !isLittleEndian() {
		t.Skip("reference scenario assumes 64-bit little-endian layout")
	}

	got, err := Bytes(&o)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	inner := header{Tag: 1, Seq: 2, Flags: 3}
	innerBytes, err := Bytes(&inner)
	if err != nil {
		t.Fatalf("Bytes(inner): %v", err)
	}
	if !bytes.Equal(got[:24], innerBytes) {
		t.Errorf("nested region:\n got %x\nwant %x", got[:24], innerBytes)
	}

	tailOff := unsafe.Offsetof(o.Tail)
	wantTail := []byte{0x04, 0x00, 0x00, 0x00}
	if !bytes.Equal(got[tailOff:tailOff+4], wantTail) {
		t.Errorf("tail bytes: got %x, want %x", got[tailOff:tailOff+4], wantTail)
	}
	for i := tailOff + 4; i < unsafe.Sizeof(o); i++ {
		if got[i] != Sentinel {
			t.Errorf("byte %d = %#x, want sentinel", i, got[i])
		}
	}
}

func TestBytesIdempotent(t *testing.T) {
	h := header{Tag: 7, Seq: 42, Flags: 9}
	first, err := Bytes(&h)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	snapshot := bytes.Clone(first)

	second, err := Bytes(&h)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(second, snapshot) {
		t.Errorf("second view differs:\n got %x\nwant %x", second, snapshot)
	}
}

func TestBytesPreservesFieldData(t *testing.T) {
	h := header{Tag: 0xFF, Seq: ^uint64(0), Flags: 0xFEFE}
	before := h

	got, err := Bytes(&h)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	if h != before {
		t.Errorf("value mutated: %+v -> %+v", before, h)
	}

	// Field bytes in the view equal each field's own independent view,
	// even when field data happens to equal the sentinel.
	tag := h.Tag
	tagBytes, _ := Bytes(&tag)
	off := unsafe.Offsetof(h.Tag)
	if !bytes.Equal(got[off:off+1], tagBytes) {
		t.Errorf("Tag bytes: got %x, want %x", got[off:off+1], tagBytes)
	}

	seq := h.Seq
	seqBytes, _ := Bytes(&seq)
	off = unsafe.Offsetof(h.Seq)
	if !bytes.Equal(got[off:off+8], seqBytes) {
		t.Errorf("Seq bytes: got %x, want %x", got[off:off+8], seqBytes)
	}

	flags := h.Flags
	flagsBytes, _ := Bytes(&flags)
	off = unsafe.Offsetof(h.Flags)
	if !bytes.Equal(got[off:off+2], flagsBytes) {
		t.Errorf("Flags bytes: got %x, want %x", got[off:off+2], flagsBytes)
	}
}

// coverage marks every byte reachable through a (possibly nested) field
// range, mirroring the definition of padding as the complement.
func coverage(lt Layout, covered []bool) {
	fields := lt.Fields()
	if len(fields) == 0 {
		for i := range covered {
			covered[i] = true
		}
		return
	}
	for _, f := range fields {
		coverage(f.Sub, covered[f.Offset:f.End()])
	}
}

func TestBytesPaddingCoverage(t *testing.T) {
	type nested struct {
		A uint8
		B header
		C uint8
	}

	n := nested{A: 1, B: header{Tag: 2, Seq: 3, Flags: 4}, C: 5}
	got, err := Bytes(&n)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	lt, err := LayoutOf(reflect.TypeOf(n))
	if err != nil {
		t.Fatalf("LayoutOf: %v", err)
	}

	covered := make([]bool, lt.Size())
	coverage(lt, covered)
	for i, c := range covered {
		if !c && got[i] != Sentinel {
			t.Errorf("padding byte %d = %#x, want sentinel", i, got[i])
		}
	}
}

func TestBytesNilPointer(t *testing.T) {
	var h *header
	if _, err := Bytes(h); err == nil {
		t.Error("Bytes(nil) should fail")
	}
}

func TestBytesUnsupportedType(t *testing.T) {
	type bad struct {
		Name string
	}
	b := bad{Name: "x"}
	if _, err := Bytes(&b); err == nil {
		t.Error("Bytes should reject types without a static layout")
	}
}

func TestBytesViewAliasesValue(t *testing.T) {
	h := header{Tag: 1}
	got, err := Bytes(&h)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	h.Tag = 9
	if got[0] != 9 {
		t.Errorf("view[0] = %d, want 9 (view must alias the value)", got[0])
	}
}

func TestSliceBytesEmpty(t *testing.T) {
	// Empty input short-circuits before any field logic; even an
	// unsupported element type must not produce an error.
	got, err := SliceBytes([]string{})
	if err != nil {
		t.Fatalf("SliceBytes: %v", err)
	}
	if got != nil {
		t.Errorf("got %x, want nil", got)
	}
}

func TestSliceBytes(t *testing.T) {
	hs := []header{
		{Tag: 1, Seq: 2, Flags: 3},
		{Tag: 4, Seq: 5, Flags: 6},
	}

	got, err := SliceBytes(hs)
	if err != nil {
		t.Fatalf("SliceBytes: %v", err)
	}

	stride := int(unsafe.Sizeof(hs[0]))
	if len(got) != 2*stride {
		t.Fatalf("len = %d, want %d", len(got), 2*stride)
	}

	// Each element's region independently satisfies the single-value
	// contract.
	for i := range hs {
		h := hs[i]
		single, err := Bytes(&h)
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		region := got[i*stride : (i+1)*stride]
		if !bytes.Equal(region, single) {
			t.Errorf("element %d:\n got %x\nwant %x", i, region, single)
		}
	}
}

func TestAppendBytesDetached(t *testing.T) {
	h := header{Tag: 1, Seq: 2, Flags: 3}
	got, err := AppendBytes(nil, &h)
	if err != nil {
		t.Fatalf("AppendBytes: %v", err)
	}

	view, err := Bytes(&h)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !bytes.Equal(got, view) {
		t.Errorf("append result differs from view")
	}

	h.Tag = 200
	if got[0] == 200 {
		t.Error("AppendBytes result must not alias the value")
	}
}

func TestBytesArrayValue(t *testing.T) {
	type pair struct {
		A uint8
		B uint16
	}
	arr := [3]pair{{1, 2}, {3, 4}, {5, 6}}

	got, err := Bytes(&arr)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if len(got) != int(unsafe.Sizeof(arr)) {
		t.Fatalf("len = %d, want %d", len(got), unsafe.Sizeof(arr))
	}

	stride := int(unsafe.Sizeof(arr[0]))
	for i := range arr {
		p := arr[i]
		single, err := Bytes(&p)
		if err != nil {
			t.Fatalf("Bytes: %v", err)
		}
		region := got[i*stride : (i+1)*stride]
		if !bytes.Equal(region, single) {
			t.Errorf("element %d:\n got %x\nwant %x", i, region, single)
		}
	}
}
