package safebytes

import (
	"reflect"
	"unsafe"

	"github.com/wippyai/safebytes/errors"
)

// Bytes returns a fully defined byte view of *v: field bytes verbatim,
// every padding byte set to the sentinel.
//
// The returned slice aliases v's storage. The caller must hold exclusive
// access to *v for the duration of the call and must not mutate *v while
// the view is in use. It fails only when T's layout cannot be compiled;
// for a supported T it never fails.
func Bytes[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, errors.NilPointer(errors.PhaseView, nil, reflect.TypeFor[T]().String())
	}
	lt, err := LayoutOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(v)), lt.Size())
	lt.InitPadding(b)
	return b, nil
}

// SliceBytes returns a fully defined byte view of the storage backing vs.
// An empty slice yields nil without consulting any layout. Elements are
// contiguous with no inter-element gaps, so one element layout serves all
// of them. The aliasing rules of Bytes apply to the whole backing array.
func SliceBytes[T any](vs []T) ([]byte, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	lt, err := LayoutOf(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	stride := lt.Size()
	b := unsafe.Slice((*byte)(unsafe.Pointer(&vs[0])), uintptr(len(vs))*stride)
	for i := range vs {
		start := uintptr(i) * stride
		lt.InitPadding(b[start : start+stride])
	}
	return b, nil
}

// AppendBytes appends the byte view of *v to dst and returns the extended
// slice. Unlike Bytes, the result does not alias v's storage, at the cost
// of a copy. v's padding is still initialized in place.
func AppendBytes[T any](dst []byte, v *T) ([]byte, error) {
	b, err := Bytes(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}
