package safebytes

// arrayLayout adapts an element layout to a fixed-size homogeneous
// sequence. Go arrays have no inter-element gaps, so all padding is
// interior to the elements and handled by per-element recursion.
type arrayLayout struct {
	count int
	elem  Layout
}

// ArrayOf returns the layout of an n-element array whose elements have
// the given layout. All elements share one layout, so a single
// representative describes the whole sequence.
func ArrayOf(n int, elem Layout) Layout {
	return arrayLayout{count: n, elem: elem}
}

func (l arrayLayout) Size() uintptr {
	return uintptr(l.count) * l.elem.Size()
}

// Fields reports the representative element's descriptors, valid for
// every element of the sequence.
func (l arrayLayout) Fields() []TypedField {
	return l.elem.Fields()
}

func (l arrayLayout) InitPadding(b []byte) {
	stride := l.elem.Size()
	for i := 0; i < l.count; i++ {
		start := uintptr(i) * stride
		l.elem.InitPadding(b[start : start+stride])
	}
}

// transparentLayout adapts a wrapper that owns exactly one inner value
// and shares its representation. The wrapper adds no bytes of its own, so
// both operations pass through unchanged.
type transparentLayout struct {
	inner Layout
}

// Transparent returns the layout of a single-field wrapper whose
// representation is identical to its inner value's.
func Transparent(inner Layout) Layout {
	return transparentLayout{inner: inner}
}

func (l transparentLayout) Size() uintptr {
	return l.inner.Size()
}

func (l transparentLayout) Fields() []TypedField {
	return l.inner.Fields()
}

func (l transparentLayout) InitPadding(b []byte) {
	l.inner.InitPadding(b)
}
