package safebytes

import (
	"reflect"
	"sync"

	"github.com/wippyai/safebytes/errors"
)

// Compiler derives layouts from reflect.Type. Compiled layouts are cached
// per type; reflection describes a type's static layout, never an
// instance, so one result serves every value of the type.
type Compiler struct {
	cache sync.Map // reflect.Type -> Layout
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

var defaultCompiler = NewCompiler()

// LayoutOf compiles t's layout using a shared default compiler.
func LayoutOf(t reflect.Type) (Layout, error) {
	return defaultCompiler.Compile(t)
}

// LayoutFor compiles T's layout, panicking if T has no static byte
// layout. Intended for package-level variables and generated code, where
// an unsupported type is a build-time defect rather than an input error.
func LayoutFor[T any]() Layout {
	lt, err := LayoutOf(reflect.TypeFor[T]())
	if err != nil {
		panic(err)
	}
	return lt
}

// Compile returns the layout of t. Types whose layout is not knowable
// statically (strings, slices, maps, channels, funcs, interfaces) are
// rejected with a compile-phase error naming the offending field path.
func (c *Compiler) Compile(t reflect.Type) (Layout, error) {
	if t == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNilPointer).
			Detail("type cannot be nil").
			Build()
	}

	if cached, ok := c.cache.Load(t); ok {
		return cached.(Layout), nil
	}

	lt, err := c.compile(t, nil)
	if err != nil {
		return nil, err
	}

	c.cache.Store(t, lt)
	return lt, nil
}

var layoutProviderType = reflect.TypeFor[LayoutProvider]()

func (c *Compiler) compile(t reflect.Type, path []string) (Layout, error) {
	// Interface kinds would pass the provider check below on method set
	// alone, with no concrete value behind them to call.
	if t.Kind() == reflect.Interface {
		return nil, errors.Unsupported(errors.PhaseCompile, path, t.String(),
			"kind "+t.Kind().String()+" has no static byte layout")
	}

	// Manual conformance wins over reflection. PaddingLayout must not
	// depend on the receiver, so a zero value is good enough to call it.
	if t.Implements(layoutProviderType) {
		return reflect.New(t).Elem().Interface().(LayoutProvider).PaddingLayout(), nil
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(layoutProviderType) {
		return reflect.New(t).Interface().(LayoutProvider).PaddingLayout(), nil
	}

	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.Pointer, reflect.UnsafePointer:
		return Scalar(t.Size()), nil

	case reflect.Array:
		return c.compileArray(t, path)

	case reflect.Struct:
		return c.compileStruct(t, path)

	default:
		return nil, errors.Unsupported(errors.PhaseCompile, path, t.String(),
			"kind "+t.Kind().String()+" has no static byte layout")
	}
}

func (c *Compiler) compileArray(t reflect.Type, path []string) (Layout, error) {
	if t.Len() == 0 {
		return Scalar(0), nil
	}
	elem, err := c.compile(t.Elem(), append(path, "[]"))
	if err != nil {
		return nil, err
	}
	return ArrayOf(t.Len(), elem), nil
}

func (c *Compiler) compileStruct(t reflect.Type, path []string) (Layout, error) {
	// sync/atomic value types hold a single machine word (plus a
	// zero-size noCopy marker); treat them as whole-value scalars.
	if t.PkgPath() == "sync/atomic" {
		return Scalar(t.Size()), nil
	}

	n := t.NumField()
	fields := make([]TypedField, 0, n)
	for i := 0; i < n; i++ {
		sf := t.Field(i)
		if sf.Type.Size() == 0 {
			// Zero-size fields occupy no bytes; nothing to locate or fill.
			continue
		}
		sub, err := c.compile(sf.Type, append(path, sf.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldOf(sf.Offset, sf.Type.Size(), sub))
	}

	if len(fields) == 0 {
		if t.Size() == 0 {
			return Scalar(0), nil
		}
		// No bytes are covered by a field, so the whole image is padding.
		return StructOf(t.Size()), nil
	}
	if len(fields) == 1 && fields[0].Offset == 0 && fields[0].Size == t.Size() {
		return Transparent(fields[0].Sub), nil
	}
	return StructOf(t.Size(), fields...), nil
}
