// Package codegen scans Go source for layout directives and emits the
// boilerplate that conforms annotated structs to the safebytes layout
// contract.
//
// A struct opts in with a directive comment:
//
//	//safebytes:layout
//	type Header struct {
//	    Tag   uint8
//	    Seq   uint64
//	    Flags uint16
//	}
//
// For each source file containing directives the generator emits a
// sibling <file>_safebytes.go with a package-level layout measured from a
// zero value via unsafe.Sizeof/unsafe.Offsetof, plus a PaddingLayout
// method. Fields are emitted in declaration order; the fill pass sorts by
// offset, so declaration order never has to match memory order.
//
// Only value-shaped definitions are accepted: a directive on a non-struct
// type is a parse error, and reference-typed fields (strings, slices,
// maps, channels, funcs, interfaces) are generate errors, since such
// types have no static byte layout to describe.
//
// The generator is a build-time convenience. Types it cannot express are
// written by hand against the same contract (see safebytes.LayoutProvider).
package codegen
