// Package safebytes provides byte views of Go values with every padding
// byte deterministically initialized.
//
// Reading a struct's storage as raw bytes is normally hazardous: the
// compiler inserts padding between and after fields to satisfy alignment,
// and those bytes hold whatever the memory held before. This library fills
// every padding byte with a fixed sentinel (0xFE) before handing out a
// byte view, so the result is a fully defined image of the value.
//
// # Architecture Overview
//
// The library is organized into a small core plus tooling:
//
//	safebytes/           Root package: layout contract, adapters, compiler, byte views
//	├── errors/          Structured error types for compile/generate failures
//	├── codegen/         Source scanner and boilerplate generator
//	└── cmd/
//	    ├── safebytes-gen/  go:generate tool emitting layout boilerplate
//	    └── padview/        Interactive struct layout inspector (TUI)
//
// # Quick Start
//
// Take a byte view of any fixed-layout value:
//
//	type Header struct {
//	    Tag   uint8
//	    Seq   uint64
//	    Flags uint16
//	}
//
//	h := Header{Tag: 1, Seq: 2, Flags: 3}
//	b, err := safebytes.Bytes(&h)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// b aliases h's storage; field bytes are verbatim, padding is 0xFE.
//
// # Layout Contract
//
// Every type's layout behavior is expressed through the Layout interface:
// Size reports the byte size of the type, Fields reports the top-level
// field descriptors, and InitPadding fills every padding byte of a buffer
// holding one value of the type. Four constructors cover all shapes:
//
//	Constructor     Shape
//	───────────────────────────────────────────────
//	Scalar          primitives, pointers, atomics (no padding)
//	StructOf        composite values with declared fields
//	ArrayOf         fixed-size homogeneous sequences
//	Transparent     single-field wrappers with identical representation
//
// Layouts are obtained three ways: compiled from reflect.Type at run time
// (LayoutOf), generated at build time by safebytes-gen, or hand-written by
// implementing LayoutProvider. All three produce the same contract.
//
// # Contract, Not Checks
//
// InitPadding trusts its inputs: the metadata must describe the buffer's
// actual type and the buffer must be exactly Size bytes. Violating that is
// a bug in the Layout implementation or its caller, not a recoverable
// condition; at best the slice bounds check aborts, at worst field bytes
// are overwritten. Correct usage never fails.
//
// # Aliasing Model
//
// Bytes and SliceBytes require exclusive access to the value for the call
// (they write sentinel bytes into padding in place) and return a slice
// that aliases the value's storage. Do not mutate the value while reading
// the returned view, and do not share the value across goroutines during
// the call without external synchronization. Use AppendBytes to obtain a
// detached copy instead.
//
// The sentinel value is stable for debuggability, but only "every byte is
// defined" is contractual; consumers must not attach meaning to 0xFE.
package safebytes
