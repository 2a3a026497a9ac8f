// Package errors provides structured error types for the safebytes library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type includes rich context: field path, Go
// type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindUnsupported).
//		Path("Header", "Name").
//		GoType("string").
//		Detail("kind string has no static byte layout").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(errors.PhaseCompile, path, "map[int]int", "no static layout")
//	err := errors.NotStruct(errors.PhaseParse, "Color")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
