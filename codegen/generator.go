package codegen

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/types"
	"strings"

	"github.com/wippyai/safebytes/errors"
)

// Generator emits layout boilerplate for one scanned package.
type Generator struct {
	pkg *Package
}

func NewGenerator(pkg *Package) *Generator {
	return &Generator{pkg: pkg}
}

// scalarIdents are the predeclared types with no internal padding.
var scalarIdents = map[string]bool{
	"bool":       true,
	"byte":       true,
	"rune":       true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
	"float32":    true,
	"float64":    true,
	"complex64":  true,
	"complex128": true,
}

// GenerateFile returns the generated source for one scanned file. The
// output declares, per struct, a zero value the offsets are measured
// from, the layout built in declaration order, and the PaddingLayout
// method conforming the struct to the layout contract.
func (g *Generator) GenerateFile(f *File) ([]byte, error) {
	var b strings.Builder

	b.WriteString("// Code generated by safebytes-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", f.Package)
	b.WriteString("import (\n\t\"unsafe\"\n\n\t\"github.com/wippyai/safebytes\"\n)\n")

	for _, s := range f.Structs {
		if err := g.emitStruct(&b, s); err != nil {
			return nil, err
		}
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, errors.New(errors.PhaseGenerate, errors.KindInvalidInput).
			Detail("emitted source for %s does not format", f.Name).
			Cause(err).
			Build()
	}
	return src, nil
}

// OutputName returns the name of the generated sibling for a source file.
func OutputName(name string) string {
	return strings.TrimSuffix(name, ".go") + GeneratedSuffix + ".go"
}

func (g *Generator) emitStruct(b *strings.Builder, s *Struct) error {
	zero := "_" + s.Name + "Zero"
	layoutVar := "_" + s.Name + "Layout"

	fmt.Fprintf(b, "\nvar %s %s\n\n", zero, s.Name)
	fmt.Fprintf(b, "var %s = safebytes.StructOf(unsafe.Sizeof(%s),\n", layoutVar, zero)
	for _, f := range s.Fields {
		if f.Name == "_" {
			// Blank fields cannot be addressed by Offsetof; their bytes
			// are unreachable from Go and are filled as padding.
			continue
		}
		path := zero + "." + f.Name
		sub, err := g.subLayout(s, f.Name, f.Type, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\tsafebytes.FieldOf(unsafe.Offsetof(%s), unsafe.Sizeof(%s), %s),\n",
			path, path, sub)
	}
	b.WriteString(")\n\n")
	fmt.Fprintf(b, "// PaddingLayout implements safebytes.LayoutProvider.\n")
	fmt.Fprintf(b, "func (%s) PaddingLayout() safebytes.Layout { return %s }\n", s.Name, layoutVar)
	return nil
}

// subLayout returns the source expression for a field type's layout.
func (g *Generator) subLayout(s *Struct, fieldName string, expr ast.Expr, path string) (string, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if scalarIdents[t.Name] {
			return fmt.Sprintf("safebytes.Scalar(unsafe.Sizeof(%s))", path), nil
		}
		if t.Name == "string" {
			return "", g.unsupported(s, fieldName, t.Name)
		}
		if g.pkg.Annotated(t.Name) {
			return "_" + t.Name + "Layout", nil
		}
		// Named type without a directive; resolve through reflection at
		// package init.
		return fmt.Sprintf("safebytes.LayoutFor[%s]()", t.Name), nil

	case *ast.StarExpr:
		return fmt.Sprintf("safebytes.Scalar(unsafe.Sizeof(%s))", path), nil

	case *ast.SelectorExpr:
		name := types.ExprString(t)
		if name == "unsafe.Pointer" {
			return fmt.Sprintf("safebytes.Scalar(unsafe.Sizeof(%s))", path), nil
		}
		return fmt.Sprintf("safebytes.LayoutFor[%s]()", name), nil

	case *ast.ArrayType:
		if t.Len == nil {
			return "", g.unsupported(s, fieldName, types.ExprString(t))
		}
		length := types.ExprString(t.Len)
		if length == "0" {
			return "safebytes.Scalar(0)", nil
		}
		elem, err := g.subLayout(s, fieldName, t.Elt, path+"[0]")
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("safebytes.ArrayOf(%s, %s)", length, elem), nil

	default:
		return "", g.unsupported(s, fieldName, types.ExprString(expr))
	}
}

func (g *Generator) unsupported(s *Struct, fieldName, typeName string) error {
	return errors.Unsupported(errors.PhaseGenerate,
		[]string{s.Name, fieldName}, typeName,
		"no static byte layout; write this layout by hand")
}
