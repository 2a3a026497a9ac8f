package codegen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/wippyai/safebytes/errors"
)

// Directive marks a struct for layout generation. It follows the Go
// convention for machine directives: a //-comment with no space after
// the slashes.
const Directive = "safebytes:layout"

// GeneratedSuffix is appended (before .go) to emitted file names.
// Files carrying the suffix are never scanned as input.
const GeneratedSuffix = "_safebytes"

// Package holds every scanned file of one Go package directory.
type Package struct {
	Name  string
	Dir   string
	Files []*File

	// structs indexes annotated struct names across all files, so a
	// generated layout can reference a sibling's layout variable directly.
	structs map[string]*Struct
}

// File holds the annotated structs found in one source file.
type File struct {
	Name    string // base name, e.g. "types.go"
	Path    string
	Package string
	Structs []*Struct
}

// Struct is one annotated struct declaration.
type Struct struct {
	Name   string
	Fields []StructField
}

// StructField is one declared field. Embedded fields are named after
// their type, matching how the field is addressed in Go source.
type StructField struct {
	Name string
	Type ast.Expr
}

// Annotated reports whether name is an annotated struct in the package.
func (p *Package) Annotated(name string) bool {
	_, ok := p.structs[name]
	return ok
}

// ParseDir scans every non-test, non-generated Go file in dir. Files
// without directives are dropped from the result; a directory with no
// directives at all yields a Package with no files, not an error.
func ParseDir(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.IO(errors.PhaseParse, dir, err)
	}

	pkg := &Package{
		Dir:     dir,
		structs: make(map[string]*Struct),
	}

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, GeneratedSuffix+".go") {
			continue
		}

		f, err := parseFile(fset, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if pkg.Name == "" {
			pkg.Name = f.Package
		}
		if len(f.Structs) == 0 {
			continue
		}
		pkg.Files = append(pkg.Files, f)
		for _, s := range f.Structs {
			pkg.structs[s.Name] = s
		}
	}

	return pkg, nil
}

func parseFile(fset *token.FileSet, path string) (*File, error) {
	node, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Detail("%s", path).
			Cause(err).
			Build()
	}

	f := &File{
		Name:    filepath.Base(path),
		Path:    path,
		Package: node.Name.Name,
	}

	for _, decl := range node.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if !hasDirective(gen.Doc) && !hasDirective(ts.Doc) {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return nil, errors.NotStruct(errors.PhaseParse, ts.Name.Name)
			}
			f.Structs = append(f.Structs, buildStruct(ts.Name.Name, st))
		}
	}

	return f, nil
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.HasPrefix(c.Text, "//"+Directive) {
			return true
		}
	}
	return false
}

func buildStruct(name string, st *ast.StructType) *Struct {
	s := &Struct{Name: name}
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			// Embedded field; addressed by its type name.
			s.Fields = append(s.Fields, StructField{
				Name: embeddedName(field.Type),
				Type: field.Type,
			})
			continue
		}
		for _, n := range field.Names {
			s.Fields = append(s.Fields, StructField{
				Name: n.Name,
				Type: field.Type,
			})
		}
	}
	return s
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	default:
		return ""
	}
}
