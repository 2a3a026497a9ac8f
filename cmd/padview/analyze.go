package main

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// fieldSpan is one top-level field of an inspected struct.
type fieldSpan struct {
	name    string
	typeStr string
	offset  int64
	size    int64
}

// structInfo is everything the inspector renders for one struct: the
// top-level field spans plus a per-byte padding map computed by recursing
// into nested structs and arrays.
type structInfo struct {
	name    string
	size    int64
	fields  []fieldSpan
	padding []bool
}

func (s structInfo) paddingCount() int {
	n := 0
	for _, p := range s.padding {
		if p {
			n++
		}
	}
	return n
}

// analyzeDir type-checks the package in dir and computes the machine
// layout of every struct type it declares, using the gc compiler's size
// and alignment rules for the host architecture.
func analyzeDir(dir string) ([]structInfo, error) {
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, 0)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Go source in %s", dir)
	}

	sizes := types.SizesFor("gc", runtime.GOARCH)
	conf := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Sizes:    sizes,
		// Layout inspection should survive unrelated type errors.
		Error: func(error) {},
	}
	pkg, err := conf.Check(dir, fset, files, nil)
	if pkg == nil {
		return nil, err
	}

	var infos []structInfo
	for _, name := range pkg.Scope().Names() {
		tn, ok := pkg.Scope().Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		st, ok := tn.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}
		infos = append(infos, analyzeStruct(name, st, sizes))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].name < infos[j].name })
	return infos, nil
}

func analyzeStruct(name string, st *types.Struct, sizes types.Sizes) structInfo {
	info := structInfo{
		name: name,
		size: sizes.Sizeof(st),
	}

	vars := make([]*types.Var, st.NumFields())
	for i := range vars {
		vars[i] = st.Field(i)
	}
	offsets := sizes.Offsetsof(vars)
	for i, v := range vars {
		info.fields = append(info.fields, fieldSpan{
			name:    v.Name(),
			typeStr: v.Type().String(),
			offset:  offsets[i],
			size:    sizes.Sizeof(v.Type()),
		})
	}

	covered := make([]bool, info.size)
	markData(st, 0, covered, sizes)
	info.padding = make([]bool, info.size)
	for i, c := range covered {
		info.padding[i] = !c
	}
	return info
}

// markData marks every byte occupied by leaf data; the complement is
// padding, including padding interior to nested structs and arrays.
func markData(t types.Type, base int64, covered []bool, sizes types.Sizes) {
	switch u := t.Underlying().(type) {
	case *types.Struct:
		vars := make([]*types.Var, u.NumFields())
		for i := range vars {
			vars[i] = u.Field(i)
		}
		offsets := sizes.Offsetsof(vars)
		for i, v := range vars {
			markData(v.Type(), base+offsets[i], covered, sizes)
		}
	case *types.Array:
		if u.Len() == 0 {
			return
		}
		// Sizeof already rounds the element up to its alignment, so the
		// size is the stride.
		stride := sizes.Sizeof(u.Elem())
		for i := int64(0); i < u.Len(); i++ {
			markData(u.Elem(), base+i*stride, covered, sizes)
		}
	default:
		for i := base; i < base+sizes.Sizeof(t) && i < int64(len(covered)); i++ {
			covered[i] = true
		}
	}
}
