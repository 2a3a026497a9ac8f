// safebytes-gen emits layout boilerplate for structs annotated with a
// //safebytes:layout directive. It is intended to run under go:generate:
//
//	//go:generate go run github.com/wippyai/safebytes/cmd/safebytes-gen -dir .
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/safebytes/codegen"
)

func main() {
	var (
		dir     = flag.String("dir", ".", "Package directory to scan")
		dryRun  = flag.Bool("n", false, "Print generated code to stdout instead of writing files")
		verbose = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		codegen.SetLogger(logger)
	}

	if err := run(*dir, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, dryRun bool) error {
	pkg, err := codegen.ParseDir(dir)
	if err != nil {
		return err
	}
	if len(pkg.Files) == 0 {
		fmt.Fprintf(os.Stderr, "no //%s directives found in %s\n", codegen.Directive, dir)
		return nil
	}

	gen := codegen.NewGenerator(pkg)

	if dryRun {
		for _, f := range pkg.Files {
			src, err := gen.GenerateFile(f)
			if err != nil {
				return err
			}
			fmt.Printf("// -- %s --\n%s", codegen.OutputName(f.Name), src)
		}
		return nil
	}

	written, err := gen.Generate()
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Println(path)
	}
	return nil
}
