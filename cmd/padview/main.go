// padview inspects the machine layout of the structs in a Go package and
// shows where the compiler inserted padding.
//
//	padview -dir ./internal/wire          # table of sizes and padding
//	padview -dir ./internal/wire -i       # interactive byte-map TUI
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"
)

func main() {
	var (
		dir         = flag.String("dir", ".", "Package directory to inspect")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	infos, err := analyzeDir(dir)
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Printf("no struct types in %s\n", dir)
		return nil
	}

	fmt.Printf("%-24s %8s %8s\n", "STRUCT", "SIZE", "PADDING")
	for _, info := range infos {
		fmt.Printf("%-24s %8d %8d\n", info.name, info.size, info.paddingCount())
	}
	return nil
}
