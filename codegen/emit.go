package codegen

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/safebytes/errors"
)

// Generate runs the generator over every scanned file and writes each
// output next to its source. It returns the paths written so far; on
// error the earlier outputs remain on disk.
func (g *Generator) Generate() ([]string, error) {
	var written []string
	for _, f := range g.pkg.Files {
		src, err := g.GenerateFile(f)
		if err != nil {
			return written, err
		}

		out := filepath.Join(g.pkg.Dir, OutputName(f.Name))
		if err := os.WriteFile(out, src, 0o644); err != nil {
			return written, errors.IO(errors.PhaseGenerate, out, err)
		}
		Logger().Info("generated layout boilerplate",
			zap.String("file", out),
			zap.Int("structs", len(f.Structs)))
		written = append(written, out)
	}
	return written, nil
}
