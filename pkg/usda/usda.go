// Package usda reads and writes a text subset of the usda scene format:
// layer metadata, nested typed prim defs, the attributes the stage model
// carries, transform operators with optional time samples, and
// xformOpOrder. Unknown attributes and prim types are skipped so files
// written by other tools still load.
package usda

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/veldrane/stageview/pkg/stage"
)

// Format errors.
var (
	ErrBadHeader     = errors.New("not a usda file: missing #usda header")
	ErrUnclosedBlock = errors.New("unclosed block at end of file")
	ErrUnbalanced    = errors.New("unbalanced '}'")
	ErrBadUpAxis     = errors.New("unsupported upAxis (only \"Y\")")
)

// Load reads a stage from a usda file. The stage is named after the file.
func Load(path string) (*stage.Stage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening usda file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	st, err := Decode(f, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// Save writes a stage to a usda file.
func Save(st *stage.Stage, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating usda file: %w", err)
	}
	if err := Encode(f, st); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
