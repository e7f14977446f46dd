package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/descendants/pkg/tree"
)

// Write encodes root to w in the given format. Every format round-trips
// through [Read] with children kept in declared order.
func Write(w io.Writer, root *tree.Node, format Format) error {
	if root == nil {
		return tree.ErrNilRoot
	}
	switch format {
	case FormatJSON:
		return WriteJSON(root, w)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(root); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported tree format %q", format)
	}
}

// WriteJSON encodes a tree as indented JSON. The embedded dataset and the
// dataset hash both use this canonical form.
func WriteJSON(root *tree.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ExportFile writes root to path, choosing the encoding from the extension.
func ExportFile(root *tree.Node, path string) (err error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return fmt.Errorf("%s: unknown tree format (want .json, .yaml, .yml or .toml)", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := Write(f, root, format); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
