package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/descendants/pkg/tree"
)

// Format names a tree encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
// It returns false for unknown extensions.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Read decodes a tree from r in the given format and validates it.
// Read does not close r.
func Read(r io.Reader, format Format) (*tree.Node, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, fmt.Errorf("unsupported tree format %q", format)
	}
}

// ReadJSON decodes a JSON tree from r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	var root tree.Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return validated(&root)
}

// ReadYAML decodes a YAML tree from r.
func ReadYAML(r io.Reader) (*tree.Node, error) {
	var root tree.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return validated(&root)
}

// ReadTOML decodes a TOML tree from r.
func ReadTOML(r io.Reader) (*tree.Node, error) {
	var root tree.Node
	if _, err := toml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return validated(&root)
}

func validated(root *tree.Node) (*tree.Node, error) {
	if err := tree.Validate(root); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}
	return root, nil
}

// ImportFile reads the tree stored at path, picking the decoder from the
// file extension. Errors are wrapped with the path for context.
func ImportFile(path string) (*tree.Node, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: unknown tree format (want .json, .yaml, .yml or .toml)", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
