package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/descendants/pkg/cache"
	"github.com/matzehuels/descendants/pkg/dataset"
	dio "github.com/matzehuels/descendants/pkg/io"
	"github.com/matzehuels/descendants/pkg/tree"
)

// Dataset is a loaded tree plus the content hash that scopes its cache keys.
type Dataset struct {
	Root *tree.Node
	Hash string
}

// DefaultDataset returns the embedded genealogy.
func DefaultDataset() (Dataset, error) {
	root, err := dataset.Default()
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Root: root, Hash: dataset.Hash()}, nil
}

// LoadDataset imports a JSON, YAML or TOML tree from path. An empty path
// returns [DefaultDataset].
//
// The hash is taken over the tree's canonical JSON, so the same family
// written in two formats shares cache entries.
func LoadDataset(path string) (Dataset, error) {
	if path == "" {
		return DefaultDataset()
	}
	root, err := dio.ImportFile(path)
	if err != nil {
		return Dataset{}, err
	}
	var buf bytes.Buffer
	if err := dio.WriteJSON(root, &buf); err != nil {
		return Dataset{}, fmt.Errorf("hash dataset: %w", err)
	}
	return Dataset{Root: root, Hash: cache.Hash(buf.Bytes())}, nil
}
