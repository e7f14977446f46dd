// Package dataset bundles the default genealogy shipped with the binary.
//
// The tree is embedded at compile time, decoded on first use and shared
// read-only for the life of the process. Use [github.com/matzehuels/descendants/pkg/io]
// to load a different tree from disk.
package dataset

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/matzehuels/descendants/pkg/cache"
	"github.com/matzehuels/descendants/pkg/io"
	"github.com/matzehuels/descendants/pkg/tree"
)

//go:embed descendants.json
var raw []byte

var (
	once    sync.Once
	root    *tree.Node
	loadErr error
)

// Default returns the embedded tree. The first call decodes and validates it;
// later calls return the same root. The error is only non-nil if the
// embedded file itself is broken, which the package tests guard against.
func Default() (*tree.Node, error) {
	once.Do(func() {
		root, loadErr = io.ReadJSON(bytes.NewReader(raw))
	})
	return root, loadErr
}

// MustDefault is [Default] for callers that cannot continue without data.
func MustDefault() *tree.Node {
	r, err := Default()
	if err != nil {
		panic("dataset: embedded tree is invalid: " + err.Error())
	}
	return r
}

// Raw returns a copy of the embedded JSON document.
func Raw() []byte { return bytes.Clone(raw) }

// Hash identifies the embedded dataset in cache keys.
func Hash() string { return cache.Hash(raw) }
