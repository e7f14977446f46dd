package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys. Keys must change whenever anything that affects
// the cached bytes changes.
type Keyer interface {
	// GraphKey identifies the graph built from a dataset for a search term.
	GraphKey(datasetHash, term string, opts GraphKeyOpts) string
	// ArtifactKey identifies a rendered artifact of a graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the build options that change graph output.
type GraphKeyOpts struct {
	ColumnWidth float64 `json:"column_width"`
	RowHeight   float64 `json:"row_height"`
	Separator   string  `json:"separator"`
}

// ArtifactKeyOpts are the render options that change artifact output.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Graphviz bool    `json:"graphviz"`
	Legend   bool    `json:"legend"`
	Popups   bool    `json:"popups"`
	PanZoom  bool    `json:"pan_zoom"`
	Pinned   bool    `json:"pinned"`
	Scale    float64 `json:"scale"`
	Banner   string  `json:"banner"`
	Camera   string  `json:"camera,omitempty"`
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements [Keyer].
func (DefaultKeyer) GraphKey(datasetHash, term string, opts GraphKeyOpts) string {
	return hashKey("graph", datasetHash, term, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// hashKey returns "prefix:" followed by the SHA-256 of the JSON encoding of
// parts. Struct fields encode in declaration order, so equal options always
// give equal keys.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	_ = json.NewEncoder(h).Encode(parts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
