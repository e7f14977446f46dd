package cache

// ScopedKeyer prefixes every key from an inner Keyer. The server uses it to
// keep entries of different deployments apart in a shared Redis:
//
//	keyer := cache.NewScopedKeyer(nil, "descendants:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the [DefaultKeyer] if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey implements [Keyer].
func (k *ScopedKeyer) GraphKey(datasetHash, term string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(datasetHash, term, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
