package cache

// ScopedKeyer wraps a Keyer with a fixed prefix. A server hosting
// several projects can give each one its own cache namespace while
// sharing a single backend.
//
// Example usage:
//
//	// Per-project keys on a shared Redis.
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:atlas:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key
// produced by inner. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PairsKey generates a prefixed key for pair-set caching.
func (k *ScopedKeyer) PairsKey(graphHash string, opts PairsKeyOpts) string {
	return k.prefix + k.inner.PairsKey(graphHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
