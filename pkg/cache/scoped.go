package cache

// ScopedKeyer prefixes every key of an inner [Keyer], so several deployments
// or library versions can share one Redis or Mongo instance.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "chartkit:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SceneKey returns the prefixed scene key.
func (k *ScopedKeyer) SceneKey(datasetHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(datasetHash, opts)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}

// DocKey returns the prefixed doc key.
func (k *ScopedKeyer) DocKey(componentID string, withPreview bool) string {
	return k.prefix + k.inner.DocKey(componentID, withPreview)
}
