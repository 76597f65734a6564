package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or schema
// versions can share one backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PartitionKey implements [Keyer].
func (k *ScopedKeyer) PartitionKey(graphHash string, opts PartitionKeyOpts) string {
	return k.prefix + k.inner.PartitionKey(graphHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(partitionHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(partitionHash, opts)
}
