// Package cache stores simplification results and rendered artifacts.
//
// A [Cache] is a plain byte store with TTLs. The pipeline derives keys with
// a [Keyer] from content hashes, so an entry never needs invalidating: a
// changed graph or option produces a different key.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a key-value byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default TTLs per entry kind.
const (
	TTLPartition = 30 * 24 * time.Hour
	TTLArtifact  = 7 * 24 * time.Hour
)

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// PartitionKey identifies the simplification result for a graph.
	PartitionKey(graphHash string, opts PartitionKeyOpts) string

	// ArtifactKey identifies a rendered view of a partition.
	ArtifactKey(partitionHash string, opts ArtifactKeyOpts) string
}

// PartitionKeyOpts holds the options that change a simplification result.
type PartitionKeyOpts struct {
	Colors int `json:"colors"`
}

// ArtifactKeyOpts holds the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer produces keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PartitionKey implements [Keyer].
func (DefaultKeyer) PartitionKey(graphHash string, opts PartitionKeyOpts) string {
	return hashKey("partition", graphHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(partitionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", partitionHash, opts)
}
