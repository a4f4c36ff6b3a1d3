// Package audiostore implements the content-addressed audio artifact cache.
package audiostore

import "time"

// Cache is the interface for audio artifact storage. Artifacts are keyed
// by study id; a written key is never overwritten.
type Cache interface {
	// Exists reports whether an artifact is stored under key.
	Exists(key string) (bool, error)
	// Write stores data under key with the given content type. Writing to
	// an existing key is a no-op: the first artifact wins.
	Write(key string, data []byte, contentType string) error
	// Read returns the artifact bytes and content type for key.
	Read(key string) ([]byte, string, error)
	// SignedURL returns a time-limited capability URL granting read access
	// to the artifact under key.
	SignedURL(key string, ttl time.Duration) (string, error)
}
