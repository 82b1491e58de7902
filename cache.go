package cowgen

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Fingerprint identifies one (descriptor, config) generation input pair.
// Generation is deterministic, so equal fingerprints guarantee byte-equal
// output and a caller may skip regeneration on a fingerprint hit.
type Fingerprint string

// FingerprintOf computes the fingerprint of the given generation inputs.
// Inputs are serialized in order with msgpack and hashed together; any
// value msgpack can encode is acceptable.
func FingerprintOf(inputs ...any) (Fingerprint, error) {
	h := sha256.New()
	for _, in := range inputs {
		b, err := msgpack.Marshal(in)
		if err != nil {
			return "", err
		}
		h.Write(b)
	}
	return Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}

// FingerprintCache remembers the last fingerprint generated per entity.
// It is safe for concurrent use by parallel generation workers.
type FingerprintCache struct {
	mu      sync.Mutex
	entries map[string]Fingerprint
}

// NewFingerprintCache returns an empty cache.
func NewFingerprintCache() *FingerprintCache {
	return &FingerprintCache{entries: make(map[string]Fingerprint)}
}

// Hit reports whether fp matches the fingerprint recorded for name.
// An unseen name is a miss.
func (c *FingerprintCache) Hit(name string, fp Fingerprint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev, ok := c.entries[name]
	return ok && prev == fp
}

// Record stores fp as the current fingerprint of name. Callers record
// only after the outputs behind the fingerprint exist.
func (c *FingerprintCache) Record(name string, fp Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = fp
}

// Len returns the number of entities the cache has seen.
func (c *FingerprintCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
