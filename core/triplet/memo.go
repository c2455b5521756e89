package triplet

import (
	"github.com/FocuswithJustin/configsub/core/cache"
)

type result struct {
	canonical string
	err       error
}

// Canonicalizer memoizes Canonicalize results, failures included, in an
// LRU cache. It is safe for concurrent use.
type Canonicalizer struct {
	results cache.Cache[string, result]
}

// NewCanonicalizer returns a Canonicalizer holding at most size results.
// A size of zero or less means unlimited.
func NewCanonicalizer(size int) *Canonicalizer {
	cfg := cache.DefaultConfig()
	cfg.MaxSize = size
	return &Canonicalizer{results: cache.NewLRUCache[string, result](cfg)}
}

// Canonicalize behaves exactly like the package-level Canonicalize.
func (c *Canonicalizer) Canonicalize(identifier string) (string, error) {
	r := cache.GetOrCompute(c.results, identifier, func(id string) result {
		canonical, err := Canonicalize(id)
		return result{canonical: canonical, err: err}
	})
	return r.canonical, r.err
}

// Stats reports cache hits, misses and evictions.
func (c *Canonicalizer) Stats() cache.Stats {
	return c.results.Stats()
}
