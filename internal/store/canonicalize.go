package store

import (
	"context"
)

// Resolver canonicalizes identifiers. *triplet.Canonicalizer satisfies it.
type Resolver interface {
	Canonicalize(identifier string) (string, error)
}

// Result is the outcome of canonicalizing one identifier.
type Result struct {
	Canonical string
	Err       error // canonicalization failure, always a *triplet.Error
	Cached    bool  // served from the store
}

// Canonicalize returns the stored result for identifier, or computes it with
// r and records it. s may be nil, in which case nothing is persisted. The
// returned error reports store failures only.
func Canonicalize(ctx context.Context, s *Store, r Resolver, identifier string) (Result, error) {
	if s != nil {
		e, ok, err := s.Lookup(ctx, identifier)
		if err != nil {
			return Result{}, err
		}
		if ok {
			canonical, cerr := e.Result()
			return Result{Canonical: canonical, Err: cerr, Cached: true}, nil
		}
	}

	canonical, cerr := r.Canonicalize(identifier)
	if s != nil {
		if err := s.Record(ctx, identifier, canonical, cerr); err != nil {
			return Result{}, err
		}
	}
	return Result{Canonical: canonical, Err: cerr}, nil
}
