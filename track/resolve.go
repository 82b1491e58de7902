package track

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/cowgen"
)

// Step resolves one association field. Steps are built by generated code
// through ResolveStep and executed together by ResolveAll.
type Step func(ctx context.Context) error

// ResolveStep builds the resolution step for one association pair: a nil
// key assigns a nil navigation value without a lookup, otherwise the
// related entity is fetched by key and assigned. A lookup failure is fatal
// for the whole resolution procedure.
func ResolveStep[T any, K comparable, E any](entity *T, label string, key *K, lookup cowgen.Lookup[K, E], assign func(*T, *E)) Step {
	return func(ctx context.Context) error {
		if key == nil {
			assign(entity, nil)
			return nil
		}
		related, err := lookup(ctx, *key)
		if err != nil {
			return &LookupError{Label: label, Key: *key, Err: err}
		}
		assign(entity, related)
		return nil
	}
}

// ResolveAll runs the given steps and waits for all of them. Steps run
// concurrently; ordering between association fields is not observable. Any
// step error fails the procedure as a whole; a partially resolved entity
// is never a successful outcome.
func ResolveAll(ctx context.Context, steps ...Step) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range steps {
		s := s
		g.Go(func() error { return s(ctx) })
	}
	return g.Wait()
}

// VerifyKey checks that the key value stored on a source instance agrees
// with the key of the association instance supplied by the caller. The
// copy-changes procedure calls it before applying each association; a
// mismatch is a programmer error and aborts the operation.
func VerifyKey[K comparable](entity, field string, stored, supplied K) error {
	if stored != supplied {
		return &ConsistencyError{
			Entity:   entity,
			Field:    field,
			Stored:   stored,
			Supplied: supplied,
		}
	}
	return nil
}

// VerifyKeyRef is VerifyKey for a nullable stored key. A nil stored key
// disagrees with any supplied association instance: the association cannot
// have been resolved from a key the source never held.
func VerifyKeyRef[K comparable](entity, field string, stored *K, supplied K) error {
	if stored == nil {
		return &ConsistencyError{
			Entity:   entity,
			Field:    field,
			Stored:   nil,
			Supplied: supplied,
		}
	}
	return VerifyKey(entity, field, *stored, supplied)
}

// ConsistencyError reports a disagreement between a source instance's
// stored foreign-key value and the caller-supplied association instance.
// It is not retried.
type ConsistencyError struct {
	Entity   string
	Field    string
	Stored   any
	Supplied any
}

// Error returns the error string.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("track: %s.%s: stored key %v disagrees with supplied association key %v",
		e.Entity, e.Field, e.Stored, e.Supplied)
}

// LookupError reports a failed association lookup.
type LookupError struct {
	Label string
	Key   any
	Err   error
}

// Error returns the error string.
func (e *LookupError) Error() string {
	return fmt.Sprintf("track: resolve %s (key=%v): %v", e.Label, e.Key, e.Err)
}

// Unwrap returns the underlying lookup failure.
func (e *LookupError) Unwrap() error { return e.Err }
