// Package track implements the change-tracking runtime consumed by
// generated mutation contracts. A tracker accumulates field-level writes
// against an entity under one of two strategies: copy-on-write cloning,
// which forks a private clone on the first effective change and never
// touches the original, and in-place modification.
//
// Trackers are for single-threaded, single-operation use: one update
// operation builds one tracker, applies a sequence of SetProperty calls,
// then materializes the result by reading Clone or Original.
package track

// Accessor is the per-field capability record generated code constructs
// once per entity: a getter and a setter over the entity struct. The
// runtime never reflects over entities; all field access flows through
// these pairs.
type Accessor[T, V any] struct {
	Get func(*T) V
	Set func(*T, V)
}

// Strategy selects how a ChangeTracker applies writes.
type Strategy int

const (
	// StrategyClone forks a single clone on the first effective change and
	// applies all writes to it. The original is never mutated and remains
	// valid for rollback.
	StrategyClone Strategy = iota
	// StrategyInPlace mutates the original directly on every write, with
	// no equality short-circuit and no clone.
	StrategyInPlace
)

// ChangeTracker accumulates property writes against one entity instance.
// Every SetProperty call returns the tracker, so a sequence of updates
// chains into one expression; the final entity is obtained by an explicit
// materialize step (Clone or Original), never by the tracker itself.
type ChangeTracker[T any] struct {
	strategy Strategy
	original *T
	clone    *T
	copier   func(*T) *T
}

// NewCloning returns a copy-on-write tracker over original. The clone, when
// one is forked, is a shallow copy; use WithCopier when the entity needs a
// deeper one.
func NewCloning[T any](original *T) *ChangeTracker[T] {
	return &ChangeTracker[T]{strategy: StrategyClone, original: original}
}

// NewModifying returns a tracker that mutates original in place.
func NewModifying[T any](original *T) *ChangeTracker[T] {
	return &ChangeTracker[T]{strategy: StrategyInPlace, original: original}
}

// WithCopier replaces the clone function. It must be called before the
// first write; a copier set after the tracker forked is ignored.
func (t *ChangeTracker[T]) WithCopier(fn func(*T) *T) *ChangeTracker[T] {
	t.copier = fn
	return t
}

// Strategy returns the tracker's write strategy.
func (t *ChangeTracker[T]) Strategy() Strategy { return t.strategy }

// Original returns the instance the tracker was built over. Under
// StrategyClone it is never mutated by the tracker.
func (t *ChangeTracker[T]) Original() *T { return t.original }

// Clone returns the forked clone, or nil while no effective change has
// been applied. Always nil under StrategyInPlace.
func (t *ChangeTracker[T]) Clone() *T { return t.clone }

// Forked reports whether a clone exists. Once forked, a tracker never
// returns to the unforked state.
func (t *ChangeTracker[T]) Forked() bool { return t.clone != nil }

// Target returns the instance carrying the accumulated changes: the clone
// when one exists, the original otherwise.
func (t *ChangeTracker[T]) Target() *T {
	if t.clone != nil {
		return t.clone
	}
	return t.original
}

func (t *ChangeTracker[T]) fork() {
	if t.clone != nil {
		return
	}
	if t.copier != nil {
		t.clone = t.copier(t.original)
		return
	}
	c := *t.original
	t.clone = &c
}

// SetProperty applies one property write through the field's accessor and
// returns the tracker for chaining.
//
// Under StrategyClone the write is a no-op when the candidate value equals
// the current value on the clone-or-original; the first differing write
// forks exactly one clone, reused by every later write in the chain. Under
// StrategyInPlace the write always lands on the original.
func SetProperty[T any, V comparable](t *ChangeTracker[T], acc Accessor[T, V], v V) *ChangeTracker[T] {
	if t.strategy == StrategyInPlace {
		acc.Set(t.original, v)
		return t
	}
	if acc.Get(t.Target()) == v {
		return t
	}
	t.fork()
	acc.Set(t.clone, v)
	return t
}
