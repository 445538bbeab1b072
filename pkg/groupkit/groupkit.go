// Package groupkit groups the consecutive elements of an ordered source that share the same key.
//
// # Summary
//
// GroupBy walks a source once, and yields one Group per maximal run of equal keys.
// A Group is not a copy of its elements, it reads from the same cursor as its GroupBy.
// The GroupBy and its current Group take turns in advancing that cursor:
// while a Group is being consumed, it owns the cursor,
// and once the GroupBy is asked for the next Group, the previous one is drained and invalidated.
//
//	for key, group := range groupkit.By(src, keyFunc).All() {
//		for v := range group.Values() {
//			// ...
//		}
//	}
//
// Only consecutive runs are grouped.
// To group by key over an arbitrary ordered source, sort it by the key first.
//
// GroupBy and Group are not safe for concurrent use.
package groupkit

import (
	"iter"

	"go.llib.dev/groupkit/pkg/errorkit"
	"go.llib.dev/groupkit/pkg/iterkit"
	"go.llib.dev/groupkit/pkg/logging"
	"go.llib.dev/groupkit/port/option"
)

const (
	ErrNilKeyFunc   errorkit.Error = "groupkit: nil key function"
	ErrNilEqualFunc errorkit.Error = "groupkit: nil key equality function"
)

// GroupBy yields the runs of a source as Groups.
//
// GroupBy consumes its source.
// When the iteration is abandoned before the source is exhausted, Close must be called to release it.
type GroupBy[T, K any] struct {
	cursor cursor[T]
	key    func(T) K
	equal  func(a, b K) bool
	config Config

	// lookahead is the element pulled to detect a key boundary,
	// held until the next Group claims it.
	lookahead    T
	lookaheadKey K
	hasLookahead bool

	current    K
	generation uint64
	active     bool
	closed     bool

	stats Stats
}

// Stats holds the counters of a GroupBy.
type Stats struct {
	// Groups is the number of Groups produced so far.
	Groups int
	// Pulled is the number of elements pulled from the source.
	Pulled int
	// Discarded is the number of elements skipped while draining abandoned Groups.
	Discarded int
}

// By groups an iter.Seq by a comparable key.
func By[T any, K comparable](src iter.Seq[T], key func(T) K, opts ...Option) *GroupBy[T, K] {
	return ByFunc(src, key, equal[K], opts...)
}

// ByFunc groups an iter.Seq by a key, using the equal function to compare keys.
// This is useful when the key is not comparable, like a []byte.
func ByFunc[T, K any](src iter.Seq[T], key func(T) K, equal func(a, b K) bool, opts ...Option) *GroupBy[T, K] {
	mustBeValid(key, equal)
	if src == nil {
		src = iterkit.Empty[T]()
	}
	next, stop := iter.Pull(src)
	return newGroupBy(cursor[T]{next: next, stop: func() error { stop(); return nil }}, key, equal, opts)
}

// FromPullIter groups a PullIter by a comparable key.
// The source's failure is reported by GroupBy.Err, and the source is closed by GroupBy.Close.
func FromPullIter[T any, K comparable](src iterkit.PullIter[T], key func(T) K, opts ...Option) *GroupBy[T, K] {
	return FromPullIterFunc(src, key, equal[K], opts...)
}

// FromPullIterFunc groups a PullIter by a key, using the equal function to compare keys.
func FromPullIterFunc[T, K any](src iterkit.PullIter[T], key func(T) K, equal func(a, b K) bool, opts ...Option) *GroupBy[T, K] {
	mustBeValid(key, equal)
	if src == nil {
		src = iterkit.FromSlice[T](nil)
	}
	return newGroupBy(cursor[T]{
		next: func() (T, bool) {
			if !src.Next() {
				var zero T
				return zero, false
			}
			return src.Value(), true
		},
		stop: src.Close,
		err:  src.Err,
	}, key, equal, opts)
}

func mustBeValid[T, K any](key func(T) K, equal func(a, b K) bool) {
	if key == nil {
		panic(ErrNilKeyFunc)
	}
	if equal == nil {
		panic(ErrNilEqualFunc)
	}
}

func newGroupBy[T, K any](c cursor[T], key func(T) K, equal func(a, b K) bool, opts []Option) *GroupBy[T, K] {
	return &GroupBy[T, K]{
		cursor: c,
		key:    key,
		equal:  equal,
		config: option.Use[Config](opts),
	}
}

func equal[K comparable](a, b K) bool { return a == b }

// Next returns the key and the Group of the next run.
//
// If the previous Group was not fully consumed, the rest of its run is discarded first,
// and the previous Group yields no more elements.
// When the source is exhausted, Next returns false, and keeps returning false.
func (gb *GroupBy[T, K]) Next() (K, *Group[T, K], bool) {
	var zero K
	if gb.closed {
		return zero, nil, false
	}
	if gb.active {
		gb.drain()
	}
	if !gb.hasLookahead {
		v, k, ok := gb.pull()
		if !ok {
			return zero, nil, false
		}
		gb.setLookahead(v, k)
	}
	gb.generation++
	gb.current = gb.lookaheadKey
	gb.active = true
	gb.stats.Groups++
	return gb.current, &Group[T, K]{
		parent:     gb,
		generation: gb.generation,
		key:        gb.current,
	}, true
}

// Groups returns a view on the GroupBy as an iter.Seq2.
//
// Groups doesn't consume the GroupBy:
// when the range loop is stopped early, the GroupBy can be used further,
// and a next Groups or Next call continues with the following run.
func (gb *GroupBy[T, K]) Groups() iter.Seq2[K, *Group[T, K]] {
	return func(yield func(K, *Group[T, K]) bool) {
		for {
			k, g, ok := gb.Next()
			if !ok {
				return
			}
			if !yield(k, g) {
				return
			}
		}
	}
}

// All ranges over the Groups like Groups does,
// but closes the GroupBy when the range loop is finished, either by exhaustion or by a break.
func (gb *GroupBy[T, K]) All() iterkit.SingleUseSeq2[K, *Group[T, K]] {
	return func(yield func(K, *Group[T, K]) bool) {
		defer gb.Close()
		for k, g := range gb.Groups() {
			if !yield(k, g) {
				return
			}
		}
	}
}

// Close releases the source.
// After Close, Next returns false, and the current Group yields no more elements.
func (gb *GroupBy[T, K]) Close() error {
	if gb.closed {
		return nil
	}
	gb.closed = true
	gb.active = false
	gb.hasLookahead = false
	return gb.cursor.close()
}

// Err returns the error that ended the source, if any.
func (gb *GroupBy[T, K]) Err() error {
	return gb.cursor.Err()
}

// Stats returns the counters of the GroupBy.
func (gb *GroupBy[T, K]) Stats() Stats {
	return gb.stats
}

// advance moves the cursor on behalf of the Group with the given generation.
func (gb *GroupBy[T, K]) advance(generation uint64) (T, bool) {
	var zero T
	if gb.closed || !gb.active || gb.generation != generation {
		return zero, false
	}
	if gb.hasLookahead {
		if !gb.equal(gb.current, gb.lookaheadKey) {
			gb.active = false
			return zero, false
		}
		v := gb.lookahead
		gb.clearLookahead()
		return v, true
	}
	v, k, ok := gb.pull()
	if !ok {
		gb.active = false
		return zero, false
	}
	if gb.equal(gb.current, k) {
		return v, true
	}
	gb.setLookahead(v, k)
	gb.active = false
	return zero, false
}

func (gb *GroupBy[T, K]) drain() {
	var n int
	for {
		if _, ok := gb.advance(gb.generation); !ok {
			break
		}
		n++
	}
	if n == 0 {
		return
	}
	gb.stats.Discarded += n
	gb.config.Logger.Debug(gb.config.Context, "groupkit: abandoned group drained",
		logging.Field("discarded", n),
		logging.Field("group", gb.stats.Groups))
}

func (gb *GroupBy[T, K]) pull() (T, K, bool) {
	var (
		zeroT T
		zeroK K
	)
	v, ok := gb.cursor.pull()
	if !ok {
		return zeroT, zeroK, false
	}
	gb.stats.Pulled++
	return v, gb.key(v), true
}

func (gb *GroupBy[T, K]) setLookahead(v T, k K) {
	gb.lookahead, gb.lookaheadKey, gb.hasLookahead = v, k, true
}

func (gb *GroupBy[T, K]) clearLookahead() {
	var (
		zeroT T
		zeroK K
	)
	gb.lookahead, gb.lookaheadKey, gb.hasLookahead = zeroT, zeroK, false
}

// Group is a run of consecutive source elements with an equal key.
//
// A Group is a handle on its GroupBy's cursor, it holds no elements of its own.
// It yields elements until its run ends, or until its GroupBy is advanced to the next Group.
type Group[T, K any] struct {
	parent     *GroupBy[T, K]
	generation uint64
	key        K
}

// Key returns the key shared by the elements of the Group.
func (g *Group[T, K]) Key() K { return g.key }

// Next returns the next element of the run.
// It returns false once the run ended, or when the Group has been invalidated.
func (g *Group[T, K]) Next() (T, bool) {
	return g.parent.advance(g.generation)
}

// Values returns the remaining elements of the run.
// Stopping the range loop early leaves the rest of the run to be discarded by the GroupBy.
func (g *Group[T, K]) Values() iterkit.SingleUseSeq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := g.Next()
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Collect consumes the GroupBy, and returns every run with its key.
func Collect[T, K any](gb *GroupBy[T, K]) []iterkit.KV[K, []T] {
	var runs []iterkit.KV[K, []T]
	for k, g := range gb.All() {
		runs = append(runs, iterkit.KV[K, []T]{K: k, V: iterkit.Collect(g.Values())})
	}
	return runs
}
