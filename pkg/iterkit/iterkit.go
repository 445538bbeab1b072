// Package iterkit provides the iterator primitives groupkit and its source adapters are built on.
//
// # Summary
//
// An Iterator's goal is to decouple the origin of the data from the consumer who uses that data.
// Most commonly, iterators hide whether the data comes from a specific database, standard input, or elsewhere.
// iterkit supports two shapes of iterators:
// the range-over-func iter.Seq, and the pull based PullIter, which can also report errors and release resources.
//
// # Resources
//
// https://en.wikipedia.org/wiki/Iterator_pattern
// https://en.wikipedia.org/wiki/Pipeline_(software)
package iterkit

import (
	"iter"
	"slices"
)

// SingleUseSeq is an iter.Seq[T] that can only iterated once.
// After iteration, it is expected to yield no more values.
//
// Calling the iterator again after stopping early may continue the stream,
// but calling it again after the sequence is finished will yield no values at all.
type SingleUseSeq[T any] = iter.Seq[T]

// SingleUseSeq2 is an iter.Seq2[K, V] that can only iterated once.
// For more information on single use sequences, please read the documentation of SingleUseSeq.
type SingleUseSeq2[K, V any] = iter.Seq2[K, V]

// SeqE is an iterator that can tell if a currently returned value has an issue or not.
type SeqE[T any] = iter.Seq2[T, error]

type KV[K, V any] struct {
	K K
	V V
}

func Slice[T any](vs []T) iter.Seq[T] {
	return slices.Values(vs)
}

func Collect[T any](i iter.Seq[T]) []T {
	if i == nil {
		return nil
	}
	var vs = make([]T, 0)
	for v := range i {
		vs = append(vs, v)
	}
	return vs
}

func CollectKV[K, V any](i iter.Seq2[K, V]) []KV[K, V] {
	if i == nil {
		return nil
	}
	var kvs []KV[K, V]
	for k, v := range i {
		kvs = append(kvs, KV[K, V]{K: k, V: v})
	}
	return kvs
}

// CollectE collects the values of a SeqE, and returns the merged errors it came across.
func CollectE[T any](i SeqE[T]) ([]T, error) {
	if i == nil {
		return nil, nil
	}
	var (
		vs   []T
		errs []error
	)
	for v, err := range i {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vs = append(vs, v)
	}
	return vs, mergeErrs(errs)
}

// Head takes the first n element, similarly how the coreutils "head" app works.
//
// Head stops pulling from the source once it has n values,
// so the rest of a single use sequence stays available for the next consumer.
func Head[T any](i iter.Seq[T], n int) iter.Seq[T] {
	return func(yield func(T) bool) {
		if n <= 0 {
			return
		}
		var count int
		for v := range i {
			if !yield(v) {
				return
			}
			count++
			if n <= count {
				return
			}
		}
	}
}

// Count will iterate over and count the total iterations number
func Count[T any](i iter.Seq[T]) int {
	var total int
	for range i {
		total++
	}
	return total
}

// Empty iterator is used to represent nil result with Null object pattern
func Empty[T any]() iter.Seq[T] {
	return func(yield func(T) bool) {}
}

// IntRange returns an iterator that will range between the specified `begin` and the `end` int.
func IntRange(begin, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := begin; i <= end; i++ {
			if !yield(i) {
				return
			}
		}
	}
}
