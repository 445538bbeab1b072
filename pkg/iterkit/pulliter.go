package iterkit

import (
	"io"
	"iter"

	"go.llib.dev/groupkit/pkg/errorkit"
)

// PullIter define a separate object that encapsulates accessing and traversing an aggregate object.
// Clients use an iterator to access and traverse an aggregate without knowing its representation (data structures).
// Interface design inspirited by https://golang.org/pkg/encoding/json/#Decoder
type PullIter[V any] interface {
	// Next will ensure that Value returns the next item when executed.
	// If the next value is not retrievable, Next should return false and ensure Err() will return the error cause.
	Next() bool
	// Value returns the current value in the iterator.
	// The action should be repeatable without side effects.
	Value() V
	// Closer is required to make it able to cancel iterators where resources are being used behind the scene
	// for all other cases where the underling io is handled on a higher level, it should simply return nil
	io.Closer
	// Err return the error cause.
	Err() error
}

// FromPullIter turns a PullIter into a single use SeqE.
// The PullIter is closed when the iteration ends.
func FromPullIter[T any](itr PullIter[T]) SeqE[T] {
	return func(yield func(T, error) bool) {
		defer itr.Close()
		for itr.Next() {
			if !yield(itr.Value(), nil) {
				return
			}
		}
		var zero T
		if err := itr.Err(); err != nil {
			if !yield(zero, err) {
				return
			}
		}
		if err := itr.Close(); err != nil {
			yield(zero, err)
		}
	}
}

// ToPullIter turns an iter.Seq into a PullIter.
// Close must be called when the iteration is abandoned before it is exhausted.
func ToPullIter[T any](i iter.Seq[T]) PullIter[T] {
	if i == nil {
		i = Empty[T]()
	}
	next, stop := iter.Pull(i)
	return &seqPullIter[T]{next: next, stop: stop}
}

type seqPullIter[T any] struct {
	next func() (T, bool)
	stop func()
	val  T
	done bool
}

func (i *seqPullIter[T]) Next() bool {
	if i.done {
		return false
	}
	v, ok := i.next()
	if !ok {
		i.done = true
		i.stop()
		return false
	}
	i.val = v
	return true
}

func (i *seqPullIter[T]) Value() T { return i.val }

func (i *seqPullIter[T]) Err() error { return nil }

func (i *seqPullIter[T]) Close() error {
	i.done = true
	i.stop()
	return nil
}

func CollectPullIter[T any](itr PullIter[T]) (_ []T, rErr error) {
	if itr == nil {
		return nil, nil
	}
	defer errorkit.Finish(&rErr, itr.Close)
	var vs []T
	for itr.Next() {
		vs = append(vs, itr.Value())
	}
	return vs, itr.Err()
}

func mergeErrs(errs []error) error { return errorkit.Merge(errs...) }

///////////////////////////////////////////////////// Slice /////////////////////////////////////////////////////

// FromSlice returns a PullIter that walks through the slice.
func FromSlice[T any](slice []T) *SliceIter[T] {
	return &SliceIter[T]{Slice: slice}
}

type SliceIter[T any] struct {
	Slice []T

	closed bool
	index  int
	value  T
}

func (i *SliceIter[T]) Close() error {
	i.closed = true
	return nil
}

func (i *SliceIter[T]) Err() error {
	return nil
}

func (i *SliceIter[T]) Next() bool {
	if i.closed {
		return false
	}
	if len(i.Slice) <= i.index {
		return false
	}
	i.value = i.Slice[i.index]
	i.index++
	return true
}

func (i *SliceIter[T]) Value() T {
	return i.value
}

///////////////////////////////////////////////////// Error /////////////////////////////////////////////////////

// Error returns a PullIter that only can do is returning an Err and never have next element
func Error[T any](err error) *ErrorIter[T] {
	return &ErrorIter[T]{err: err}
}

type ErrorIter[T any] struct {
	err    error
	closed bool
}

func (i *ErrorIter[T]) Close() error {
	i.closed = true
	return nil
}

func (i *ErrorIter[T]) Next() bool {
	return false
}

func (i *ErrorIter[T]) Err() error {
	return i.err
}

func (i *ErrorIter[T]) Value() T {
	var v T
	return v
}
