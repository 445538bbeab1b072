package iterkit_test

import (
	"errors"
	"iter"
	"testing"

	"go.llib.dev/groupkit/pkg/iterkit"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"
)

var rnd = random.New(random.CryptoSeed{})

var _ iter.Seq[string] = iterkit.Slice([]string{"A", "B", "C"})

func ExampleHead() {
	itr := iterkit.IntRange(0, 10)
	vs := iterkit.Collect(iterkit.Head(itr, 3))
	_ = vs // []int{0, 1, 2}
}

func TestHead(t *testing.T) {
	s := testcase.NewSpec(t)

	s.Test("takes the first n element", func(t *testcase.T) {
		assert.Equal(t, []int{0, 1, 2}, iterkit.Collect(iterkit.Head(iterkit.IntRange(0, 10), 3)))
	})

	s.Test("shorter source", func(t *testcase.T) {
		assert.Equal(t, []int{0, 1}, iterkit.Collect(iterkit.Head(iterkit.IntRange(0, 1), 5)))
	})

	s.Test("zero or negative n", func(t *testcase.T) {
		assert.Empty(t, iterkit.Collect(iterkit.Head(iterkit.IntRange(0, 10), 0)))
		assert.Empty(t, iterkit.Collect(iterkit.Head(iterkit.IntRange(0, 10), -1)))
	})

	s.Test("does not pull past the n-th element", func(t *testcase.T) {
		var pulled int
		src := func(yield func(int) bool) {
			for i := 0; i < 10; i++ {
				pulled++
				if !yield(i) {
					return
				}
			}
		}
		_ = iterkit.Collect(iterkit.Head(src, 2))
		assert.Equal(t, 2, pulled)
	})
}

func TestCollect(t *testing.T) {
	assert.True(t, iterkit.Collect[int](nil) == nil)
	assert.Equal(t, []int{}, iterkit.Collect(iterkit.Empty[int]()))
	assert.Equal(t, []int{1, 2, 3}, iterkit.Collect(iterkit.Slice([]int{1, 2, 3})))
}

func TestCollectKV(t *testing.T) {
	var itr iter.Seq2[string, int] = func(yield func(string, int) bool) {
		if !yield("a", 1) {
			return
		}
		yield("b", 2)
	}
	assert.Equal(t, []iterkit.KV[string, int]{{K: "a", V: 1}, {K: "b", V: 2}}, iterkit.CollectKV(itr))
}

func TestCollectE(t *testing.T) {
	expErr := rnd.Error()
	var itr iterkit.SeqE[int] = func(yield func(int, error) bool) {
		if !yield(1, nil) {
			return
		}
		if !yield(0, expErr) {
			return
		}
		yield(2, nil)
	}
	vs, err := iterkit.CollectE(itr)
	assert.Equal(t, []int{1, 2}, vs)
	assert.True(t, errors.Is(err, expErr))
}

func TestCount(t *testing.T) {
	n := rnd.IntBetween(1, 42)
	assert.Equal(t, n+1, iterkit.Count(iterkit.IntRange(0, n)))
	assert.Equal(t, 0, iterkit.Count(iterkit.Empty[int]()))
}

func TestIntRange(t *testing.T) {
	assert.Equal(t, []int{3, 4, 5}, iterkit.Collect(iterkit.IntRange(3, 5)))
	assert.Empty(t, iterkit.Collect(iterkit.IntRange(5, 3)))
}
