package nbest

import (
	"cmp"
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ascending(a, b int) int { return cmp.Compare(b, a) }

func TestSmallestFour(t *testing.T) {
	numbers := []int{9, 2, 4, 6, 8, 1, 3, 5, 7, 0}
	n := FromSlice(4, ascending, numbers)

	assert.Equal(t, []int{0, 1, 2, 3}, n.IntoSorted())
}

func TestDuplicatesKept(t *testing.T) {
	n := FromSlice(3, cmp.Compare[int], []int{5, 1, 5, 1, 5})

	assert.Equal(t, []int{5, 5, 5}, n.IntoSorted())
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, FromSlice(2, cmp.Compare[int], nil).IntoSorted())
	assert.Empty(t, FromSlice(2, cmp.Compare[int], nil).IntoUnsorted())
}

func TestOrdered(t *testing.T) {
	n := NewOrdered[int](4)
	n.Extend(slices.Values([]int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9}))
	n.Push(1)
	n.Push(22)

	assert.Equal(t, []int{22, 9, 8, 7}, n.IntoSorted())
}

func TestReverse(t *testing.T) {
	n := FromSlice(4, Reverse(cmp.Compare[int]), []int{0, 2, 4, 6, 8, 1, 3, 5, 7, 9})
	n.Push(1)
	n.Push(22)

	assert.Equal(t, []int{0, 1, 1, 2}, n.IntoSorted())
}

func TestZeroCapacity(t *testing.T) {
	n := New(0, cmp.Compare[int])
	for i := 0; i < 100; i++ {
		n.Push(i)
	}
	assert.Equal(t, 0, n.Len())
	_, ok := n.Worst()
	assert.False(t, ok)
	assert.Empty(t, n.IntoSorted())

	n = FromSlice(0, cmp.Compare[int], []int{3, 2, 1})
	assert.Empty(t, n.IntoUnsorted())
}

func TestInvalidConstruction(t *testing.T) {
	assert.Panics(t, func() { New(-1, cmp.Compare[int]) })
	assert.Panics(t, func() { New[int](1, nil) })
}

func TestCapacityInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, capacity := range []int{1, 2, 7, 64} {
		n := New(capacity, cmp.Compare[int])
		for i := 1; i <= 200; i++ {
			n.Push(r.Intn(50))
			require.LessOrEqual(t, n.Len(), n.Cap())
			require.Equal(t, min(capacity, i), n.Len())
		}
	}
}

func TestTopN(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	input := make([]int, 500)
	for i := range input {
		input[i] = r.Intn(100)
	}

	for _, k := range []int{1, 5, 33, 500} {
		expected := slices.Clone(input)
		slices.Sort(expected)
		slices.Reverse(expected)
		expected = expected[:k]

		assert.Equal(t, expected, FromSlice(k, cmp.Compare[int], input).IntoSorted())
	}
}

func TestOrderIndependence(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	input := make([]int, 100)
	for i := range input {
		input[i] = r.Intn(20)
	}
	want := FromSlice(10, cmp.Compare[int], input).IntoUnsorted()
	slices.Sort(want)

	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(input)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := FromSlice(10, cmp.Compare[int], shuffled).IntoUnsorted()
		slices.Sort(got)
		assert.Equal(t, want, got)
	}
}

func TestUnsortedMatchesSorted(t *testing.T) {
	input := []int{4, 8, 15, 16, 23, 42, 8, 4, 42}

	unsorted := FromSlice(5, cmp.Compare[int], input).IntoUnsorted()
	sorted := FromSlice(5, cmp.Compare[int], input).IntoSorted()

	assert.ElementsMatch(t, sorted, unsorted)
}

type scored struct {
	name  string
	score int
}

func TestSortedWithTies(t *testing.T) {
	byScore := func(a, b scored) int { return cmp.Compare(a.score, b.score) }
	input := []scored{{"a", 1}, {"b", 3}, {"c", 3}, {"d", 2}, {"e", 3}, {"f", 0}, {"g", 2}}

	out := FromSlice(5, byScore, input).IntoSorted()
	require.Len(t, out, 5)
	for i := 0; i+1 < len(out); i++ {
		assert.GreaterOrEqual(t, byScore(out[i], out[i+1]), 0)
	}
	assert.Equal(t, 3, out[0].score)
	assert.Equal(t, 2, out[4].score)
}

func TestTieKeepsIncumbent(t *testing.T) {
	byScore := func(a, b scored) int { return cmp.Compare(a.score, b.score) }
	n := FromSlice(1, byScore, []scored{{"first", 1}, {"second", 1}})

	assert.Equal(t, []scored{{"first", 1}}, n.IntoSorted())
}

func TestWorstAndPop(t *testing.T) {
	n := FromSlice(3, cmp.Compare[int], []int{10, 30, 20, 40})

	worst, ok := n.Worst()
	require.True(t, ok)
	assert.Equal(t, 20, worst)

	var popped []int
	for {
		v, ok := n.Pop()
		if !ok {
			break
		}
		popped = append(popped, v)
	}
	assert.Equal(t, []int{20, 30, 40}, popped)
	assert.Equal(t, 0, n.Len())
}

func TestAll(t *testing.T) {
	n := FromSlice(3, cmp.Compare[int], []int{1, 2, 3, 4})

	assert.ElementsMatch(t, []int{2, 3, 4}, slices.Collect(n.All()))
	assert.False(t, n.Consumed())
	assert.Equal(t, []int{4, 3, 2}, n.IntoSorted())
}

func TestDrain(t *testing.T) {
	n := FromSlice(2, cmp.Compare[int], []int{1, 2, 3})

	assert.ElementsMatch(t, []int{2, 3}, slices.Collect(n.Drain()))
	assert.True(t, n.Consumed())
}

func TestMerge(t *testing.T) {
	even := New(3, cmp.Compare[int])
	odd := New(3, cmp.Compare[int])
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			even.Push(i)
		} else {
			odd.Push(i)
		}
	}

	even.Merge(odd)
	assert.True(t, odd.Consumed())
	assert.Equal(t, []int{19, 18, 17}, even.IntoSorted())

	n := New(1, cmp.Compare[int])
	assert.Panics(t, func() { n.Merge(n) })
}

func TestUseAfterConsume(t *testing.T) {
	terminal := map[string]func(n *NBest[int]){
		"IntoSorted":   func(n *NBest[int]) { n.IntoSorted() },
		"IntoUnsorted": func(n *NBest[int]) { n.IntoUnsorted() },
		"Drain":        func(n *NBest[int]) { n.Drain() },
	}

	for name, consume := range terminal {
		t.Run(name, func(t *testing.T) {
			n := FromSlice(2, cmp.Compare[int], []int{1, 2, 3})
			consume(n)
			require.True(t, n.Consumed())
			assert.Equal(t, 0, n.Len())
			assert.Equal(t, 2, n.Cap())

			for _, use := range []func(){
				func() { n.Push(4) },
				func() { n.Pop() },
				func() { n.Worst() },
				func() { n.All() },
				func() { n.IntoSorted() },
				func() { n.IntoUnsorted() },
				func() { n.Drain() },
				func() { n.Merge(New(1, cmp.Compare[int])) },
			} {
				assertConsumedPanic(t, use)
			}
		})
	}
}

func assertConsumedPanic(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value is not an error: %v", r)
		assert.True(t, errors.Is(err, ErrConsumed))
	}()
	f()
}
