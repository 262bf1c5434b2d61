// Package nbest provides NBest, a bounded collection that keeps the N best
// elements pushed into it and discards the others.
//
// Rank is decided by an ordering function following the cmp.Compare
// convention, where a greater result means a better element:
// ordering(a, b) > 0 reports that a ranks above b. Passing cmp.Compare keeps
// the largest values; wrap it with Reverse to keep the smallest ones.
//
// An NBest is not safe for concurrent use. Collectors fed from several
// goroutines should each own a collector and be combined with Merge.
package nbest

import (
	"cmp"
	"container/heap"
	"iter"
	"slices"

	"github.com/pkg/errors"
)

// ErrConsumed is the panic value (wrapped) raised when a collector is used
// after one of its terminal operations.
var ErrConsumed = errors.New("nbest: collector already consumed")

// Upper bound on the storage allocated up front, large capacities grow on demand.
const preallocLimit = 4096

// NBest retains the best Cap() elements pushed into it.
type NBest[T any] struct {
	heap     worstHeap[T]
	capacity int
	consumed bool
}

// New returns an empty collector keeping at most capacity elements ranked by
// ordering. A capacity of zero is valid and yields a collector that never
// retains anything.
func New[T any](capacity int, ordering func(a, b T) int) *NBest[T] {
	if ordering == nil {
		panic("nbest: nil ordering function")
	}
	if capacity < 0 {
		panic("nbest: negative capacity")
	}

	return &NBest[T]{
		heap: worstHeap[T]{
			items: make([]T, 0, min(capacity, preallocLimit)),
			cmp:   ordering,
		},
		capacity: capacity,
	}
}

// NewOrdered returns a collector keeping the largest values under the natural
// order of T.
func NewOrdered[T cmp.Ordered](capacity int) *NBest[T] {
	return New(capacity, cmp.Compare[T])
}

// FromSeq returns a collector built from every element of seq.
func FromSeq[T any](capacity int, ordering func(a, b T) int, seq iter.Seq[T]) *NBest[T] {
	n := New(capacity, ordering)
	n.Extend(seq)
	return n
}

// FromSlice returns a collector built from the elements of items.
func FromSlice[T any](capacity int, ordering func(a, b T) int, items []T) *NBest[T] {
	return FromSeq(capacity, ordering, slices.Values(items))
}

// Reverse returns an ordering ranking elements opposite to ordering.
func Reverse[T any](ordering func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return ordering(b, a) }
}

// Push offers item to the collector. When the collector is full the item
// replaces the worst retained element if it ranks strictly above it, and is
// discarded otherwise.
func (n *NBest[T]) Push(item T) {
	n.check("Push")

	if n.heap.Len() < n.capacity {
		heap.Push(&n.heap, item)
		return
	}
	if n.capacity == 0 {
		return
	}

	if n.heap.cmp(item, n.heap.items[0]) > 0 {
		n.heap.items[0] = item
		heap.Fix(&n.heap, 0)
	}
}

// Extend pushes every element of seq.
func (n *NBest[T]) Extend(seq iter.Seq[T]) {
	for item := range seq {
		n.Push(item)
	}
}

// Merge pushes the retained elements of other into n and consumes other.
func (n *NBest[T]) Merge(other *NBest[T]) {
	if other == n {
		panic("nbest: merge of a collector into itself")
	}
	n.check("Merge")
	for _, item := range other.take("Merge") {
		n.Push(item)
	}
}

// Len returns the number of retained elements. It never exceeds Cap.
func (n *NBest[T]) Len() int {
	return n.heap.Len()
}

// Cap returns the maximum number of elements the collector retains.
func (n *NBest[T]) Cap() int {
	return n.capacity
}

// Consumed reports whether a terminal operation has been called.
func (n *NBest[T]) Consumed() bool {
	return n.consumed
}

// Worst returns the retained element that would be evicted next, or false if
// the collector is empty.
func (n *NBest[T]) Worst() (T, bool) {
	n.check("Worst")

	if n.heap.Len() == 0 {
		var zero T
		return zero, false
	}
	return n.heap.items[0], true
}

// Pop removes and returns the worst retained element, or false if the
// collector is empty.
func (n *NBest[T]) Pop() (T, bool) {
	n.check("Pop")

	if n.heap.Len() == 0 {
		var zero T
		return zero, false
	}
	return heap.Pop(&n.heap).(T), true
}

// All iterates over the retained elements in unspecified order without
// consuming the collector. The collector must not be modified during the
// iteration.
func (n *NBest[T]) All() iter.Seq[T] {
	n.check("All")

	return func(yield func(T) bool) {
		for _, item := range n.heap.items {
			if !yield(item) {
				return
			}
		}
	}
}

// Drain consumes the collector and iterates over the retained elements in
// unspecified order.
func (n *NBest[T]) Drain() iter.Seq[T] {
	return slices.Values(n.take("Drain"))
}

// IntoUnsorted consumes the collector and returns the retained elements in
// unspecified order.
func (n *NBest[T]) IntoUnsorted() []T {
	return n.take("IntoUnsorted")
}

// IntoSorted consumes the collector and returns the retained elements ordered
// from best to worst.
func (n *NBest[T]) IntoSorted() []T {
	ordering := n.heap.cmp
	items := n.take("IntoSorted")
	slices.SortFunc(items, Reverse(ordering))
	return items
}

func (n *NBest[T]) take(op string) []T {
	n.check(op)

	items := n.heap.items
	n.heap.items = nil
	n.consumed = true
	return items
}

func (n *NBest[T]) check(op string) {
	if n.consumed {
		panic(errors.Wrap(ErrConsumed, op))
	}
}
