package nbest

// worstHeap keeps the worst retained element at index 0.
type worstHeap[T any] struct {
	items []T
	cmp   func(a, b T) int
}

func (h *worstHeap[T]) Len() int           { return len(h.items) }
func (h *worstHeap[T]) Less(i, j int) bool { return h.cmp(h.items[i], h.items[j]) < 0 }
func (h *worstHeap[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *worstHeap[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *worstHeap[T]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	var zero T
	old[n-1] = zero
	h.items = old[0 : n-1]
	return x
}
