// Package queue provides a small priority queue on top of
// container/heap. The partitioner uses it to always split the brick
// with the most primitives next.
package queue

import "container/heap"

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue[int])(nil)

// PriorityQueueItem represents an item in the priority queue.
type PriorityQueueItem[T any] struct {
	Value    T
	Priority float64 // Priority orders the queue.
	Index    int     // Index is maintained by the heap.Interface methods.
}

// PriorityQueue implements heap.Interface and holds PriorityQueueItems.
type PriorityQueue[T any] struct {
	Descending bool // Descending makes the highest priority pop first.
	Items      []*PriorityQueueItem[T]
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[T]) Len() int { return len(pq.Items) }

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue[T]) Less(i, j int) bool {
	if !pq.Descending {
		return pq.Items[i].Priority < pq.Items[j].Priority
	}
	return pq.Items[i].Priority > pq.Items[j].Priority
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue[T]) Swap(i, j int) {
	pq.Items[i], pq.Items[j] = pq.Items[j], pq.Items[i]
	pq.Items[i].Index, pq.Items[j].Index = i, j
}

// Push adds x to the priority queue.
func (pq *PriorityQueue[T]) Push(x any) {
	item, _ := x.(*PriorityQueueItem[T])
	item.Index = len(pq.Items)
	pq.Items = append(pq.Items, item)
}

// Pop removes and returns the top element from the priority queue.
func (pq *PriorityQueue[T]) Pop() any {
	if len(pq.Items) == 0 {
		return nil
	}

	old := pq.Items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // Avoid memory leak
	item.Index = -1 // For safety
	pq.Items = old[:n-1]

	return item
}

// Top returns the top element of the priority queue.
func (pq *PriorityQueue[T]) Top() *PriorityQueueItem[T] {
	return pq.Items[0]
}
