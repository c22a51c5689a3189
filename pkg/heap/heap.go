// Package heap implements max-heap maintenance over a caller-owned slice.
//
// Every operation takes the slice plus an explicit heap size bound: only the
// prefix [0, heapSize) is subject to the max-heap invariant, and nothing at or
// beyond heapSize is ever read or written. Index arithmetic is 0-based:
// the children of node i live at 2i+1 and 2i+2.
package heap

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned when an index, length or heap size falls
// outside the slice it refers to.
var ErrInvalidBounds = errors.New("heap: index out of bounds")

// Parent returns the index of the parent of node i.
func Parent(i int) int { return (i - 1) / 2 }

// Left returns the index of the left child of node i.
func Left(i int) int { return 2*i + 1 }

// Right returns the index of the right child of node i.
func Right(i int) int { return Left(i) + 1 }

// Engine performs heap operations and reports every sift-down start and
// every element exchange to the hooks it was built with.
type Engine[T cmp.Ordered] struct {
	opts options
}

// New creates an Engine. With no options it is a plain, unobserved engine.
func New[T cmp.Ordered](opts ...Option) *Engine[T] {
	engine := &Engine[T]{}

	for _, opt := range opts {
		opt(&engine.opts)
	}

	return engine
}

// SiftDown restores the max-heap invariant for the subtree rooted at index,
// assuming both child subtrees already satisfy it. The node is exchanged with
// its larger child until no child exceeds it or it has no children left
// inside the heap. The right child is chosen only when strictly greater
// than the left one.
func (e *Engine[T]) SiftDown(seq []T, heapSize, index int) error {
	err := checkSize(seq, heapSize)
	if err != nil {
		return err
	}

	if index < 0 || index >= heapSize {
		return fmt.Errorf("%w: sift-down index %d outside heap of size %d", ErrInvalidBounds, index, heapSize)
	}

	e.siftDown(seq, heapSize, index)

	return nil
}

// BuildHeap establishes the max-heap invariant over seq[:length] by sifting
// down every internal node, from the last one back to the root. The
// descending order guarantees each sift-down sees heap-ordered children.
func (e *Engine[T]) BuildHeap(seq []T, length int) error {
	err := checkSize(seq, length)
	if err != nil {
		return err
	}

	for i := length/2 - 1; i >= 0; i-- {
		e.siftDown(seq, length, i)
	}

	return nil
}

// Swap exchanges seq[i] and seq[j].
func (e *Engine[T]) Swap(seq []T, i, j int) error {
	if i < 0 || i >= len(seq) || j < 0 || j >= len(seq) {
		return fmt.Errorf("%w: swap %d<->%d in slice of length %d", ErrInvalidBounds, i, j, len(seq))
	}

	e.swap(seq, i, j)

	return nil
}

func (e *Engine[T]) siftDown(seq []T, heapSize, index int) {
	if e.opts.onSink != nil {
		e.opts.onSink(index)
	}

	for {
		child := Left(index)
		if child >= heapSize || child < 0 {
			return
		}

		if right := child + 1; right < heapSize && seq[child] < seq[right] {
			child = right
		}

		if seq[index] >= seq[child] {
			return
		}

		e.swap(seq, index, child)
		index = child
	}
}

func (e *Engine[T]) swap(seq []T, i, j int) {
	seq[i], seq[j] = seq[j], seq[i]

	if e.opts.onSwap != nil {
		e.opts.onSwap(i, j)
	}
}

func checkSize[T any](seq []T, size int) error {
	if size < 0 || size > len(seq) {
		return fmt.Errorf("%w: heap size %d for slice of length %d", ErrInvalidBounds, size, len(seq))
	}

	return nil
}

// IsHeapOrdered reports whether seq[:length] satisfies the max-heap
// invariant: no node is smaller than any of its children. A length outside
// the slice is never heap-ordered.
func IsHeapOrdered[T cmp.Ordered](seq []T, length int) bool {
	if length < 0 || length > len(seq) {
		return false
	}

	for i := range length / 2 {
		if left := Left(i); seq[i] < seq[left] {
			return false
		}

		if right := Right(i); right < length && seq[i] < seq[right] {
			return false
		}
	}

	return true
}

// SiftDown runs Engine.SiftDown on an unobserved engine.
func SiftDown[T cmp.Ordered](seq []T, heapSize, index int) error {
	return New[T]().SiftDown(seq, heapSize, index)
}

// BuildHeap runs Engine.BuildHeap on an unobserved engine.
func BuildHeap[T cmp.Ordered](seq []T, length int) error {
	return New[T]().BuildHeap(seq, length)
}

// Swap runs Engine.Swap on an unobserved engine.
func Swap[T cmp.Ordered](seq []T, i, j int) error {
	return New[T]().Swap(seq, i, j)
}
