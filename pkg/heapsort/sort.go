// Package heapsort sorts a slice in place with a binary max-heap and can
// report every step of the sort to a trace Sink.
//
// The sort runs in two phases. The heapify phase turns the whole slice into
// a max-heap. The extraction phase then repeatedly moves the root (the
// current maximum) to the end of the shrinking heap region and sifts the new
// root down. Once an element has been moved past the heap region it is final
// and never touched again.
package heapsort

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/heapsort/pkg/heap"
)

// Sentinel errors.
var (
	ErrMissingSink   = errors.New("tracing enabled without a sink")
	ErrIncomparable  = errors.New("elements have no total order")
	errEngineFailure = errors.New("heap engine failure")
)

// Options controls a single Sort call.
type Options struct {
	// Trace enables event emission.
	Trace bool

	// Sink receives events when Trace is set. Required in that case,
	// ignored otherwise.
	Sink Sink
}

// Sort orders seq ascending in place.
//
// Slices of length 0 or 1 return immediately without emitting events.
// When opts.Trace is set, events are delivered to opts.Sink in the exact
// order the underlying operations happen.
func Sort[T cmp.Ordered](seq []T, opts Options) error {
	if opts.Trace && opts.Sink == nil {
		return ErrMissingSink
	}

	err := Validate(seq)
	if err != nil {
		return err
	}

	n := len(seq)
	if n <= 1 {
		return nil
	}

	heapSize := n

	engine := heap.New[T]()

	emit := func(Event) {}

	if opts.Trace {
		emit = opts.Sink.Emit
		engine = heap.New[T](
			heap.WithSinkHook(func(index int) {
				emit(Event{Kind: KindSinkStart, Index: index, HeapSize: heapSize})
			}),
			heap.WithSwapHook(func(i, j int) {
				emit(Event{Kind: KindSwap, IndexA: i, IndexB: j, HeapSize: heapSize})
			}),
		)
	}

	err = engine.BuildHeap(seq, n)
	if err != nil {
		return fmt.Errorf("%w: build heap: %w", errEngineFailure, err)
	}

	emit(Event{Kind: KindHeapBuilt, HeapSize: heapSize})

	for heapSize > 1 {
		err = engine.Swap(seq, 0, heapSize-1)
		if err != nil {
			return fmt.Errorf("%w: extract: %w", errEngineFailure, err)
		}

		heapSize--

		emit(Event{Kind: KindExtractionStep, Remaining: heapSize, HeapSize: heapSize})

		err = engine.SiftDown(seq, heapSize, 0)
		if err != nil {
			return fmt.Errorf("%w: sift down: %w", errEngineFailure, err)
		}
	}

	return nil
}

// Validate returns ErrIncomparable if seq holds a value that is not equal to
// itself (a floating-point NaN), the only cmp.Ordered value without a place
// in a total order.
func Validate[T cmp.Ordered](seq []T) error {
	for i, v := range seq {
		if v != v { //nolint:gocritic // NaN check for any ordered type.
			return fmt.Errorf("%w: NaN at index %d", ErrIncomparable, i)
		}
	}

	return nil
}
