package render

import (
	"cmp"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/heapsort/pkg/heap"
	"github.com/Sumatoshi-tech/heapsort/pkg/heapsort"
	"github.com/Sumatoshi-tech/heapsort/pkg/terminal"
)

// Printer is a heapsort.Sink that narrates a sort: where the sinking value
// sits after every descent step, which maximum is being extracted, and the
// tree after every completed sift-down with the cells touched by it
// highlighted.
//
// Events arrive synchronously, so when the next sift-down (or the end of a
// phase) is announced the previous one has finished; that is when its tree
// is drawn. Call Flush after the sort to draw the last one.
type Printer[T cmp.Ordered] struct {
	w        io.Writer
	seq      []T
	palette  terminal.Palette
	marks    Marks
	heapSize int
	pending  bool
	err      error

	// sinking is set while a sift-down has more steps to take from at.
	sinking bool
	at      int
}

// NewPrinter creates a Printer that reads seq and writes to w.
func NewPrinter[T cmp.Ordered](w io.Writer, seq []T, cfg terminal.Config) *Printer[T] {
	return &Printer[T]{
		w:        w,
		seq:      seq,
		palette:  cfg.Palette(),
		marks:    Marks{},
		heapSize: len(seq),
	}
}

// Emit implements heapsort.Sink.
func (p *Printer[T]) Emit(ev heapsort.Event) {
	switch ev.Kind {
	case heapsort.KindSwap:
		p.marks[ev.IndexA] = terminal.RoleSwap
		p.marks[ev.IndexB] = terminal.RoleSwap

		if p.sinking && ev.IndexA == p.at {
			p.step(ev.IndexB)
		}
	case heapsort.KindSinkStart:
		p.drawPending()
		p.marks[ev.Index] = terminal.RoleSink
		p.heapSize = ev.HeapSize
		p.pending = true
		p.step(ev.Index)
	case heapsort.KindHeapBuilt:
		p.drawPending()
		ordered := heap.IsHeapOrdered(p.seq, ev.HeapSize)
		p.printf("ARRAY IS HEAP-ORDERED: %s\n\n", p.palette.Verdict(ordered))
	case heapsort.KindExtractionStep:
		p.drawPending()
		p.heapSize = ev.HeapSize
		p.printf("swapping %v to %d\n", p.seq[ev.Remaining], ev.Remaining)
	}
}

// Flush draws the tree of the last sift-down, if any, and returns the first
// write error seen since the Printer was created.
func (p *Printer[T]) Flush() error {
	p.drawPending()

	return p.err
}

// step reports the sinking value at index and works out whether the
// sift-down will move it again. A sift stops once no child inside the heap
// is larger, so the following root exchange of an extraction is never
// mistaken for a descent step.
func (p *Printer[T]) step(index int) {
	p.printf("sinking %v at %d\n", p.seq[index], index)

	p.at = index
	p.sinking = false

	child := heap.Left(index)
	if child >= p.heapSize {
		return
	}

	if right := child + 1; right < p.heapSize && p.seq[child] < p.seq[right] {
		child = right
	}

	p.sinking = p.seq[index] < p.seq[child]
}

func (p *Printer[T]) drawPending() {
	if !p.pending {
		return
	}

	p.printf("%s\n\n", Tree(p.seq, Options{HeapSize: p.heapSize, Marks: p.marks, Palette: p.palette}))

	p.marks = Marks{}
	p.pending = false
}

func (p *Printer[T]) printf(format string, args ...any) {
	if p.err != nil {
		return
	}

	_, err := fmt.Fprintf(p.w, format, args...)
	if err != nil {
		p.err = fmt.Errorf("print trace: %w", err)
	}
}
