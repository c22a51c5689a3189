package heapsort_test

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapsort/pkg/heap"
	"github.com/Sumatoshi-tech/heapsort/pkg/heapsort"
)

func heapifySwaps(t *testing.T, input []int) int {
	t.Helper()

	swaps := 0
	engine := heap.New[int](heap.WithSwapHook(func(_, _ int) { swaps++ }))

	require.NoError(t, engine.BuildHeap(slices.Clone(input), len(input)))

	return swaps
}

func TestTrace_EventAccounting(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(11, 13))

	for _, n := range []int{2, 3, 8, 15, 16, 100} {
		input := rng.Perm(n)
		seq := slices.Clone(input)
		rec := &heapsort.Recorder{}

		require.NoError(t, heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: rec}))

		built := slices.IndexFunc(rec.Events, func(ev heapsort.Event) bool {
			return ev.Kind == heapsort.KindHeapBuilt
		})
		require.GreaterOrEqual(t, built, 0)
		assert.Equal(t, 1, rec.Count(heapsort.KindHeapBuilt))

		heapifyPhase := &heapsort.Recorder{Events: rec.Events[:built]}
		assert.Equal(t, heapifySwaps(t, input), heapifyPhase.Count(heapsort.KindSwap), "n=%d", n)
		assert.Equal(t, n/2, heapifyPhase.Count(heapsort.KindSinkStart), "n=%d", n)

		assert.Equal(t, n-1, rec.Count(heapsort.KindExtractionStep), "n=%d", n)
		assert.Equal(t, n-1, rec.Count(heapsort.KindSinkStart)-n/2, "n=%d", n)

		// Each extraction step is announced right after its root swap.
		rootSwaps := 0

		for i, ev := range rec.Events {
			if ev.Kind != heapsort.KindExtractionStep {
				continue
			}

			prev := rec.Events[i-1]
			require.Equal(t, heapsort.KindSwap, prev.Kind)
			assert.Equal(t, 0, prev.IndexA)
			assert.Equal(t, ev.Remaining, prev.IndexB)
			assert.Equal(t, ev.Remaining+1, prev.HeapSize)

			rootSwaps++
		}

		assert.Equal(t, n-1, rootSwaps)
	}
}

func TestTrace_SwapIndicesStayInsideHeap(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 8))
	seq := rng.Perm(64)
	rec := &heapsort.Recorder{}

	require.NoError(t, heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: rec}))

	for _, ev := range rec.Events {
		switch ev.Kind {
		case heapsort.KindSwap:
			assert.Less(t, ev.IndexA, ev.HeapSize)
			assert.Less(t, ev.IndexB, ev.HeapSize)
		case heapsort.KindSinkStart:
			assert.Less(t, ev.Index, ev.HeapSize)
		case heapsort.KindHeapBuilt, heapsort.KindExtractionStep:
		}
	}
}

func TestTrace_SinkSeesConsistentState(t *testing.T) {
	t.Parallel()

	seq := []int{4, 9, 0, 12, 3, 7, 1, 5, 11, 2, 8, 6, 10}

	var failures []string

	sink := heapsort.SinkFunc(func(ev heapsort.Event) {
		switch ev.Kind {
		case heapsort.KindHeapBuilt:
			if !heap.IsHeapOrdered(seq, ev.HeapSize) {
				failures = append(failures, "heap not ordered after build")
			}
		case heapsort.KindExtractionStep:
			// The tail past the heap region is final and ascending.
			if !heapsort.IsSorted(seq[ev.Remaining:]) {
				failures = append(failures, "tail not sorted")
			}

			for _, v := range seq[:ev.Remaining] {
				if v > seq[ev.Remaining] {
					failures = append(failures, "heap holds value above extracted maximum")
				}
			}
		case heapsort.KindSinkStart, heapsort.KindSwap:
		}
	})

	require.NoError(t, heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: sink}))
	assert.Empty(t, failures)
	assert.True(t, heapsort.IsConsecutive(seq))
}

func TestTrace_ExactSmallStream(t *testing.T) {
	t.Parallel()

	seq := []int{0, 1, 2}
	rec := &heapsort.Recorder{}

	require.NoError(t, heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: rec}))

	want := []heapsort.Event{
		{Kind: heapsort.KindSinkStart, Index: 0, HeapSize: 3},
		{Kind: heapsort.KindSwap, IndexA: 0, IndexB: 2, HeapSize: 3},
		{Kind: heapsort.KindHeapBuilt, HeapSize: 3},
		{Kind: heapsort.KindSwap, IndexA: 0, IndexB: 2, HeapSize: 3},
		{Kind: heapsort.KindExtractionStep, Remaining: 2, HeapSize: 2},
		{Kind: heapsort.KindSinkStart, Index: 0, HeapSize: 2},
		{Kind: heapsort.KindSwap, IndexA: 0, IndexB: 1, HeapSize: 2},
		{Kind: heapsort.KindSwap, IndexA: 0, IndexB: 1, HeapSize: 2},
		{Kind: heapsort.KindExtractionStep, Remaining: 1, HeapSize: 1},
		{Kind: heapsort.KindSinkStart, Index: 0, HeapSize: 1},
	}

	assert.Equal(t, want, rec.Events)
	assert.Equal(t, []int{0, 1, 2}, seq)
}

func TestCounterAndTee(t *testing.T) {
	t.Parallel()

	seq := heapsort.Ints(20)
	slices.Reverse(seq)

	counter := &heapsort.Counter{}
	rec := &heapsort.Recorder{}

	require.NoError(t, heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: heapsort.Tee(counter, nil, rec)}))

	assert.Equal(t, rec.Count(heapsort.KindSwap), counter.Swaps)
	assert.Equal(t, rec.Count(heapsort.KindSinkStart), counter.Sinks)
	assert.Equal(t, 19, counter.Extractions)

	rec.Reset()
	assert.Empty(t, rec.Events)
}

func TestKind_TextRoundTrip(t *testing.T) {
	t.Parallel()

	ev := heapsort.Event{Kind: heapsort.KindExtractionStep, Remaining: 4, HeapSize: 4}

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"extraction_step"`)

	var decoded heapsort.Event

	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ev, decoded)

	var kind heapsort.Kind

	require.ErrorIs(t, kind.UnmarshalText([]byte("bogus")), heapsort.ErrUnknownKind)
	assert.Equal(t, "kind(42)", heapsort.Kind(42).String())
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sink_start index=2 heap_size=7",
		heapsort.Event{Kind: heapsort.KindSinkStart, Index: 2, HeapSize: 7}.String())
	assert.Equal(t, "swap 0<->6 heap_size=7",
		heapsort.Event{Kind: heapsort.KindSwap, IndexA: 0, IndexB: 6, HeapSize: 7}.String())
	assert.Equal(t, "extraction_step remaining=6",
		heapsort.Event{Kind: heapsort.KindExtractionStep, Remaining: 6, HeapSize: 6}.String())
	assert.Equal(t, "heap_built heap_size=7",
		heapsort.Event{Kind: heapsort.KindHeapBuilt, HeapSize: 7}.String())
}
