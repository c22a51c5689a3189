package heapsort

// Sink receives trace events. Emit is called synchronously from inside the
// sort; implementations must not mutate the sequence being sorted.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(ev Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Recorder is a Sink that keeps every event in emission order.
type Recorder struct {
	Events []Event
}

// Emit appends ev.
func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Count returns how many recorded events have the given kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0

	for _, ev := range r.Events {
		if ev.Kind == kind {
			n++
		}
	}

	return n
}

// Reset drops all recorded events, keeping the backing array.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// Counter is a Sink that only tallies events, for runs where keeping the
// whole stream would be wasteful.
type Counter struct {
	Sinks       int
	Swaps       int
	Extractions int
}

// Emit tallies ev.
func (c *Counter) Emit(ev Event) {
	switch ev.Kind {
	case KindSinkStart:
		c.Sinks++
	case KindSwap:
		c.Swaps++
	case KindExtractionStep:
		c.Extractions++
	case KindHeapBuilt:
	}
}

// Tee returns a Sink that forwards every event to each of sinks in order.
// Nil sinks are skipped.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(ev Event) {
		for _, s := range sinks {
			if s != nil {
				s.Emit(ev)
			}
		}
	})
}
