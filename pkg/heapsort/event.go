package heapsort

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when decoding an event kind name that does not exist.
var ErrUnknownKind = errors.New("unknown event kind")

// Kind identifies what a trace Event describes.
type Kind int

// Event kinds, in the order they first appear during a sort.
const (
	KindSinkStart Kind = iota + 1
	KindSwap
	KindHeapBuilt
	KindExtractionStep
)

var kindNames = map[Kind]string{
	KindSinkStart:      "sink_start",
	KindSwap:           "swap",
	KindHeapBuilt:      "heap_built",
	KindExtractionStep: "extraction_step",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return name
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind

			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrUnknownKind, text)
}

// Event is a single step of a sort, emitted synchronously and in order.
// HeapSize is the size of the heap region at the moment of emission.
//
// Which fields are meaningful depends on Kind:
//   - KindSinkStart: Index is the node being sunk.
//   - KindSwap: IndexA and IndexB are the exchanged positions, both < HeapSize.
//   - KindHeapBuilt: only HeapSize.
//   - KindExtractionStep: Remaining is the heap size after the maximum was
//     moved to position Remaining.
type Event struct {
	Kind      Kind `json:"kind" yaml:"kind"`
	Index     int  `json:"index" yaml:"index"`
	IndexA    int  `json:"index_a" yaml:"index_a"`
	IndexB    int  `json:"index_b" yaml:"index_b"`
	HeapSize  int  `json:"heap_size" yaml:"heap_size"`
	Remaining int  `json:"remaining" yaml:"remaining"`
}

// String formats the event for log lines.
func (e Event) String() string {
	switch e.Kind {
	case KindSinkStart:
		return fmt.Sprintf("%s index=%d heap_size=%d", e.Kind, e.Index, e.HeapSize)
	case KindSwap:
		return fmt.Sprintf("%s %d<->%d heap_size=%d", e.Kind, e.IndexA, e.IndexB, e.HeapSize)
	case KindExtractionStep:
		return fmt.Sprintf("%s remaining=%d", e.Kind, e.Remaining)
	default:
		return fmt.Sprintf("%s heap_size=%d", e.Kind, e.HeapSize)
	}
}
