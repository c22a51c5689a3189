// Package tracefile stores captured sort traces as JSON or YAML documents,
// optionally wrapped in an LZ4 frame.
package tracefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pierrec/lz4/v4"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/heapsort/pkg/heapsort"
)

// Format is a trace document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// CompressedSuffix marks LZ4-compressed trace files.
const CompressedSuffix = ".lz4"

const filePerm = 0o644

// ErrUnknownFormat is returned for a format name other than json or yaml.
var ErrUnknownFormat = errors.New("unknown trace format")

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Trace is one recorded sort: the input, the result and every event.
type Trace struct {
	Length int              `json:"length" yaml:"length"`
	Seed   uint64           `json:"seed" yaml:"seed"`
	Input  []int            `json:"input" yaml:"input,flow"`
	Output []int            `json:"output" yaml:"output,flow"`
	Events []heapsort.Event `json:"events" yaml:"events"`
}

// Record sorts a copy of input with tracing on and returns the trace.
// input itself is left untouched.
func Record(input []int, seed uint64) (*Trace, error) {
	output := slices.Clone(input)

	rec := &heapsort.Recorder{}

	err := heapsort.Sort(output, heapsort.Options{Trace: true, Sink: rec})
	if err != nil {
		return nil, fmt.Errorf("record trace: %w", err)
	}

	return &Trace{
		Length: len(input),
		Seed:   seed,
		Input:  slices.Clone(input),
		Output: output,
		Events: rec.Events,
	}, nil
}

// Encode writes tr to w in the given format, LZ4-compressed when compress is set.
func Encode(w io.Writer, tr *Trace, format Format, compress bool) error {
	if !compress {
		return encode(w, tr, format)
	}

	zw := lz4.NewWriter(w)

	err := encode(zw, tr, format)
	if err != nil {
		return err
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return fmt.Errorf("close lz4 frame: %w", closeErr)
	}

	return nil
}

func encode(w io.Writer, tr *Trace, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		err := enc.Encode(tr)
		if err != nil {
			return fmt.Errorf("encode json trace: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		err := enc.Encode(tr)
		if err != nil {
			return fmt.Errorf("encode yaml trace: %w", err)
		}

		closeErr := enc.Close()
		if closeErr != nil {
			return fmt.Errorf("flush yaml trace: %w", closeErr)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return nil
}

// Decode reads a trace written by Encode.
func Decode(r io.Reader, format Format, compressed bool) (*Trace, error) {
	if compressed {
		r = lz4.NewReader(r)
	}

	var tr Trace

	switch format {
	case FormatJSON:
		err := json.NewDecoder(r).Decode(&tr)
		if err != nil {
			return nil, fmt.Errorf("decode json trace: %w", err)
		}
	case FormatYAML:
		err := yaml.NewDecoder(r).Decode(&tr)
		if err != nil {
			return nil, fmt.Errorf("decode yaml trace: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &tr, nil
}

// DetectFormat infers the format and compression from a file name,
// falling back to fallback when the extension says nothing.
func DetectFormat(path string, fallback Format) (Format, bool) {
	compressed := strings.HasSuffix(path, CompressedSuffix)
	base := strings.TrimSuffix(path, CompressedSuffix)

	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return FormatJSON, compressed
	case ".yaml", ".yml":
		return FormatYAML, compressed
	default:
		return fallback, compressed
	}
}

// WriteFile writes tr to path and returns the number of bytes on disk.
func WriteFile(path string, tr *Trace, fallback Format) (int64, error) {
	format, compressed := DetectFormat(path, fallback)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fmt.Errorf("create trace file: %w", err)
	}

	encErr := Encode(f, tr, format, compressed)

	closeErr := f.Close()
	if encErr != nil || closeErr != nil {
		return 0, errors.Join(encErr, closeErr)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat trace file: %w", err)
	}

	return info.Size(), nil
}

// ReadFile reads a trace written by WriteFile.
func ReadFile(path string, fallback Format) (*Trace, error) {
	format, compressed := DetectFormat(path, fallback)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	defer f.Close()

	return Decode(f, format, compressed)
}
