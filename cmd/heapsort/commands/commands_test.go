package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapsort/cmd/heapsort/commands"
	"github.com/Sumatoshi-tech/heapsort/pkg/tracefile"
)

func newRoot() *cobra.Command {
	root := &cobra.Command{Use: "heapsort", SilenceUsage: true, SilenceErrors: true}
	commands.AddPersistentFlags(root)
	root.AddCommand(commands.NewSortCommand(), commands.NewTraceCommand(), commands.NewBenchCommand())

	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := newRoot()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func TestSortCommand_Flags(t *testing.T) {
	t.Parallel()

	cmd := commands.NewSortCommand()
	assert.Equal(t, "sort", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	length := cmd.Flags().Lookup("length")
	require.NotNil(t, length)
	assert.Equal(t, "15", length.DefValue)
	assert.Equal(t, "n", length.Shorthand)

	for _, name := range []string{"seed", "verbose", "high-contrast", "no-color", "summary"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestSortCommand_Default(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "sort", "--seed", "42", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "ARRAY IS HEAP-ORDERED: true\n")
	assert.Contains(t, stdout, "0 1 2 3 4 5 6 7 8 9 10 11 12 13 14\n")
	assert.Contains(t, stdout, "SORTED 15 values: ")
	assert.Contains(t, stdout, "isSorted: true\n")
	assert.NotContains(t, stdout, "sinking")
}

func TestSortCommand_Verbose(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "sort", "-n", "15", "--seed", "7", "--verbose", "--no-color")
	require.NoError(t, err)

	assert.Contains(t, stdout, "HEAPSORT")
	assert.Contains(t, stdout, "n=15 seed=7")
	assert.Contains(t, stdout, "sinking ")
	assert.Contains(t, stdout, "ARRAY IS HEAP-ORDERED: true")
	assert.Contains(t, stdout, "swapping 14 to 14\n")
	assert.Contains(t, stdout, "swapping 1 to 1\n")
	assert.Equal(t, 1, strings.Count(stdout, "ARRAY IS HEAP-ORDERED"))
	assert.Contains(t, stdout, "isSorted: true")
}

func TestSortCommand_Summary(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "sort", "-n", "1000", "--seed", "3", "--no-color", "--summary")
	require.NoError(t, err)

	assert.Contains(t, stdout, "SORTED 1000 values: ")
	assert.Contains(t, stdout, "Sift-downs")
	assert.Contains(t, stdout, "1,000")
}

func TestSortCommand_EmptyAndSingle(t *testing.T) {
	t.Parallel()

	for _, n := range []string{"0", "1"} {
		stdout, _, err := execute(t, "sort", "-n", n, "--seed", "1", "--no-color")
		require.NoError(t, err)
		assert.Contains(t, stdout, "isSorted: true")
	}
}

func TestSortCommand_RejectsNegativeLength(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "sort", "--length=-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort length must not be negative")
}

func TestSortCommand_ConfigFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "heapsort.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sort:\n  length: 6\n  seed: 11\n  no_color: true\n"), 0o600))

	stdout, _, err := execute(t, "--config", path, "sort")
	require.NoError(t, err)
	assert.Contains(t, stdout, "0 1 2 3 4 5\n")
	assert.Contains(t, stdout, "SORTED 6 values: ")

	stdout, _, err = execute(t, "--config", path, "sort", "-n", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "SORTED 3 values: ")
}

func TestTraceCommand_Stdout(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "trace", "-n", "9", "--seed", "5")
	require.NoError(t, err)

	tr, err := tracefile.Decode(strings.NewReader(stdout), tracefile.FormatJSON, false)
	require.NoError(t, err)

	assert.Equal(t, 9, tr.Length)
	assert.Equal(t, uint64(5), tr.Seed)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, tr.Output)
	assert.NotEmpty(t, tr.Events)
}

func TestTraceCommand_YAML(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "trace", "-n", "4", "--seed", "2", "--format", "yaml")
	require.NoError(t, err)

	assert.Contains(t, stdout, "length: 4")
	assert.Contains(t, stdout, "kind: heap_built")
}

func TestTraceCommand_CompressedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.yaml.lz4")

	_, stderr, err := execute(t, "trace", "-n", "20", "--seed", "8", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "wrote ")

	tr, err := tracefile.ReadFile(path, tracefile.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 20, tr.Length)
	assert.Len(t, tr.Output, 20)
}

func TestTraceCommand_BadFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "trace", "--format", "xml")
	require.Error(t, err)
}

func TestBenchCommand_WritesTablePlotAndMetrics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plotPath := filepath.Join(dir, "bench.html")
	metricsPath := filepath.Join(dir, "bench.prom")

	stdout, stderr, err := execute(t, "bench",
		"--min", "10", "--max", "30", "--step", "10", "--runs", "2",
		"--plot", plotPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "n·log2 n")
	assert.Contains(t, stdout, "30")
	assert.Contains(t, stderr, "bench: 3/3 lengths")

	page, err := os.ReadFile(plotPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), "Heapsort benchmark")

	metrics, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "heapsort_sorts_total")
}

func TestBenchCommand_InvalidRange(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "bench", "--min", "10", "--max", "5", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bench range")
}
