package cli

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join("..", "..", "testdata", name)
}

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(&testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out, testLogger(t))
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestModelMode(t *testing.T) {
	out, err := runCommand(t, fixture(t, "270.txt"))
	require.NoError(t, err)

	var models []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 1)
	assert.Equal(t, "270", models[0]["transactionSetCode"])
	assert.Equal(t, true, models[0]["valid"])
	assert.Contains(t, models[0], "payload")
}

func TestSegmentMode(t *testing.T) {
	out, err := runCommand(t, "--segments", fixture(t, "270.txt"))
	require.NoError(t, err)

	var segments []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &segments))
	// ISA + GS + 17 + GE + IEA
	require.Len(t, segments, 21)
	assert.Equal(t, "ISA", segments[0]["ISA00"])
	assert.Equal(t, "270", segments[2]["ST01"])
}

func TestModeFlagsMutuallyExclusive(t *testing.T) {
	_, err := runCommand(
		t, "--segments", "--models", fixture(t, "270.txt"),
	)
	require.Error(t, err)
}

func TestInvalidInputExitsNonZero(t *testing.T) {
	out, err := runCommand(t, fixture(t, "270_segment_count.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")

	// the model output is still produced for inspection
	var models []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &models))
	require.Len(t, models, 1)
	assert.Equal(t, false, models[0]["valid"])
	assert.Contains(t, models[0], "diagnostics")
}

func TestMultipleFiles(t *testing.T) {
	out, err := runCommand(
		t, fixture(t, "270.txt"), fixture(t, "271.txt"),
	)
	require.NoError(t, err)

	var results []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, true, results[0]["valid"])
	assert.Equal(t, true, results[1]["valid"])
}

func TestMissingFile(t *testing.T) {
	_, err := runCommand(t, fixture(t, "does_not_exist.txt"))
	require.Error(t, err)
}

func TestPrettyOutput(t *testing.T) {
	out, err := runCommand(t, "--pretty", fixture(t, "270.txt"))
	require.NoError(t, err)
	assert.Contains(t, out, "\n  ")
}

func TestExcludeOutput(t *testing.T) {
	full, err := runCommand(t, fixture(t, "270.txt"))
	require.NoError(t, err)
	trimmed, err := runCommand(t, "--exclude", fixture(t, "270.txt"))
	require.NoError(t, err)
	assert.Less(t, len(trimmed), len(full))
}

func TestTransactionsCommand(t *testing.T) {
	out, err := runCommand(t, "transactions")
	require.NoError(t, err)
	assert.Contains(t, out, "270-005010X279A1")
	assert.Contains(t, out, "835-005010X221A1")
	assert.Contains(t, out, "837-005010X224A2")
}
