package reporter_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basilforge/lispfmt/pkg/engine"
	"github.com/basilforge/lispfmt/pkg/reporter"
	"github.com/basilforge/lispfmt/pkg/runner"
)

func TestTextReporter_Report_GroupedViolations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.clj")
	require.NoError(t, os.WriteFile(path, []byte("(defn f [] 1)\n(defn g [] 2)\n"), 0o644))

	var buf bytes.Buffer
	r := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
	})

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: path, Violations: []engine.Violation{{Line: 1, Length: 90}}},
		},
		Stats: runner.Stats{FilesProcessed: 1, FilesWithIssues: 1, ViolationsTotal: 1},
	}

	n, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	assert.Contains(t, out, path)
	assert.Contains(t, out, "line too long")
	assert.Contains(t, out, "(defn f [] 1)")
}

func TestTextReporter_Report_FileError(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: false})

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "missing.clj", Error: assertError("boom")},
		},
		Stats: runner.Stats{FilesErrored: 1},
	}

	n, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "missing.clj")
	assert.Contains(t, buf.String(), "boom")
}

func TestTextReporter_Report_FlatMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.clj")
	require.NoError(t, os.WriteFile(path, []byte("(a)\n(b)\n"), 0o644))

	var buf bytes.Buffer
	r := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: false,
		GroupByFile: false,
	})

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: path, Violations: []engine.Violation{{Line: 2, Length: 90}}},
		},
	}

	n, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

type stringError string

func (e stringError) Error() string { return string(e) }

func assertError(msg string) error { return stringError(msg) }
