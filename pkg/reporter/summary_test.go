package reporter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basilforge/lispfmt/pkg/reporter"
	"github.com/basilforge/lispfmt/pkg/runner"
)

func TestSummaryReporter_Report_WithViolations(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	result := &runner.Result{
		Stats: runner.Stats{FilesProcessed: 4, FilesWithIssues: 2, ViolationsTotal: 6},
	}

	n, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Contains(t, buf.String(), "Summary")
	assert.Contains(t, buf.String(), "Violations remain")
}

func TestSummaryReporter_Report_Clean(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	result := &runner.Result{
		Stats: runner.Stats{FilesProcessed: 4},
	}

	n, err := r.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "All files within the configured line length")
}

func TestSummaryReporter_Report_NilResult(t *testing.T) {
	var buf bytes.Buffer
	r := reporter.NewSummaryReporter(reporter.Options{Writer: &buf, Color: "never"})

	n, err := r.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, buf.String(), "No files to check.")
}
