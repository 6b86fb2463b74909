package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/renderaudit/pkg/audit"
	"github.com/gnana997/renderaudit/pkg/rules"
)

func sampleReport(file string) audit.FileReport {
	issues := []rules.Finding{
		{
			Type:       rules.TypeContextValue,
			Severity:   rules.SeverityError,
			Line:       10,
			File:       file,
			Prop:       "value",
			Message:    "'Ctx.Provider' value is created inline",
			Suggestion: "Wrap with useMemo",
		},
		{
			Type:       rules.TypeInlineFunction,
			Severity:   rules.SeverityWarning,
			Line:       14,
			File:       file,
			Prop:       "onClick",
			Message:    "Inline function in prop 'onClick'",
			Suggestion: "Extract to useCallback",
		},
	}
	return audit.FileReport{File: file, Issues: issues, Summary: rules.BuildSummary(issues)}
}

func TestWriteJSON_SingleFileObject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []audit.FileReport{sampleReport("App.jsx")}))

	var rep map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep), "one report serializes as an object")
	assert.Equal(t, "App.jsx", rep["file"])
}

func TestWriteJSON_MultiFileArray(t *testing.T) {
	var buf bytes.Buffer
	reports := []audit.FileReport{sampleReport("a.jsx"), sampleReport("b.jsx")}
	require.NoError(t, writeJSON(&buf, reports))

	var reps []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reps))
	assert.Len(t, reps, 2)
}

func TestPrintReports_CleanRun(t *testing.T) {
	var buf bytes.Buffer
	printReports(&buf, []audit.FileReport{
		{File: "ok.jsx", Summary: rules.BuildSummary(nil)},
	})
	assert.Contains(t, buf.String(), "No React re-render issues found.")
}

func TestPrintReports_SingleFile(t *testing.T) {
	var buf bytes.Buffer
	printReports(&buf, []audit.FileReport{sampleReport("App.jsx")})
	out := buf.String()

	assert.Contains(t, out, "React Re-render Audit: App.jsx")
	assert.Contains(t, out, "inline:1 | ctx:1 = 2 total", "zero-count categories are omitted")
	assert.Contains(t, out, "Context Issues:")
	assert.Contains(t, out, "!! L10:")
	assert.Contains(t, out, "!~ L14:")
	assert.Contains(t, out, "-> Wrap with useMemo")
	assert.NotContains(t, out, "TOTAL", "single-file runs have no aggregate block")
}

func TestPrintReports_MultiFileTotals(t *testing.T) {
	var buf bytes.Buffer
	printReports(&buf, []audit.FileReport{
		sampleReport("a.jsx"),
		{File: "clean.jsx", Summary: rules.BuildSummary(nil)},
		sampleReport("b.jsx"),
	})
	out := buf.String()

	assert.Contains(t, out, "TOTAL: 2 files with issues")
	assert.Contains(t, out, "4 total issues")
	assert.NotContains(t, out, "clean.jsx", "clean files are skipped")
}

func TestPrintReports_ReadError(t *testing.T) {
	var buf bytes.Buffer
	printReports(&buf, []audit.FileReport{
		{File: "broken.jsx", ReadError: "permission denied"},
	})
	out := buf.String()
	assert.Contains(t, out, "broken.jsx")
	assert.Contains(t, out, "Error: permission denied")
}
