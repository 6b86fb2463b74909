// Package audit orchestrates the per-file scan pipeline: file discovery,
// parallel scanning, rule evaluation, and result aggregation. Files are
// scanned independently with no shared mutable state, so multi-file runs
// fan out across a worker pool.
package audit

import (
	"github.com/gnana997/renderaudit/pkg/rules"
)

// Config configures an audit run.
type Config struct {
	// Include glob patterns for file matching.
	Include []string
	// Exclude glob patterns.
	Exclude []string
	// Thresholds for the complexity rules.
	Thresholds rules.Thresholds
	// Workers overrides the pool size when positive.
	Workers int
}

// DefaultConfig returns the default audit configuration. The exclusions
// cover build output, dependencies, and test/story files that inflate
// finding counts without being render-path code.
func DefaultConfig() Config {
	return Config{
		Include: []string{
			"**/*.js",
			"**/*.jsx",
			"**/*.ts",
			"**/*.tsx",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			".next/**",
			"out/**",
			"coverage/**",
			"vendor/**",
			".turbo/**",
			".cache/**",
			".expo/**",
			"**/__tests__/**",
			"**/__mocks__/**",
			"**/__snapshots__/**",
			"**/*.test.*",
			"**/*.spec.*",
			"**/*.stories.*",
			"**/*.story.*",
		},
		Thresholds: rules.DefaultThresholds(),
	}
}

// FileReport is the audit result for one file.
type FileReport struct {
	File      string          `json:"file"`
	Issues    []rules.Finding `json:"issues"`
	Summary   rules.Summary   `json:"summary"`
	ReadError string          `json:"error,omitempty"`
}

// Stats tracks run performance, phase by phase.
type Stats struct {
	FilesDiscovered int
	FilesScanned    int
	FilesFailed     int
	FindingsTotal   int
	DiscoveryTimeMs int64
	ScanTimeMs      int64
	TotalTimeMs     int64
}

// RunResult aggregates per-file reports for one run.
type RunResult struct {
	Reports []FileReport
	Stats   Stats
}

// HasErrors reports whether any error-severity finding exists across all
// reports. This drives the CLI exit status.
func (r *RunResult) HasErrors() bool {
	for _, rep := range r.Reports {
		for _, f := range rep.Issues {
			if f.Severity == rules.SeverityError {
				return true
			}
		}
	}
	return false
}

// Totals sums all per-file summaries.
func (r *RunResult) Totals() rules.Summary {
	var total rules.Summary
	for _, rep := range r.Reports {
		total.Add(rep.Summary)
	}
	return total
}

// FilterInfo returns a copy of rep without info-severity findings, with the
// summary rebuilt to match. The engine always computes info findings;
// dropping them is a presentation concern, applied here at the reporting
// boundary.
func FilterInfo(rep FileReport) FileReport {
	filtered := make([]rules.Finding, 0, len(rep.Issues))
	for _, f := range rep.Issues {
		if f.Severity != rules.SeverityInfo {
			filtered = append(filtered, f)
		}
	}
	rep.Issues = filtered
	rep.Summary = rules.BuildSummary(filtered)
	return rep
}
