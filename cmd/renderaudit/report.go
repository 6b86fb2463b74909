package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gnana997/renderaudit/pkg/audit"
	"github.com/gnana997/renderaudit/pkg/rules"
)

var severityIcon = map[rules.Severity]string{
	rules.SeverityError:   "!!",
	rules.SeverityWarning: "!~",
	rules.SeverityInfo:    "~~",
}

var categorySections = []struct {
	label    string
	category rules.Category
}{
	{"Context Issues", rules.CategoryContext},
	{"Inline Creations (re-render triggers)", rules.CategoryInline},
	{"Effect Anti-patterns", rules.CategoryEffect},
	{"Expensive Render Operations", rules.CategoryExpensive},
	{"Component Complexity", rules.CategoryComplexity},
}

// writeJSON emits the machine-readable report: a single object for one
// file, an array for many.
func writeJSON(w io.Writer, reports []audit.FileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(reports) == 1 {
		return enc.Encode(reports[0])
	}
	return enc.Encode(reports)
}

// printReports writes the human-readable report. Files without issues are
// skipped; a multi-file run gets aggregate totals at the end.
func printReports(w io.Writer, reports []audit.FileReport) {
	var printed int
	var totals rules.Summary

	for _, rep := range reports {
		if rep.ReadError == "" && rep.Summary.TotalIssues == 0 {
			continue
		}
		printFileReport(w, rep)
		printed++
		totals.Add(rep.Summary)
	}

	if printed == 0 {
		fmt.Fprintln(w, "\nNo React re-render issues found.")
		return
	}
	if printed > 1 {
		rule := strings.Repeat("=", 64)
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "  TOTAL: %d files with issues\n", printed)
		fmt.Fprintf(w, "  %d inline | %d ctx | %d effect | %d expensive | %d complexity\n",
			totals.InlineCreations, totals.ContextIssues, totals.EffectIssues,
			totals.ExpensiveOps, totals.Complexity)
		fmt.Fprintf(w, "  %d total issues\n", totals.TotalIssues)
		fmt.Fprintln(w, rule)
	}
}

func printFileReport(w io.Writer, rep audit.FileReport) {
	rule := strings.Repeat("=", 64)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "  React Re-render Audit: %s\n", rep.File)
	fmt.Fprintln(w, rule)

	if rep.ReadError != "" {
		fmt.Fprintf(w, "  Error: %s\n", rep.ReadError)
		return
	}

	s := rep.Summary
	var parts []string
	for _, p := range []struct {
		label string
		count int
	}{
		{"inline", s.InlineCreations},
		{"ctx", s.ContextIssues},
		{"effect", s.EffectIssues},
		{"expensive", s.ExpensiveOps},
		{"complexity", s.Complexity},
	} {
		if p.count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", p.label, p.count))
		}
	}
	fmt.Fprintf(w, "  %s = %d total\n", strings.Join(parts, " | "), s.TotalIssues)

	for _, section := range categorySections {
		var sectionIssues []rules.Finding
		for _, f := range rep.Issues {
			if rules.CategoryOf(f.Type) == section.category {
				sectionIssues = append(sectionIssues, f)
			}
		}
		if len(sectionIssues) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n  %s:\n", section.label)
		for _, f := range sectionIssues {
			fmt.Fprintf(w, "  %s L%d: %s\n", severityIcon[f.Severity], f.Line, f.Message)
			if f.Suggestion != "" {
				fmt.Fprintf(w, "     -> %s\n", f.Suggestion)
			}
		}
	}
	fmt.Fprintln(w)
}
