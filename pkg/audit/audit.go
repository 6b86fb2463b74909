package audit

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gnana997/renderaudit/pkg/rules"
	"github.com/gnana997/renderaudit/pkg/scan"
	"github.com/gnana997/renderaudit/pkg/util"
)

// reactMarkers gate the scan: a file containing none of these is assumed
// not to be React code and produces an empty report. Cheap and coarse on
// purpose; a false negative here costs one unscanned utility file.
var reactMarkers = []string{"React", "useState", "useEffect", "jsx", "className"}

// Auditor runs the scan pipeline over files and directories.
type Auditor struct {
	engine *rules.Engine
	reader *util.SourceReader
	log    *slog.Logger
}

// NewAuditor creates an auditor with the given thresholds.
func NewAuditor(th rules.Thresholds, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Auditor{
		engine: rules.NewEngine(th),
		reader: util.NewSourceReader(),
		log:    logger,
	}
}

// Run audits a file or directory. An unresolvable root path is the single
// fatal error; everything below it is recovered per file or per construct.
func (a *Auditor) Run(root string, cfg Config) (*RunResult, error) {
	totalStart := time.Now()
	stats := Stats{}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path %s: %w", root, err)
	}

	var files []string
	if info.IsDir() {
		discoveryStart := time.Now()
		files, err = DiscoverFiles(root, cfg)
		if err != nil {
			return nil, fmt.Errorf("discovery failed: %w", err)
		}
		stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()
		a.log.Info("discovery complete", "files", len(files), "ms", stats.DiscoveryTimeMs)
	} else {
		files = []string{root}
	}
	stats.FilesDiscovered = len(files)

	scanStart := time.Now()
	reports := a.auditAll(files, cfg.Workers)
	stats.ScanTimeMs = time.Since(scanStart).Milliseconds()

	for _, rep := range reports {
		if rep.ReadError != "" {
			stats.FilesFailed++
			continue
		}
		stats.FilesScanned++
		stats.FindingsTotal += rep.Summary.TotalIssues
	}
	stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	a.log.Info("audit complete",
		"scanned", stats.FilesScanned,
		"failed", stats.FilesFailed,
		"findings", stats.FindingsTotal,
		"ms", stats.TotalTimeMs)

	return &RunResult{Reports: reports, Stats: stats}, nil
}

// auditAll scans files in parallel. Per-file errors become error-carrying
// reports; they never stop the pipeline.
func (a *Auditor) auditAll(files []string, workerOverride int) []FileReport {
	if len(files) == 0 {
		return nil
	}

	numWorkers := util.PoolSizeWithOverride(workerOverride)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	paths := make(chan string, numWorkers*2)
	results := make(chan FileReport, numWorkers)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				results <- a.AuditFile(path)
			}
		}()
	}

	go func() {
		for _, f := range files {
			paths <- f
		}
		close(paths)
		wg.Wait()
		close(results)
	}()

	reports := make([]FileReport, 0, len(files))
	for rep := range results {
		if rep.ReadError != "" {
			a.log.Warn("file skipped", "file", rep.File, "error", rep.ReadError)
		}
		reports = append(reports, rep)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].File < reports[j].File })
	return reports
}

// AuditFile reads and analyzes a single file. Read failures are reported
// as a file-level diagnostic, never as a run failure.
func (a *Auditor) AuditFile(path string) FileReport {
	src, err := a.reader.ReadSource(path)
	if err != nil {
		return FileReport{File: path, Issues: []rules.Finding{}, ReadError: err.Error()}
	}
	return a.AnalyzeSource(path, src)
}

// AnalyzeSource runs the full per-file pipeline on in-memory source text:
// component extraction, fact collection, and rule evaluation. Components
// are processed independently; findings are merged and re-sorted so the
// file-level ordering invariant (line, then category) holds across
// component boundaries.
func (a *Auditor) AnalyzeSource(path, src string) FileReport {
	report := FileReport{File: path, Issues: []rules.Finding{}}

	if !looksLikeReact(src) {
		report.Summary = rules.BuildSummary(nil)
		return report
	}

	for _, comp := range scan.FindComponents(src) {
		facts := rules.Facts{
			File:      path,
			Component: comp,
			Props:     scan.FindPropExpressions(src, comp),
			Hooks:     scan.FindHookCalls(src, comp),
			Expensive: scan.FindExpensiveCalls(src, comp),
		}
		report.Issues = append(report.Issues, a.engine.Evaluate(facts)...)
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		if report.Issues[i].Line != report.Issues[j].Line {
			return report.Issues[i].Line < report.Issues[j].Line
		}
		return rules.CategoryOf(report.Issues[i].Type) < rules.CategoryOf(report.Issues[j].Type)
	})

	report.Summary = rules.BuildSummary(report.Issues)
	return report
}

func looksLikeReact(src string) bool {
	for _, marker := range reactMarkers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}
