package audit

import (
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ReportCache memoizes per-file reports for long-lived callers (the watch
// loop and the MCP server). Entries are validated against file modtime on
// read, so a stale mapping is never served.
type ReportCache struct {
	cache *lru.Cache[string, cachedReport]
}

type cachedReport struct {
	modTime time.Time
	report  FileReport
}

// NewReportCache creates a cache holding up to size reports.
func NewReportCache(size int) (*ReportCache, error) {
	c, err := lru.New[string, cachedReport](size)
	if err != nil {
		return nil, err
	}
	return &ReportCache{cache: c}, nil
}

// Get returns the cached report for path if the file has not been modified
// since it was cached.
func (rc *ReportCache) Get(path string) (FileReport, bool) {
	entry, ok := rc.cache.Get(path)
	if !ok {
		return FileReport{}, false
	}
	info, err := os.Stat(path)
	if err != nil || !info.ModTime().Equal(entry.modTime) {
		rc.cache.Remove(path)
		return FileReport{}, false
	}
	return entry.report, true
}

// Put stores a report keyed by path and the file's current modtime.
// Reports for unreadable files are not cached.
func (rc *ReportCache) Put(path string, report FileReport) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	rc.cache.Add(path, cachedReport{modTime: info.ModTime(), report: report})
}

// Invalidate drops the entry for path.
func (rc *ReportCache) Invalidate(path string) {
	rc.cache.Remove(path)
}

// Len returns the number of cached reports.
func (rc *ReportCache) Len() int {
	return rc.cache.Len()
}
