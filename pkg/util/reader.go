package util

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// SourceReader reads file contents for scanning through memory-mapped I/O
// where possible. The auditor slices one immutable copy of each file's
// text many times (component bodies, prop value spans, hook callback
// spans), so mapping beats a buffered read on large component files.
// Empty files and filesystems that refuse mapping fall back to os.ReadFile.
type SourceReader struct{}

// NewSourceReader creates a SourceReader.
func NewSourceReader() *SourceReader {
	return &SourceReader{}
}

// ReadSource returns the full contents of path as a string. The returned
// string is an independent copy; the underlying mapping is released before
// returning, so callers may hold the string for the life of the scan.
func (r *SourceReader) ReadSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return "", nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Fallback for filesystems that refuse mapping.
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, rerr)
		}
		return string(data), nil
	}
	defer m.Unmap()

	return string(m), nil
}
