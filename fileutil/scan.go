package fileutil

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/idelchi/pathwalk/filter"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Usage holds the totals of a directory scan.
type Usage struct {
	// FileCount is the number of regular files found.
	FileCount int64 `json:"file_count"`
	// DirCount is the number of directories found, the root included.
	DirCount int64 `json:"dir_count"`
	// TotalBytes is the cumulative size of all files found.
	TotalBytes int64 `json:"total_bytes"`
	// ErrorCount is the number of errors encountered.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed"`
}

// ScanOptions configures ScanDirectory.
type ScanOptions struct {
	// FollowLinks follows symbolic links to directories.
	FollowLinks bool
	// Excludes contains regex patterns, matched against slash paths, of entries to skip.
	Excludes []string
	// Progress is called with running file and byte totals on each tick.
	Progress func(files, bytes int64)
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
}

// usageCollector aggregates totals from concurrent fastwalk callbacks using a mutex.
type usageCollector struct {
	mu         sync.Mutex
	fileCount  int64
	dirCount   int64
	totalBytes int64
	errorCount int64
}

func (c *usageCollector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorCount++
}

func (c *usageCollector) addDir() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dirCount++
}

func (c *usageCollector) addFile(size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size
}

func (c *usageCollector) snapshot() (files, bytes int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.fileCount, c.totalBytes
}

func (c *usageCollector) finalize() *Usage {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &Usage{
		FileCount:  c.fileCount,
		DirCount:   c.dirCount,
		TotalBytes: c.totalBytes,
		ErrorCount: c.errorCount,
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, c *usageCollector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.snapshot())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// ScanDirectory measures the tree below dir using parallel traversal.
//
// Unlike the walk package it visits entries concurrently and in no particular
// order, which makes it the faster choice when only totals are needed.
// Unreadable entries are counted in ErrorCount and skipped.
// The scan can be cancelled via ctx.
func ScanDirectory(ctx context.Context, dir string, opts ScanOptions) (*Usage, error) {
	dir = filepath.Clean(dir)

	if _, err := requireDirectory("scan", dir); err != nil {
		return nil, err
	}

	excludes := make([]*regexp.Regexp, 0, len(opts.Excludes))

	for _, p := range opts.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludes = append(excludes, re)
	}

	collector := &usageCollector{}

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, opts.Progress, opts.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: opts.FollowLinks,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			collector.addError()

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path != dir && filter.MatchingPattern(path, excludes) != nil {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			collector.addDir()

			return nil
		}

		info, err := d.Info()
		if opts.FollowLinks && d.Type()&fs.ModeSymlink != 0 {
			info, err = fastwalk.StatDirEntry(path, d)
		}

		if err != nil {
			collector.addError()

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		switch {
		case info.IsDir():
			collector.addDir()
		case info.Mode().IsRegular():
			collector.addFile(info.Size())
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	usage := collector.finalize()
	usage.Elapsed = time.Since(start)

	return usage, nil
}

// SizeOfDirectory returns the total size of the files below dir using parallel traversal.
func SizeOfDirectory(ctx context.Context, dir string) (int64, error) {
	usage, err := ScanDirectory(ctx, dir, ScanOptions{})
	if err != nil {
		return 0, err
	}

	return usage.TotalBytes, nil
}
