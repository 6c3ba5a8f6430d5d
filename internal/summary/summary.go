// Package summary aggregates the entries of a filtered walk into the
// statistics printed by the pathwalk CLI.
//
// Besides the matched paths and counters it tracks sizes per file extension
// and the largest files, or in directory mode the largest directories by
// the size of their matched files.
package summary

import (
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/idelchi/pathwalk/counter"
	"github.com/idelchi/pathwalk/walk"
)

// ExtStat represents statistics for a file extension.
type ExtStat struct {
	// Count is the number of files with this extension.
	Count int `json:"count"`
	// Size is the cumulative size in bytes.
	Size int64 `json:"size"`
}

// FileStat represents a single file or directory path and size.
type FileStat struct {
	// Path is the file or directory path.
	Path string `json:"path"`
	// Size is the size in bytes.
	Size int64 `json:"size"`
}

// Summary holds the aggregate of one walk.
type Summary struct {
	// Root is the walked directory.
	Root string `json:"root"`
	// Files holds matched files in visit order.
	Files []string `json:"files"`
	// Directories holds matched directories in visit order, the root excluded.
	Directories []string `json:"directories"`
	// Counters holds file, directory, and byte totals. The root is counted.
	Counters counter.PathCounters `json:"counters"`
	// ExtStats maps file extensions to their statistics. Empty in directory mode.
	ExtStats map[string]ExtStat `json:"ext_stats"`
	// Top contains the N largest files or directories, largest first.
	Top []FileStat `json:"top"`
	// ErrorCount is the number of entries that could not be read.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken by the walk.
	Elapsed time.Duration `json:"elapsed"`
	// DirectoryMode indicates that Top ranks directories.
	DirectoryMode bool `json:"directory_mode"`
	// TopN is the number of top results tracked.
	TopN int `json:"top_n"`
}

// Collector builds a Summary from walk entries.
type Collector struct {
	root          string
	topN          int
	directoryMode bool
	counters      counter.PathCounters
	files         []string
	directories   []string
	extStats      map[string]ExtStat
	sizes         []FileStat
	dirSizes      map[string]int64
	errorCount    int64
	start         time.Time
}

// DefaultTopN is used when a non-positive topN is requested.
const DefaultTopN = 10

// NewCollector starts a summary of the walk of root. The root is counted
// as a directory immediately. Invalid counters are replaced by int64 counters.
func NewCollector(root string, topN int, directoryMode bool, counters counter.PathCounters) *Collector {
	if topN <= 0 {
		topN = DefaultTopN
	}

	if !counters.Valid() {
		counters = counter.LongPathCounters()
	}

	counters.Directories.Increment()

	return &Collector{
		root:          filepath.Clean(root),
		topN:          topN,
		directoryMode: directoryMode,
		counters:      counters,
		files:         make([]string, 0),
		directories:   make([]string, 0),
		extStats:      make(map[string]ExtStat),
		sizes:         make([]FileStat, 0),
		dirSizes:      make(map[string]int64),
		start:         time.Now(),
	}
}

// Add records a matched entry.
func (c *Collector) Add(e walk.Entry) {
	if e.Dir {
		if e.Depth == 0 {
			return
		}

		c.counters.Directories.Increment()
		c.directories = append(c.directories, e.Path)

		return
	}

	c.counters.Files.Increment()
	c.counters.Bytes.Add(e.Size)
	c.files = append(c.files, e.Path)

	if c.directoryMode {
		c.dirSizes[filepath.Dir(e.Path)] += e.Size

		return
	}

	ext := filepath.Ext(e.Path)
	stat := c.extStats[ext]
	stat.Count++
	stat.Size += e.Size
	c.extStats[ext] = stat

	c.sizes = append(c.sizes, FileStat{Path: e.Path, Size: e.Size})
}

// AddError counts an entry that could not be read.
func (c *Collector) AddError() {
	c.errorCount++
}

// Finalize produces the Summary. Top paths are relative to the root in slash form.
func (c *Collector) Finalize() *Summary {
	top := c.sizes
	extStats := c.extStats

	if c.directoryMode {
		top = make([]FileStat, 0, len(c.dirSizes))
		for dir, size := range c.dirSizes {
			top = append(top, FileStat{Path: dir, Size: size})
		}

		extStats = make(map[string]ExtStat)
	}

	slices.SortStableFunc(top, func(a, b FileStat) int {
		switch {
		case a.Size > b.Size:
			return -1
		case a.Size < b.Size:
			return 1
		default:
			return strings.Compare(a.Path, b.Path)
		}
	})

	if len(top) > c.topN {
		top = top[:c.topN]
	}

	top = slices.Clone(top)
	for i := range top {
		top[i].Path = c.display(top[i].Path)
	}

	return &Summary{
		Root:          c.root,
		Files:         c.files,
		Directories:   c.directories,
		Counters:      c.counters,
		ExtStats:      extStats,
		Top:           top,
		ErrorCount:    c.errorCount,
		Elapsed:       time.Since(c.start),
		DirectoryMode: c.directoryMode,
		TopN:          c.topN,
	}
}

// display converts path to a slash path relative to the root.
func (c *Collector) display(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		rel = path
	}

	return filepath.ToSlash(rel)
}

// Extensions returns the extensions of ExtStats ordered by size, largest first.
func (s *Summary) Extensions() []string {
	exts := make([]string, 0, len(s.ExtStats))
	for ext := range s.ExtStats {
		exts = append(exts, ext)
	}

	slices.SortFunc(exts, func(a, b string) int {
		sa, sb := s.ExtStats[a].Size, s.ExtStats[b].Size

		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return strings.Compare(a, b)
		}
	})

	if len(exts) > s.TopN {
		exts = exts[:s.TopN]
	}

	return exts
}

// Relativize rewrites Files and Directories relative to Root.
// With sorted they are also ordered lexically.
func (s *Summary) Relativize(sorted bool) error {
	var cmp func(a, b string) int
	if sorted {
		cmp = strings.Compare
	}

	files, err := walk.Relativize(s.Files, s.Root, cmp)
	if err != nil {
		return err
	}

	dirs, err := walk.Relativize(s.Directories, s.Root, cmp)
	if err != nil {
		return err
	}

	s.Files, s.Directories = files, dirs

	return nil
}

// Sort orders Files and Directories lexically in place.
func (s *Summary) Sort() {
	slices.Sort(s.Files)
	slices.Sort(s.Directories)
}
