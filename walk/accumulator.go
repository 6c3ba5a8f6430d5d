package walk

import (
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/idelchi/pathwalk/counter"
	"github.com/idelchi/pathwalk/filter"
	"github.com/idelchi/pathwalk/fserr"
)

// ErrAccumulatorUsed is returned when an Accumulator is asked to walk twice.
var ErrAccumulatorUsed = errors.New("accumulator already used")

// Entry is a matched path reported by a walk.
type Entry struct {
	// Path is the cleaned path of the entry.
	Path string `json:"path"`
	// Dir indicates whether the entry is a directory.
	Dir bool `json:"dir"`
	// Size is the size in bytes, zero for directories.
	Size int64 `json:"size"`
	// Depth is the depth below the root, the root being 0.
	Depth int `json:"depth"`
}

// matcher applies file and directory filters and hands matches to a sink.
// The root directory is always passed through with depth 0.
type matcher struct {
	files      filter.Filter
	dirs       filter.Filter
	onError    func(path string, err error) error
	errorCount int64
	log        logger
	sink       func(Entry) error
}

func newMatcher(fileFilter, dirFilter filter.Filter) *matcher {
	if fileFilter == nil {
		fileFilter = filter.True
	}

	if dirFilter == nil {
		dirFilter = filter.True
	}

	return &matcher{files: fileFilter, dirs: dirFilter}
}

// EnterDirectory prunes directories rejected by the directory filter.
func (m *matcher) EnterDirectory(path string, entry fs.DirEntry, depth int) error {
	if depth > 0 && !m.dirs(path, entry) {
		m.log.printf("[debug]: excluding directory: %s\n", filepath.ToSlash(path))

		return SkipSubtree
	}

	return m.sink(Entry{Path: path, Dir: true, Depth: depth})
}

// VisitFile passes files accepted by the file filter to the sink.
func (m *matcher) VisitFile(path string, entry fs.DirEntry, depth int) error {
	if !m.files(path, entry) {
		m.log.printf("[debug]: excluding file: %s\n", filepath.ToSlash(path))

		return nil
	}

	info, err := entry.Info()
	if err != nil {
		return m.VisitFailed(path, fserr.New("stat", path, fserr.ErrIO, err))
	}

	return m.sink(Entry{Path: path, Size: info.Size(), Depth: depth})
}

// VisitFailed counts the failure and defers to the error hook.
func (m *matcher) VisitFailed(path string, err error) error {
	m.errorCount++
	m.log.printf("[debug]: error accessing path %s: %v\n", path, err)

	if m.onError != nil {
		return m.onError(path, err)
	}

	return nil
}

// Result is the outcome of one accumulating walk. It is not modified after
// the walk returns.
type Result struct {
	// Root is the cleaned root of the walk.
	Root string `json:"root"`
	// Files holds matched files in visit order.
	Files []string `json:"files"`
	// Directories holds matched directories in visit order, the root excluded.
	Directories []string `json:"directories"`
	// Counters holds the file, directory, and byte totals. The root is counted.
	Counters counter.PathCounters `json:"counters"`
	// ErrorCount is the number of per-entry failures encountered.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken by the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// RelativeFiles returns Files relative to Root, sorted lexically if requested.
func (r *Result) RelativeFiles(sorted bool) ([]string, error) {
	return Relativize(r.Files, r.Root, lexical(sorted))
}

// RelativeDirectories returns Directories relative to Root, sorted lexically if requested.
func (r *Result) RelativeDirectories(sorted bool) ([]string, error) {
	return Relativize(r.Directories, r.Root, lexical(sorted))
}

// Accumulator is a Visitor that collects matched paths and counters.
// Each Accumulator performs exactly one walk.
type Accumulator struct {
	*matcher

	counters    counter.PathCounters
	files       []string
	directories []string
	used        bool
}

// NewAccumulator returns an Accumulator recording into counters.
// Nil filters include everything. Invalid counters are replaced by int64 counters.
func NewAccumulator(counters counter.PathCounters, fileFilter, dirFilter filter.Filter) *Accumulator {
	if !counters.Valid() {
		counters = counter.LongPathCounters()
	}

	a := &Accumulator{
		matcher:     newMatcher(fileFilter, dirFilter),
		counters:    counters,
		files:       make([]string, 0),
		directories: make([]string, 0),
	}
	a.sink = a.record

	return a
}

// WithErrorHook sets the hook called for per-entry failures.
// It takes precedence over Options.OnError.
func (a *Accumulator) WithErrorHook(hook func(path string, err error) error) *Accumulator {
	a.onError = hook

	return a
}

// record counts an entry and, unless it is the root, appends it to its list.
func (a *Accumulator) record(e Entry) error {
	if e.Dir {
		a.counters.Directories.Increment()

		if e.Depth > 0 {
			a.directories = append(a.directories, e.Path)
		}

		return nil
	}

	a.counters.Files.Increment()
	a.counters.Bytes.Add(e.Size)
	a.files = append(a.files, e.Path)

	return nil
}

// Walk traverses root and returns the accumulated result.
// Structural failures return no result. A second call returns ErrAccumulatorUsed.
func (a *Accumulator) Walk(root string, opts Options) (*Result, error) {
	if a.used {
		return nil, ErrAccumulatorUsed
	}

	a.used = true
	a.log = logger{w: opts.Debug}

	if a.onError == nil {
		a.onError = opts.OnError
	}

	start := time.Now()

	if err := Walk(root, a, opts); err != nil {
		return nil, err
	}

	return &Result{
		Root:        filepath.Clean(root),
		Files:       a.files,
		Directories: a.directories,
		Counters:    a.counters,
		ErrorCount:  a.errorCount,
		Elapsed:     time.Since(start),
	}, nil
}

// Accumulate walks root with a fresh Accumulator.
func Accumulate(root string, fileFilter, dirFilter filter.Filter, opts Options) (*Result, error) {
	counters := counter.LongPathCounters()
	if opts.BigCounters {
		counters = counter.BigPathCounters()
	}

	return NewAccumulator(counters, fileFilter, dirFilter).Walk(root, opts)
}
