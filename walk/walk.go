package walk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/idelchi/pathwalk/fserr"
)

var (
	// SkipSubtree returned from EnterDirectory skips the directory's contents.
	// Returned from VisitFile it is ignored.
	SkipSubtree = fs.SkipDir
	// Terminate returned from any Visitor method ends the walk without error.
	Terminate = fs.SkipAll
)

// Visitor receives the events of a walk.
//
// EnterDirectory and VisitFile return nil to continue, SkipSubtree or
// Terminate to steer the walk, or any other error to abort it.
type Visitor interface {
	// EnterDirectory is called before a directory's entries are listed.
	// The root is entered with depth 0.
	EnterDirectory(path string, entry fs.DirEntry, depth int) error
	// VisitFile is called for every non-directory entry.
	VisitFile(path string, entry fs.DirEntry, depth int) error
	// VisitFailed is called when an entry cannot be read. Returning nil
	// abandons the entry and continues the walk.
	VisitFailed(path string, err error) error
}

// Funcs adapts closures to a Visitor. Nil fields continue the walk,
// and a nil Failed swallows the error.
type Funcs struct {
	Directory func(path string, entry fs.DirEntry, depth int) error
	File      func(path string, entry fs.DirEntry, depth int) error
	Failed    func(path string, err error) error
}

// EnterDirectory calls f.Directory.
func (f Funcs) EnterDirectory(path string, entry fs.DirEntry, depth int) error {
	if f.Directory == nil {
		return nil
	}

	return f.Directory(path, entry, depth)
}

// VisitFile calls f.File.
func (f Funcs) VisitFile(path string, entry fs.DirEntry, depth int) error {
	if f.File == nil {
		return nil
	}

	return f.File(path, entry, depth)
}

// VisitFailed calls f.Failed.
func (f Funcs) VisitFailed(path string, err error) error {
	if f.Failed == nil {
		return nil
	}

	return f.Failed(path, err)
}

// walker holds the state of a single traversal.
type walker struct {
	visitor   Visitor
	opts      Options
	log       logger
	ancestors []fs.FileInfo
}

// Walk traverses the tree rooted at root depth-first and reports every entry to v.
//
// It fails before visiting anything with fserr.ErrNotFound if root does not
// exist and fserr.ErrNotDirectory if it is not a directory. A symbolic link as
// root is always resolved.
func Walk(root string, v Visitor, opts Options) error {
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil {
		return fserr.FromOS("walk", root, err)
	}

	if !info.IsDir() {
		return fserr.NotDirectory("walk", root)
	}

	w := &walker{
		visitor: v,
		opts:    opts,
		log:     logger{w: opts.Debug},
	}

	if opts.FollowLinks {
		w.ancestors = []fs.FileInfo{info}
	}

	err = w.directory(root, fs.FileInfoToDirEntry(info), 0)
	if errors.Is(err, Terminate) {
		return nil
	}

	return err
}

// directory enters path and visits its entries.
func (w *walker) directory(path string, entry fs.DirEntry, depth int) error {
	if err := w.visitor.EnterDirectory(path, entry, depth); err != nil {
		if errors.Is(err, SkipSubtree) {
			return nil
		}

		return err
	}

	entries, err := readDir(path)
	if err != nil {
		w.log.printf("[debug]: error listing directory %s: %v\n", path, err)

		return w.fail(path, fserr.New("read directory", path, fserr.ErrIO, err))
	}

	for _, child := range entries {
		if err := w.entry(filepath.Join(path, child.Name()), child, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// entry dispatches a single directory entry.
func (w *walker) entry(path string, entry fs.DirEntry, depth int) error {
	if w.opts.FollowLinks && entry.Type()&fs.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err == nil {
			entry = fs.FileInfoToDirEntry(target)
		} else {
			w.log.printf("[debug]: dangling link: %s\n", path)
		}
	}

	if !entry.IsDir() {
		err := w.visitor.VisitFile(path, entry, depth)
		if errors.Is(err, SkipSubtree) {
			return nil
		}

		return err
	}

	if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
		w.log.printf("[debug]: skipping directory (beyond depth %d): %s\n", w.opts.MaxDepth, path)

		return nil
	}

	if !w.opts.FollowLinks {
		return w.directory(path, entry, depth)
	}

	info, err := entry.Info()
	if err != nil {
		return w.fail(path, fserr.New("stat", path, fserr.ErrIO, err))
	}

	for _, a := range w.ancestors {
		if os.SameFile(a, info) {
			w.log.printf("[debug]: filesystem loop: %s\n", path)

			return w.fail(path, fserr.New("walk", path, fserr.ErrLoop, nil))
		}
	}

	w.ancestors = append(w.ancestors, info)
	defer func() { w.ancestors = w.ancestors[:len(w.ancestors)-1] }()

	return w.directory(path, entry, depth)
}

// fail reports a per-entry failure. SkipSubtree from the hook means the same as nil.
func (w *walker) fail(path string, err error) error {
	if err := w.visitor.VisitFailed(path, err); err != nil && !errors.Is(err, SkipSubtree) {
		return err
	}

	return nil
}

// readDir lists a directory in the order the filesystem returns entries.
func readDir(path string) ([]fs.DirEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.ReadDir(-1)
}
