// Package walk provides filtered, depth-first directory traversal.
//
// Walk drives a Visitor over a directory tree. An Accumulator is the Visitor
// that applies separate file and directory filters, prunes rejected
// subtrees, and collects matched paths plus file, directory, and byte counters
// into a Result. Seq offers the same traversal as a lazy iterator.
//
// The walk is single-threaded. Entries are visited in the order the filesystem
// lists them, so callers needing a stable order sort the result, for example
// with Result.RelativeFiles.
package walk
