package fileutil

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/idelchi/pathwalk/fserr"
)

const compareChunk = 32 * 1024

// contentPair resolves the cheap cases of a comparison. It reports done when
// the answer is known without reading either file.
func contentPair(op, a, b string, checkSize bool) (equal, done bool, err error) {
	infoA, err := stat(op, a)
	if err != nil {
		return false, true, err
	}

	infoB, err := stat(op, b)
	if err != nil {
		return false, true, err
	}

	if (infoA == nil) != (infoB == nil) {
		return false, true, nil
	}

	if infoA == nil {
		return true, true, nil
	}

	if !infoA.Mode().IsRegular() {
		return false, true, fserr.NotFile(op, a)
	}

	if !infoB.Mode().IsRegular() {
		return false, true, fserr.NotFile(op, b)
	}

	if checkSize && infoA.Size() != infoB.Size() {
		return false, true, nil
	}

	if os.SameFile(infoA, infoB) {
		return true, true, nil
	}

	return false, false, nil
}

// ContentEquals reports whether two files have identical contents.
// Two missing files are equal, a missing and an existing file are not.
// A directory argument fails with fserr.ErrNotFile.
func ContentEquals(a, b string) (bool, error) {
	equal, done, err := contentPair("compare", a, b, true)
	if done {
		return equal, err
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, fserr.FromOS("compare", a, err)
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, fserr.FromOS("compare", b, err)
	}
	defer fb.Close()

	bufA := make([]byte, compareChunk)
	bufB := make([]byte, compareChunk)

	for {
		na, errA := io.ReadFull(fa, bufA)
		nb, errB := io.ReadFull(fb, bufB)

		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		endA := errors.Is(errA, io.EOF) || errors.Is(errA, io.ErrUnexpectedEOF)
		endB := errors.Is(errB, io.EOF) || errors.Is(errB, io.ErrUnexpectedEOF)

		switch {
		case errA != nil && !endA:
			return false, fserr.New("compare", a, fserr.ErrIO, errA)
		case errB != nil && !endB:
			return false, fserr.New("compare", b, fserr.ErrIO, errB)
		case endA || endB:
			return endA == endB, nil
		}
	}
}

// ContentEqualsIgnoreEOL reports whether two files hold the same lines,
// treating "\n", "\r\n", and "\r" as equivalent line endings.
func ContentEqualsIgnoreEOL(a, b string) (bool, error) {
	equal, done, err := contentPair("compare", a, b, false)
	if done {
		return equal, err
	}

	fa, err := os.Open(a)
	if err != nil {
		return false, fserr.FromOS("compare", a, err)
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		return false, fserr.FromOS("compare", b, err)
	}
	defer fb.Close()

	sa := newLineScanner(fa)
	sb := newLineScanner(fb)

	for {
		moreA := sa.Scan()
		moreB := sb.Scan()

		if moreA != moreB {
			return false, firstErr(sa.Err(), sb.Err())
		}

		if !moreA {
			return true, firstErr(sa.Err(), sb.Err())
		}

		if !bytes.Equal(sa.Bytes(), sb.Bytes()) {
			return false, nil
		}
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return fserr.New("compare", "", fserr.ErrIO, err)
		}
	}

	return nil
}

// maxLineLength bounds a single line read by newLineScanner.
const maxLineLength = 16 * 1024 * 1024

// newLineScanner splits r into lines ending in "\n", "\r\n", or "\r".
func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	s.Split(scanLinesAnyEOL)

	return s
}

// scanLinesAnyEOL is a bufio.SplitFunc that accepts any line terminator.
func scanLinesAnyEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}

		switch {
		case i+1 < len(data) && data[i+1] == '\n':
			return i + 2, data[:i], nil
		case i+1 < len(data) || atEOF:
			return i + 1, data[:i], nil
		default:
			// A trailing '\r' may be the first half of "\r\n".
			return 0, nil, nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}
