package fileutil

import (
	"fmt"
	"math/big"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/pathwalk/walk"
)

// DisplaySize formats a byte count with IEC units, e.g. "1.5 KiB".
// Negative counts are shown as plain bytes.
func DisplaySize(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}

	return humanize.IBytes(uint64(size))
}

// DisplayBigSize formats an arbitrary-precision byte count with IEC units.
func DisplayBigSize(size *big.Int) string {
	if size.Sign() < 0 {
		return size.String() + " B"
	}

	return humanize.BigIBytes(size)
}

// ParseSize parses a human-readable size such as "10MB" or "4 KiB" into bytes.
func ParseSize(s string) (int64, error) {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("parsing size %q: %w", s, err)
	}

	return int64(size), nil //nolint:gosec // Sizes beyond int64 are not representable on disk
}

// SizeOf returns the size of a file, or the total size of the files below a directory.
func SizeOf(path string) (int64, error) {
	size, err := SizeOfBig(path)
	if err != nil {
		return 0, err
	}

	if !size.IsInt64() {
		return 0, fmt.Errorf("size of %q overflows int64: %s", path, size)
	}

	return size.Int64(), nil
}

// SizeOfBig is SizeOf without overflow.
func SizeOfBig(path string) (*big.Int, error) {
	info, err := requireExists("size", path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return big.NewInt(info.Size()), nil
	}

	return SizeOfDirectoryBig(path)
}

// SizeOfDirectoryBig returns the total size of the files below dir.
// Entries that cannot be read are left out.
func SizeOfDirectoryBig(dir string) (*big.Int, error) {
	if _, err := requireDirectory("size", dir); err != nil {
		return nil, err
	}

	res, err := walk.Accumulate(dir, nil, nil, walk.Options{BigCounters: true})
	if err != nil {
		return nil, err
	}

	return res.Counters.Bytes.BigInt(), nil
}
