// Package counter provides running totals for directory walks.
//
// Long counters use int64 and are the default. Big counters use math/big and
// exist for totals that can overflow int64, such as byte sizes across very large
// trees. Both satisfy the same Counter interface.
package counter

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
)

// Counter is a running total.
type Counter interface {
	// Add adds n to the total.
	Add(n int64)
	// Increment adds one to the total.
	Increment()
	// Get returns the total, saturated to the int64 range.
	Get() int64
	// BigInt returns the exact total as a new big.Int.
	BigInt() *big.Int
	// Reset sets the total back to zero.
	Reset()
	// String returns the total in base 10.
	String() string
}

// Long is a Counter backed by an int64.
type Long struct {
	value int64
}

// NewLong returns a zeroed int64 counter.
func NewLong() *Long {
	return &Long{}
}

// Add adds n to the total.
func (c *Long) Add(n int64) { c.value += n }

// Increment adds one to the total.
func (c *Long) Increment() { c.value++ }

// Get returns the total.
func (c *Long) Get() int64 { return c.value }

// BigInt returns the total as a big.Int.
func (c *Long) BigInt() *big.Int { return big.NewInt(c.value) }

// Reset zeroes the total.
func (c *Long) Reset() { c.value = 0 }

func (c *Long) String() string { return strconv.FormatInt(c.value, 10) }

// Big is a Counter backed by a big.Int.
type Big struct {
	value big.Int
}

// NewBig returns a zeroed arbitrary-precision counter.
func NewBig() *Big {
	return &Big{}
}

// Add adds n to the total.
func (c *Big) Add(n int64) { c.value.Add(&c.value, big.NewInt(n)) }

// Increment adds one to the total.
func (c *Big) Increment() { c.Add(1) }

// Get returns the total, saturated to [math.MinInt64, math.MaxInt64].
func (c *Big) Get() int64 {
	if c.value.IsInt64() {
		return c.value.Int64()
	}

	if c.value.Sign() < 0 {
		return math.MinInt64
	}

	return math.MaxInt64
}

// BigInt returns a copy of the total.
func (c *Big) BigInt() *big.Int { return new(big.Int).Set(&c.value) }

// Reset zeroes the total.
func (c *Big) Reset() { c.value.SetInt64(0) }

func (c *Big) String() string { return c.value.String() }

type noop struct{}

// Noop returns a Counter that discards everything and always reports zero.
func Noop() Counter { return noop{} }

func (noop) Add(int64)        {}
func (noop) Increment()       {}
func (noop) Get() int64       { return 0 }
func (noop) BigInt() *big.Int { return new(big.Int) }
func (noop) Reset()           {}
func (noop) String() string   { return "0" }

// PathCounters groups the three totals of a walk.
type PathCounters struct {
	// Files counts visited files.
	Files Counter
	// Directories counts visited directories, the root included.
	Directories Counter
	// Bytes sums the sizes of visited files.
	Bytes Counter
}

// LongPathCounters returns int64-backed path counters.
func LongPathCounters() PathCounters {
	return PathCounters{Files: NewLong(), Directories: NewLong(), Bytes: NewLong()}
}

// BigPathCounters returns path counters with an arbitrary-precision byte total.
// File and directory counts stay int64.
func BigPathCounters() PathCounters {
	return PathCounters{Files: NewLong(), Directories: NewLong(), Bytes: NewBig()}
}

// NoopPathCounters returns path counters that record nothing.
func NoopPathCounters() PathCounters {
	return PathCounters{Files: Noop(), Directories: Noop(), Bytes: Noop()}
}

// Valid reports whether all three counters are set.
func (p PathCounters) Valid() bool {
	return p.Files != nil && p.Directories != nil && p.Bytes != nil
}

// Reset zeroes all three counters.
func (p PathCounters) Reset() {
	p.Files.Reset()
	p.Directories.Reset()
	p.Bytes.Reset()
}

// Equal reports whether both sets of counters hold the same totals.
func (p PathCounters) Equal(other PathCounters) bool {
	return p.Files.BigInt().Cmp(other.Files.BigInt()) == 0 &&
		p.Directories.BigInt().Cmp(other.Directories.BigInt()) == 0 &&
		p.Bytes.BigInt().Cmp(other.Bytes.BigInt()) == 0
}

func (p PathCounters) String() string {
	return "files=" + p.Files.String() + ", directories=" + p.Directories.String() + ", bytes=" + p.Bytes.String()
}

// MarshalJSON encodes the exact totals as JSON numbers.
func (p PathCounters) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Files       *big.Int `json:"files"`
		Directories *big.Int `json:"directories"`
		Bytes       *big.Int `json:"bytes"`
	}{
		Files:       p.Files.BigInt(),
		Directories: p.Directories.BigInt(),
		Bytes:       p.Bytes.BigInt(),
	})
}
