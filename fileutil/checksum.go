package fileutil

import (
	"crypto/md5"  //nolint:gosec // Offered for compatibility, not security
	"crypto/sha1" //nolint:gosec // Offered for compatibility, not security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/idelchi/pathwalk/fserr"
)

// Algorithms lists the names accepted by NewHash.
var Algorithms = []string{"crc32", "md5", "sha1", "sha256", "sha512"} //nolint:gochecknoglobals // Config constant

// NewHash returns a fresh hash for a case-insensitive algorithm name.
func NewHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "crc32":
		return crc32.NewIEEE(), nil
	case "md5":
		return md5.New(), nil //nolint:gosec // See import
	case "sha1":
		return sha1.New(), nil //nolint:gosec // See import
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm '%s': must be one of: %s",
			algorithm, strings.Join(Algorithms, ", "))
	}
}

// Checksum feeds the contents of the file at path into h and returns h.
func Checksum(path string, h hash.Hash) (hash.Hash, error) {
	if _, err := requireFile("checksum", path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fserr.FromOS("checksum", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(h, file); err != nil {
		return nil, fserr.New("checksum", path, fserr.ErrIO, err)
	}

	return h, nil
}

// ChecksumCRC32 returns the IEEE CRC-32 of the file at path.
func ChecksumCRC32(path string) (uint32, error) {
	h, err := Checksum(path, crc32.NewIEEE())
	if err != nil {
		return 0, err
	}

	return h.(hash.Hash32).Sum32(), nil //nolint:forcetypeassert // crc32.NewIEEE returns a Hash32
}

// ChecksumHex returns the lowercase hex digest of the file at path.
func ChecksumHex(path, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}

	if _, err := Checksum(path, h); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
