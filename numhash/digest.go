package numhash

import (
	"crypto/md5"
	"encoding/hex"
)

// DigestSize is the size of a Digest in bytes.
const DigestSize = md5.Size

// Digest is a 128-bit content hash.
type Digest [DigestSize]byte

// Sum computes the digest of raw bytes.
// Each call uses its own hash state, so Sum is safe for concurrent use.
func Sum(data []byte) Digest {
	return md5.Sum(data)
}

// Hex returns the digest as a 32-character lowercase hex string.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// String implements fmt.Stringer.
func (d Digest) String() string {
	return d.Hex()
}

// IsZero reports whether d is the all-zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// ParseDigest parses a 32-character hex string. Upper-case digits are accepted.
func ParseDigest(s string) (Digest, bool) {
	var d Digest
	if len(s) != hex.EncodedLen(DigestSize) {
		return d, false
	}
	if _, err := hex.Decode(d[:], []byte(s)); err != nil {
		return Digest{}, false
	}
	return d, true
}
