package numhash

import (
	"encoding/binary"
	"math"
	"strconv"
)

// ============================================================
// Canonical Scalar Encoding
// ============================================================
//
// The canonical form of a value is the exact byte sequence fed to the
// digest. Every rendering here is independent of host byte order.

// canonInt returns the base-10 rendering of n.
func canonInt(n int64) []byte {
	return strconv.AppendInt(nil, n, 10)
}

// canonBool returns "True" or "False".
func canonBool(b bool) []byte {
	if b {
		return []byte("True")
	}
	return []byte("False")
}

// canonFloat returns the 8 little-endian bytes of the truncated bit pattern.
func canonFloat(x float64, bits uint) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(TruncateFloat(x, bits)))
}

// ============================================================
// Canonical Array Encoding
// ============================================================

// canonArray returns the row-major buffer of a, truncating float64 and
// complex128 elements. Other dtypes are emitted as-is.
func canonArray(a *Array, bits uint) []byte {
	switch a.dtype {
	case DTypeFloat64:
		xs, _ := a.Float64Data()
		return a.withData(TruncateFloats(xs, bits)).Bytes()
	case DTypeComplex128:
		cs, _ := a.Complex128Data()
		// Truncated parts are serialised as they are; no complex arithmetic
		// is applied, so a -0.0 real part or an infinite imaginary part survives.
		return a.withData(TruncateComplexes(cs, bits)).Bytes()
	default:
		return a.Bytes()
	}
}

// ============================================================
// Canonical Digest List Encoding
// ============================================================

// canonHexList encodes child digests as a fixed-width byte-string array:
// each string's bytes, NUL-padded to the length of the longest string.
// Digest hex strings all have the same length, so this is their plain
// concatenation. An empty list encodes to no bytes.
func canonHexList(hexes []string) []byte {
	width := 0
	for _, h := range hexes {
		width = max(width, len(h))
	}
	buf := make([]byte, 0, len(hexes)*width)
	for _, h := range hexes {
		buf = append(buf, h...)
		for n := len(h); n < width; n++ {
			buf = append(buf, 0)
		}
	}
	return buf
}
