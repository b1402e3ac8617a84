// Package numhash computes stable content hashes for nested numeric data.
//
// Values that differ only by floating-point noise hash identically: every
// float64 has its lowest mantissa bits cleared before hashing, so results
// recomputed on different hardware or library versions still produce the
// same cache key.
//
// # Data Model
//
// Scalars: digest, bytes, text, int, float, bool
// Containers: seq (ordered), array (N-dimensional numeric), map
//
// # Canonical Form
//
//	digest    returned unchanged
//	bytes     hashed as-is
//	text      UTF-8 bytes
//	int       base-10 text, so Int(1) and Float(1.0) never collide
//	float     truncated bit pattern, 8 bytes little-endian
//	array     row-major little-endian buffer; float64 and complex128
//	          elements truncated, other dtypes raw
//	seq       child digest hex strings as a fixed-width byte-string array
//	map       sorted (key hex, value hex) pairs hashed as a seq of pairs
//
// The digest is 128-bit MD5. It is used for stability and spread, not for
// collision resistance against adversaries.
//
// # Truncation
//
// With the default 12 bits, 1.0 and 1.0+1e-13 hash alike while 1.0 and
// 1.01 do not. The sign bit is never touched, so +0.0 and -0.0 differ.
//
// # Example
//
//	d, err := numhash.Hash(numhash.Map(
//		numhash.Field("a", numhash.Float(12.0)),
//		numhash.Field("b", numhash.Seq(numhash.Int(1), numhash.Int(2))),
//	))
//	fmt.Println(d.Hex())
//
// Native Go values, JSON and YAML documents can be converted with FromGo,
// FromJSON and FromYAML.
package numhash
