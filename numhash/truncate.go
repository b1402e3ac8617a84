package numhash

import (
	"math"
)

// DefaultPrecisionBits is the number of low mantissa bits cleared by default.
// Twelve bits is roughly the last 3-4 significant decimal digits of a float64.
const DefaultPrecisionBits uint = 12

// MaxPrecisionBits is the width of the float64 mantissa. Clearing more bits
// would start erasing the exponent.
const MaxPrecisionBits uint = 52

// precisionMask returns a mask that clears the low bits of a 64-bit pattern.
func precisionMask(bits uint) uint64 {
	return ^(uint64(1)<<bits - 1)
}

// TruncateFloat clears the lowest bits of x's IEEE-754 bit pattern.
//
// The operation is a pure bit reinterpretation: sign and exponent live in the
// high bits and are untouched, so NaN and ±Inf keep their class and +0.0 and
// -0.0 stay distinct.
func TruncateFloat(x float64, bits uint) float64 {
	return math.Float64frombits(math.Float64bits(x) & precisionMask(bits))
}

// TruncateFloats returns a truncated copy of xs. xs is not modified.
func TruncateFloats(xs []float64, bits uint) []float64 {
	mask := precisionMask(bits)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Float64frombits(math.Float64bits(x) & mask)
	}
	return out
}

// TruncateComplex truncates the real and imaginary parts independently.
func TruncateComplex(c complex128, bits uint) complex128 {
	return complex(TruncateFloat(real(c), bits), TruncateFloat(imag(c), bits))
}

// TruncateComplexes returns a truncated copy of cs. cs is not modified.
func TruncateComplexes(cs []complex128, bits uint) []complex128 {
	out := make([]complex128, len(cs))
	for i, c := range cs {
		out[i] = TruncateComplex(c, bits)
	}
	return out
}
