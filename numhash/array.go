package numhash

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DType is the element type of a numeric array.
type DType uint8

const (
	DTypeInvalid DType = iota
	DTypeBool
	DTypeInt8
	DTypeInt16
	DTypeInt32
	DTypeInt64
	DTypeUint8
	DTypeUint16
	DTypeUint32
	DTypeUint64
	DTypeFloat32
	DTypeFloat64
	DTypeComplex64
	DTypeComplex128
)

// String returns the dtype name.
func (t DType) String() string {
	switch t {
	case DTypeBool:
		return "bool"
	case DTypeInt8:
		return "int8"
	case DTypeInt16:
		return "int16"
	case DTypeInt32:
		return "int32"
	case DTypeInt64:
		return "int64"
	case DTypeUint8:
		return "uint8"
	case DTypeUint16:
		return "uint16"
	case DTypeUint32:
		return "uint32"
	case DTypeUint64:
		return "uint64"
	case DTypeFloat32:
		return "float32"
	case DTypeFloat64:
		return "float64"
	case DTypeComplex64:
		return "complex64"
	case DTypeComplex128:
		return "complex128"
	default:
		return "invalid"
	}
}

// ItemSize returns the width of one element in bytes.
func (t DType) ItemSize() int {
	switch t {
	case DTypeBool, DTypeInt8, DTypeUint8:
		return 1
	case DTypeInt16, DTypeUint16:
		return 2
	case DTypeInt32, DTypeUint32, DTypeFloat32:
		return 4
	case DTypeInt64, DTypeUint64, DTypeFloat64, DTypeComplex64:
		return 8
	case DTypeComplex128:
		return 16
	default:
		return 0
	}
}

// Element is the set of Go element types an Array can hold.
// int and uint are stored as 64-bit.
type Element interface {
	bool | int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | complex64 | complex128
}

// Array is a homogeneous N-dimensional numeric array stored flat in
// row-major order. The array aliases the slice it was built from.
type Array struct {
	dtype DType
	shape []int
	data  any // []bool, []int8, ..., []complex128
	n     int
}

// ArrayOf builds an array from row-major data. With no shape the array is
// one-dimensional; otherwise the product of shape must equal len(data).
func ArrayOf[T Element](data []T, shape ...int) (*Array, error) {
	a := &Array{n: len(data)}
	switch d := any(data).(type) {
	case []bool:
		a.dtype, a.data = DTypeBool, d
	case []int:
		xs := make([]int64, len(d))
		for i, x := range d {
			xs[i] = int64(x)
		}
		a.dtype, a.data = DTypeInt64, xs
	case []int8:
		a.dtype, a.data = DTypeInt8, d
	case []int16:
		a.dtype, a.data = DTypeInt16, d
	case []int32:
		a.dtype, a.data = DTypeInt32, d
	case []int64:
		a.dtype, a.data = DTypeInt64, d
	case []uint:
		xs := make([]uint64, len(d))
		for i, x := range d {
			xs[i] = uint64(x)
		}
		a.dtype, a.data = DTypeUint64, xs
	case []uint8:
		a.dtype, a.data = DTypeUint8, d
	case []uint16:
		a.dtype, a.data = DTypeUint16, d
	case []uint32:
		a.dtype, a.data = DTypeUint32, d
	case []uint64:
		a.dtype, a.data = DTypeUint64, d
	case []float32:
		a.dtype, a.data = DTypeFloat32, d
	case []float64:
		a.dtype, a.data = DTypeFloat64, d
	case []complex64:
		a.dtype, a.data = DTypeComplex64, d
	case []complex128:
		a.dtype, a.data = DTypeComplex128, d
	}

	if len(shape) == 0 {
		a.shape = []int{len(data)}
		return a, nil
	}
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrShapeMismatch, shape)
		}
		size *= dim
	}
	if size != len(data) {
		return nil, fmt.Errorf("%w: shape %v holds %d elements, got %d", ErrShapeMismatch, shape, size, len(data))
	}
	a.shape = append([]int(nil), shape...)
	return a, nil
}

// Float64s builds a one-dimensional float64 array.
func Float64s(xs ...float64) *Array {
	a, _ := ArrayOf(xs)
	return a
}

// Complex128s builds a one-dimensional complex128 array.
func Complex128s(cs ...complex128) *Array {
	a, _ := ArrayOf(cs)
	return a
}

// Int64s builds a one-dimensional int64 array.
func Int64s(xs ...int64) *Array {
	a, _ := ArrayOf(xs)
	return a
}

// Matrix64 flattens rows into a two-dimensional float64 array.
func Matrix64(rows [][]float64) (*Array, error) {
	if len(rows) == 0 {
		return ArrayOf([]float64{}, 0, 0)
	}
	cols := len(rows[0])
	flat := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), cols)
		}
		flat = append(flat, row...)
	}
	return ArrayOf(flat, len(rows), cols)
}

// DType returns the element type.
func (a *Array) DType() DType { return a.dtype }

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the total number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return a.n
}

// Float64Data returns the elements of a float64 array.
func (a *Array) Float64Data() ([]float64, bool) {
	xs, ok := a.data.([]float64)
	return xs, ok
}

// Complex128Data returns the elements of a complex128 array.
func (a *Array) Complex128Data() ([]complex128, bool) {
	cs, ok := a.data.([]complex128)
	return cs, ok
}

// withData returns an array with a's dtype and shape over replacement
// data of the same element type and length.
func (a *Array) withData(data any) *Array {
	return &Array{dtype: a.dtype, shape: a.shape, data: data, n: a.n}
}

// Bytes renders the elements as little-endian bytes in row-major order.
// Complex elements are written as (real, imag) pairs.
func (a *Array) Bytes() []byte {
	buf := make([]byte, 0, a.n*a.dtype.ItemSize())
	le := binary.LittleEndian
	switch d := a.data.(type) {
	case []bool:
		for _, x := range d {
			if x {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		}
	case []int8:
		for _, x := range d {
			buf = append(buf, byte(x))
		}
	case []int16:
		for _, x := range d {
			buf = le.AppendUint16(buf, uint16(x))
		}
	case []int32:
		for _, x := range d {
			buf = le.AppendUint32(buf, uint32(x))
		}
	case []int64:
		for _, x := range d {
			buf = le.AppendUint64(buf, uint64(x))
		}
	case []uint8:
		buf = append(buf, d...)
	case []uint16:
		for _, x := range d {
			buf = le.AppendUint16(buf, x)
		}
	case []uint32:
		for _, x := range d {
			buf = le.AppendUint32(buf, x)
		}
	case []uint64:
		for _, x := range d {
			buf = le.AppendUint64(buf, x)
		}
	case []float32:
		for _, x := range d {
			buf = le.AppendUint32(buf, math.Float32bits(x))
		}
	case []float64:
		for _, x := range d {
			buf = le.AppendUint64(buf, math.Float64bits(x))
		}
	case []complex64:
		for _, c := range d {
			buf = le.AppendUint32(buf, math.Float32bits(real(c)))
			buf = le.AppendUint32(buf, math.Float32bits(imag(c)))
		}
	case []complex128:
		for _, c := range d {
			buf = le.AppendUint64(buf, math.Float64bits(real(c)))
			buf = le.AppendUint64(buf, math.Float64bits(imag(c)))
		}
	}
	return buf
}
