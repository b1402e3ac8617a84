package numhash

import (
	"encoding/base64"
	"fmt"
)

// markerKey tags extended objects in JSON and YAML input:
//
//	{"$numhash": "bytes",  "base64": "aGVsbG8="}
//	{"$numhash": "digest", "hex": "c4ca4238a0b923820dcc509a6f75849b"}
//	{"$numhash": "array",  "dtype": "complex128", "shape": [2], "data": [[0, 1], [2, 3]]}
//
// Array data is flat and row-major; complex elements are [real, imag] pairs.
const markerKey = "$numhash"

func fromMarker(markerType string, obj map[string]any) (*Value, error) {
	switch markerType {
	case "bytes":
		b64, ok := obj["base64"].(string)
		if !ok {
			return nil, fmt.Errorf("%s bytes marker missing base64", markerKey)
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		return Bytes(data), nil

	case "digest":
		hex, ok := obj["hex"].(string)
		if !ok {
			return nil, fmt.Errorf("%s digest marker missing hex", markerKey)
		}
		d, ok := ParseDigest(hex)
		if !ok {
			return nil, fmt.Errorf("invalid digest: %q", hex)
		}
		return DigestValue(d), nil

	case "array":
		a, err := arrayFromMarker(obj)
		if err != nil {
			return nil, err
		}
		return ArrayValue(a), nil

	default:
		return nil, fmt.Errorf("unknown %s marker type: %s", markerKey, markerType)
	}
}

func arrayFromMarker(obj map[string]any) (*Array, error) {
	dtype, _ := obj["dtype"].(string)
	if dtype == "" {
		dtype = "float64"
	}
	data, ok := obj["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("%s array marker missing data", markerKey)
	}

	var shape []int
	if raw, ok := obj["shape"].([]any); ok {
		shape = make([]int, len(raw))
		for i, dim := range raw {
			n, ok := toInt64(dim)
			if !ok {
				return nil, fmt.Errorf("%s array shape[%d]: not an integer", markerKey, i)
			}
			shape[i] = int(n)
		}
	}

	switch dtype {
	case "float64", "float32":
		xs := make([]float64, len(data))
		for i, item := range data {
			f, _, ok := numberOf(item)
			if !ok {
				return nil, fmt.Errorf("%s array data[%d]: not a number", markerKey, i)
			}
			xs[i] = f
		}
		if dtype == "float32" {
			narrow := make([]float32, len(xs))
			for i, x := range xs {
				narrow[i] = float32(x)
			}
			return ArrayOf(narrow, shape...)
		}
		return ArrayOf(xs, shape...)

	case "int64", "int32":
		xs := make([]int64, len(data))
		for i, item := range data {
			n, ok := toInt64(item)
			if !ok {
				return nil, fmt.Errorf("%s array data[%d]: not an integer", markerKey, i)
			}
			xs[i] = n
		}
		if dtype == "int32" {
			narrow := make([]int32, len(xs))
			for i, x := range xs {
				narrow[i] = int32(x)
			}
			return ArrayOf(narrow, shape...)
		}
		return ArrayOf(xs, shape...)

	case "complex128", "complex64":
		cs := make([]complex128, len(data))
		for i, item := range data {
			pair, ok := item.([]any)
			if !ok || len(pair) != 2 {
				return nil, fmt.Errorf("%s array data[%d]: want [real, imag]", markerKey, i)
			}
			re, _, ok1 := numberOf(pair[0])
			im, _, ok2 := numberOf(pair[1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%s array data[%d]: not a number", markerKey, i)
			}
			cs[i] = complex(re, im)
		}
		if dtype == "complex64" {
			narrow := make([]complex64, len(cs))
			for i, c := range cs {
				narrow[i] = complex64(c)
			}
			return ArrayOf(narrow, shape...)
		}
		return ArrayOf(cs, shape...)

	default:
		return nil, fmt.Errorf("%s array: unsupported dtype %q", markerKey, dtype)
	}
}
