package numhash

import (
	"fmt"
	"math"
	"reflect"
)

// ============================================================
// Native Go Bridge
// ============================================================
//
// FromGo maps ordinary Go values onto the Value model:
//
//	Digest, *Value, *Array   passed through
//	[]byte                   Bytes
//	string                   Text
//	bool                     Bool
//	signed/unsigned ints     Int
//	float32, float64         Float
//	[]T, [N]T of Element     Array (row-major, one-dimensional)
//	other slices and arrays  Seq
//	maps                     Map
//
// Nil slices and maps are empty. Everything else (untyped nil, pointers,
// structs, channels, funcs, uintptr, complex scalars) is rejected with an
// *UnsupportedTypeError.

// FromGo converts a native Go value with the default depth limit.
func FromGo(x any) (*Value, error) {
	return FromGoWithOpts(x, DefaultOptions())
}

// FromGoWithOpts converts a native Go value. Only opts.MaxDepth is used.
func FromGoWithOpts(x any, opts Options) (*Value, error) {
	c := converter{limit: opts.maxDepth()}
	return c.convert(x, 0)
}

// HashAny converts x with FromGo and hashes it with DefaultOptions.
func HashAny(x any) (Digest, error) {
	return HashAnyWithOpts(x, DefaultOptions())
}

// HashAnyWithOpts converts x with FromGoWithOpts and hashes the result.
func HashAnyWithOpts(x any, opts Options) (Digest, error) {
	if err := opts.Validate(); err != nil {
		return Digest{}, err
	}
	v, err := FromGoWithOpts(x, opts)
	if err != nil {
		return Digest{}, err
	}
	return HashWithOpts(v, opts)
}

type converter struct {
	limit int
}

func (c *converter) convert(x any, depth int) (*Value, error) {
	switch val := x.(type) {
	case nil:
		return nil, &UnsupportedTypeError{Type: "nil"}
	case Digest:
		return DigestValue(val), nil
	case *Value:
		if val == nil {
			return nil, &UnsupportedTypeError{Type: "nil *Value"}
		}
		return val, nil
	case *Array:
		if val == nil {
			return nil, &UnsupportedTypeError{Type: "nil *Array"}
		}
		return ArrayValue(val), nil
	case []byte:
		return Bytes(val), nil
	case string:
		return Text(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case float64:
		return Float(val), nil
	case []any:
		return c.convertSeq(reflect.ValueOf(val), depth)
	case map[string]any:
		return c.convertMap(reflect.ValueOf(val), depth)
	}
	if a, ok := arrayFromSlice(x); ok {
		return ArrayValue(a), nil
	}
	return c.convertReflect(reflect.ValueOf(x), depth)
}

// arrayFromSlice recognises slices of Element types.
func arrayFromSlice(x any) (*Array, bool) {
	var a *Array
	switch d := x.(type) {
	case []bool:
		a, _ = ArrayOf(d)
	case []int:
		a, _ = ArrayOf(d)
	case []int8:
		a, _ = ArrayOf(d)
	case []int16:
		a, _ = ArrayOf(d)
	case []int32:
		a, _ = ArrayOf(d)
	case []int64:
		a, _ = ArrayOf(d)
	case []uint:
		a, _ = ArrayOf(d)
	case []uint16:
		a, _ = ArrayOf(d)
	case []uint32:
		a, _ = ArrayOf(d)
	case []uint64:
		a, _ = ArrayOf(d)
	case []float32:
		a, _ = ArrayOf(d)
	case []float64:
		a, _ = ArrayOf(d)
	case []complex64:
		a, _ = ArrayOf(d)
	case []complex128:
		a, _ = ArrayOf(d)
	default:
		return nil, false
	}
	return a, true
}

// elementTypes maps element kinds to the Element type an Array stores.
var elementTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:       reflect.TypeOf(false),
	reflect.Int:        reflect.TypeOf(int(0)),
	reflect.Int8:       reflect.TypeOf(int8(0)),
	reflect.Int16:      reflect.TypeOf(int16(0)),
	reflect.Int32:      reflect.TypeOf(int32(0)),
	reflect.Int64:      reflect.TypeOf(int64(0)),
	reflect.Uint:       reflect.TypeOf(uint(0)),
	reflect.Uint16:     reflect.TypeOf(uint16(0)),
	reflect.Uint32:     reflect.TypeOf(uint32(0)),
	reflect.Uint64:     reflect.TypeOf(uint64(0)),
	reflect.Float32:    reflect.TypeOf(float32(0)),
	reflect.Float64:    reflect.TypeOf(float64(0)),
	reflect.Complex64:  reflect.TypeOf(complex64(0)),
	reflect.Complex128: reflect.TypeOf(complex128(0)),
}

// arrayFromNamedSlice handles named slice types such as `type Vec []float64`.
func arrayFromNamedSlice(rv reflect.Value) (*Array, bool) {
	elem, ok := elementTypes[rv.Type().Elem().Kind()]
	if !ok {
		return nil, false
	}
	st := reflect.SliceOf(elem)
	if !rv.Type().ConvertibleTo(st) {
		return nil, false
	}
	return arrayFromSlice(rv.Convert(st).Interface())
}

func (c *converter) convertReflect(rv reflect.Value, depth int) (*Value, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, &UnsupportedTypeError{Type: fmt.Sprintf("%s %d (exceeds int64)", rv.Type(), u)}
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return Text(rv.String()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(rv.Bytes()), nil
		}
		if a, ok := arrayFromNamedSlice(rv); ok {
			return ArrayValue(a), nil
		}
		return c.convertSeq(rv, depth)
	case reflect.Array:
		// Copy into a slice so fixed-size numeric arrays become Arrays too.
		s := reflect.MakeSlice(reflect.SliceOf(rv.Type().Elem()), rv.Len(), rv.Len())
		reflect.Copy(s, rv)
		if a, ok := arrayFromSlice(s.Interface()); ok {
			return ArrayValue(a), nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Bytes(s.Bytes()), nil
		}
		return c.convertSeq(s, depth)
	case reflect.Map:
		return c.convertMap(rv, depth)
	default:
		return nil, &UnsupportedTypeError{Type: rv.Type().String()}
	}
}

func (c *converter) convertSeq(rv reflect.Value, depth int) (*Value, error) {
	if depth >= c.limit {
		return nil, &DepthError{Limit: c.limit}
	}
	items := make([]*Value, rv.Len())
	for i := range items {
		item, err := c.convert(rv.Index(i).Interface(), depth+1)
		if err != nil {
			return nil, atIndex(err, i)
		}
		items[i] = item
	}
	return Seq(items...), nil
}

func (c *converter) convertMap(rv reflect.Value, depth int) (*Value, error) {
	if depth >= c.limit {
		return nil, &DepthError{Limit: c.limit}
	}
	entries := make([]MapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		label := fmt.Sprint(iter.Key().Interface())
		k, err := c.convert(iter.Key().Interface(), depth+1)
		if err != nil {
			return nil, atKey(err, label)
		}
		v, err := c.convert(iter.Value().Interface(), depth+1)
		if err != nil {
			return nil, atKey(err, label)
		}
		entries = append(entries, Entry(k, v))
	}
	return Map(entries...), nil
}
