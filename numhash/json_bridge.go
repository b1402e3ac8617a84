package numhash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts JSON documents into Values. Numbers keep their lexical kind:
// `1` becomes Int and `1.0` / `1e0` become Float, so the Int/Float
// separation of the hasher survives a round through JSON.

// BridgeOpts configures the JSON and YAML bridges.
type BridgeOpts struct {
	// Extended enables "$numhash" marker objects for bytes, digests and
	// typed arrays. When false, such objects are ordinary maps.
	Extended bool

	// PackArrays turns non-empty lists of plain numbers into Arrays: int64
	// when every element is an integer, float64 otherwise.
	PackArrays bool

	// MaxDepth limits nesting. Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

// DefaultBridgeOpts returns the default options: extended markers on,
// array packing off.
func DefaultBridgeOpts() BridgeOpts {
	return BridgeOpts{Extended: true}
}

func (o BridgeOpts) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// FromJSON converts JSON bytes to a Value using DefaultBridgeOpts.
func FromJSON(data []byte) (*Value, error) {
	return FromJSONWithOpts(data, DefaultBridgeOpts())
}

// FromJSONWithOpts converts JSON bytes to a Value.
func FromJSONWithOpts(data []byte, opts BridgeOpts) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("JSON parse error: trailing data after top-level value")
	}
	b := jsonBuilder{opts: opts, limit: opts.maxDepth()}
	return b.build(v, 0)
}

type jsonBuilder struct {
	opts  BridgeOpts
	limit int
}

func (b *jsonBuilder) build(v any, depth int) (*Value, error) {
	switch val := v.(type) {
	case nil:
		return nil, &UnsupportedTypeError{Type: "null"}

	case bool:
		return Bool(val), nil

	case json.Number:
		return numberValue(string(val))

	case string:
		return Text(val), nil

	case []any:
		if depth >= b.limit {
			return nil, &DepthError{Limit: b.limit}
		}
		if b.opts.PackArrays {
			if a, ok := packNumbers(val); ok {
				return ArrayValue(a), nil
			}
		}
		items := make([]*Value, 0, len(val))
		for i, elem := range val {
			item, err := b.build(elem, depth+1)
			if err != nil {
				return nil, atIndex(err, i)
			}
			items = append(items, item)
		}
		return Seq(items...), nil

	case map[string]any:
		if depth >= b.limit {
			return nil, &DepthError{Limit: b.limit}
		}
		if b.opts.Extended {
			if marker, ok := val[markerKey].(string); ok {
				return fromMarker(marker, val)
			}
		}
		entries := make([]MapEntry, 0, len(val))
		for k, elem := range val {
			item, err := b.build(elem, depth+1)
			if err != nil {
				return nil, atKey(err, k)
			}
			entries = append(entries, Field(k, item))
		}
		return Map(entries...), nil

	default:
		return nil, &UnsupportedTypeError{Type: fmt.Sprintf("JSON %T", v)}
	}
}

// numberValue classifies a JSON number literal as Int or Float.
func numberValue(lit string) (*Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("integer %s: %w", lit, err)
		}
		return Int(n), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("float %s: %w", lit, err)
	}
	return Float(f), nil
}

// packNumbers builds an Array from a list of json.Number, int or float64
// elements. It reports false for empty or non-numeric lists.
func packNumbers(items []any) (*Array, bool) {
	if len(items) == 0 {
		return nil, false
	}
	ints := make([]int64, 0, len(items))
	floats := make([]float64, 0, len(items))
	allInt := true
	for _, item := range items {
		f, isInt, ok := numberOf(item)
		if !ok {
			return nil, false
		}
		if isInt {
			n, _ := toInt64(item)
			ints = append(ints, n)
		} else {
			allInt = false
		}
		floats = append(floats, f)
	}
	if allInt {
		return Int64s(ints...), true
	}
	return Float64s(floats...), true
}

// numberOf reads a decoded JSON or YAML number.
func numberOf(v any) (f float64, isInt bool, ok bool) {
	switch n := v.(type) {
	case json.Number:
		lit := string(n)
		if !strings.ContainsAny(lit, ".eE") {
			if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
				f, _ := n.Float64()
				return f, true, true
			}
		}
		f, err := n.Float64()
		return f, false, err == nil
	case int:
		return float64(n), true, true
	case int64:
		return float64(n), true, true
	case uint64:
		if n > 1<<63-1 {
			return 0, false, false
		}
		return float64(n), true, true
	case float64:
		return n, false, true
	default:
		return 0, false, false
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), n <= 1<<63-1
	default:
		return 0, false
	}
}
