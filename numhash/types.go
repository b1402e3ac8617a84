package numhash

import (
	"fmt"
)

// Kind represents the kind of a hashable value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindDigest       // Already-hashed child, returned unchanged
	KindBytes
	KindText
	KindInt
	KindFloat
	KindBool
	KindSeq   // Ordered sequence: list, tuple, nested list
	KindArray // Homogeneous N-dimensional numeric array
	KindMap   // Key → value, hashed order-independently
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDigest:
		return "digest"
	case KindBytes:
		return "bytes"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindSeq:
		return "seq"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is a hashable value. Exactly one payload field is valid, selected
// by kind. The zero Value has KindInvalid and is rejected by the hasher.
type Value struct {
	kind Kind

	// Scalar payloads
	digestVal Digest
	bytesVal  []byte
	textVal   string
	intVal    int64
	floatVal  float64
	boolVal   bool

	// Container payloads
	seqVal   []*Value
	arrayVal *Array
	mapVal   []MapEntry
}

// MapEntry represents a key-value pair in a map. Keys may be any Value.
type MapEntry struct {
	Key   *Value
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// DigestValue wraps an existing digest so it can be nested without rehashing.
func DigestValue(d Digest) *Value {
	return &Value{kind: KindDigest, digestVal: d}
}

// Bytes creates a raw byte sequence value.
func Bytes(v []byte) *Value {
	return &Value{kind: KindBytes, bytesVal: v}
}

// Text creates a text value.
func Text(v string) *Value {
	return &Value{kind: KindText, textVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Seq creates an ordered sequence value.
func Seq(values ...*Value) *Value {
	return &Value{kind: KindSeq, seqVal: values}
}

// ArrayValue wraps a numeric array.
func ArrayValue(a *Array) *Value {
	return &Value{kind: KindArray, arrayVal: a}
}

// Map creates a map value from key-value pairs.
func Map(entries ...MapEntry) *Value {
	return &Value{kind: KindMap, mapVal: entries}
}

// Entry creates a MapEntry with an arbitrary key.
func Entry(key, value *Value) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// Field creates a MapEntry keyed by text.
func Field(key string, value *Value) MapEntry {
	return MapEntry{Key: Text(key), Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindInvalid
	}
	return v.kind
}

func (v *Value) expect(k Kind) error {
	if v == nil {
		return fmt.Errorf("numhash: nil value")
	}
	if v.kind != k {
		return fmt.Errorf("numhash: expected %s, got %s", k, v.kind)
	}
	return nil
}

// AsDigest returns the wrapped digest.
func (v *Value) AsDigest() (Digest, error) {
	if err := v.expect(KindDigest); err != nil {
		return Digest{}, err
	}
	return v.digestVal, nil
}

// AsBytes returns the byte sequence.
func (v *Value) AsBytes() ([]byte, error) {
	if err := v.expect(KindBytes); err != nil {
		return nil, err
	}
	return v.bytesVal, nil
}

// AsText returns the text.
func (v *Value) AsText() (string, error) {
	if err := v.expect(KindText); err != nil {
		return "", err
	}
	return v.textVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if err := v.expect(KindInt); err != nil {
		return 0, err
	}
	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if err := v.expect(KindFloat); err != nil {
		return 0, err
	}
	return v.floatVal, nil
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(KindBool); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

// AsSeq returns the sequence elements.
func (v *Value) AsSeq() ([]*Value, error) {
	if err := v.expect(KindSeq); err != nil {
		return nil, err
	}
	return v.seqVal, nil
}

// AsArray returns the numeric array.
func (v *Value) AsArray() (*Array, error) {
	if err := v.expect(KindArray); err != nil {
		return nil, err
	}
	return v.arrayVal, nil
}

// AsMap returns the map entries.
func (v *Value) AsMap() ([]MapEntry, error) {
	if err := v.expect(KindMap); err != nil {
		return nil, err
	}
	return v.mapVal, nil
}

// Len returns the length of a sequence, map or array, and 0 otherwise.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindSeq:
		return len(v.seqVal)
	case KindMap:
		return len(v.mapVal)
	case KindArray:
		return v.arrayVal.Len()
	default:
		return 0
	}
}

// ============================================================
// Mutators
// ============================================================

// Append adds a value to a sequence.
func (v *Value) Append(val *Value) {
	if v.kind != KindSeq {
		panic("numhash: cannot append to non-seq")
	}
	v.seqVal = append(v.seqVal, val)
}

// Set adds or replaces a text-keyed entry on a map.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindMap {
		panic("numhash: cannot set on non-map")
	}
	for i := range v.mapVal {
		if k := v.mapVal[i].Key; k.Kind() == KindText && k.textVal == key {
			v.mapVal[i].Value = val
			return
		}
	}
	v.mapVal = append(v.mapVal, Field(key, val))
}
