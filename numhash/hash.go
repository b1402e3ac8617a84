package numhash

import (
	"fmt"
	"sort"
)

// DefaultMaxDepth bounds the nesting depth of hashed values.
const DefaultMaxDepth = 512

// Options configures hashing.
type Options struct {
	// PrecisionBits is the number of low bits cleared from every float64
	// (and from both parts of every complex128) before hashing.
	// Zero hashes floats bit-exactly. Must not exceed MaxPrecisionBits.
	PrecisionBits uint

	// MaxDepth limits container nesting. Zero or negative means DefaultMaxDepth.
	MaxDepth int
}

// DefaultOptions returns 12 precision bits and the default depth limit.
func DefaultOptions() Options {
	return Options{
		PrecisionBits: DefaultPrecisionBits,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Validate checks that the options are usable.
func (o Options) Validate() error {
	if o.PrecisionBits > MaxPrecisionBits {
		return fmt.Errorf("%w: %d exceeds the %d-bit mantissa", ErrInvalidPrecision, o.PrecisionBits, MaxPrecisionBits)
	}
	return nil
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// ============================================================
// Hash
// ============================================================

// Hash computes the digest of v with DefaultOptions.
func Hash(v *Value) (Digest, error) {
	return HashWithOpts(v, DefaultOptions())
}

// HashWithOpts computes the digest of v.
//
// Values whose floats agree after clearing the low PrecisionBits bits hash
// identically. Hashing never mutates v and is safe for concurrent use.
func HashWithOpts(v *Value, opts Options) (Digest, error) {
	if err := opts.Validate(); err != nil {
		return Digest{}, err
	}
	h := hasher{bits: opts.PrecisionBits, limit: opts.maxDepth()}
	return h.hash(v, 0)
}

// MustHash is like Hash but panics on error. Intended for values built
// entirely from constructors, which are always hashable.
func MustHash(v *Value) Digest {
	d, err := Hash(v)
	if err != nil {
		panic(err)
	}
	return d
}

type hasher struct {
	bits  uint
	limit int
}

func (h *hasher) hash(v *Value, depth int) (Digest, error) {
	switch v.Kind() {
	case KindDigest:
		return v.digestVal, nil
	case KindBytes:
		return Sum(v.bytesVal), nil
	case KindText:
		return Sum([]byte(v.textVal)), nil
	case KindInt:
		return Sum(canonInt(v.intVal)), nil
	case KindBool:
		return Sum(canonBool(v.boolVal)), nil
	case KindFloat:
		return Sum(canonFloat(v.floatVal, h.bits)), nil
	case KindArray:
		if v.arrayVal == nil {
			return Digest{}, &UnsupportedTypeError{Type: "nil array"}
		}
		return Sum(canonArray(v.arrayVal, h.bits)), nil
	case KindMap:
		if depth >= h.limit {
			return Digest{}, &DepthError{Limit: h.limit}
		}
		return h.hashMap(v.mapVal, depth+1)
	case KindSeq:
		if depth >= h.limit {
			return Digest{}, &DepthError{Limit: h.limit}
		}
		return h.hashSeq(v.seqVal, depth+1)
	default:
		if v == nil {
			return Digest{}, &UnsupportedTypeError{Type: "nil"}
		}
		return Digest{}, &UnsupportedTypeError{Type: v.kind.String()}
	}
}

// hashSeq hashes the ordered list of child digest hex strings.
func (h *hasher) hashSeq(items []*Value, depth int) (Digest, error) {
	hexes := make([]string, len(items))
	for i, item := range items {
		d, err := h.hash(item, depth)
		if err != nil {
			return Digest{}, atIndex(err, i)
		}
		hexes[i] = d.Hex()
	}
	return Sum(canonHexList(hexes)), nil
}

// hashMap hashes the sorted (key hex, value hex) pairs as a sequence of
// two-element text sequences. Entries whose keys hash alike collapse to
// the last one.
func (h *hasher) hashMap(entries []MapEntry, depth int) (Digest, error) {
	byKey := make(map[string]string, len(entries))
	for _, e := range entries {
		kd, err := h.hash(e.Key, depth)
		if err != nil {
			return Digest{}, atKey(err, entryLabel(e.Key))
		}
		vd, err := h.hash(e.Value, depth)
		if err != nil {
			return Digest{}, atKey(err, entryLabel(e.Key))
		}
		byKey[kd.Hex()] = vd.Hex()
	}

	pairs := make([][2]string, 0, len(byKey))
	for k, v := range byKey {
		pairs = append(pairs, [2]string{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	hexes := make([]string, len(pairs))
	for i, p := range pairs {
		hexes[i] = Sum(canonHexList([]string{
			Sum([]byte(p[0])).Hex(),
			Sum([]byte(p[1])).Hex(),
		})).Hex()
	}
	return Sum(canonHexList(hexes)), nil
}

// entryLabel names a map key in error paths.
func entryLabel(k *Value) string {
	switch k.Kind() {
	case KindText:
		return k.textVal
	case KindInt:
		return string(canonInt(k.intVal))
	default:
		return "<" + k.Kind().String() + ">"
	}
}
