package numhash

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is matched by every UnsupportedTypeError.
	ErrUnsupportedType = errors.New("numhash: unsupported type")

	// ErrMaxDepth is matched by every DepthError.
	ErrMaxDepth = errors.New("numhash: maximum nesting depth exceeded")

	// ErrInvalidPrecision is returned when PrecisionBits would reach into the exponent.
	ErrInvalidPrecision = errors.New("numhash: invalid precision bits")

	// ErrShapeMismatch is returned when an array shape does not cover its data.
	ErrShapeMismatch = errors.New("numhash: shape does not match element count")
)

// UnsupportedTypeError reports a value with no hashing rule.
//
// Path locates the offending value inside the top-level input, e.g. `[2]["a"]`,
// and is empty when the top-level value itself is unsupported.
type UnsupportedTypeError struct {
	Type string
	Path string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("numhash: cannot hash value of type %s", e.Type)
	}
	return fmt.Sprintf("numhash: cannot hash value of type %s at %s", e.Type, e.Path)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// DepthError reports input nested deeper than Options.MaxDepth.
type DepthError struct {
	Limit int
	Path  string
}

func (e *DepthError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("numhash: nesting deeper than %d", e.Limit)
	}
	return fmt.Sprintf("numhash: nesting deeper than %d at %s", e.Limit, e.Path)
}

func (e *DepthError) Unwrap() error { return ErrMaxDepth }

// atIndex prefixes the location of a failing sequence element.
// Paths are assembled while the error unwinds.
func atIndex(err error, i int) error {
	return prefixPath(err, fmt.Sprintf("[%d]", i))
}

// atKey prefixes the location of a failing map entry.
func atKey(err error, key string) error {
	return prefixPath(err, fmt.Sprintf("[%q]", key))
}

func prefixPath(err error, seg string) error {
	var ute *UnsupportedTypeError
	if errors.As(err, &ute) {
		ute.Path = seg + ute.Path
		return err
	}
	var de *DepthError
	if errors.As(err, &de) {
		de.Path = seg + de.Path
	}
	return err
}
