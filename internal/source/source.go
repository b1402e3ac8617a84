// Package source opens hash inputs: files or stdin, optionally zstd or lz4
// compressed, holding a JSON or YAML document.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/Neumenon/numhash/numhash"
)

// StdinName is the input name that selects standard input.
const StdinName = "-"

// ============================================================
// Compression
// ============================================================

// Compression identifies a stream compression format.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// DetectCompression inspects the first bytes of a stream.
func DetectCompression(prefix []byte) Compression {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// NewReader wraps r with a decompressor chosen from its magic bytes.
func NewReader(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReader(r)
	prefix, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, err
	}

	c := DetectCompression(prefix)
	switch c {
	case CompressionZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, c, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), c, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(br)), c, nil
	default:
		return io.NopCloser(br), c, nil
	}
}

// ============================================================
// Formats
// ============================================================

// Format is the document syntax of an input.
type Format uint8

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat parses "auto", "json" or "yaml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q (want auto, json or yaml)", s)
	}
}

// FormatFor guesses the format from a file name, ignoring compression suffixes.
func FormatFor(name string) Format {
	base := strings.ToLower(name)
	for _, ext := range []string{".zst", ".zstd", ".lz4"} {
		base = strings.TrimSuffix(base, ext)
	}
	switch filepath.Ext(base) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// sniff picks JSON for documents that open like JSON and YAML otherwise.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '"') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode converts a document to a Value.
func Decode(data []byte, f Format, opts numhash.BridgeOpts) (*numhash.Value, error) {
	if f == FormatAuto {
		f = sniff(data)
	}
	if f == FormatJSON {
		return numhash.FromJSONWithOpts(data, opts)
	}
	return numhash.FromYAMLWithOpts(data, opts)
}

// ============================================================
// Inputs
// ============================================================

// Input is a fully read, decompressed document.
type Input struct {
	Name        string
	Format      Format
	Compression Compression
	Data        []byte
}

// Read loads the named input. StdinName reads from stdin. A non-auto
// format overrides the guess from the file name.
func Read(name string, stdin io.Reader, format Format) (*Input, error) {
	var r io.Reader
	if name == StdinName {
		r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	rc, c, err := NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: read %s: %w", name, c, err)
	}

	if format == FormatAuto && name != StdinName {
		format = FormatFor(name)
	}
	return &Input{Name: name, Format: format, Compression: c, Data: data}, nil
}

// Value decodes the input document.
func (in *Input) Value(opts numhash.BridgeOpts) (*numhash.Value, error) {
	v, err := Decode(in.Data, in.Format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}
	return v, nil
}
