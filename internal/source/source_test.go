package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/numhash/numhash"
)

const doc = `{"a": 12.0, "b": [1, 2, [3, 4]]}`

const docHex = "d0def49c13f88cffb5291c15c1b92643"

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func lz4Bytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionZstd, DetectCompression(zstdBytes(t, []byte(doc))))
	assert.Equal(t, CompressionLZ4, DetectCompression(lz4Bytes(t, []byte(doc))))
	assert.Equal(t, CompressionNone, DetectCompression([]byte(doc)))
	assert.Equal(t, CompressionNone, DetectCompression(nil))
}

func TestNewReader_Decompresses(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Compression
	}{
		{"plain", []byte(doc), CompressionNone},
		{"zstd", zstdBytes(t, []byte(doc)), CompressionZstd},
		{"lz4", lz4Bytes(t, []byte(doc)), CompressionLZ4},
		{"short", []byte("1"), CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, c, err := NewReader(bytes.NewReader(tt.data))
			require.NoError(t, err)
			defer rc.Close()
			assert.Equal(t, tt.want, c)

			var out bytes.Buffer
			_, err = out.ReadFrom(rc)
			require.NoError(t, err)
			if tt.name != "short" {
				assert.Equal(t, doc, out.String())
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("run.json"))
	assert.Equal(t, FormatJSON, FormatFor("run.JSON.zst"))
	assert.Equal(t, FormatYAML, FormatFor("cfg.yml.lz4"))
	assert.Equal(t, FormatYAML, FormatFor("cfg.yaml"))
	assert.Equal(t, FormatAuto, FormatFor("data.bin"))

	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("toml")
	require.Error(t, err)
}

func TestRead_FilesAndStdin(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"plain.json":      []byte(doc),
		"packed.json.zst": zstdBytes(t, []byte(doc)),
		"packed.yaml.lz4": lz4Bytes(t, []byte("a: 12.0\nb: [1, 2, [3, 4]]\n")),
		"noext":           []byte("b: [1, 2, [3, 4]]\na: 12.00000000000001\n"),
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}

	for name := range files {
		t.Run(name, func(t *testing.T) {
			in, err := Read(filepath.Join(dir, name), nil, FormatAuto)
			require.NoError(t, err)
			v, err := in.Value(numhash.DefaultBridgeOpts())
			require.NoError(t, err)
			assert.Equal(t, docHex, numhash.MustHash(v).Hex())
		})
	}

	in, err := Read(StdinName, strings.NewReader(doc), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, in.Format)
	v, err := in.Value(numhash.DefaultBridgeOpts())
	require.NoError(t, err)
	assert.Equal(t, docHex, numhash.MustHash(v).Hex())
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"), nil, FormatAuto)
	require.ErrorIs(t, err, os.ErrNotExist)

	in, err := Read(StdinName, strings.NewReader(`{"a": null}`), FormatJSON)
	require.NoError(t, err)
	_, err = in.Value(numhash.DefaultBridgeOpts())
	require.ErrorIs(t, err, numhash.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "-:")
}
