package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/numhash/internal/logging"
	"github.com/Neumenon/numhash/numhash"
)

const (
	docJSON = `{"a": 12.0, "b": [1, 2, [3, 4]]}`
	docYAML = "b: [1, 2, [3, 4]]\na: 12.00000000000001\n"
	docHex  = "d0def49c13f88cffb5291c15c1b92643"
)

type fixture struct {
	t   *testing.T
	dir string

	in  *bytes.Buffer
	out *bytes.Buffer
	err *bytes.Buffer

	capture *logging.Capture
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		t:   t,
		dir: t.TempDir(),
		in:  &bytes.Buffer{},
		out: &bytes.Buffer{},
		err: &bytes.Buffer{},
	}
}

func (f *fixture) write(name, content string) string {
	f.t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(f.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (f *fixture) run(args ...string) error {
	f.t.Helper()
	lg, capture := logging.NewCapture()
	f.capture = capture
	cmd := NewRootCmd(WithIO(f.in, f.out, f.err), WithLogger(lg))
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func (f *fixture) lines() []string {
	return strings.Split(strings.TrimRight(f.out.String(), "\n"), "\n")
}

func TestSum_FilesInArgumentOrder(t *testing.T) {
	f := newFixture(t)
	a := f.write("a.json", docJSON)
	b := f.write("b.yaml", docYAML)
	c := f.write("c.json", `"test string"`)

	require.NoError(t, f.run("sum", "-j", "2", c, a, b))

	assert.Equal(t, []string{
		"6f8db599de986fab7a21625b7916589c  " + c,
		docHex + "  " + a,
		docHex + "  " + b,
	}, f.lines())
	assert.Empty(t, f.err.String())
}

func TestSum_Stdin(t *testing.T) {
	f := newFixture(t)
	f.in.WriteString(docJSON)

	require.NoError(t, f.run("sum"))
	assert.Equal(t, docHex+"  -\n", f.out.String())
}

func TestSum_PrecisionFlag(t *testing.T) {
	f := newFixture(t)
	path := f.write("noisy.yaml", docYAML)

	require.NoError(t, f.run("sum", "--precision", "0", path))
	assert.NotContains(t, f.out.String(), docHex)

	err := f.run("sum", "--precision", "53", path)
	require.ErrorIs(t, err, numhash.ErrInvalidPrecision)
}

func TestSum_FormatOverride(t *testing.T) {
	f := newFixture(t)
	path := f.write("doc.txt", "[1, 2, 3]")

	require.NoError(t, f.run("sum", "--format", "yaml", path))
	assert.Equal(t, "8f481cede6d2ddc07cb36aa084d9a64d  "+path+"\n", f.out.String())

	err := f.run("sum", "--format", "toml", path)
	require.Error(t, err)
}

func TestSum_PackArrays(t *testing.T) {
	f := newFixture(t)
	path := f.write("floats.json", "[1.5, 2.5, 3.5, 4.5]")

	require.NoError(t, f.run("sum", "--pack-arrays", path))
	assert.Equal(t, "6b041131edf29604d93e680c94c3e65a  "+path+"\n", f.out.String())
}

func TestSum_PartialFailure(t *testing.T) {
	f := newFixture(t)
	good := f.write("good.json", docJSON)
	bad := f.write("bad.json", `{"a": null}`)
	missing := filepath.Join(f.dir, "missing.json")

	err := f.run("sum", good, bad, missing)

	var pe *partialError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Failed)
	assert.Equal(t, 3, pe.Total)
	assert.Equal(t, docHex+"  "+good+"\n", f.out.String())
	assert.Contains(t, f.err.String(), bad+`: numhash: cannot hash value of type null at ["a"]`)
	assert.Contains(t, f.err.String(), "missing.json")
}

func TestSum_Logs(t *testing.T) {
	f := newFixture(t)
	path := f.write("a.json", docJSON)

	require.NoError(t, f.run("sum", path))

	var msgs []string
	for _, e := range f.capture.Entries() {
		msgs = append(msgs, e.Msg)
		if e.Msg == "hashed" {
			assert.Equal(t, path, e.Attrs["input"])
			assert.Equal(t, docHex, e.Attrs["digest"])
		}
		if e.Msg == "sum complete" {
			assert.Equal(t, int64(1), e.Attrs["inputs"])
			assert.Equal(t, int64(0), e.Attrs["failed"])
		}
	}
	assert.Contains(t, msgs, "config resolved")
	assert.Contains(t, msgs, "hashed")
	assert.Contains(t, msgs, "sum complete")
}

func TestConfigFile(t *testing.T) {
	f := newFixture(t)
	path := f.write("floats.json", "[1.5, 2.5, 3.5, 4.5]")
	cfg := f.write("numhash.yaml", "pack_arrays: true\njobs: 1\n")

	require.NoError(t, f.run("--config", cfg, "sum", path))
	assert.Equal(t, "6b041131edf29604d93e680c94c3e65a  "+path+"\n", f.out.String())

	bad := f.write("bad.yaml", "precision_bits: 60\n")
	err := f.run("--config", bad, "sum", path)
	require.ErrorIs(t, err, numhash.ErrInvalidPrecision)

	// Flags win over the file.
	f.out.Reset()
	require.NoError(t, f.run("--config", bad, "--precision", "12", "sum", path))
	assert.Contains(t, f.out.String(), path)

	err = f.run("--config", filepath.Join(f.dir, "none.yaml"), "sum", path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	f := newFixture(t)
	cfg, err := LoadConfig(f.write("c.yaml", "max_depth: 8\n"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.MaxDepth = 8
	assert.Equal(t, want, cfg)
	assert.Equal(t, 8, cfg.HashOptions().MaxDepth)
	assert.True(t, cfg.BridgeOptions().Extended)
}

func TestTruncate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("truncate", "1.0000000000001", "12", "1.01"))

	assert.Equal(t, []string{
		"1.0000000000001 -> 1 (0x3ff00000000001c2 -> 0x3ff0000000000000)",
		"12 -> 12 (0x4028000000000000 -> 0x4028000000000000)",
		"1.01 -> 1.0099999999993088 (0x3ff028f5c28f5c29 -> 0x3ff028f5c28f5000)",
	}, f.lines())

	f.out.Reset()
	require.NoError(t, f.run("truncate", "--precision", "0", "1.0000000000001"))
	assert.Equal(t, "1.0000000000001 -> 1.0000000000001 (0x3ff00000000001c2 -> 0x3ff00000000001c2)\n", f.out.String())

	require.Error(t, f.run("truncate", "abc"))
	require.Error(t, f.run("truncate"))
}

func TestDemo(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("demo"))

	out := f.out.String()
	for _, want := range []string{
		"# string\n",
		"6f8db599de986fab7a21625b7916589c  text \"test string\"\n",
		"e02e0d84c1f7b647c18ab9646d57ec89  1.0\n",
		"e02e0d84c1f7b647c18ab9646d57ec89  1.0 + 1e-13\n",
		docHex + "  {a: 12.0 + 1e-14, b: [1, 2, [3, 4]]}\n",
		"# complex array\n",
		"c209bc6c8a66ce68879b82880cb75ae9  [1j + 1e-13j]\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.Equal(t, 4, strings.Count(out, "# "))
}

func TestVersion(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("version"))
	assert.Equal(t, "numhash dev\n", f.out.String())
}

func TestRun_ExitCodes(t *testing.T) {
	code, err := run(context.Background(), []string{"no-such-cmd"})
	require.Error(t, err)
	assert.Equal(t, exitFailure, code)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(path, []byte(docJSON), 0o644))
	code, err = run(ctx, []string{"sum", path})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, exitSignal, code)
}
