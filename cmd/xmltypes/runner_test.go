package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmltypes/internal/config"
	"github.com/usestring/xmltypes/pkg/codegen"
)

type testRun struct {
	out    bytes.Buffer
	errOut bytes.Buffer
	err    error
}

func runWith(t *testing.T, cfg Config, stdin string, args ...string) *testRun {
	t.Helper()
	tr := &testRun{}
	r := &runner{
		cfg:    cfg.resolve(&config.Config{Format: codegen.FormatRust, GoPackage: codegen.DefaultGoPackage, Workers: 2}),
		in:     strings.NewReader(stdin),
		out:    &tr.out,
		errOut: &tr.errOut,
	}
	tr.err = r.run(context.Background(), args)
	return tr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Stdin(t *testing.T) {
	tr := runWith(t, Config{}, `<root><item id="1">a</item></root>`, "-")
	require.NoError(t, tr.err)
	assert.Contains(t, tr.out.String(), "use serde::Deserialize;")
	assert.Contains(t, tr.out.String(), "pub struct Root {")
	assert.Empty(t, tr.errOut.String())
}

func TestRun_MergesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.xml", `<order id="1"><total>10</total></order>`)
	b := writeFile(t, dir, "b.xml", `<order><total>12</total></order>`)

	tr := runWith(t, Config{Format: "go", Package: "orders"}, "", a, b)
	require.NoError(t, tr.err)
	assert.Contains(t, tr.out.String(), "package orders")
	assert.Contains(t, tr.out.String(), `xml:"id,attr,omitempty"`)
}

func TestRun_XPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "feed.xml", `<feed><entry><id>1</id></entry><entry><id>2</id></entry></feed>`)

	tr := runWith(t, Config{XPath: "//entry", Format: "yaml"}, "", path)
	require.NoError(t, tr.err)
	assert.Contains(t, tr.out.String(), "root: Entry")
}

func TestRun_Malformed(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.xml", `<a><b>1</b></a>`)
	bad := writeFile(t, dir, "bad.xml", `<a><b></a>`)

	tr := runWith(t, Config{}, "", good, bad)
	require.Error(t, tr.err)
	assert.True(t, errors.Is(tr.err, errMalformed))
	assert.Empty(t, tr.out.String())

	diag := tr.errOut.String()
	assert.Contains(t, diag, "error: "+bad)
	assert.Contains(t, diag, "open elements: /a/b")
	assert.NotContains(t, diag, good)
}

func TestRun_UsageErrors(t *testing.T) {
	tr := runWith(t, Config{}, "")
	assert.True(t, errors.Is(tr.err, errUsage))

	tr = runWith(t, Config{Check: true}, "<a/>", "-")
	assert.True(t, errors.Is(tr.err, errUsage))

	tr = runWith(t, Config{}, "<a/>", "-", "-")
	assert.True(t, errors.Is(tr.err, errUsage))

	tr = runWith(t, Config{Format: "cobol"}, "<a/>", "-")
	assert.True(t, errors.Is(tr.err, codegen.ErrUnknownFormat))
}

func TestRun_OutputAndCheck(t *testing.T) {
	dir := t.TempDir()
	sample := writeFile(t, dir, "sample.xml", `<root><item id="1">a</item></root>`)
	out := filepath.Join(dir, "model.rs")

	tr := runWith(t, Config{Output: out}, "", sample)
	require.NoError(t, tr.err)
	assert.Empty(t, tr.out.String())

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "pub struct Root {")

	tr = runWith(t, Config{Output: out, Check: true}, "", sample)
	require.NoError(t, tr.err)
	assert.Empty(t, tr.errOut.String())

	drifted := writeFile(t, dir, "drifted.xml", `<root><item id="x">a</item></root>`)
	tr = runWith(t, Config{Output: out, Check: true}, "", drifted)
	require.Error(t, tr.err)
	assert.True(t, errors.Is(tr.err, errDrift))
	assert.Contains(t, tr.errOut.String(), "--- "+out)
	assert.Contains(t, tr.errOut.String(), "-        pub id: i64,")
	assert.Contains(t, tr.errOut.String(), "+        pub id: String,")

	unchanged, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, written, unchanged)
}

func TestRun_Validate(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.xml", `<r><link href="http://example.com/a">x</link></r>`)
	b := writeFile(t, dir, "b.xml", `<r><link href="1">y</link></r>`)

	// the attribute kind of the last sample wins
	tr := runWith(t, Config{Validate: true}, "", b, a)
	require.NoError(t, tr.err)

	tr = runWith(t, Config{Validate: true}, "", a, b)
	require.Error(t, tr.err)
	assert.True(t, errors.Is(tr.err, errInvalidSamples))
	assert.Contains(t, tr.errOut.String(), "warning: "+a)
}

func TestConfig_Resolve(t *testing.T) {
	env := &config.Config{
		Format:      codegen.FormatGo,
		GoPackage:   "model",
		Workers:     4,
		StrictKinds: true,
	}

	got := (&Config{Package: "feeds"}).resolve(env)
	assert.Equal(t, codegen.FormatGo, got.Format)
	assert.Equal(t, "feeds", got.Package)
	assert.Equal(t, 4, got.Workers)
	assert.True(t, got.Strict)
	assert.False(t, got.Split)
}

func TestLineDiff(t *testing.T) {
	from := "a\nb\nc\nd\ne\nf\ng\n"
	to := "a\nb\nc\nX\ne\nf\ng\n"

	assert.Equal(t, " b\n c\n-d\n+X\n e\n f\n", lineDiff(from, to, false))
}
