package yamlfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

const sample = `
version: "7"
producer: yamltests
symbols:
  - name: s
    kind: set
    description: Base labels
    records:
      - {keys: [a], text: first}
      - {keys: [b]}
  - name: pairs
    kind: set
    domain: [s, s]
    records:
      - {keys: [a, b]}
  - name: p
    kind: parameter
    domain: [s]
    description: Data
    records:
      - {keys: [a], value: 4.2}
  - name: pi
    kind: parameter
    value: 3.14
  - name: x
    kind: variable
    vartype: free
    domain: [s]
    records:
      - {keys: [a], value: 1, marginal: 0.5}
  - name: s_
    kind: alias
    alias_of: s
  - name: bal
    kind: equation
    domain: [s]
`

func drain(t *testing.T, rd gdxio.Reader, slot int) []gdxio.Record {
	t.Helper()
	n, err := rd.StartRead(slot)
	require.NoError(t, err)
	var out []gdxio.Record
	for {
		rec, err := rd.NextRecord()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		keys := make([]string, len(rec.Keys))
		copy(keys, rec.Keys)
		rec.Keys = keys
		out = append(out, rec)
	}
	require.Len(t, out, n, "declared record count should match")
	return out
}

func TestParseLayout(t *testing.T) {
	rd, err := Parse([]byte(sample))
	require.NoError(t, err)
	defer rd.Close()

	meta := rd.Meta()
	assert.Equal(t, "7", meta.Version)
	assert.Equal(t, "yamltests", meta.Producer)
	assert.Equal(t, 7, meta.SymbolCount)
	assert.Equal(t, 2, meta.ElementCount)

	uni, err := rd.SymbolMeta(0)
	require.NoError(t, err)
	assert.Equal(t, "*", uni.Name)
	assert.Equal(t, 2, uni.Records)

	s, err := rd.SymbolMeta(1)
	require.NoError(t, err)
	assert.Equal(t, gdxio.KindSet, s.Kind)
	assert.Equal(t, 1, s.Dim)
	assert.Equal(t, 2, s.Records)

	pairs, err := rd.SymbolMeta(2)
	require.NoError(t, err)
	assert.Equal(t, 2, pairs.Dim)
	dom, err := rd.DeclaredDomain(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "s"}, dom)

	// s carries no domain declaration at all
	_, err = rd.DeclaredDomain(1)
	assert.Error(t, err)

	al, err := rd.SymbolMeta(6)
	require.NoError(t, err)
	assert.Equal(t, gdxio.KindAlias, al.Kind)
	assert.Equal(t, "Aliased with s", al.Description)

	eq, err := rd.SymbolMeta(7)
	require.NoError(t, err)
	assert.Equal(t, gdxio.KindEquation, eq.Kind)
}

func TestParseRecordsAndTexts(t *testing.T) {
	rd, err := Parse([]byte(sample))
	require.NoError(t, err)
	defer rd.Close()

	srecs := drain(t, rd, 1)
	assert.Equal(t, []string{"a"}, srecs[0].Keys)
	text, ok := rd.LabelText(int(srecs[0].Values[gdxio.ValLevel]))
	require.True(t, ok)
	assert.Equal(t, "first", text)
	assert.Zero(t, srecs[1].Values[gdxio.ValLevel], "element without text points at entry 0")

	precs := drain(t, rd, 3)
	assert.Equal(t, 4.2, precs[0].Values[gdxio.ValLevel])

	pirecs := drain(t, rd, 4)
	require.Len(t, pirecs, 1)
	assert.Empty(t, pirecs[0].Keys)
	assert.Equal(t, 3.14, pirecs[0].Values[gdxio.ValLevel])

	xrecs := drain(t, rd, 5)
	assert.Equal(t, 0.5, xrecs[0].Values[gdxio.ValMarginal])

	x, err := rd.SymbolMeta(5)
	require.NoError(t, err)
	assert.Equal(t, gdxio.VarFree, x.VarType)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "symbols: ["},
		{"missing name", "symbols:\n  - kind: set"},
		{"unknown kind", "symbols:\n  - {name: a, kind: mystery}"},
		{"alias without target", "symbols:\n  - {name: a, kind: alias}"},
		{"bad vartype", "symbols:\n  - {name: v, kind: variable, vartype: imaginary}"},
		{"set record arity", "symbols:\n  - name: s\n    kind: set\n    records:\n      - {keys: []}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestDeclaredRecordsOverride(t *testing.T) {
	doc := `
symbols:
  - name: s
    kind: set
    declared_records: 9
    records:
      - {keys: [a]}
`
	rd, err := Parse([]byte(doc))
	require.NoError(t, err)
	defer rd.Close()

	sm, err := rd.SymbolMeta(1)
	require.NoError(t, err)
	assert.Equal(t, 9, sm.Records, "declared count carries the override")

	n, err := rd.StartRead(1)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	_, err = rd.NextRecord()
	require.NoError(t, err)
	_, err = rd.NextRecord()
	assert.Equal(t, io.EOF, err, "only one actual record")
}

func TestOpenAndRegistration(t *testing.T) {
	assert.True(t, gdxio.IsRegistered(".yaml"))
	assert.True(t, gdxio.IsRegistered(".yml"))

	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	rd, err := gdxio.Open(path)
	require.NoError(t, err, "registry dispatches .yaml here")
	defer rd.Close()
	assert.Equal(t, 7, rd.Meta().SymbolCount)

	_, err = Open(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, gdxio.ErrNotFound)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("symbols: ["), 0o644))
	_, err = Open(filepath.Join(dir, "broken.yaml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, gdxio.ErrNotFound)
}
