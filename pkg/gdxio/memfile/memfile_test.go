package memfile

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
)

func TestUniverseSynthesis(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "plain set", "a", "b", "c")
	b.AddParameter("p", []string{"s"}, "values",
		Rec{Keys: []string{"c"}, Value: 1},
		Rec{Keys: []string{"d"}, Value: 2},
	)

	r := b.Reader()
	meta := r.Meta()
	assert.Equal(t, 2, meta.SymbolCount, "universal set does not count as a symbol")
	assert.Equal(t, 4, meta.ElementCount)

	uni, err := r.SymbolMeta(0)
	require.NoError(t, err)
	assert.Equal(t, "*", uni.Name)
	assert.Equal(t, gdxio.KindSet, uni.Kind)
	assert.Equal(t, 1, uni.Dim)
	assert.Equal(t, 4, uni.Records)

	n, err := r.StartRead(0)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	var labels []string
	for {
		rec, err := r.NextRecord()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		labels = append(labels, rec.Keys[0])
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels, "labels appear in first-seen order")
}

func TestSlotLayoutAndStreaming(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "", "x", "y")
	b.AddParameter("p", []string{"s"}, "", Rec{Keys: []string{"x"}, Value: 1.5})

	r := b.Reader()

	sm, err := r.SymbolMeta(1)
	require.NoError(t, err)
	assert.Equal(t, "s", sm.Name)
	assert.Equal(t, gdxio.KindSet, sm.Kind)

	pm, err := r.SymbolMeta(2)
	require.NoError(t, err)
	assert.Equal(t, "p", pm.Name)
	assert.Equal(t, gdxio.KindParameter, pm.Kind)
	assert.Equal(t, 1, pm.Records)

	n, err := r.StartRead(2)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	rec, err := r.NextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, rec.Keys)
	assert.Equal(t, 1.5, rec.Values[gdxio.ValLevel])

	_, err = r.NextRecord()
	assert.Equal(t, io.EOF, err)

	_, err = r.SymbolMeta(3)
	assert.Error(t, err, "slot past the table should fail")
}

func TestDeclaredDomain(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "", "a")
	b.AddParameter("p", nil, "no recorded domain", Rec{Keys: []string{"a"}, Value: 1})

	r := b.Reader()

	dom, err := r.DeclaredDomain(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, dom)

	_, err = r.DeclaredDomain(2)
	assert.Error(t, err, "nil domain reads back as unavailable")
}

func TestSetTexts(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "", "a", "b")
	b.SetText("s", "b", "second element")

	r := b.Reader()
	_, err := r.StartRead(1)
	require.NoError(t, err)

	recA, err := r.NextRecord()
	require.NoError(t, err)
	_, ok := r.LabelText(int(recA.Values[gdxio.ValLevel]))
	assert.False(t, ok, "element without text has index 0")

	recB, err := r.NextRecord()
	require.NoError(t, err)
	text, ok := r.LabelText(int(recB.Values[gdxio.ValLevel]))
	require.True(t, ok)
	assert.Equal(t, "second element", text)
}

func TestDeclareRecordsOverride(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "", "a", "b")
	b.DeclareRecords("s", 5)

	r := b.Reader()
	n, err := r.StartRead(1)
	require.NoError(t, err)
	assert.Equal(t, 5, n, "declared count reflects the override")

	count := 0
	for {
		_, err := r.NextRecord()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	assert.Equal(t, 2, count, "actual records are unchanged")
}

func TestReaderSnapshotIsolation(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "", "a")

	r1 := b.Reader()
	b.AddSet("t", []string{"*"}, "", "b")
	r2 := b.Reader()

	assert.Equal(t, 1, r1.Meta().SymbolCount, "earlier snapshot unaffected by later adds")
	assert.Equal(t, 2, r2.Meta().SymbolCount)
}

func TestAliasAndEquationSlots(t *testing.T) {
	b := NewBuilder()
	b.AddSet("s", []string{"*"}, "", "a", "b")
	b.AddAlias("s_", "s")
	b.AddEquation("bal", []string{"s"}, "balance")

	r := b.Reader()

	am, err := r.SymbolMeta(2)
	require.NoError(t, err)
	assert.Equal(t, gdxio.KindAlias, am.Kind)
	assert.Equal(t, "Aliased with s", am.Description)
	assert.Equal(t, 1, am.Dim, "alias mirrors target dimensionality")

	em, err := r.SymbolMeta(3)
	require.NoError(t, err)
	assert.Equal(t, gdxio.KindEquation, em.Kind)
}
