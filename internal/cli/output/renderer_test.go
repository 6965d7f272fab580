package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRendererModeResolution(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		want Mode
	}{
		{"auto falls back to markdown off-terminal", ModeAuto, ModeMarkdown},
		{"explicit text", ModeText, ModeText},
		{"explicit markdown", ModeMarkdown, ModeMarkdown},
		{"explicit json", ModeJSON, ModeJSON},
		{"unknown resolves like auto", Mode("bogus"), ModeMarkdown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			r := NewRenderer(&out, &errOut, tt.mode)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestHeaderMarkdown(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeMarkdown)
	r.Header(2, "Symbols")
	assert.Equal(t, "## Symbols\n", out.String())
}

func TestHeaderTextUnstyledOffTerminal(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeText)
	r.Header(1, "Symbols")
	assert.Equal(t, "Symbols\n", out.String())
}

func TestKeyValue(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeMarkdown)
	r.KeyValue("Kind", "set")
	assert.Equal(t, "- **Kind:** set\n", out.String())

	out.Reset()
	r = NewRenderer(&out, &bytes.Buffer{}, ModeText)
	r.KeyValue("Kind", "set")
	assert.Contains(t, out.String(), "Kind:")
	assert.Contains(t, out.String(), "set")
}

func TestTableMarkdown(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeMarkdown)
	r.Table([]string{"Name", "Kind"}, [][]string{{"s", "set"}, {"p", "parameter"}})

	got := out.String()
	require.NotEmpty(t, got)
	assert.Contains(t, got, "|")
	assert.Contains(t, got, "s")
	assert.Contains(t, got, "parameter")
}

func TestTableText(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeText)
	r.Table([]string{"Name"}, [][]string{{"demand"}})
	assert.Contains(t, out.String(), "demand")
}

func TestErrorGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)
	r.Error("boom")
	assert.Empty(t, out.String())
	assert.Equal(t, "boom\n", errOut.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Top", FormatHeader(1, "Top"))
	assert.Equal(t, "### Deep", FormatHeader(3, "Deep"))
	assert.Equal(t, "- **Records:** 42", FormatKeyValue("Records", 42))
}

func TestPrintf(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeText)
	r.Printf("%s = %g\n", "total", 3.14)
	assert.True(t, strings.HasPrefix(out.String(), "total = 3.14"))
}
