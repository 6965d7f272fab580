package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura-labs/go-gdx/internal/cli/config"
	"github.com/structura-labs/go-gdx/internal/cli/output"
	"github.com/structura-labs/go-gdx/pkg/gdx"

	_ "github.com/structura-labs/go-gdx/pkg/gdxio/yamlfile"
)

const fixtureDoc = `version: "7"
producer: tests
symbols:
  - name: plants
    kind: set
    description: canning plants
    records:
      - {keys: [seattle], text: west coast}
      - {keys: [san-diego]}
  - name: coastal
    kind: set
    domain: [plants]
    records:
      - {keys: [seattle]}
  - name: capacity
    kind: parameter
    domain: [plants]
    description: cases per week
    records:
      - {keys: [seattle], value: 350}
      - {keys: [san-diego], value: 600}
  - name: freight
    kind: parameter
    value: 90
  - name: plants2
    kind: alias
    alias_of: plants
`

// writeFixture drops the shared YAML fixture into a temp dir and resets
// loader state so commands fall back to environment configuration.
func writeFixture(t *testing.T) string {
	t.Helper()
	config.ResetConfig()
	path := filepath.Join(t.TempDir(), "transport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureDoc), 0o600))
	return path
}

// runCmd executes a command with captured output.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	got, err := runCmd(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, got, "gdxdump v1.2.3")
}

func TestListMarkdown(t *testing.T) {
	fixture := writeFixture(t)

	got, err := runCmd(t, NewListCommand(), fixture)
	require.NoError(t, err)

	// The universal set plus every declared symbol, each as a heading.
	assert.Contains(t, got, "## *")
	assert.Contains(t, got, "## plants")
	assert.Contains(t, got, "## coastal(plants)")
	assert.Contains(t, got, "## capacity(plants)")
	assert.Contains(t, got, "## freight")
	assert.Contains(t, got, "## plants2")
	assert.Contains(t, got, "- **Alias of:** plants")
}

func TestListJSON(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_OUTPUT", "json")

	got, err := runCmd(t, NewListCommand(), fixture)
	require.NoError(t, err)

	var out output.ListOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))

	assert.Equal(t, "tests", out.File.Producer)
	assert.Equal(t, 5, out.File.SymbolCount)
	require.Len(t, out.Symbols, 6)
	assert.Equal(t, "*", out.Symbols[0].Name)
	assert.Equal(t, "capacity", out.Symbols[3].Name)
	assert.Equal(t, "parameter", out.Symbols[3].Kind)
}

func TestListMissingFile(t *testing.T) {
	writeFixture(t)
	_, err := runCmd(t, NewListCommand(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestInfoResolvesDomain(t *testing.T) {
	fixture := writeFixture(t)

	got, err := runCmd(t, NewInfoCommand(), fixture, "capacity")
	require.NoError(t, err)

	assert.Contains(t, got, "capacity(plants)")
	assert.Contains(t, got, "- **Declared:** plants")
	assert.Contains(t, got, "- **Resolved:** plants")
	assert.Contains(t, got, "- **Records:** 2")
}

func TestInfoJSON(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_OUTPUT", "json")

	got, err := runCmd(t, NewInfoCommand(), fixture, "capacity")
	require.NoError(t, err)

	var out output.InfoOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	assert.Equal(t, []string{"plants"}, out.Symbol.Domain)
	assert.False(t, out.Symbol.Inferred)
	assert.Contains(t, out.Summary, "capacity")
}

func TestInfoUnknownSymbol(t *testing.T) {
	fixture := writeFixture(t)

	_, err := runCmd(t, NewInfoCommand(), fixture, "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, gdx.ErrUnknownSymbol)
}

func TestDumpParameter(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_OUTPUT", "json")

	got, err := runCmd(t, NewDumpCommand(), fixture, "capacity")
	require.NoError(t, err)

	var out output.DumpOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	require.Len(t, out.Records, 2)
	assert.Equal(t, []string{"seattle"}, out.Records[0].Keys)
	assert.Equal(t, 350.0, out.Records[0].Value)
	assert.Equal(t, 600.0, out.Records[1].Value)
}

func TestDumpParameterMarkdown(t *testing.T) {
	fixture := writeFixture(t)

	got, err := runCmd(t, NewDumpCommand(), fixture, "capacity")
	require.NoError(t, err)

	assert.Contains(t, got, "## capacity(plants)")
	assert.Contains(t, got, "seattle")
	assert.Contains(t, got, "350")
	assert.Contains(t, got, "600")
}

func TestDumpScalar(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_OUTPUT", "json")

	got, err := runCmd(t, NewDumpCommand(), fixture, "freight")
	require.NoError(t, err)

	var out output.DumpOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	require.NotNil(t, out.Value)
	assert.Equal(t, 90.0, *out.Value)
}

func TestDumpSetElements(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_OUTPUT", "json")

	got, err := runCmd(t, NewDumpCommand(), fixture, "plants")
	require.NoError(t, err)

	var out output.DumpOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	require.Len(t, out.Elements, 2)
	assert.Equal(t, "seattle", out.Elements[0].Label)
	assert.Equal(t, "west coast", out.Elements[0].Text)
	assert.Equal(t, "san-diego", out.Elements[1].Label)
}

func TestDumpAliasForwards(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_OUTPUT", "json")

	got, err := runCmd(t, NewDumpCommand(), fixture, "plants2")
	require.NoError(t, err)

	var out output.DumpOutput
	require.NoError(t, json.Unmarshal([]byte(got), &out))
	require.Len(t, out.Elements, 2)
	assert.Equal(t, "plants", out.Symbol.AliasOf)
}

func TestSkipOptionRefusesAccess(t *testing.T) {
	fixture := writeFixture(t)
	t.Setenv("GDXDUMP_SKIP", "capacity")

	_, err := runCmd(t, NewDumpCommand(), fixture, "capacity")
	require.Error(t, err)
	assert.ErrorIs(t, err, gdx.ErrSkipped)
}
