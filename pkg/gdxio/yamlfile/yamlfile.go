// Package yamlfile decodes GDX symbol data from a YAML document. The
// format serves fixture corpora and golden files: symbols appear in slot
// order, and the universal set is synthesized from record keys exactly as
// the in-memory builder does it. Importing the package registers it for
// the .yaml and .yml extensions.
//
// Document shape:
//
//	version: "7"
//	producer: tests
//	symbols:
//	  - name: s
//	    kind: set
//	    description: Seven labels
//	    records:
//	      - {keys: [a], text: first label}
//	      - {keys: [b]}
//	  - name: p
//	    kind: parameter
//	    domain: [s]
//	    records:
//	      - {keys: [a], value: 4.2}
//	  - name: s_
//	    kind: alias
//	    alias_of: s
//
// A symbol's dimension comes from its domain if declared, else from its
// first record. Omitting domain leaves the declaration unavailable, which
// readers treat as all-wildcard.
package yamlfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/structura-labs/go-gdx/pkg/gdxio"
	"github.com/structura-labs/go-gdx/pkg/gdxio/memfile"
)

func init() {
	gdxio.Register(".yaml", Open)
	gdxio.Register(".yml", Open)
}

type document struct {
	Version  string      `yaml:"version"`
	Producer string      `yaml:"producer"`
	Symbols  []symbolDef `yaml:"symbols"`
}

type symbolDef struct {
	Name        string      `yaml:"name"`
	Kind        string      `yaml:"kind"`
	Domain      []string    `yaml:"domain"`
	Description string      `yaml:"description"`
	VarType     string      `yaml:"vartype"`
	AliasOf     string      `yaml:"alias_of"`
	Value       *float64    `yaml:"value"`
	Records     []recordDef `yaml:"records"`

	// DeclaredRecords overrides the record count the slot metadata
	// declares, so corpora can describe corrupt files.
	DeclaredRecords *int `yaml:"declared_records"`
}

type recordDef struct {
	Keys     []string `yaml:"keys"`
	Value    float64  `yaml:"value"`
	Text     string   `yaml:"text"`
	Marginal float64  `yaml:"marginal"`
	Lower    float64  `yaml:"lower"`
	Upper    float64  `yaml:"upper"`
	Scale    float64  `yaml:"scale"`
}

var varTypes = map[string]gdxio.VarType{
	"":         gdxio.VarUnknown,
	"unknown":  gdxio.VarUnknown,
	"binary":   gdxio.VarBinary,
	"integer":  gdxio.VarInteger,
	"positive": gdxio.VarPositive,
	"negative": gdxio.VarNegative,
	"free":     gdxio.VarFree,
	"sos1":     gdxio.VarSOS1,
	"sos2":     gdxio.VarSOS2,
	"semicont": gdxio.VarSemiCont,
	"semiint":  gdxio.VarSemiInt,
}

// Open reads the YAML document at path.
func Open(path string) (gdxio.Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", gdxio.ErrNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	rd, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rd, nil
}

// Parse decodes a YAML document into a reader.
func Parse(raw []byte) (gdxio.Reader, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	b := memfile.NewBuilder()
	if doc.Version != "" || doc.Producer != "" {
		b.SetMeta(doc.Version, doc.Producer)
	}
	for i, sym := range doc.Symbols {
		if sym.Name == "" {
			return nil, fmt.Errorf("symbol %d: missing name", i)
		}
		if err := addSymbol(b, sym); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", sym.Name, err)
		}
		if sym.DeclaredRecords != nil {
			b.DeclareRecords(sym.Name, *sym.DeclaredRecords)
		}
	}
	return b.Reader(), nil
}

func addSymbol(b *memfile.Builder, sym symbolDef) error {
	switch sym.Kind {
	case "set":
		if dim(sym) > 1 {
			tuples := make([][]string, len(sym.Records))
			for i, r := range sym.Records {
				tuples[i] = r.Keys
			}
			b.AddSetTuples(sym.Name, sym.Domain, sym.Description, tuples...)
			return nil
		}
		elems := make([]string, len(sym.Records))
		for i, r := range sym.Records {
			if len(r.Keys) != 1 {
				return fmt.Errorf("record %d: want one key, got %d", i, len(r.Keys))
			}
			elems[i] = r.Keys[0]
		}
		b.AddSet(sym.Name, sym.Domain, sym.Description, elems...)
		for _, r := range sym.Records {
			if r.Text != "" {
				b.SetText(sym.Name, r.Keys[0], r.Text)
			}
		}
		return nil

	case "parameter":
		if sym.Value != nil {
			b.AddScalar(sym.Name, sym.Description, *sym.Value)
			return nil
		}
		b.AddParameter(sym.Name, sym.Domain, sym.Description, recs(sym)...)
		return nil

	case "variable":
		vt, ok := varTypes[sym.VarType]
		if !ok {
			return fmt.Errorf("unknown vartype %q", sym.VarType)
		}
		b.AddVariable(sym.Name, sym.Domain, sym.Description, vt, recs(sym)...)
		return nil

	case "equation":
		b.AddEquation(sym.Name, sym.Domain, sym.Description)
		return nil

	case "alias":
		if sym.AliasOf == "" {
			return fmt.Errorf("alias without alias_of")
		}
		b.AddAlias(sym.Name, sym.AliasOf)
		return nil

	default:
		return fmt.Errorf("unknown kind %q", sym.Kind)
	}
}

func dim(sym symbolDef) int {
	if len(sym.Domain) > 0 {
		return len(sym.Domain)
	}
	if len(sym.Records) > 0 {
		return len(sym.Records[0].Keys)
	}
	return 1
}

func recs(sym symbolDef) []memfile.Rec {
	out := make([]memfile.Rec, len(sym.Records))
	for i, r := range sym.Records {
		out[i] = memfile.Rec{
			Keys:     r.Keys,
			Value:    r.Value,
			Marginal: r.Marginal,
			Lower:    r.Lower,
			Upper:    r.Upper,
			Scale:    r.Scale,
		}
	}
	return out
}
