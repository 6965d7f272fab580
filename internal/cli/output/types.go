package output

// FileInfo is the JSON shape of file-level metadata.
type FileInfo struct {
	Path         string `json:"path"`
	Version      string `json:"version"`
	Producer     string `json:"producer"`
	SymbolCount  int    `json:"symbol_count"`
	ElementCount int    `json:"element_count"`
}

// SymbolInfo is the JSON shape of one symbol's metadata.
type SymbolInfo struct {
	Slot        int      `json:"slot"`
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	VarType     string   `json:"vartype,omitempty"`
	Dim         int      `json:"dim"`
	Records     int      `json:"records"`
	Declared    []string `json:"declared,omitempty"`
	Domain      []string `json:"domain,omitempty"`
	Inferred    bool     `json:"inferred,omitempty"`
	AliasOf     string   `json:"alias_of,omitempty"`
	Description string   `json:"description,omitempty"`
}

// ListOutput is the JSON shape of the list command.
type ListOutput struct {
	File    FileInfo     `json:"file"`
	Symbols []SymbolInfo `json:"symbols"`
}

// InfoOutput is the JSON shape of the info command.
type InfoOutput struct {
	Symbol  SymbolInfo `json:"symbol"`
	Summary string     `json:"summary"`
}

// ElementInfo is one set element with its associated text.
type ElementInfo struct {
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
}

// RecordInfo is one sparse cell of a dumped symbol.
type RecordInfo struct {
	Keys  []string `json:"keys"`
	Value float64  `json:"value"`
}

// DumpOutput is the JSON shape of the dump command. Exactly one of Value,
// Elements, Members, or Records is populated, matching the symbol kind.
type DumpOutput struct {
	Symbol   SymbolInfo    `json:"symbol"`
	Value    *float64      `json:"value,omitempty"`
	Elements []ElementInfo `json:"elements,omitempty"`
	Members  [][]string    `json:"members,omitempty"`
	Records  []RecordInfo  `json:"records,omitempty"`
}
