package syntax

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed grammars/*.yaml
var grammarFS embed.FS

// Grammar is the subset of a TextMate grammar the catalog reads.
type Grammar struct {
	Name           string             `yaml:"name"`
	ScopeName      string             `yaml:"scopeName"`
	FileTypes      []string           `yaml:"fileTypes"`
	FirstLineMatch string             `yaml:"firstLineMatch"`
	Patterns       []Pattern          `yaml:"patterns"`
	Repository     map[string]Pattern `yaml:"repository"`
}

type Pattern struct {
	Name     string    `yaml:"name"`
	Match    string    `yaml:"match"`
	Begin    string    `yaml:"begin"`
	End      string    `yaml:"end"`
	Include  string    `yaml:"include"`
	Patterns []Pattern `yaml:"patterns"`
}

// catalogEntry binds a scope to a grammar file and the languages it serves.
type catalogEntry struct {
	file      string
	languages []string
}

// The jsx grammar also serves tsx.
var catalog = map[string]catalogEntry{
	"source.js":     {file: "grammars/javascript.yaml", languages: []string{"javascript"}},
	"source.js.jsx": {file: "grammars/javascriptreact.yaml", languages: []string{"javascriptreact"}},
	"source.tsx":    {file: "grammars/javascriptreact.yaml", languages: []string{"typescriptreact"}},
	"source.python": {file: "grammars/python.yaml", languages: []string{"python"}},
}

// loadOrder loads the base JavaScript grammar before the grammars that
// include it.
var loadOrder = []string{"source.js", "source.python", "source.js.jsx", "source.tsx"}

func parseGrammar(file string) (*Grammar, error) {
	data, err := grammarFS.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if g.ScopeName == "" {
		return nil, fmt.Errorf("parse %s: missing scopeName", file)
	}
	return &g, nil
}
