package syntax

import (
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Language describes an editor language id.
type Language struct {
	ID         string
	Extensions []string
	Aliases    []string
}

var languages = []Language{
	{ID: "javascript", Extensions: []string{".js", ".mjs"}, Aliases: []string{"JavaScript", "javascript", "js"}},
	{ID: "javascriptreact", Extensions: []string{".jsx"}, Aliases: []string{"JavaScript React", "jsx", "react"}},
	{ID: "typescriptreact", Extensions: []string{".tsx"}, Aliases: []string{"TypeScript React", "tsx"}},
	{ID: "python", Extensions: []string{".py", ".pyw", ".pyc", ".pyo", ".pyd", ".pyz"}, Aliases: []string{"Python", "python", "py"}},
}

// Languages returns the languages known to the catalog.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

func languageByID(id string) (Language, bool) {
	for _, l := range languages {
		if l.ID == id {
			return l, true
		}
	}
	return Language{}, false
}

// languageByName maps an id or alias, case-insensitively.
func languageByName(name string) (Language, bool) {
	for _, l := range languages {
		if strings.EqualFold(l.ID, name) {
			return l, true
		}
		for _, a := range l.Aliases {
			if strings.EqualFold(a, name) {
				return l, true
			}
		}
	}
	return Language{}, false
}

// Detect guesses the language id of a file from its name and content. The
// catalog's own extensions win; otherwise linguist rules (shebang, known
// extensions, classifier) are consulted through enry.
func Detect(filename string, content []byte) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		for _, l := range languages {
			if slices.Contains(l.Extensions, ext) {
				return l.ID, true
			}
		}
	}

	if name, safe := enry.GetLanguageByShebang(content); safe {
		if l, ok := languageByName(name); ok {
			return l.ID, true
		}
	}
	if name, safe := enry.GetLanguageByExtension(filename); safe {
		if l, ok := languageByName(name); ok {
			return l.ID, true
		}
	}
	if len(content) > 0 {
		if name, safe := enry.GetLanguageByClassifier(content, []string{"JavaScript", "Python", "TSX"}); safe {
			if l, ok := languageByName(name); ok {
				return l.ID, true
			}
		}
	}
	return "", false
}

// Lookup fuzzy-matches query against language ids and aliases and returns
// the matching ids, best match first.
func Lookup(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var (
		targets []string
		owners  []string
	)
	for _, l := range languages {
		targets = append(targets, l.ID)
		owners = append(owners, l.ID)
		for _, a := range l.Aliases {
			targets = append(targets, a)
			owners = append(owners, l.ID)
		}
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.Stable(ranks)

	var out []string
	for _, r := range ranks {
		id := owners[r.OriginalIndex]
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
