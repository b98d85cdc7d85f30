// Package grapheme splits text into user-perceived characters and measures
// their terminal cell widths.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Join concatenates grapheme clusters into a single string.
func Join(clusters []string) string {
	if len(clusters) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, c := range clusters {
		sb.WriteString(c)
	}
	return sb.String()
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Width returns the cell width of cluster when it starts at visual column
// col. Tabs advance to the next multiple of tabSize.
func Width(cluster string, col, tabSize int) int {
	if cluster == "\t" {
		if tabSize <= 0 {
			tabSize = 1
		}
		return tabSize - col%tabSize
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		return 0
	}
	return w
}

// LineWidth returns the total cell width of clusters laid out from column 0.
func LineWidth(clusters []string, tabSize int) int {
	col := 0
	for _, c := range clusters {
		col += Width(c, col, tabSize)
	}
	return col
}
