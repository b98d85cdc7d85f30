// Package theme loads editor themes from TOML and forwards them to an
// editor's theme definitions.
//
// A theme file looks like:
//
//	base = "dark"
//
//	[colors]
//	"editor.background" = "#0d1117"
//	"lineguard.highlightBackground" = "#3a3000"
//
//	[[rules]]
//	class = "read-only-code-text"
//	foreground = "#8b949e"
//	font_style = "italic"
//
// Colours are hex strings (with or without '#', 3 or 6 digits) or ANSI
// colour indexes.
package theme
