package theme

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"

	"github.com/iw2rmb/lineguard/editor"
)

//go:embed themes/*.toml
var builtinFS embed.FS

var ErrInvalidColor = errors.New("invalid color")

// LoadError reports a theme that could not be read, parsed or defined.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("theme %s (%s): %v", e.Name, e.Path, e.Err)
	}
	return fmt.Sprintf("theme %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Config is a theme as written in TOML.
type Config struct {
	Base   string            `toml:"base"`
	Colors map[string]string `toml:"colors"`
	Rules  []Rule            `toml:"rules"`
}

// Rule styles one decoration class. FontStyle is a space separated list of
// bold, italic, underline and faint.
type Rule struct {
	Class      string `toml:"class"`
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	FontStyle  string `toml:"font_style"`
}

// Entry is a named theme.
type Entry struct {
	Name   string
	Config Config
}

// Loader supplies themes in the order they should be defined.
type Loader func() ([]Entry, error)

// Definer receives theme definitions. *editor.Editor implements it.
type Definer interface {
	DefineTheme(name string, data editor.ThemeData) error
}

// Parse decodes one TOML theme.
func Parse(name string, data []byte) (Entry, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Entry{}, &LoadError{Name: name, Err: err}
	}
	return Entry{Name: name, Config: cfg}, nil
}

// Builtin returns the embedded themes sorted by name.
func Builtin() ([]Entry, error) {
	files, err := builtinFS.ReadDir("themes")
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(files))
	for _, f := range files {
		data, err := builtinFS.ReadFile("themes/" + f.Name())
		if err != nil {
			return nil, err
		}
		entry, err := Parse(themeName(f.Name()), data)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// LoadDir reads every *.toml file of dir, sorted by file name. The theme
// name is the file name without extension.
func LoadDir(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read theme dir: %w", err)
	}
	var out []Entry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		path := filepath.Join(dir, f.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{Name: themeName(f.Name()), Path: path, Err: err}
		}
		entry, err := Parse(themeName(f.Name()), data)
		if err != nil {
			var le *LoadError
			if errors.As(err, &le) {
				le.Path = path
			}
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// BuiltinLoader loads the embedded themes.
func BuiltinLoader() Loader { return Builtin }

// DirLoader loads the themes of dir.
func DirLoader(dir string) Loader {
	return func() ([]Entry, error) { return LoadDir(dir) }
}

// Chain concatenates loaders. A later theme with the same name replaces an
// earlier one when applied.
func Chain(loaders ...Loader) Loader {
	return func() ([]Entry, error) {
		var out []Entry
		for _, l := range loaders {
			entries, err := l()
			if err != nil {
				return nil, err
			}
			out = append(out, entries...)
		}
		return out, nil
	}
}

// Apply converts every entry and defines it on d, in order.
func Apply(d Definer, entries []Entry) error {
	for _, e := range entries {
		data, err := e.Config.ThemeData()
		if err != nil {
			return &LoadError{Name: e.Name, Err: err}
		}
		if err := d.DefineTheme(e.Name, data); err != nil {
			return &LoadError{Name: e.Name, Err: err}
		}
	}
	return nil
}

// ThemeData validates the colours of c and converts it for the editor.
// Missing line backgrounds are blended from the editor background.
func (c Config) ThemeData() (editor.ThemeData, error) {
	data := editor.ThemeData{
		Base:   c.Base,
		Colors: make(map[string]string, len(c.Colors)+2),
	}
	for key, value := range c.Colors {
		norm, err := NormalizeColor(value)
		if err != nil {
			return editor.ThemeData{}, fmt.Errorf("colors.%s: %w", key, err)
		}
		data.Colors[key] = norm
	}
	deriveBackgrounds(data.Colors, c.Base)

	for i, r := range c.Rules {
		rule := editor.ThemeRule{Class: r.Class}
		var err error
		if rule.Foreground, err = normalizeOptional(r.Foreground); err != nil {
			return editor.ThemeData{}, fmt.Errorf("rules[%d].foreground: %w", i, err)
		}
		if rule.Background, err = normalizeOptional(r.Background); err != nil {
			return editor.ThemeData{}, fmt.Errorf("rules[%d].background: %w", i, err)
		}
		for _, style := range strings.Fields(r.FontStyle) {
			switch style {
			case "bold":
				rule.Bold = true
			case "italic":
				rule.Italic = true
			case "underline":
				rule.Underline = true
			case "faint":
				rule.Faint = true
			default:
				return editor.ThemeData{}, fmt.Errorf("rules[%d].font_style: unknown style %q", i, style)
			}
		}
		data.Rules = append(data.Rules, rule)
	}
	return data, nil
}

// NormalizeColor validates a hex or ANSI index colour and returns it in the
// form lipgloss expects ("#rrggbb" or the decimal index).
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidColor)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return "", fmt.Errorf("%w: ansi index %d out of range", ErrInvalidColor, n)
		}
		return strconv.Itoa(n), nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

func normalizeOptional(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return NormalizeColor(s)
}

// Accent blended into the background for highlighted lines.
var highlightAccent = colorful.Color{R: 0.85, G: 0.65, B: 0.0}

func deriveBackgrounds(colors map[string]string, base string) {
	bg, err := colorful.Hex(colors[editor.ColorBackground])
	if err != nil {
		return
	}
	if _, ok := colors[editor.ColorHighlightBackground]; !ok {
		colors[editor.ColorHighlightBackground] = bg.BlendLab(highlightAccent, 0.25).Clamped().Hex()
	}
	if _, ok := colors[editor.ColorReadOnlyBackground]; !ok {
		toward := colorful.Color{R: 1, G: 1, B: 1}
		if base == "light" {
			toward = colorful.Color{}
		}
		colors[editor.ColorReadOnlyBackground] = bg.BlendLab(toward, 0.06).Clamped().Hex()
	}
}

func themeName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}
