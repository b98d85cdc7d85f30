package theme_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/theme"
)

type recordingDefiner struct {
	names []string
	data  map[string]editor.ThemeData
	err   error
}

func (d *recordingDefiner) DefineTheme(name string, data editor.ThemeData) error {
	if d.err != nil {
		return d.err
	}
	if d.data == nil {
		d.data = make(map[string]editor.ThemeData)
	}
	d.names = append(d.names, name)
	d.data[name] = data
	return nil
}

func TestBuiltin(t *testing.T) {
	entries, err := theme.Builtin()
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"github-dark", "github-light", "solarized-dark", "solarized-light"}, names)
	assert.Equal(t, "#0d1117", entries[0].Config.Colors[editor.ColorBackground])
}

func TestApply_Builtin(t *testing.T) {
	entries, err := theme.Builtin()
	require.NoError(t, err)

	d := &recordingDefiner{}
	require.NoError(t, theme.Apply(d, entries))
	assert.Len(t, d.names, 4)

	dark := d.data["github-dark"]
	assert.Equal(t, "dark", dark.Base)
	assert.NotEmpty(t, dark.Colors[editor.ColorHighlightBackground], "derived highlight background")
	require.Len(t, dark.Rules, 1)
	assert.Equal(t, editor.ClassReadOnlyText, dark.Rules[0].Class)
	assert.True(t, dark.Rules[0].Italic)

	assert.Equal(t, "#fff8c5", d.data["github-light"].Colors[editor.ColorHighlightBackground])
}

func TestApply_DefinesOnEditor(t *testing.T) {
	ed := editor.New(editor.Config{Text: "a"})
	require.NoError(t, theme.Apply(ed, mustBuiltin(t)))
	assert.Equal(t, []string{"github-dark", "github-light", "solarized-dark", "solarized-light"}, ed.Themes())
	require.NoError(t, ed.SetTheme("solarized-dark"))
}

func TestApply_Errors(t *testing.T) {
	bad := []theme.Entry{{Name: "bad", Config: theme.Config{Colors: map[string]string{
		editor.ColorBackground: "#zzzzzz",
	}}}}
	err := theme.Apply(&recordingDefiner{}, bad)
	var le *theme.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "bad", le.Name)
	assert.ErrorIs(t, err, theme.ErrInvalidColor)

	boom := errors.New("boom")
	err = theme.Apply(&recordingDefiner{err: boom}, mustBuiltin(t))
	assert.ErrorIs(t, err, boom)
}

func TestThemeData_FontStyle(t *testing.T) {
	_, err := theme.Config{Rules: []theme.Rule{{Class: "x", FontStyle: "bold blink"}}}.ThemeData()
	require.Error(t, err)

	data, err := theme.Config{Rules: []theme.Rule{{Class: "x", FontStyle: "bold underline faint", Background: "fff"}}}.ThemeData()
	require.NoError(t, err)
	r := data.Rules[0]
	assert.True(t, r.Bold)
	assert.True(t, r.Underline)
	assert.True(t, r.Faint)
	assert.False(t, r.Italic)
	assert.Equal(t, "#ffffff", r.Background)
}

func TestNormalizeColor(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ABCDEF", "#abcdef", false},
		{"abcdef", "#abcdef", false},
		{"#abc", "#aabbcc", false},
		{" 42 ", "42", false},
		{"256", "", true},
		{"-1", "", true},
		{"#abcd", "", true},
		{"#gggggg", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := theme.NormalizeColor(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, theme.ErrInvalidColor, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.toml", "base = \"dark\"\n[colors]\n\"editor.background\" = \"#000000\"\n")
	writeFile(t, dir, "a.toml", "base = \"light\"\n")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.toml"), 0o755))

	entries, err := theme.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, "#000000", entries[1].Config.Colors[editor.ColorBackground])
}

func TestLoadDir_ParseError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.toml", "base = \n")

	_, err := theme.LoadDir(dir)
	var le *theme.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "broken", le.Name)
	assert.Equal(t, filepath.Join(dir, "broken.toml"), le.Path)
}

func TestChain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "custom.toml", "base = \"dark\"\n")

	entries, err := theme.Chain(theme.BuiltinLoader(), theme.DirLoader(dir))()
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "custom", entries[4].Name)

	_, err = theme.Chain(theme.DirLoader(filepath.Join(dir, "missing")))()
	require.Error(t, err)
}

func mustBuiltin(t *testing.T) []theme.Entry {
	t.Helper()
	entries, err := theme.Builtin()
	require.NoError(t, err)
	return entries
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
