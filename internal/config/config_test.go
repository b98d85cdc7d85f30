package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/internal/config"
)

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse([]byte(`
theme = "solarized-light"
themes_dir = "/tmp/themes"

[editor]
tab_size = 4
word_wrap = true
padding_top = 1
`))
	require.NoError(t, err)

	assert.Equal(t, "solarized-light", cfg.Theme)
	assert.Equal(t, "/tmp/themes", cfg.ThemesDir)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, editor.Options{
		TabSize:    4,
		LineHeight: 1,
		WordWrap:   true,
		Padding:    editor.Padding{Top: 1},
	}, cfg.Options())
}

func TestParse_EmptyThemeFallsBack(t *testing.T) {
	cfg, err := config.Parse([]byte(`theme = ""`))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTheme, cfg.Theme)
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse([]byte(`theme = `))
	var decodeErr *toml.DecodeError
	assert.ErrorAs(t, err, &decodeErr)

	_, err = config.Parse([]byte(`colour = "red"`))
	var strictErr *toml.StrictMissingError
	assert.ErrorAs(t, err, &strictErr)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.Default()
	cfg.Theme = "github-light"
	cfg.Editor.HideLineNumbers = true

	require.NoError(t, cfg.Save(path))
	got, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadFile_Unreadable(t *testing.T) {
	_, err := config.LoadFile(t.TempDir())
	assert.Error(t, err)
}

func TestThemeLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.toml"), []byte(`
[colors]
"editor.background" = "#101010"
"editor.foreground" = "#eeeeee"
`), 0o644))

	cfg := config.Default()
	builtin, err := cfg.ThemeLoader()()
	require.NoError(t, err)

	cfg.ThemesDir = dir
	all, err := cfg.ThemeLoader()()
	require.NoError(t, err)
	require.Len(t, all, len(builtin)+1)
	assert.Equal(t, "mine", all[len(all)-1].Name)
}

func TestPath(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	path, err := config.Path()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/someone", ".config", "lineguard", "config.toml"), path)
}
