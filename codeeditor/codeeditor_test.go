package codeeditor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/lineguard/buffer"
	"github.com/iw2rmb/lineguard/codeeditor"
	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/feature"
	"github.com/iw2rmb/lineguard/internal/logging"
	"github.com/iw2rmb/lineguard/syntax"
	"github.com/iw2rmb/lineguard/theme"
)

func newCodeEditor(t *testing.T, text string, features ...codeeditor.NamedFeature) *codeeditor.CodeEditor {
	t.Helper()
	c, err := codeeditor.New(codeeditor.Config{
		Editor: editor.Config{
			Text:    text,
			Options: editor.Options{LineNumberOffset: 10},
			Logger:  logging.Discard(),
		},
		Features: features,
	})
	require.NoError(t, err)
	return c
}

func TestNew_AddsFeatures(t *testing.T) {
	ro := feature.NewReadOnlyLines(11)
	c := newCodeEditor(t, "a\nb\nc",
		codeeditor.NamedFeature{Name: "readonly", Feature: ro},
		codeeditor.NamedFeature{Name: "highlight", Feature: feature.NewHighlight()},
		codeeditor.NamedFeature{Name: "select", Feature: feature.NewLineSelection()},
	)

	assert.Equal(t, []string{"readonly", "highlight", "select"}, c.Features().List())
	assert.Equal(t, []int{1}, ro.InternalLines())

	c.Editor().SetCursor(buffer.Pos{Row: 0, GraphemeCol: 1})
	require.NoError(t, c.Editor().InsertText("x"))
	assert.Equal(t, "a\nb\nc", c.Editor().Value())

	feature.EmitHighlight(c.Channel(), 12, 13)
	assert.Len(t, c.Editor().Decorations(), 3)

	var selected []int
	feature.OnSelectLine(c.Channel(), func(line int) { selected = append(selected, line) })
	c.Editor().Layout(20, 5)
	c.Editor().MouseDown(3, 2, false)
	assert.Equal(t, []int{13}, selected)
}

func TestNew_FeatureFailureDisposes(t *testing.T) {
	_, err := codeeditor.New(codeeditor.Config{
		Editor: editor.Config{Text: "a", Logger: logging.Discard()},
		Features: []codeeditor.NamedFeature{
			{Name: "highlight", Feature: feature.NewHighlight()},
			{Name: "list", Feature: feature.NewHighlight()},
		},
	})
	var cfgErr *feature.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, feature.ErrNameReserved)
}

func TestThemes(t *testing.T) {
	c := newCodeEditor(t, "a")

	require.NoError(t, c.LoadThemes(theme.BuiltinLoader()))
	require.NoError(t, c.ChangeTheme("github-light"))
	assert.Equal(t, "github-light", c.Editor().Theme())
	assert.ErrorIs(t, c.ChangeTheme("nope"), editor.ErrUnknownTheme)

	boom := errors.New("boom")
	err := c.LoadThemes(func() ([]theme.Entry, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestSetLanguage(t *testing.T) {
	c := newCodeEditor(t, "print(1)")
	svc := syntax.NewService(syntax.Options{Logger: logging.Discard()})
	require.NoError(t, svc.LoadAll())
	t.Cleanup(func() { _ = svc.Close() })

	require.NoError(t, c.SetLanguage(svc, "python"))
	assert.Equal(t, "python", c.Editor().Language())
	assert.ErrorIs(t, c.SetLanguage(svc, "cobol"), syntax.ErrUnknownLanguage)
}

func TestDispose(t *testing.T) {
	h := feature.NewHighlight()
	c := newCodeEditor(t, "a\nb",
		codeeditor.NamedFeature{Name: "highlight", Feature: h},
		codeeditor.NamedFeature{Name: "height", Feature: feature.NewAutoResizeHeight()},
	)
	c.Channel().AddListener("custom", func(...any) {})

	require.NoError(t, c.Dispose())
	require.NoError(t, c.Dispose())

	assert.Empty(t, c.Features().List())
	assert.Equal(t, feature.StateDeactivated, h.State())
	assert.Equal(t, 0, c.Channel().ListenerCount("custom"))
	assert.True(t, c.Editor().Disposed())
	assert.ErrorIs(t, c.ChangeTheme("github-dark"), codeeditor.ErrDisposed)
	assert.ErrorIs(t, c.Editor().InsertText("x"), editor.ErrDisposed)
}
