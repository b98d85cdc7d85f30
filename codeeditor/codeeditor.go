// Package codeeditor composes one editor instance with its event channel and
// feature registry. It is the entry point for hosts.
package codeeditor

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/event"
	"github.com/iw2rmb/lineguard/feature"
	"github.com/iw2rmb/lineguard/internal/logging"
	"github.com/iw2rmb/lineguard/syntax"
	"github.com/iw2rmb/lineguard/theme"
)

var ErrDisposed = errors.New("codeeditor: disposed")

// NamedFeature is a feature to register when the editor is created.
type NamedFeature struct {
	Name    string
	Feature feature.Feature
}

type Config struct {
	Editor editor.Config
	// Features are added in order.
	Features []NamedFeature
}

// CodeEditor owns an Editor, the Channel its features talk on, and the
// Registry holding those features.
type CodeEditor struct {
	ed       *editor.Editor
	channel  *event.Channel
	features *feature.Registry
	log      *log.Logger
	disposed bool
}

// New builds the editor and adds cfg.Features. If a feature fails to
// activate, everything built so far is disposed and the error returned.
func New(cfg Config) (*CodeEditor, error) {
	logger := logging.OrDefault(cfg.Editor.Logger)
	cfg.Editor.Logger = logger

	ed := editor.New(cfg.Editor)
	ch := event.New()
	registry := feature.NewRegistry(feature.Env{Surface: ed, Channel: ch, Logger: logger})
	c := &CodeEditor{
		ed:       ed,
		channel:  ch,
		features: registry,
		log:      logger,
	}

	for _, nf := range cfg.Features {
		if _, err := c.features.Add(nf.Name, nf.Feature); err != nil {
			_ = c.Dispose()
			return nil, fmt.Errorf("add feature %q: %w", nf.Name, err)
		}
	}
	return c, nil
}

func (c *CodeEditor) Editor() *editor.Editor { return c.ed }

func (c *CodeEditor) Channel() *event.Channel { return c.channel }

func (c *CodeEditor) Features() *feature.Registry { return c.features }

// Model returns a Bubble Tea model driving the editor.
func (c *CodeEditor) Model() editor.Model { return editor.NewModel(c.ed) }

// LoadThemes defines every theme supplied by load on the editor.
func (c *CodeEditor) LoadThemes(load theme.Loader) error {
	if c.disposed {
		return ErrDisposed
	}
	entries, err := load()
	if err != nil {
		c.log.Error("failed to load themes", logging.FieldError, err)
		return err
	}
	if err := theme.Apply(c.ed, entries); err != nil {
		c.log.Error("failed to define themes", logging.FieldError, err)
		return err
	}
	c.log.Debug("themes loaded", logging.FieldCount, len(entries))
	return nil
}

// ChangeTheme activates a theme previously loaded with LoadThemes.
func (c *CodeEditor) ChangeTheme(name string) error {
	if c.disposed {
		return ErrDisposed
	}
	if err := c.ed.SetTheme(name); err != nil {
		c.log.Error("failed to change theme", logging.FieldTheme, name, logging.FieldError, err)
		return err
	}
	return nil
}

// SetLanguage switches the editor language through svc.
func (c *CodeEditor) SetLanguage(svc *syntax.Service, languageID string) error {
	if c.disposed {
		return ErrDisposed
	}
	return svc.Activate(c.ed, languageID)
}

// Dispose removes all features, drops channel listeners and disposes the
// editor. Deactivation errors are returned joined; teardown always
// completes.
func (c *CodeEditor) Dispose() error {
	if c.disposed {
		return nil
	}
	c.disposed = true
	err := c.features.RemoveAll()
	c.channel.RemoveAllListeners()
	c.ed.Dispose()
	if err != nil {
		c.log.Error("feature teardown failed", logging.FieldError, err)
	}
	return err
}
