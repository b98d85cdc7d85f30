package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/lineguard/codeeditor"
	"github.com/iw2rmb/lineguard/editor"
	"github.com/iw2rmb/lineguard/feature"
	"github.com/iw2rmb/lineguard/internal/config"
	"github.com/iw2rmb/lineguard/internal/logging"
	"github.com/iw2rmb/lineguard/syntax"
)

// editOptions are the flags of the root command.
type editOptions struct {
	language  string
	readOnly  []int
	lockAll   bool
	highlight []int
	offset    int
	theme     string
	logFile   string
}

// session is everything an editing run needs, built before the program
// starts so it can be tested without a terminal.
type session struct {
	host   *codeeditor.CodeEditor
	syntax *syntax.Service
	path   string
	// height is the content height reported by the autoResize feature.
	height int
}

func (s *session) close() {
	_ = s.host.Dispose()
	_ = s.syntax.Close()
}

func runEdit(cmd *cobra.Command, opts *globalOptions, edit *editOptions, args []string) error {
	if err := requireTerminal(cmd.OutOrStdout()); err != nil {
		return err
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := editorLogger(edit.logFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	s, err := newSession(cfg, edit, path, logger)
	if err != nil {
		return err
	}
	defer s.close()

	p := tea.NewProgram(newApp(s),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

var errNotTerminal = errors.New("the editor needs a terminal on stdout")

// requireTerminal fails unless w is a terminal.
func requireTerminal(w io.Writer) error {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return errNotTerminal
	}
	return nil
}

// editorLogger returns a logger that does not write over the alternate
// screen: the log file when one is given, otherwise a discarding logger.
func editorLogger(path, level string) (*log.Logger, func(), error) {
	if path == "" {
		return logging.Discard(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewWriter(f, level), func() { _ = f.Close() }, nil
}

func newSession(cfg *config.Config, edit *editOptions, path string, logger *log.Logger) (*session, error) {
	text, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	svc := syntax.NewService(syntax.Options{Logger: logger})
	if err := svc.LoadAll(); err != nil {
		return nil, err
	}

	opts := cfg.Options()
	opts.LineNumberOffset = edit.offset

	var features []codeeditor.NamedFeature
	if edit.lockAll {
		features = append(features, codeeditor.NamedFeature{Name: "readOnly", Feature: feature.NewReadOnlyLines()})
	} else if len(edit.readOnly) > 0 {
		features = append(features, codeeditor.NamedFeature{Name: "readOnly", Feature: feature.NewReadOnlyLines(edit.readOnly...)})
	}
	features = append(features,
		codeeditor.NamedFeature{Name: "highlight", Feature: feature.NewHighlight()},
		codeeditor.NamedFeature{Name: "lineSelection", Feature: feature.NewLineSelection()},
	)

	host, err := codeeditor.New(codeeditor.Config{
		Editor: editor.Config{
			Options: opts,
			Text:    text,
			Logger:  logger,
		},
		Features: features,
	})
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	s := &session{host: host, syntax: svc, path: path}

	if err := s.setup(cfg, edit, text); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) setup(cfg *config.Config, edit *editOptions, text string) error {
	if err := s.host.LoadThemes(cfg.ThemeLoader()); err != nil {
		return err
	}
	themeName := cfg.Theme
	if edit.theme != "" {
		themeName = edit.theme
	}
	if err := s.host.ChangeTheme(themeName); err != nil {
		return err
	}

	language := edit.language
	if language == "" {
		var ok bool
		if language, ok = syntax.Detect(s.path, []byte(text)); !ok {
			language = syntax.PlainText
		}
	}
	if err := s.host.SetLanguage(s.syntax, language); err != nil {
		return err
	}

	if len(edit.highlight) > 0 {
		feature.EmitHighlight(s.host.Channel(), edit.highlight...)
	}

	// The height is emitted once on activation, so listen first.
	feature.OnHeight(s.host.Channel(), func(h int) { s.height = h })
	_, err := s.host.Features().Add("autoResize", feature.NewAutoResizeHeight())
	return err
}

// readDocument returns the content of path. A missing file starts empty.
func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
