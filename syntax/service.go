package syntax

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/lineguard/internal/logging"
)

// LanguageSetter is the editor call the service drives. *editor.Editor
// implements it.
type LanguageSetter interface {
	SetLanguage(id string)
}

type Options struct {
	// Nil means logging.Default.
	Logger *log.Logger
}

type state int

const (
	stateNew state = iota
	stateReady
	stateClosed
)

// Service holds loaded grammars and the languages registered against them.
// It is not safe for concurrent use.
type Service struct {
	log      *log.Logger
	state    state
	grammars map[string]*Grammar
	// language id -> scope
	registered map[string]string
}

func NewService(opts Options) *Service {
	return &Service{log: logging.OrDefault(opts.Logger)}
}

// Init prepares the grammar registry. Calling it again is a no-op.
func (s *Service) Init() error {
	switch s.state {
	case stateReady:
		return nil
	case stateClosed:
		return ErrClosed
	}
	s.grammars = make(map[string]*Grammar)
	s.registered = make(map[string]string)
	s.state = stateReady
	s.log.Debug("syntax service initialized")
	return nil
}

// Close drops every grammar. A closed service cannot be reused.
func (s *Service) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.grammars = nil
	s.registered = nil
	s.state = stateClosed
	return nil
}

// LoadAll initialises the service if needed, then loads every catalog
// grammar and registers its languages.
func (s *Service) LoadAll() error {
	if err := s.Init(); err != nil {
		return err
	}
	for _, scope := range loadOrder {
		for _, lang := range catalog[scope].languages {
			if err := s.LoadGrammar(scope, lang); err != nil {
				return err
			}
		}
	}
	s.log.Debug("grammars loaded", logging.FieldCount, len(s.grammars))
	return nil
}

// LoadGrammar loads the grammar for scope and registers languageID to use
// it. Errors are *LoadError.
func (s *Service) LoadGrammar(scope, languageID string) error {
	err := s.loadGrammar(scope, languageID)
	if err != nil {
		s.log.Error("failed to load grammar",
			logging.FieldScope, scope,
			logging.FieldLanguage, languageID,
			logging.FieldError, err)
	}
	return err
}

func (s *Service) loadGrammar(scope, languageID string) error {
	fail := func(err error) error {
		return &LoadError{Scope: scope, Language: languageID, Err: err}
	}
	switch s.state {
	case stateNew:
		return fail(ErrNotInitialized)
	case stateClosed:
		return fail(ErrClosed)
	}

	entry, ok := catalog[scope]
	if !ok {
		return fail(ErrGrammarNotFound)
	}
	if _, ok := languageByID(languageID); !ok {
		return fail(ErrUnknownLanguage)
	}

	g, ok := s.grammars[scope]
	if !ok {
		var err error
		g, err = parseGrammar(entry.file)
		if err != nil {
			return fail(err)
		}
		s.grammars[scope] = g
	}
	s.registered[languageID] = scope
	s.log.Debug("grammar loaded",
		logging.FieldScope, scope,
		logging.FieldLanguage, languageID)
	return nil
}

// SupportedLanguages returns the language ids the catalog can serve, in
// catalog load order.
func (s *Service) SupportedLanguages() []string {
	var out []string
	for _, scope := range loadOrder {
		out = append(out, catalog[scope].languages...)
	}
	return out
}

// Registered returns the language ids with a loaded grammar, sorted.
func (s *Service) Registered() []string {
	return slices.Sorted(maps.Keys(s.registered))
}

// Grammar returns the grammar registered for languageID.
func (s *Service) Grammar(languageID string) (*Grammar, bool) {
	scope, ok := s.registered[languageID]
	if !ok {
		return nil, false
	}
	g, ok := s.grammars[scope]
	return g, ok
}

// Activate switches the editor to languageID. The plain "text" language is
// always accepted; other ids need a loaded grammar.
func (s *Service) Activate(setter LanguageSetter, languageID string) error {
	if languageID != PlainText {
		var err error
		switch {
		case s.state != stateReady:
			err = &LoadError{Language: languageID, Err: ErrNotInitialized}
		case s.registered[languageID] == "":
			err = &LoadError{Language: languageID, Err: ErrUnknownLanguage}
		}
		if err != nil {
			s.log.Error("cannot activate language", logging.FieldLanguage, languageID, logging.FieldError, err)
			return err
		}
	}
	setter.SetLanguage(languageID)
	return nil
}

// PlainText is the language id of an editor without a grammar.
const PlainText = "text"
