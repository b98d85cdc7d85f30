package syntax

import (
	"errors"
	"fmt"
)

var (
	ErrNotInitialized  = errors.New("syntax: service not initialized")
	ErrClosed          = errors.New("syntax: service closed")
	ErrGrammarNotFound = errors.New("syntax: grammar not found")
	ErrUnknownLanguage = errors.New("syntax: unknown language")
)

// LoadError reports a grammar or language registration failure.
type LoadError struct {
	Scope    string
	Language string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("language %s: %v", e.Language, e.Err)
	}
	if e.Language != "" {
		return fmt.Sprintf("load grammar %s for %s: %v", e.Scope, e.Language, e.Err)
	}
	return fmt.Sprintf("load grammar %s: %v", e.Scope, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
