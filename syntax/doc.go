// Package syntax is the grammar catalog behind editor language switching.
//
// A Service is constructed explicitly, initialised with Init and released
// with Close. It loads the embedded TextMate-style grammars, registers the
// languages they serve, and switches the language of an editor. It does not
// tokenize.
package syntax
