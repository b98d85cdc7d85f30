// Package editor provides the editor surface that features attach to: an
// Editor holding the document, its change and pointer subscriptions,
// decoration collections, options and themes, plus a Bubble Tea Model that
// renders it and routes keyboard and mouse input.
//
// Line numbers exposed by this package are 1-based "internal" numbers. Hosts
// that display a line-number offset translate with LineNumberOffset.
package editor
