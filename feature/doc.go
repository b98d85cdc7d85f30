// Package feature defines pluggable editor behaviours and the registry that
// attaches them to one editor instance.
//
// A Feature is activated once with an Env (the editor Surface, the shared
// event.Channel and a logger) and deactivated at most once. Features never
// call each other: they talk through channel events such as EventHighlight.
//
// Built-in features:
//
//   - ReadOnlyLines keeps a set of lines protected from edits while the
//     document changes around them.
//   - Highlight decorates lines named by EventHighlight.
//   - LineSelection turns pointer presses into EventSelectLine.
//   - AutoResizeHeight emits the content height on EventHeight.
package feature
