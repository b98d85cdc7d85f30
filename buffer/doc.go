// Package buffer implements the grapheme-accurate document model behind the
// editor surface.
//
// Coordinates are 0-based (Row, GraphemeCol) in grapheme clusters.
// Ranges are half-open selections in document coordinates: [Start, End).
// Every effective text mutation is recorded as one Change transaction.
package buffer
