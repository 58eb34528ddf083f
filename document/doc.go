// Package document implements the pure, in-memory rich-text engine behind a
// single editable region.
//
// A Document is a tree of text runs and marks (bold, italic, inline code,
// code blocks, font-size and color spans) rooted at one container node. It
// parses from and serializes to an HTML-like markup string, projects to flat
// visible text, and addresses positions either as a Caret (text run plus
// grapheme offset) or as a flat grapheme offset into the visible text.
//
// Commands and the auto-format pass mutate the tree synchronously and report
// the new markup; nothing in this package blocks, logs, or keeps timers.
package document
