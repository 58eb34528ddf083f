// Package grapheme measures and cuts text runs in grapheme clusters, the unit
// used for every caret offset in the document.
package grapheme

import "github.com/rivo/uniseg"

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// ByteOffset returns the byte index of the n-th cluster boundary in text.
// n is clamped to [0, Count(text)].
func ByteOffset(text string, n int) int {
	if n <= 0 || text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	for g.Next() {
		if idx == n {
			from, _ := g.Positions()
			return from
		}
		idx++
	}
	return len(text)
}

// Cut splits text at the n-th cluster boundary.
func Cut(text string, n int) (left, right string) {
	at := ByteOffset(text, n)
	return text[:at], text[at:]
}

// Slice returns the grapheme-safe substring for [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	return text[ByteOffset(text, start):ByteOffset(text, end)]
}

