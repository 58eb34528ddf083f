package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

func graphemeCellWidth(text string, visualCol int) int {
	if text == "\t" {
		return tabWidth - visualCol%tabWidth
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	return w
}
