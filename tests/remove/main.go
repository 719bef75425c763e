//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/fontedit/otsvg"

// Fuzz feeds arbitrary bytes through Load and Remove, exercising the
// SVG document-index deletion and offset bookkeeping paths without
// crashing on malformed input.
func Fuzz(data []byte) int {
	fnt, err := font.Load(data)
	if err != nil {
		return 0
	}
	glyphs := fnt.Glyphs()
	if len(glyphs) == 0 {
		return 0
	}
	if err := fnt.Remove(glyphs[0].GlyphID); err != nil {
		return 0
	}
	_ = fnt.Bytes()
	return 1
}
