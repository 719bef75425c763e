//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/fontedit/otsvg"

const sampleSVG = `<svg viewBox="0 0 100 100"><path d="M0 0h100v100H0z"/></svg>`

// Fuzz feeds arbitrary bytes through Load and, if a glyph decodes,
// Embed and Bytes, exercising the directory rebuild and SVG table
// insertion paths on malformed input.
func Fuzz(data []byte) int {
	fnt, err := font.Load(data)
	if err != nil {
		return 0
	}
	glyphs := fnt.Glyphs()
	if len(glyphs) == 0 {
		return 0
	}
	if err := fnt.Embed(glyphs[0].GlyphID, []byte(sampleSVG)); err != nil {
		return 0
	}
	_ = fnt.Bytes()
	return 1
}
