package font

// filterGlyphs drops control and whitespace code points from the
// decoded cmap list before it's handed to the caller as the editable
// glyph grid, per spec.md's filtered-code-point table.
func filterGlyphs(glyphs []GlyphModel) []GlyphModel {
	out := make([]GlyphModel, 0, len(glyphs))
	for _, g := range glyphs {
		if isFilteredCodePoint(g.CodePoint) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// isFilteredCodePoint reports whether r falls in one of the ranges
// spec.md excludes from the editable glyph grid: C0 controls, the
// DEL-through-NBSP band, the general punctuation space characters,
// narrow/medium/ideographic spaces, the BOM, and the plain space.
func isFilteredCodePoint(r rune) bool {
	switch {
	case r >= 0x0000 && r <= 0x001F:
		return true
	case r >= 0x007F && r <= 0x00A0:
		return true
	case r >= 0x2000 && r <= 0x200F:
		return true
	case r == 0x202F:
		return true
	case r == 0x205F:
		return true
	case r == 0x3000:
		return true
	case r == 0xFEFF:
		return true
	case r == 0x0020:
		return true
	default:
		return false
	}
}
