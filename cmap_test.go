package font

import (
	"testing"

	"github.com/tdewolff/test"
)

// buildCmapFormat4 encodes a minimal single-segment format 4 cmap
// sub-table mapping [start,end] to consecutive glyph ids starting at
// startGlyph, terminated by the mandatory 0xFFFF sentinel segment.
func buildCmapFormat4(start, end, startGlyph uint16) []byte {
	idDelta := int16(startGlyph) - int16(start)
	segCount := uint16(2) // one real segment plus the terminator
	w := newWriter([]byte{})
	w.WriteUint16(4)            // format
	w.WriteUint16(0)            // length, unused by the decoder
	w.WriteUint16(0)            // language
	w.WriteUint16(segCount * 2) // segCountX2
	w.WriteUint16(0)            // searchRange
	w.WriteUint16(0)            // entrySelector
	w.WriteUint16(0)            // rangeShift
	w.WriteUint16(end)          // endCount[0]
	w.WriteUint16(0xFFFF)       // endCount[1]
	w.WriteUint16(0)            // reservedPad
	w.WriteUint16(start)        // startCount[0]
	w.WriteUint16(0xFFFF)       // startCount[1]
	w.WriteInt16(idDelta)       // idDelta[0]
	w.WriteInt16(1)             // idDelta[1]
	w.WriteUint16(0)            // idRangeOffset[0]
	w.WriteUint16(0)            // idRangeOffset[1]
	return w.Bytes()
}

// buildCmapTable wraps one format 4 sub-table in the cmap header and
// encoding-record array a real font carries.
func buildCmapTable(sub []byte) []byte {
	w := newWriter([]byte{})
	w.WriteUint16(0) // version
	w.WriteUint16(1) // numTables
	w.WriteUint16(3) // platformID (Windows)
	w.WriteUint16(1) // encodingID (Unicode BMP)
	w.WriteUint32(12)
	w.WriteBytes(sub)
	return w.Bytes()
}

func TestDecodeCmapFormat4(t *testing.T) {
	sub := buildCmapFormat4('A', 'Z', 36)
	b := buildCmapTable(sub)

	glyphs, err := DecodeCmap(b)
	test.Error(t, err)

	byRune := map[rune]uint16{}
	for _, g := range glyphs {
		byRune[g.CodePoint] = g.GlyphID
	}
	test.T(t, byRune['A'], uint16(36))
	test.T(t, byRune['Z'], uint16(61))
	test.T(t, byRune['V'], uint16(57))
}

func TestDecodeCmapFormat0(t *testing.T) {
	w := newWriter([]byte{})
	w.WriteUint16(0)  // format
	w.WriteUint16(262) // length
	w.WriteUint16(0)  // language
	ids := make([]byte, 256)
	ids['A'] = 5
	w.WriteBytes(ids)

	b := buildCmapTable(w.Bytes())
	glyphs, err := DecodeCmap(b)
	test.Error(t, err)
	test.T(t, len(glyphs), 1)
	test.T(t, glyphs[0].CodePoint, rune('A'))
	test.T(t, glyphs[0].GlyphID, uint16(5))
}

func TestDecodeCmapFormat12(t *testing.T) {
	w := newWriter([]byte{})
	w.WriteUint16(12) // format
	w.WriteUint16(0)  // reserved
	w.WriteUint32(0)  // length
	w.WriteUint32(0)  // language
	w.WriteUint32(1)  // nGroups
	w.WriteUint32(0x1F600)
	w.WriteUint32(0x1F602)
	w.WriteUint32(100)

	b := buildCmapTable(w.Bytes())
	glyphs, err := DecodeCmap(b)
	test.Error(t, err)

	byRune := map[rune]uint16{}
	for _, g := range glyphs {
		byRune[g.CodePoint] = g.GlyphID
	}
	test.T(t, byRune[0x1F600], uint16(100))
	test.T(t, byRune[0x1F602], uint16(102))
}

func TestDecodeCmapUnsupportedFormat(t *testing.T) {
	w := newWriter([]byte{})
	w.WriteUint16(2) // format 2 is unsupported
	w.WriteBytes(make([]byte, 16))

	b := buildCmapTable(w.Bytes())
	_, err := DecodeCmap(b)
	if err == nil {
		t.Fatal("expected ErrUnsupportedCmap, got nil")
	}
}
