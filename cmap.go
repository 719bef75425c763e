package font

import (
	"encoding/binary"
	"fmt"

	"github.com/tdewolff/parse/v2"
)

// GlyphModel describes one decoded cmap entry: a code point mapped to
// a glyph id, plus the display string the caller shows for it. It is
// derived once at Load time and never mutated afterwards.
type GlyphModel struct {
	CodePoint   rune
	GlyphID     uint16
	DisplayText string
}

// DecodeCmap walks the cmap table and returns every (code point, glyph
// id) pair it can decode from sub-tables of format 0, 4, 6 or 12.
// Other sub-table formats are skipped silently. Duplicate glyph ids
// across sub-tables (or within one) are suppressed, keeping the first
// code point seen for a given glyph id.
func DecodeCmap(b []byte) ([]GlyphModel, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("cmap: %w", ErrMalformedFont)
	}

	r := newReader(b)
	version := r.ReadUint16()
	if version != 0 {
		return nil, fmt.Errorf("cmap: bad version: %w", ErrMalformedFont)
	}
	numTables := r.ReadUint16()
	if r.Len() < 8*uint32(numTables) {
		return nil, fmt.Errorf("cmap: %w", ErrMalformedFont)
	}

	offsets := make([]uint32, numTables)
	for i := range offsets {
		_ = r.ReadUint16() // platformID
		_ = r.ReadUint16() // encodingID
		offsets[i] = r.ReadUint32()
		if uint32(len(b))-2 < offsets[i] {
			return nil, fmt.Errorf("cmap: bad subtable %d: %w", i, ErrMalformedFont)
		}
	}

	decodedAny := false
	seen := make(map[uint16]bool)
	glyphs := []GlyphModel{}
	add := func(codePoint rune, glyphID uint16) {
		if glyphID == 0 || seen[glyphID] {
			return
		}
		seen[glyphID] = true
		glyphs = append(glyphs, GlyphModel{
			CodePoint:   codePoint,
			GlyphID:     glyphID,
			DisplayText: displayString(codePoint),
		})
	}

	for i, offset := range offsets {
		sub := b[offset:]
		if len(sub) < 2 {
			continue
		}
		format := binary.BigEndian.Uint16(sub)
		var err error
		switch format {
		case 0:
			err = decodeCmapFormat0(sub, add)
			decodedAny = decodedAny || err == nil
		case 4:
			err = decodeCmapFormat4(sub, add)
			decodedAny = decodedAny || err == nil
		case 6:
			err = decodeCmapFormat6(sub, add)
			decodedAny = decodedAny || err == nil
		case 12:
			err = decodeCmapFormat12(sub, add)
			decodedAny = decodedAny || err == nil
		default:
			// unsupported sub-table shape, skip as spec.md §4.3 requires
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cmap subtable %d: %w", i, err)
		}
	}
	if !decodedAny {
		return nil, fmt.Errorf("cmap: %w", ErrUnsupportedCmap)
	}
	return glyphs, nil
}

// decodeCmapFormat0 decodes the 256-byte direct code-point to glyph-id
// mapping. Entries mapped to glyph 0 (.notdef) are skipped.
func decodeCmapFormat0(sub []byte, add func(rune, uint16)) error {
	r := parse.NewBinaryReader(sub)
	_ = r.ReadUint16() // format
	if r.Len() < 260 {
		return fmt.Errorf("format 0: %w", ErrMalformedFont)
	}
	_ = r.ReadUint16() // length
	_ = r.ReadUint16() // language
	ids := r.ReadBytes(256)
	for code, glyphID := range ids {
		if glyphID != 0 {
			add(rune(code), uint16(glyphID))
		}
	}
	return nil
}

// decodeCmapFormat4 decodes the segmented-range mapping: segCountX2,
// then the four parallel arrays endCount, startCount, idDelta and
// idRangeOffset, followed by the shared glyphIdArray.
func decodeCmapFormat4(sub []byte, add func(rune, uint16)) error {
	r := parse.NewBinaryReader(sub)
	_ = r.ReadUint16() // format
	if r.Len() < 8 {
		return fmt.Errorf("format 4: %w", ErrMalformedFont)
	}
	_ = r.ReadUint16() // length
	_ = r.ReadUint16() // language
	segCountX2 := r.ReadUint16()
	if segCountX2%2 != 0 {
		return fmt.Errorf("format 4: bad segCountX2: %w", ErrMalformedFont)
	}
	segCount := int(segCountX2 / 2)
	_ = r.ReadUint16() // searchRange
	_ = r.ReadUint16() // entrySelector
	_ = r.ReadUint16() // rangeShift

	endCount, err := readUint16Array(r, segCount)
	if err != nil {
		return fmt.Errorf("format 4 endCount: %w", err)
	}
	if r.Len() < 2 {
		return fmt.Errorf("format 4: %w", ErrMalformedFont)
	}
	if pad := r.ReadUint16(); pad != 0 {
		return fmt.Errorf("format 4: bad reservedPad: %w", ErrMalformedFont)
	}
	startCount, err := readUint16Array(r, segCount)
	if err != nil {
		return fmt.Errorf("format 4 startCount: %w", err)
	}
	idDelta, err := readInt16Array(r, segCount)
	if err != nil {
		return fmt.Errorf("format 4 idDelta: %w", err)
	}
	idRangeOffsetStart := r.Pos()
	idRangeOffset, err := readUint16Array(r, segCount)
	if err != nil {
		return fmt.Errorf("format 4 idRangeOffset: %w", err)
	}

	for i := 0; i < segCount; i++ {
		start, end := uint32(startCount[i]), uint32(endCount[i])
		if end < start {
			continue
		}
		for code := start; ; code++ {
			var glyphID uint16
			if idRangeOffset[i] == 0 {
				glyphID = uint16(int32(idDelta[i]) + int32(code))
			} else {
				// idRangeOffsetTableStart + idRangeOffset[i] + 2*i + 2*(code - startCount[i])
				bytePos := idRangeOffsetStart + uint32(idRangeOffset[i]) + 2*uint32(i) + 2*(code-start)
				if bytePos+2 > uint32(len(sub)) {
					return fmt.Errorf("format 4: bad idRangeOffset index: %w", ErrMalformedFont)
				}
				raw := binary.BigEndian.Uint16(sub[bytePos:])
				if raw != 0 {
					glyphID = uint16(int32(raw) + int32(idDelta[i]))
				}
			}
			add(rune(code), glyphID)
			if code == end {
				break
			}
		}
	}
	return nil
}

// decodeCmapFormat6 decodes the trimmed 1-byte mapping table.
func decodeCmapFormat6(sub []byte, add func(rune, uint16)) error {
	r := parse.NewBinaryReader(sub)
	_ = r.ReadUint16() // format
	if r.Len() < 6 {
		return fmt.Errorf("format 6: %w", ErrMalformedFont)
	}
	_ = r.ReadUint16() // length
	_ = r.ReadUint16() // language
	firstCode := r.ReadUint16()
	entryCount := r.ReadUint16()
	ids, err := readUint16Array(r, int(entryCount))
	if err != nil {
		return fmt.Errorf("format 6: %w", err)
	}
	for i, glyphID := range ids {
		if glyphID != 0 {
			add(rune(firstCode)+rune(i), glyphID)
		}
	}
	return nil
}

// decodeCmapFormat12 decodes the segmented-coverage mapping with
// 32-bit code points.
func decodeCmapFormat12(sub []byte, add func(rune, uint16)) error {
	r := parse.NewBinaryReader(sub)
	_ = r.ReadUint16() // format
	if r.Len() < 10 {
		return fmt.Errorf("format 12: %w", ErrMalformedFont)
	}
	_ = r.ReadUint16() // reserved
	_ = r.ReadUint32() // length
	_ = r.ReadUint32() // language
	nGroups := r.ReadUint32()
	if r.Len() < 12*nGroups {
		return fmt.Errorf("format 12: %w", ErrMalformedFont)
	}
	for i := uint32(0); i < nGroups; i++ {
		startCharCode := r.ReadUint32()
		endCharCode := r.ReadUint32()
		startGlyphID := r.ReadUint32()
		if endCharCode < startCharCode {
			return fmt.Errorf("format 12: bad group %d: %w", i, ErrMalformedFont)
		}
		for c := startCharCode; ; c++ {
			add(rune(c), uint16(startGlyphID+(c-startCharCode)))
			if c == endCharCode {
				break
			}
		}
	}
	return nil
}

// displayString renders a decoded code point as the short label the
// glyph picker shows next to a glyph cell.
func displayString(codePoint rune) string {
	return string(codePoint)
}
