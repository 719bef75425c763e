package font

import (
	"fmt"
	"sort"
)

const svgTableTag = "SVG "

// svgHeaderLen is the fixed size of the SVG main header: version (u16),
// svgDocIndexOffset (u32), reserved (u32).
const svgHeaderLen = 10

// svgDocEntry mirrors one SvgDocIndexEntry plus the payload bytes it
// describes. docOffset/docLength are recomputed on every serialize
// rather than carried forward, since this engine rebuilds the whole
// `SVG ` table (and the whole font) from scratch on every mutation.
type svgDocEntry struct {
	startID  uint16
	endID    uint16
	document []byte
}

// svgTable is the in-memory, fully decoded form of the `SVG ` table:
// every document index entry alongside its payload bytes, sorted by
// startID. Decoding once and re-laying-out on every mutation avoids
// the manual offset-shifting arithmetic spec.md's byte-splicing
// description implies, per the full-rebuild design this engine uses
// for the whole font (see buildFont).
type svgTable struct {
	version uint16
	entries []svgDocEntry
}

// parseSvgTable decodes a raw `SVG ` table payload into an svgTable.
func parseSvgTable(b []byte) (*svgTable, error) {
	if len(b) < svgHeaderLen {
		return nil, fmt.Errorf("SVG table: %w", ErrMalformedFont)
	}
	r := newReader(b)
	version := r.ReadUint16()
	svgDocIndexOffset := r.ReadUint32()
	_ = r.ReadUint32() // reserved
	if version != 0 {
		return nil, fmt.Errorf("SVG table: %w", ErrUnsupportedFormat)
	}
	if uint32(len(b)) < svgDocIndexOffset+2 {
		return nil, fmt.Errorf("SVG doc index: %w", ErrMalformedFont)
	}

	ir := newReader(b[svgDocIndexOffset:])
	numEntries := ir.ReadUint16()
	if ir.Len() < 12*uint32(numEntries) {
		return nil, fmt.Errorf("SVG doc index entries: %w", ErrMalformedFont)
	}

	entries := make([]svgDocEntry, numEntries)
	for i := range entries {
		startID := ir.ReadUint16()
		endID := ir.ReadUint16()
		docOffset := ir.ReadUint32()
		docLength := ir.ReadUint32()

		start := svgDocIndexOffset + docOffset
		end := start + docLength
		if end < start || uint32(len(b)) < end {
			return nil, fmt.Errorf("SVG doc %d: %w", startID, ErrMalformedFont)
		}
		document := make([]byte, docLength)
		copy(document, b[start:end])
		entries[i] = svgDocEntry{startID: startID, endID: endID, document: document}
	}
	return &svgTable{version: version, entries: entries}, nil
}

// find returns the index of the entry whose startID matches glyphID,
// or -1.
func (t *svgTable) find(glyphID uint16) int {
	for i, e := range t.entries {
		if e.startID == glyphID {
			return i
		}
	}
	return -1
}

// upsert replaces the document for glyphID if present (Case A), or
// inserts a new single-glyph entry in sorted order (Case B).
func (t *svgTable) upsert(glyphID uint16, document []byte) {
	if i := t.find(glyphID); i >= 0 {
		t.entries[i].document = document
		return
	}
	entry := svgDocEntry{startID: glyphID, endID: glyphID, document: document}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].startID >= glyphID })
	t.entries = append(t.entries, svgDocEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = entry
}

// remove deletes the entry with the given startID, if present. Returns
// false if no such entry exists, matching Remove's silent no-op rule.
func (t *svgTable) remove(glyphID uint16) bool {
	i := t.find(glyphID)
	if i < 0 {
		return false
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return true
}

// bytes serializes the table back to its on-disk layout: header, doc
// index sorted by startID (already the invariant upsert/remove keep),
// then payloads laid out contiguously in index order.
func (t *svgTable) bytes() []byte {
	numEntries := len(t.entries)
	indexLen := 2 + 12*numEntries

	w := newWriter([]byte{})
	w.WriteUint16(t.version)
	w.WriteUint32(svgHeaderLen)
	w.WriteUint32(0) // reserved
	w.WriteUint16(uint16(numEntries))

	docOffset := uint32(indexLen)
	offsets := make([]uint32, numEntries)
	for i, e := range t.entries {
		offsets[i] = docOffset
		w.WriteUint16(e.startID)
		w.WriteUint16(e.endID)
		w.WriteUint32(docOffset)
		w.WriteUint32(uint32(len(e.document)))
		docOffset += uint32(len(e.document))
	}
	for _, e := range t.entries {
		w.WriteBytes(e.document)
	}
	return w.Bytes()
}

// embedSVG applies Embed(glyphId, svgBytes): load (or create) the
// `SVG ` table, upsert the glyph's document, and write the rebuilt
// bytes back into tables. glyphID must already be present in glyphs
// (the font's decoded cmap), per spec.md's precondition.
func embedSVG(tables map[string][]byte, glyphs []GlyphModel, glyphID uint16, svgBytes []byte) error {
	if !glyphKnown(glyphs, glyphID) {
		return fmt.Errorf("embed glyph %d: %w", glyphID, ErrUnknownGlyph)
	}
	var table *svgTable
	if raw, ok := tables[svgTableTag]; ok {
		var err error
		table, err = parseSvgTable(raw)
		if err != nil {
			return err
		}
	} else {
		table = &svgTable{version: 0}
	}
	table.upsert(glyphID, svgBytes)
	tables[svgTableTag] = table.bytes()
	return nil
}

// removeSVG applies Remove(glyphId): a silent no-op if the table or
// the entry is absent.
func removeSVG(tables map[string][]byte, glyphID uint16) error {
	raw, ok := tables[svgTableTag]
	if !ok {
		return nil
	}
	table, err := parseSvgTable(raw)
	if err != nil {
		return err
	}
	if !table.remove(glyphID) {
		return nil
	}
	if len(table.entries) == 0 {
		// Restores byte-for-byte parity with a font that never had an
		// `SVG ` table, per the Embed/Remove round-trip law.
		delete(tables, svgTableTag)
		return nil
	}
	tables[svgTableTag] = table.bytes()
	return nil
}

// exportSVG applies Export(outDir): writes every document in the
// `SVG ` table's index, rewritten by the outbound §4.6 rewrite, to
// outDir/<startId>.svg. It returns the number of files written.
func exportSVG(tables map[string][]byte, writeFile func(name string, data []byte) error) (int, error) {
	raw, ok := tables[svgTableTag]
	if !ok {
		return 0, nil
	}
	table, err := parseSvgTable(raw)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range table.entries {
		if len(e.document) >= 2 && e.document[0] == 0x1F && e.document[1] == 0x8B {
			return count, fmt.Errorf("glyph %d: %w", e.startID, ErrUnsupportedFormat)
		}
		out, err := rewriteSVGOutbound(e.document)
		if err != nil {
			return count, fmt.Errorf("glyph %d: %w", e.startID, err)
		}
		name := fmt.Sprintf("%d.svg", e.startID)
		if err := writeFile(name, out); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func glyphKnown(glyphs []GlyphModel, glyphID uint16) bool {
	for _, g := range glyphs {
		if g.GlyphID == glyphID {
			return true
		}
	}
	return false
}
