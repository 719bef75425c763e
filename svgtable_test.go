package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestSvgTableUpsertInsertsSorted(t *testing.T) {
	table := &svgTable{}
	table.upsert(20, []byte("<svg/>"))
	table.upsert(5, []byte("<svg/>"))
	table.upsert(10, []byte("<svg/>"))

	got := make([]uint16, len(table.entries))
	for i, e := range table.entries {
		got[i] = e.startID
	}
	test.T(t, got, []uint16{5, 10, 20})
}

func TestSvgTableUpsertReplacesExisting(t *testing.T) {
	table := &svgTable{}
	table.upsert(5, []byte("old"))
	table.upsert(5, []byte("new"))

	test.T(t, len(table.entries), 1)
	test.T(t, string(table.entries[0].document), "new")
}

func TestSvgTableRemove(t *testing.T) {
	table := &svgTable{}
	table.upsert(5, []byte("a"))
	table.upsert(10, []byte("b"))

	test.T(t, table.remove(10), true)
	test.T(t, len(table.entries), 1)
	test.T(t, table.remove(999), false)
}

func TestSvgTableBytesRoundTrip(t *testing.T) {
	table := &svgTable{}
	table.upsert(5, []byte("<svg id=\"glyph5\"/>"))
	table.upsert(20, []byte("<svg id=\"glyph20\">longer document</svg>"))

	reparsed, err := parseSvgTable(table.bytes())
	test.Error(t, err)
	test.T(t, len(reparsed.entries), 2)
	test.T(t, reparsed.entries[0].startID, uint16(5))
	test.T(t, string(reparsed.entries[0].document), "<svg id=\"glyph5\"/>")
	test.T(t, reparsed.entries[1].startID, uint16(20))
	test.T(t, string(reparsed.entries[1].document), "<svg id=\"glyph20\">longer document</svg>")
}

func TestEmbedCreatesTableWhenAbsent(t *testing.T) {
	glyphs := []GlyphModel{{CodePoint: 'A', GlyphID: 65}}
	tables := map[string][]byte{}

	err := embedSVG(tables, glyphs, 65, []byte(`<svg id="glyph65"/>`))
	test.Error(t, err)

	table, err := parseSvgTable(tables[svgTableTag])
	test.Error(t, err)
	test.T(t, table.version, uint16(0))
	test.T(t, len(table.entries), 1)
	test.T(t, table.entries[0].startID, uint16(65))
}

func TestEmbedUnknownGlyph(t *testing.T) {
	tables := map[string][]byte{}
	err := embedSVG(tables, nil, 65, []byte(`<svg/>`))
	if err == nil {
		t.Fatal("expected ErrUnknownGlyph, got nil")
	}
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	tables := map[string][]byte{}
	err := removeSVG(tables, 65)
	test.Error(t, err)
	test.T(t, hasTable(tables, svgTableTag), false)
}

func TestExportRejectsGzippedPayload(t *testing.T) {
	table := &svgTable{}
	table.upsert(1, []byte{0x1F, 0x8B, 0, 0})
	tables := map[string][]byte{svgTableTag: table.bytes()}

	_, err := exportSVG(tables, func(string, []byte) error { return nil })
	if err == nil {
		t.Fatal("expected ErrUnsupportedFormat, got nil")
	}
}

func TestExportWritesEveryDocument(t *testing.T) {
	table := &svgTable{}
	table.upsert(5, []byte(`<svg viewBox="0 10 20 20" id="glyph5"/>`))
	table.upsert(10, []byte(`<svg viewBox="0 30 40 40" id="glyph10"/>`))
	tables := map[string][]byte{svgTableTag: table.bytes()}

	written := map[string][]byte{}
	count, err := exportSVG(tables, func(name string, data []byte) error {
		written[name] = data
		return nil
	})
	test.Error(t, err)
	test.T(t, count, 2)
	test.T(t, len(written), 2)
	if _, ok := written["5.svg"]; !ok {
		t.Fatal("expected 5.svg to be written")
	}
	if _, ok := written["10.svg"]; !ok {
		t.Fatal("expected 10.svg to be written")
	}
}
