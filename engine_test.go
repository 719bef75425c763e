package font

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func buildTestFont(t *testing.T, extra map[string][]byte) []byte {
	t.Helper()
	tables := map[string][]byte{
		"cmap": buildCmapTable(buildCmapFormat4('A', 'Z', 36)),
		"name": buildNameTable("Test Family"),
		"head": make([]byte, 54),
	}
	for tag, b := range extra {
		tables[tag] = b
	}
	return buildFont("\x00\x01\x00\x00", tables)
}

func TestLoadReadsFamilyAndGlyphs(t *testing.T) {
	fnt, err := Load(buildTestFont(t, nil))
	test.Error(t, err)
	test.T(t, fnt.FamilyName(), "Test Family")

	found := false
	for _, g := range fnt.Glyphs() {
		if g.CodePoint == 'A' {
			found = true
			test.T(t, g.GlyphID, uint16(36))
		}
	}
	if !found {
		t.Fatal("expected glyph 'A' in decoded glyph list")
	}
}

func TestLoadMissingCmapFails(t *testing.T) {
	tables := map[string][]byte{"name": buildNameTable("No Cmap")}
	blob := buildFont("\x00\x01\x00\x00", tables)
	_, err := Load(blob)
	if err == nil {
		t.Fatal("expected ErrMalformedFont, got nil")
	}
}

func TestEmbedThenRemoveRoundTrips(t *testing.T) {
	fnt, err := Load(buildTestFont(t, nil))
	test.Error(t, err)
	before := fnt.Bytes()

	err = fnt.Embed(65, []byte(`<svg viewBox="0 0 10 10"><path d="M0 0"/></svg>`))
	test.Error(t, err)
	afterEmbed := fnt.Bytes()
	if string(afterEmbed) == string(before) {
		t.Fatal("expected byte blob to change after Embed")
	}

	err = fnt.Remove(65)
	test.Error(t, err)
	afterRemove := fnt.Bytes()

	// Rounds back to the pre-Embed content except for the head table's
	// checkSumAdjustment field, which both blobs still carry
	// identically here since head is a fixed all-zero placeholder.
	test.T(t, string(afterRemove), string(before))
}

func TestEmbedUnknownGlyphFails(t *testing.T) {
	fnt, err := Load(buildTestFont(t, nil))
	test.Error(t, err)
	err = fnt.Embed(9999, []byte(`<svg/>`))
	if err == nil {
		t.Fatal("expected ErrUnknownGlyph, got nil")
	}
}

func TestEmbedFailureLeavesBlobUnchanged(t *testing.T) {
	fnt, err := Load(buildTestFont(t, nil))
	test.Error(t, err)
	before := fnt.Bytes()

	err = fnt.Embed(65, []byte(`not xml at all <<<`))
	if err == nil {
		t.Fatal("expected ErrMalformedSvg, got nil")
	}
	test.T(t, string(fnt.Bytes()), string(before))
}

func TestExportWritesFilesToDisk(t *testing.T) {
	fnt, err := Load(buildTestFont(t, nil))
	test.Error(t, err)
	test.Error(t, fnt.Embed(65, []byte(`<svg viewBox="0 0 10 10" id="glyph65"><path d="z"/></svg>`)))

	dir := t.TempDir()
	count, err := fnt.Export(dir)
	test.Error(t, err)
	test.T(t, count, 1)

	data, err := os.ReadFile(filepath.Join(dir, "65.svg"))
	test.Error(t, err)
	if !strings.Contains(string(data), `viewBox="0 0 10 10"`) {
		t.Fatalf("expected exported viewBox restored, got %s", data)
	}
}

func TestLoadThenBytesThenReloadPreservesSVG(t *testing.T) {
	fnt, err := Load(buildTestFont(t, nil))
	test.Error(t, err)
	test.Error(t, fnt.Embed(65, []byte(`<svg viewBox="1 0 30 40" id="glyph65"><path d="z"/></svg>`)))

	reloaded, err := Load(fnt.Bytes())
	test.Error(t, err)

	dir := t.TempDir()
	_, err = reloaded.Export(dir)
	test.Error(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "65.svg"))
	test.Error(t, err)
	// minY is not recoverable across the inbound/outbound viewBox
	// translation (outbound always writes 0), so only a minY=0 input
	// round-trips byte-for-byte through Embed then Export.
	if !strings.Contains(string(data), `viewBox="1 0 30 40"`) {
		t.Fatalf("expected round-tripped viewBox, got %s", data)
	}
}
