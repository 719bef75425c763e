package font

import (
	"fmt"
	"os"
	"path/filepath"
)

// FontImage is the engine: a single in-memory, single-owner font,
// loaded once and mutated by Embed/Remove (Export only reads it). It is not
// safe for concurrent use; per spec.md §5, one instance handles one
// font and mutations run to completion before the next is accepted.
type FontImage struct {
	sfntVersion string
	tables      map[string][]byte
	glyphs      []GlyphModel
	familyName  string
}

// Load parses an OpenType/TrueType byte blob and decodes its cmap and
// name table. It fails with ErrMalformedFont if the directory or a
// required table is absent or inconsistent, ErrUnsupportedCmap if
// cmap has no format-0/4/6/12 sub-table, or ErrMissingName if no
// nameID==1 record exists.
func Load(b []byte) (*FontImage, error) {
	offsetTable, _, tables, err := ParseDirectory(b)
	if err != nil {
		return nil, err
	}

	cmapRaw, ok := tables["cmap"]
	if !ok {
		return nil, fmt.Errorf("cmap table absent: %w", ErrMalformedFont)
	}
	glyphs, err := DecodeCmap(cmapRaw)
	if err != nil {
		return nil, err
	}

	nameRaw, ok := tables["name"]
	if !ok {
		return nil, fmt.Errorf("name table absent: %w", ErrMalformedFont)
	}
	familyName, err := GetFamilyName(nameRaw)
	if err != nil {
		return nil, err
	}

	return &FontImage{
		sfntVersion: offsetTable.SfntVersion,
		tables:      cloneTables(tables),
		glyphs:      glyphs,
		familyName:  familyName,
	}, nil
}

// FamilyName returns the font's family name, decoded at Load time.
func (f *FontImage) FamilyName() string {
	return f.familyName
}

// Glyphs returns the editable glyph grid: every decoded cmap entry
// except the control and whitespace code points spec.md excludes.
func (f *FontImage) Glyphs() []GlyphModel {
	return filterGlyphs(f.glyphs)
}

// Embed rewrites svgBytes per §4.6, then stores it as glyphID's SVG
// document, creating the `SVG ` table if none exists. Mutation is
// staged on a copy of the table set so a failure leaves Bytes()
// unchanged, per spec.md §7's policy.
func (f *FontImage) Embed(glyphID uint16, svgBytes []byte) error {
	if !glyphKnown(f.glyphs, glyphID) {
		return fmt.Errorf("embed glyph %d: %w", glyphID, ErrUnknownGlyph)
	}
	rewritten, err := rewriteSVGInbound(svgBytes, glyphID)
	if err != nil {
		return err
	}
	staged := cloneTables(f.tables)
	if err := embedSVG(staged, f.glyphs, glyphID, rewritten); err != nil {
		return err
	}
	f.tables = staged
	return nil
}

// Remove deletes glyphID's SVG document, if present. Absent either the
// `SVG ` table or an entry for glyphID, this is a silent no-op.
func (f *FontImage) Remove(glyphID uint16) error {
	staged := cloneTables(f.tables)
	if err := removeSVG(staged, glyphID); err != nil {
		return err
	}
	f.tables = staged
	return nil
}

// Export writes every glyph's SVG document (rewritten per §4.6's
// outbound rule) to outDir/<glyphId>.svg, overwriting existing files,
// and returns the count written. It fails with ErrUnsupportedFormat on
// the first gzipped document it encounters, leaving earlier writes to
// outDir in place (export writes land on disk, not on the blob, so
// there is no blob to roll back).
func (f *FontImage) Export(outDir string) (int, error) {
	return exportSVG(f.tables, func(name string, data []byte) error {
		return os.WriteFile(filepath.Join(outDir, name), data, 0o644)
	})
}

// Bytes rebuilds and returns the current byte blob, with a fresh
// directory, table checksums, and (if a head table is present)
// checkSumAdjustment.
func (f *FontImage) Bytes() []byte {
	return buildFont(f.sfntVersion, f.tables)
}

func cloneTables(tables map[string][]byte) map[string][]byte {
	clone := make(map[string][]byte, len(tables))
	for tag, b := range tables {
		cp := make([]byte, len(b))
		copy(cp, b)
		clone[tag] = cp
	}
	return clone
}
