package font

import "errors"

// Error kinds returned by the engine. Callers should use errors.Is against
// these sentinels; wrapped context is added with fmt.Errorf("...: %w", ...).
var (
	// ErrMalformedFont is returned when a read runs past the buffer, a
	// declared table length is inconsistent, or a required table is absent.
	ErrMalformedFont = errors.New("malformed font")

	// ErrUnsupportedCmap is returned when cmap has no sub-table of format
	// 0, 4, 6 or 12.
	ErrUnsupportedCmap = errors.New("unsupported cmap")

	// ErrMissingName is returned when no nameID==1 record with positive
	// length exists.
	ErrMissingName = errors.New("missing name")

	// ErrMalformedSvg is returned when an inbound SVG payload fails to
	// parse as XML or lacks an <svg> root element.
	ErrMalformedSvg = errors.New("malformed svg")

	// ErrUnsupportedFormat is returned when an SVG payload begins with
	// the gzip magic 0x1F 0x8B.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrUnknownGlyph is returned when Embed references a glyph id absent
	// from the cmap. Remove does not check the cmap; for a glyph without
	// an SVG document it is a silent no-op.
	ErrUnknownGlyph = errors.New("unknown glyph")
)
