package font

import (
	"fmt"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

const nameIDFamily = 1

// nameRecord is one entry of the name table's record array.
type nameRecord struct {
	platformID uint16
	encodingID uint16
	languageID uint16
	nameID     uint16
	length     uint16
	offset     uint16
}

// GetFamilyName reads the name table header and its record array, and
// returns the string held by the first record with nameID 1 and a
// positive length. It reports ErrMissingName if no such record exists.
func GetFamilyName(b []byte) (string, error) {
	if len(b) < 6 {
		return "", fmt.Errorf("name: %w", ErrMalformedFont)
	}
	r := newReader(b)
	_ = r.ReadUint16() // format
	count := r.ReadUint16()
	stringOffset := r.ReadUint16()
	if r.Len() < 12*uint32(count) {
		return "", fmt.Errorf("name records: %w", ErrMalformedFont)
	}
	if uint32(stringOffset) > uint32(len(b)) {
		return "", fmt.Errorf("name: bad stringOffset: %w", ErrMalformedFont)
	}

	records := make([]nameRecord, count)
	for i := range records {
		records[i] = nameRecord{
			platformID: r.ReadUint16(),
			encodingID: r.ReadUint16(),
			languageID: r.ReadUint16(),
			nameID:     r.ReadUint16(),
			length:     r.ReadUint16(),
			offset:     r.ReadUint16(),
		}
	}

	for _, rec := range records {
		if rec.nameID != nameIDFamily || rec.length == 0 {
			continue
		}
		start := uint32(stringOffset) + uint32(rec.offset)
		end := start + uint32(rec.length)
		if end > uint32(len(b)) || start > end {
			continue
		}
		return decodeNameString(b[start:end]), nil
	}
	return "", fmt.Errorf("name: %w", ErrMissingName)
}

// decodeNameString applies the heuristic spec.md prescribes: a leading
// zero byte signals big-endian UTF-16 (the usual shape for Windows and
// most Macintosh Unicode platform records); anything else is treated
// as UTF-8 already.
func decodeNameString(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == 0 {
		return decodeUTF16BE(raw)
	}
	return string(raw)
}

// decodeUTF16BE decodes a big-endian UTF-16 byte string, falling back
// to Macintosh Roman (via charmap, the encoding the pack's x/text
// dependency exists to serve) if the byte count is odd and therefore
// not valid UTF-16.
func decodeUTF16BE(raw []byte) string {
	if len(raw)%2 != 0 {
		out, err := charmap.Macintosh.NewDecoder().Bytes(raw)
		if err != nil {
			return string(raw)
		}
		return string(out)
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = uint16(raw[2*i])<<8 | uint16(raw[2*i+1])
	}
	return string(utf16.Decode(units))
}
