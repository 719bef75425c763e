package font

import (
	"fmt"
	"math"
	"sort"
)

// OffsetTable is the 12-byte font header that precedes the table
// record array.
type OffsetTable struct {
	SfntVersion   string
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// searchHints computes searchRange, entrySelector and rangeShift for a
// directory holding numTables records, per the OpenType binary-search
// hint formula: searchRange = 16 * 2^floor(log2(numTables)).
func searchHints(numTables uint16) (searchRange, entrySelector, rangeShift uint16) {
	entrySelector = uint16(math.Log2(float64(numTables)))
	searchRange = 16 * uint16(1<<entrySelector)
	rangeShift = numTables*16 - searchRange
	return
}

// TableRecord is one directory entry. OffsetOfOffset is the absolute
// byte position inside the file where this record's Offset field
// lives, retained so the record can be rewritten in place without
// walking the directory again.
type TableRecord struct {
	Tag            string
	Checksum       uint32
	Offset         uint32
	Length         uint32
	OffsetOfOffset uint32
}

// ParseDirectory reads the 12-byte offset table and the table record
// array that follows it, and slices out each table's payload bytes.
func ParseDirectory(b []byte) (OffsetTable, []TableRecord, map[string][]byte, error) {
	if len(b) < 12 {
		return OffsetTable{}, nil, nil, fmt.Errorf("offset table: %w", ErrMalformedFont)
	}

	r := newReader(b)
	sfntVersion, err := readTag(r)
	if err != nil {
		return OffsetTable{}, nil, nil, fmt.Errorf("sfntVersion: %w", err)
	}
	if sfntVersion != "OTTO" && sfntVersion != "true" && sfntVersion != "\x00\x01\x00\x00" {
		return OffsetTable{}, nil, nil, fmt.Errorf("bad sfnt version: %w", ErrMalformedFont)
	}

	offsetTable := OffsetTable{SfntVersion: sfntVersion}
	offsetTable.NumTables = r.ReadUint16()
	offsetTable.SearchRange = r.ReadUint16()
	offsetTable.EntrySelector = r.ReadUint16()
	offsetTable.RangeShift = r.ReadUint16()
	if r.Len() < 16*uint32(offsetTable.NumTables) {
		return OffsetTable{}, nil, nil, fmt.Errorf("table records: %w", ErrMalformedFont)
	}

	records := make([]TableRecord, offsetTable.NumTables)
	tables := make(map[string][]byte, offsetTable.NumTables)
	for i := range records {
		tag, err := readTag(r)
		if err != nil {
			return OffsetTable{}, nil, nil, fmt.Errorf("table record %d: %w", i, err)
		}
		records[i].Tag = tag
		_ = r.ReadUint32() // checksum, recomputed below rather than trusted
		records[i].OffsetOfOffset = r.Pos()
		records[i].Offset = r.ReadUint32()
		records[i].Length = r.ReadUint32()

		padding := padLength(records[i].Length)
		if uint32(len(b)) <= records[i].Offset ||
			uint32(len(b))-records[i].Offset < records[i].Length ||
			uint32(len(b))-records[i].Offset-records[i].Length < padding {
			return OffsetTable{}, nil, nil, fmt.Errorf("table %s: %w", tag, ErrMalformedFont)
		}
		tables[tag] = b[records[i].Offset : records[i].Offset+records[i].Length : records[i].Offset+records[i].Length]
		records[i].Checksum = calcChecksum(paddedTable(tables[tag]))
	}
	return offsetTable, records, tables, nil
}

// paddedTable returns table's bytes followed by the zero pad bytes
// that bring its length to a multiple of 4, for checksum purposes.
func paddedTable(table []byte) []byte {
	padding := padLength(uint32(len(table)))
	if padding == 0 {
		return table
	}
	padded := make([]byte, len(table)+int(padding))
	copy(padded, table)
	return padded
}

// hasTable reports whether any record carries the given tag,
// independent of map/slice iteration order.
func hasTable(tables map[string][]byte, tag string) bool {
	_, ok := tables[tag]
	return ok
}

// buildFont serializes tables (keyed by tag) into a complete sfnt byte
// blob: sorted-tag directory, 4-byte-padded tables, per-table
// checksums, and (if a head table is present) checkSumAdjustment.
func buildFont(sfntVersion string, tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	numTables := uint16(len(tags))
	searchRange, entrySelector, rangeShift := searchHints(numTables)

	w := newWriter([]byte{})
	w.WriteString(sfntVersion)
	w.WriteUint16(numTables)
	w.WriteUint16(searchRange)
	w.WriteUint16(entrySelector)
	w.WriteUint16(rangeShift)
	w.WriteBytes(make([]byte, 16*int(numTables))) // table records, patched below

	var headChecksumAdjustmentPos uint32
	hasHead := false
	offsets := make([]uint32, numTables)
	for i, tag := range tags {
		offsets[i] = w.Len()
		table := tables[tag]
		if tag == "head" && len(table) >= 12 {
			hasHead = true
			headChecksumAdjustmentPos = w.Len() + 8
			w.WriteBytes(table)
		} else {
			w.WriteBytes(table)
		}
		padding := padLength(uint32(len(table)))
		for i := uint32(0); i < padding; i++ {
			w.WriteByte(0)
		}
	}

	buf := w.Bytes()
	if hasHead {
		putUint32(buf, headChecksumAdjustmentPos, 0)
	}

	records := make([]TableRecord, numTables)
	for i, tag := range tags {
		pos := uint32(12 + i*16)
		length := uint32(len(tables[tag]))
		padding := padLength(length)
		checksum := calcChecksum(buf[offsets[i] : offsets[i]+length+padding])

		copy(buf[pos:], []byte(tag))
		putUint32(buf, pos+4, checksum)
		putUint32(buf, pos+8, offsets[i])
		putUint32(buf, pos+12, length)

		records[i] = TableRecord{Tag: tag, Checksum: checksum, Offset: offsets[i], Length: length, OffsetOfOffset: pos + 8}
	}
	if hasHead {
		putUint32(buf, headChecksumAdjustmentPos, checkSumAdjustment(records))
	}
	return buf
}
