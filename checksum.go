package font

import "encoding/binary"

// padLength returns the number of zero bytes required after a table of
// the given length to align the next table on a 4-byte boundary.
func padLength(length uint32) uint32 {
	return (4 - length&3) & 3
}

// calcChecksum sums the big-endian uint32 words of b, treating any
// trailing 1-3 bytes as zero-padded. Unlike a loop that stops once
// offset+4 exceeds len(b) (which silently drops the last word of a
// table whose length isn't a multiple of four), this iterates exactly
// ceil(len(b)/4) words so every byte of the table is covered.
func calcChecksum(b []byte) uint32 {
	var sum uint32
	n := len(b)
	for i := 0; i < n; i += 4 {
		var word [4]byte
		copy(word[:], b[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}

// checkSumAdjustment computes the head table's checkSumAdjustment field
// for a font whose table records (with their checksum fields already
// set, and checkSumAdjustment itself treated as zero) are those in
// records.
func checkSumAdjustment(records []TableRecord) uint32 {
	var sum uint32
	for _, rec := range records {
		sum += rec.Checksum
	}
	return 0xB1B0AFBA - sum
}
