package font

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestCalcChecksumExactWords(t *testing.T) {
	b := []byte{0, 0, 0, 1, 0, 0, 0, 2}
	test.T(t, calcChecksum(b), uint32(3))
}

func TestCalcChecksumTrailingPartialWord(t *testing.T) {
	// A table whose length isn't a multiple of 4 must still have its
	// last, short word counted (zero-padded), unlike a loop bounded by
	// offset+4 <= len(b) which would drop it.
	b := []byte{0, 0, 0, 1, 0xFF}
	test.T(t, calcChecksum(b), uint32(1)+0xFF000000)
}

func TestCheckSumAdjustment(t *testing.T) {
	records := []TableRecord{{Checksum: 10}, {Checksum: 20}}
	test.T(t, checkSumAdjustment(records), uint32(0xB1B0AFBA-30))
}
