package font

import (
	"encoding/binary"
	"fmt"

	"github.com/tdewolff/parse/v2"
)

// newReader wraps b in a big-endian binary reader. All multi-byte
// integers in an OpenType file are big-endian.
func newReader(b []byte) *parse.BinaryReader {
	return parse.NewBinaryReader(b)
}

// newWriter wraps b in a big-endian binary writer, growing from the
// given initial contents.
func newWriter(b []byte) *parse.BinaryWriter {
	return parse.NewBinaryWriter(b)
}

// readTag reads a 4-byte ASCII table tag, such as "cmap" or "SVG ".
func readTag(r *parse.BinaryReader) (string, error) {
	if r.Len() < 4 {
		return "", fmt.Errorf("tag: %w", ErrMalformedFont)
	}
	return r.ReadString(4), nil
}

// readUint16Array reads n consecutive big-endian uint16 values,
// advancing r past them.
func readUint16Array(r *parse.BinaryReader, n int) ([]uint16, error) {
	if n < 0 || r.Len() < 2*uint32(n) {
		return nil, fmt.Errorf("uint16 array: %w", ErrMalformedFont)
	}
	vals := make([]uint16, n)
	for i := range vals {
		vals[i] = r.ReadUint16()
	}
	return vals, nil
}

// readInt16Array reads n consecutive big-endian int16 values,
// advancing r past them.
func readInt16Array(r *parse.BinaryReader, n int) ([]int16, error) {
	if n < 0 || r.Len() < 2*uint32(n) {
		return nil, fmt.Errorf("int16 array: %w", ErrMalformedFont)
	}
	vals := make([]int16, n)
	for i := range vals {
		vals[i] = r.ReadInt16()
	}
	return vals, nil
}

// readUint32Array reads n consecutive big-endian uint32 values,
// advancing r past them.
func readUint32Array(r *parse.BinaryReader, n int) ([]uint32, error) {
	if n < 0 || r.Len() < 4*uint32(n) {
		return nil, fmt.Errorf("uint32 array: %w", ErrMalformedFont)
	}
	vals := make([]uint32, n)
	for i := range vals {
		vals[i] = r.ReadUint32()
	}
	return vals, nil
}

// putUint16 writes v as a big-endian uint16 at buf[pos:].
func putUint16(buf []byte, pos uint32, v uint16) {
	binary.BigEndian.PutUint16(buf[pos:], v)
}

// putUint32 writes v as a big-endian uint32 at buf[pos:].
func putUint32(buf []byte, pos uint32, v uint32) {
	binary.BigEndian.PutUint32(buf[pos:], v)
}

// getUint16 reads a big-endian uint16 at buf[pos:] without advancing
// any cursor; used for patching already-written table bytes.
func getUint16(buf []byte, pos uint32) uint16 {
	return binary.BigEndian.Uint16(buf[pos:])
}

// getUint32 reads a big-endian uint32 at buf[pos:] without advancing
// any cursor.
func getUint32(buf []byte, pos uint32) uint32 {
	return binary.BigEndian.Uint32(buf[pos:])
}
