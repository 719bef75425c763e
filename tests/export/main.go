//go:build gofuzz
// +build gofuzz

package fuzz

import (
	"os"

	"github.com/fontedit/otsvg"
)

// Fuzz feeds arbitrary bytes through Load and Export, exercising the
// SVG payload slicing and outbound rewrite paths without crashing on
// malformed input.
func Fuzz(data []byte) int {
	fnt, err := font.Load(data)
	if err != nil {
		return 0
	}
	dir, err := os.MkdirTemp("", "otsvg-fuzz-export")
	if err != nil {
		return 0
	}
	defer os.RemoveAll(dir)
	if _, err := fnt.Export(dir); err != nil {
		return 0
	}
	return 1
}
