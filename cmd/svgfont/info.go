package main

import (
	"fmt"
	"os"

	"github.com/fontedit/otsvg"
)

type Info struct {
	Input string `index:"0" desc:"Input font file"`
}

func (cmd *Info) Run() error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	fnt, err := font.Load(b)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", cmd.Input)
	fmt.Printf("Family: %s\n", fnt.FamilyName())
	glyphs := fnt.Glyphs()
	fmt.Printf("Glyphs: %d\n\n", len(glyphs))
	for _, g := range glyphs {
		fmt.Printf("  U+%04X  glyph=%-5d  %q\n", g.CodePoint, g.GlyphID, g.DisplayText)
	}
	return nil
}
