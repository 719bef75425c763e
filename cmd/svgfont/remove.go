package main

import (
	"os"

	"github.com/fontedit/otsvg"
)

type Remove struct {
	GlyphID uint16 `short:"g" name:"glyph" desc:"Glyph ID to remove the SVG document from"`
	Output  string `short:"o" desc:"Output font file"`
	Input   string `index:"0" desc:"Input font file"`
}

func (cmd *Remove) Run() error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	fnt, err := font.Load(b)
	if err != nil {
		return err
	}
	if err := fnt.Remove(cmd.GlyphID); err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = cmd.Input
	}
	return os.WriteFile(output, fnt.Bytes(), 0o644)
}
