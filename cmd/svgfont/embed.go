package main

import (
	"os"

	"github.com/fontedit/otsvg"
)

type Embed struct {
	GlyphID uint16 `short:"g" name:"glyph" desc:"Glyph ID to embed into"`
	SVG     string `short:"s" desc:"SVG document to embed"`
	Output  string `short:"o" desc:"Output font file"`
	Input   string `index:"0" desc:"Input font file"`
}

func (cmd *Embed) Run() error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	fnt, err := font.Load(b)
	if err != nil {
		return err
	}

	svg, err := os.ReadFile(cmd.SVG)
	if err != nil {
		return err
	}
	if err := fnt.Embed(cmd.GlyphID, svg); err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = cmd.Input
	}
	return os.WriteFile(output, fnt.Bytes(), 0o644)
}
