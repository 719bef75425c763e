package main

import (
	"fmt"
	"os"

	"github.com/fontedit/otsvg"
)

type Export struct {
	OutDir string `index:"1" desc:"Output directory"`
	Input  string `index:"0" desc:"Input font file"`
}

func (cmd *Export) Run() error {
	b, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	fnt, err := font.Load(b)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cmd.OutDir, 0o755); err != nil {
		return err
	}

	count, err := fnt.Export(cmd.OutDir)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d SVG document(s) to %s\n", count, cmd.OutDir)
	return nil
}
