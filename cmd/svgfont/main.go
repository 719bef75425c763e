package main

import (
	"log"
	"os"

	"github.com/tdewolff/argp"
)

var (
	Error   *log.Logger
	Warning *log.Logger
)

func main() {
	Error = log.New(os.Stderr, "ERROR: ", 0)
	Warning = log.New(os.Stderr, "WARNING: ", 0)

	cmd := argp.New("Edit SVG glyph documents embedded in OpenType/TrueType fonts")
	cmd.AddCmd(&Info{}, "info", "Show family name and glyph list")
	cmd.AddCmd(&Embed{}, "embed", "Embed an SVG document for a glyph")
	cmd.AddCmd(&Remove{}, "remove", "Remove a glyph's SVG document")
	cmd.AddCmd(&Export{}, "export", "Export every glyph's SVG document")
	cmd.Parse()
}
