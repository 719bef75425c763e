package font

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// rewriteSVGInbound implements the §4.6 inbound rewrite applied before
// Embed stores a payload: translate viewBox into the OpenType SVG
// coordinate convention and stamp the root element's id.
func rewriteSVGInbound(raw []byte, glyphID uint16) ([]byte, error) {
	tokens, rootIdx, err := parseSVGTokens(raw)
	if err != nil {
		return nil, err
	}
	root := tokens[rootIdx].(xml.StartElement)
	if vb, ok := attrValue(&root, "viewBox"); ok {
		minX, _, width, height, err := parseViewBox(vb)
		if err != nil {
			return nil, fmt.Errorf("viewBox: %w: %w", err, ErrMalformedSvg)
		}
		setAttr(&root, "viewBox", formatViewBox(minX, height, width, height))
	}
	setAttr(&root, "id", fmt.Sprintf("glyph%d", glyphID))
	tokens[rootIdx] = root
	return serializeSVGTokens(tokens)
}

// rewriteSVGOutbound implements the §4.6 outbound rewrite applied by
// Export: restore viewBox to a top-left origin. The id attribute is
// left as written.
func rewriteSVGOutbound(raw []byte) ([]byte, error) {
	tokens, rootIdx, err := parseSVGTokens(raw)
	if err != nil {
		return nil, err
	}
	root := tokens[rootIdx].(xml.StartElement)
	if vb, ok := attrValue(&root, "viewBox"); ok {
		minX, _, width, height, err := parseViewBox(vb)
		if err != nil {
			return nil, fmt.Errorf("viewBox: %w: %w", err, ErrMalformedSvg)
		}
		setAttr(&root, "viewBox", formatViewBox(minX, 0, width, height))
	}
	tokens[rootIdx] = root
	return serializeSVGTokens(tokens)
}

// parseSVGTokens decodes raw into its full, order-preserving token
// stream and returns the index of the root <svg> StartElement within
// it. Keeping every token (rather than just the root element) lets the
// rewrite preserve the glyph's path data and nested groups; see
// serializeSVGTokens for how element namespaces are written back.
func parseSVGTokens(raw []byte) ([]xml.Token, int, error) {
	if len(raw) >= 2 && raw[0] == 0x1F && raw[1] == 0x8B {
		return nil, 0, fmt.Errorf("gzipped payload: %w", ErrUnsupportedFormat)
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	var tokens []xml.Token
	rootIdx := -1
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, 0, fmt.Errorf("decode svg: %w: %w", err, ErrMalformedSvg)
		}
		tok = xml.CopyToken(tok)
		if se, ok := tok.(xml.StartElement); ok && rootIdx == -1 {
			if se.Name.Local != "svg" {
				return nil, 0, fmt.Errorf("root element is <%s>, not <svg>: %w", se.Name.Local, ErrMalformedSvg)
			}
			rootIdx = len(tokens)
		}
		tokens = append(tokens, tok)
	}
	if rootIdx == -1 {
		return nil, 0, fmt.Errorf("no root element: %w", ErrMalformedSvg)
	}
	return tokens, rootIdx, nil
}

func attrValue(el *xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func setAttr(el *xml.StartElement, name, value string) {
	for i, a := range el.Attr {
		if a.Name.Local == name {
			el.Attr[i].Value = value
			return
		}
	}
	el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func parseViewBox(vb string) (minX, minY, width, height float64, err error) {
	fields := strings.Fields(vb)
	if len(fields) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	vals := make([]float64, 4)
	for i, f := range fields {
		v, perr := strconv.ParseFloat(f, 64)
		if perr != nil {
			return 0, 0, 0, 0, fmt.Errorf("field %d: %w", i, perr)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

func formatViewBox(minX, minY, width, height float64) string {
	return fmt.Sprintf("%s %s %s %s", trimFloat(minX), trimFloat(minY), trimFloat(width), trimFloat(height))
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// serializeSVGTokens re-encodes tokens to UTF-8 with indentation
// disabled, as §4.6 requires. Element names are written without their
// resolved namespace: the input's xmlns attributes are re-emitted as
// they were, so a default namespace survives, while a prefixed element
// name is written without its prefix.
func serializeSVGTokens(tokens []xml.Token) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	for _, tok := range tokens {
		switch t := tok.(type) {
		case xml.StartElement:
			t.Name.Space = ""
			tok = t
		case xml.EndElement:
			t.Name.Space = ""
			tok = t
		}
		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("encode svg: %w: %w", err, ErrMalformedSvg)
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush svg: %w: %w", err, ErrMalformedSvg)
	}
	return buf.Bytes(), nil
}
