// Package markup normalizes vector sources into standalone SVG documents:
// one XML prolog, and a root that declares the svg and xlink namespaces once
package markup

import (
	"bytes"
	"encoding/xml"
	"io"

	"qrforge/internal/core/vector"
	perr "qrforge/internal/platform/errors"
)

// Namespaces and the prolog written ahead of every document
const (
	SVGNamespace   = "http://www.w3.org/2000/svg"
	XLinkNamespace = "http://www.w3.org/1999/xlink"
	Prolog         = `<?xml version="1.0" standalone="no"?>`
)

// Serialize normalizes src. Serialize(Serialize(x)) == Serialize(x)
func Serialize(src *vector.Source) ([]byte, error) {
	if src.Empty() {
		return nil, perr.Serializationf("vector source is empty")
	}
	return normalize(src.Markup)
}

// SerializeString normalizes raw markup
func SerializeString(s string) (string, error) {
	out, err := normalize([]byte(s))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type span struct{ start, end int64 }

type scan struct {
	decl          *span
	root          span
	rootSelfClose bool
	hasXMLNS      bool
	hasXLink      bool
}

func normalize(in []byte) ([]byte, error) {
	if len(bytes.TrimSpace(in)) == 0 {
		return nil, perr.Serializationf("vector source is empty")
	}
	sc, err := inspect(in)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	body.Grow(len(in) + 128)

	cut := int64(0)
	if sc.decl != nil {
		body.Write(in[:sc.decl.start])
		cut = sc.decl.end
	}
	body.Write(in[cut:sc.root.start])

	tag := in[sc.root.start:sc.root.end]
	closer := 1
	if sc.rootSelfClose {
		closer = 2
	}
	body.Write(bytes.TrimRight(tag[:len(tag)-closer], " \t\r\n"))
	if !sc.hasXMLNS {
		body.WriteString(` xmlns="` + SVGNamespace + `"`)
	}
	if !sc.hasXLink {
		body.WriteString(` xmlns:xlink="` + XLinkNamespace + `"`)
	}
	body.Write(tag[len(tag)-closer:])
	body.Write(in[sc.root.end:])

	out := make([]byte, 0, len(Prolog)+1+body.Len())
	out = append(out, Prolog...)
	out = append(out, '\n')
	out = append(out, bytes.TrimLeft(body.Bytes(), " \t\r\n\ufeff")...)
	return out, nil
}

// inspect walks the whole document so malformed markup fails here rather than in a decoder later
func inspect(in []byte) (scan, error) {
	var sc scan
	d := xml.NewDecoder(bytes.NewReader(in))
	d.Strict = true

	depth, roots := 0, 0
	for {
		start := d.InputOffset()
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return sc, perr.Wrap(err, perr.ErrorCodeSerialization, "vector source is not well-formed")
		}
		end := d.InputOffset()

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" {
				if roots > 0 || sc.decl != nil {
					return sc, perr.Serializationf("xml declaration must precede the root element")
				}
				sc.decl = &span{start, end}
			}
		case xml.StartElement:
			if depth == 0 {
				if roots > 0 {
					return sc, perr.Serializationf("vector source has more than one root element")
				}
				roots++
				if t.Name.Local != "svg" {
					return sc, perr.Serializationf("root element is <%s>, want <svg>", t.Name.Local)
				}
				sc.root = span{start, end}
				sc.rootSelfClose = bytes.HasSuffix(in[start:end], []byte("/>"))
				for _, a := range t.Attr {
					switch {
					case a.Name.Space == "" && a.Name.Local == "xmlns":
						sc.hasXMLNS = true
					case a.Name.Space == "xmlns" && a.Name.Local == "xlink":
						sc.hasXLink = true
					}
				}
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if roots == 0 {
		return sc, perr.Serializationf("vector source has no root element")
	}
	return sc, nil
}
