package encode

import (
	"bytes"
	"context"
	"math"
	"time"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// A4 page geometry in points and the fixed layout offsets
const (
	PageWidth    = 595.28
	PageHeight   = 841.89
	PageMargin   = 40.0
	MaxImageEdge = 400.0
	TitleY       = 60.0
	FooterInset  = 40.0
)

// PDF embeds the PNG rendering on one A4 page with an optional title and a timestamp footer
type PDF struct {
	PNG   *PNG
	Clock func() time.Time
}

// Format implements Encoder
func (*PDF) Format() qr.Format { return qr.FormatPDF }

// Extension implements Encoder
func (*PDF) Extension() string { return qr.FormatPDF.Extension() }

// ContentType implements Encoder
func (*PDF) ContentType() string { return qr.FormatPDF.ContentType() }

// Placement returns the image origin and edge length for a page; the edge is capped at
// MaxImageEdge and never eats into the PageMargin band
func Placement(sizePx int, pageW, pageH float64) (x, y, edge float64) {
	edge = math.Min(float64(sizePx), MaxImageEdge)
	edge = math.Min(edge, math.Min(pageW-2*PageMargin, pageH-2*PageMargin))
	return (pageW - edge) / 2, (pageH - edge) / 2, edge
}

// Encode implements Encoder
func (p *PDF) Encode(ctx context.Context, in Input) ([]byte, error) {
	opts := in.Options.WithDefaults().OpaqueBackground()
	img, err := p.PNG.Raster.Rasterize(ctx, in.Markup, opts.SizePx, opts.Background)
	if err != nil {
		return nil, err
	}
	pngBytes, err := encodePNG(img)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if p.Clock != nil {
		now = p.Clock
	}
	stamp := now().UTC()

	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetCatalogSort(true)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("qrforge", false)
	if in.Title != "" {
		doc.SetTitle(in.Title, true)
	}
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	if in.Title != "" {
		doc.SetFont("Helvetica", "B", 16)
		doc.SetXY(0, TitleY-10)
		doc.CellFormat(pageW, 20, latin(in.Title), "", 0, "CM", false, 0, "")
	}

	x, y, edge := Placement(opts.SizePx, pageW, pageH)
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(pngBytes))
	doc.ImageOptions("qr", x, y, edge, edge, false, imgOpts, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetXY(0, pageH-FooterInset-6)
	doc.CellFormat(pageW, 12, "Generated "+stamp.Format("2006-01-02 15:04:05 MST"), "", 0, "CM", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEncoding, "pdf assembly failed")
	}
	return buf.Bytes(), nil
}

// latin transcodes s to Windows-1252 for the core fonts; runes outside it become '?'
func latin(s string) string {
	t := transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Map(func(r rune) rune {
			if _, ok := charmap.Windows1252.EncodeRune(r); ok {
				return r
			}
			return '?'
		}),
		charmap.Windows1252.NewEncoder(),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return "?"
	}
	return out
}
