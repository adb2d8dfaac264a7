// Package encode turns serialized markup into file bytes, one Encoder per format
package encode

import (
	"context"
	"image"
	"time"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
)

// Input is what every encoder receives; Markup is serializer output
type Input struct {
	Markup  []byte
	Options qr.Options
	Title   string
}

// Encoder is implemented by the closed set SVG, PNG, PDF
type Encoder interface {
	Format() qr.Format
	Extension() string
	ContentType() string
	Encode(ctx context.Context, in Input) ([]byte, error)
}

// Rasterizer is the bitmap source the PNG and PDF encoders draw from
type Rasterizer interface {
	Rasterize(ctx context.Context, markup []byte, sizePx int, background string) (*image.RGBA, error)
}

// Registry dispatches a Format to its encoder
type Registry struct {
	byFormat map[qr.Format]Encoder
}

// NewRegistry wires the three encoders; clock stamps PDF metadata and footers
func NewRegistry(r Rasterizer, clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	png := &PNG{Raster: r}
	return &Registry{byFormat: map[qr.Format]Encoder{
		qr.FormatSVG: SVG{},
		qr.FormatPNG: png,
		qr.FormatPDF: &PDF{PNG: png, Clock: clock},
	}}
}

// For returns the encoder for f
func (r *Registry) For(f qr.Format) (Encoder, error) {
	if e, ok := r.byFormat[f]; ok {
		return e, nil
	}
	return nil, perr.WithField(perr.Validationf("unsupported format %q", string(f)), "format")
}
