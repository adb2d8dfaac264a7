package encode

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
)

// PNG rasterizes and writes a lossless PNG at maximum compression
type PNG struct {
	Raster Rasterizer
}

// Format implements Encoder
func (*PNG) Format() qr.Format { return qr.FormatPNG }

// Extension implements Encoder
func (*PNG) Extension() string { return qr.FormatPNG.Extension() }

// ContentType implements Encoder
func (*PNG) ContentType() string { return qr.FormatPNG.ContentType() }

// Encode implements Encoder
func (p *PNG) Encode(ctx context.Context, in Input) ([]byte, error) {
	opts := in.Options.WithDefaults()
	img, err := p.Raster.Rasterize(ctx, in.Markup, opts.SizePx, opts.Background)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEncoding, "png encode failed")
	}
	return buf.Bytes(), nil
}
