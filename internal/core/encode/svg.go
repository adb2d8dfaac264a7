package encode

import (
	"bytes"
	"context"
	"unicode/utf8"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
)

// SVG returns the serialized markup unchanged
type SVG struct{}

// Format implements Encoder
func (SVG) Format() qr.Format { return qr.FormatSVG }

// Extension implements Encoder
func (SVG) Extension() string { return qr.FormatSVG.Extension() }

// ContentType implements Encoder
func (SVG) ContentType() string { return qr.FormatSVG.ContentType() }

// Encode implements Encoder
func (SVG) Encode(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(in.Markup)) == 0 {
		return nil, perr.Encodingf("svg: empty markup")
	}
	if !utf8.Valid(in.Markup) {
		return nil, perr.Encodingf("svg: markup is not valid UTF-8")
	}
	return bytes.Clone(in.Markup), nil
}
