// Package raster turns serialized SVG markup into an exact square RGBA bitmap
package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterizer draws markup onto a sizePx by sizePx canvas. The zero value is ready to use
type Rasterizer struct{}

// New returns a Rasterizer
func New() *Rasterizer { return &Rasterizer{} }

type decoded struct {
	icon *oksvg.SvgIcon
	err  error
}

// Rasterize fills the canvas with background unless it is transparent, then draws the
// markup scaled to cover the canvas exactly. Decoding runs off the caller's goroutine
// and ctx only bounds the wait for it
func (r *Rasterizer) Rasterize(ctx context.Context, markup []byte, sizePx int, background string) (*image.RGBA, error) {
	if sizePx <= 0 || sizePx > 4*qr.MaxSize {
		return nil, perr.Rasterizationf("invalid canvas size %d", sizePx)
	}

	var bg color.Color
	if !qr.IsTransparent(background) {
		c, err := oksvg.ParseSVGColor(background)
		if err != nil || c == nil {
			return nil, perr.Rasterizationf("unparseable background color %q", background)
		}
		bg = c
	}

	icon, err := decode(ctx, markup)
	if err != nil {
		return nil, err
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, perr.Rasterizationf("vector source has no usable viewBox")
	}

	img := image.NewRGBA(image.Rect(0, 0, sizePx, sizePx))
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	icon.SetTarget(0, 0, float64(sizePx), float64(sizePx))
	scanner := rasterx.NewScannerGV(sizePx, sizePx, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(sizePx, sizePx, scanner), 1.0)
	return img, nil
}

// decode parses markup on its own goroutine; the buffered channel lets it finish
// and be collected even when the caller has stopped waiting
func decode(ctx context.Context, markup []byte) (*oksvg.SvgIcon, error) {
	if len(bytes.TrimSpace(markup)) == 0 {
		return nil, perr.Rasterizationf("nothing to decode")
	}
	if err := ctx.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeRasterization, "image decode interrupted")
	}
	done := make(chan decoded, 1)
	go func() {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(markup), oksvg.IgnoreErrorMode)
		done <- decoded{icon: icon, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, perr.Wrap(ctx.Err(), perr.ErrorCodeRasterization, "image decode interrupted")
	case res := <-done:
		if res.err != nil {
			return nil, perr.Wrap(res.err, perr.ErrorCodeRasterization, "image decode failed")
		}
		return res.icon, nil
	}
}
