package raster

import (
	"context"
	"errors"
	"testing"

	"qrforge/internal/core/markup"
	"qrforge/internal/core/qr"
	"qrforge/internal/core/vector"
	perr "qrforge/internal/platform/errors"
)

func render(t *testing.T, o qr.Options) []byte {
	t.Helper()
	src, err := vector.NewRenderer(nil).Render(context.Background(), o)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	m, err := markup.Serialize(src)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	return m
}

func TestRasterize_ExactSquare(t *testing.T) {
	m := render(t, qr.Options{Payload: "hello"})
	for _, size := range []int{qr.MinSize, 257, 300, 512, qr.MaxSize} {
		img, err := New().Rasterize(context.Background(), m, size, "#ffffff")
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		b := img.Bounds()
		if b.Dx() != size || b.Dy() != size || b.Min.X != 0 || b.Min.Y != 0 {
			t.Fatalf("size %d: bounds %v", size, b)
		}
	}
}

func TestRasterize_Background(t *testing.T) {
	const size = 300
	opaque := render(t, qr.Options{Payload: "hello", Background: "#ff0000"})
	img, err := New().Rasterize(context.Background(), opaque, size, "#ff0000")
	if err != nil {
		t.Fatalf("opaque: %v", err)
	}
	if c := img.RGBAAt(1, 1); c.R != 0xff || c.G != 0 || c.B != 0 || c.A != 0xff {
		t.Fatalf("opaque corner = %+v", c)
	}

	seeThrough := render(t, qr.Options{Payload: "hello", Background: "transparent"})
	img, err = New().Rasterize(context.Background(), seeThrough, size, "transparent")
	if err != nil {
		t.Fatalf("transparent: %v", err)
	}
	if c := img.RGBAAt(1, 1); c.A != 0 {
		t.Fatalf("transparent corner alpha = %d", c.A)
	}

	// "hello" fits version 1: 21 modules plus the quiet zone on both sides
	finder := 4.5 / 29.0 * size
	px := int(finder)
	if c := img.RGBAAt(px, px); c.A != 0xff || c.R > 0x40 {
		t.Fatalf("finder module = %+v", c)
	}
}

func TestRasterize_Errors(t *testing.T) {
	r := New()
	m := render(t, qr.Options{Payload: "hello"})
	cases := []struct {
		name   string
		markup []byte
		size   int
		bg     string
	}{
		{"zero size", m, 0, "#fff"},
		{"huge size", m, 100000, "#fff"},
		{"bad color", m, 300, "not-a-color"},
		{"empty markup", nil, 300, "#fff"},
		{"malformed", []byte("<svg><rect></svg>"), 300, "#fff"},
		{"no viewbox", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 300, "#fff"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := r.Rasterize(context.Background(), c.markup, c.size, c.bg); !perr.IsCode(err, perr.ErrorCodeRasterization) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestRasterize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Rasterize(ctx, render(t, qr.Options{Payload: "x"}), 300, "#fff")
	if !perr.IsCode(err, perr.ErrorCodeRasterization) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
