package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"qrforge/internal/adapters/save"
	"qrforge/internal/core/encode"
	"qrforge/internal/core/markup"
	"qrforge/internal/core/qr"
	"qrforge/internal/core/raster"
	"qrforge/internal/core/vector"
	perr "qrforge/internal/platform/errors"
	kit "qrforge/internal/platform/testkit"
	"qrforge/internal/services/export/domain"
)

func newSvc(opts ...Option) *Svc {
	clock := kit.FixedClock(time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC))
	return New(vector.NewRenderer(nil), encode.NewRegistry(raster.New(), clock), opts...)
}

func TestExport_SVG(t *testing.T) {
	mem := save.NewMemory()
	art, err := newSvc().Export(context.Background(), domain.Request{
		Payload: "https://example.com", Format: "SVG",
	}, mem)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.FileName != "qrcode.svg" || art.ContentType != "image/svg+xml" {
		t.Fatalf("artifact = %s %s", art.FileName, art.ContentType)
	}
	got, ok := mem.Get("qrcode.svg")
	if !ok || !strings.HasPrefix(string(got), markup.Prolog) {
		t.Fatalf("saved svg missing or without prolog")
	}
	if strings.Count(string(got), `xmlns="`+markup.SVGNamespace+`"`) != 1 {
		t.Fatalf("namespace not declared exactly once")
	}
}

func TestExport_PNGNamed(t *testing.T) {
	mem := save.NewMemory()
	art, err := newSvc().Export(context.Background(), domain.Request{
		Payload: "menu", Format: "png", Name: "Table 4!", SizePx: 240, Background: "transparent",
	}, mem)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.FileName != "table_4.png" {
		t.Fatalf("name = %q", art.FileName)
	}
	img := kit.DecodePNG(t, art.Bytes)
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 240 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestExport_PDFUsesDefaultTitle(t *testing.T) {
	mem := save.NewMemory()
	art, err := newSvc(WithDefaultTitle("Scan me")).Export(context.Background(), domain.Request{
		Payload: "doc", Format: "pdf",
	}, mem)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if art.FileName != "qrcode.pdf" || !strings.HasPrefix(string(art.Bytes), "%PDF-") {
		t.Fatalf("artifact = %s", art.FileName)
	}
}

func TestExport_Validation(t *testing.T) {
	cases := []struct {
		name  string
		req   domain.Request
		field string
	}{
		{"missing payload", domain.Request{Format: "svg"}, "payload"},
		{"bad format", domain.Request{Payload: "x", Format: "gif"}, "format"},
		{"too small", domain.Request{Payload: "x", Format: "png", SizePx: 50}, "size_px"},
		{"too large", domain.Request{Payload: "x", Format: "png", SizePx: 1001}, "size_px"},
		{"bad color", domain.Request{Payload: "x", Format: "png", Foreground: "blurple"}, "foreground"},
		{"transparent foreground", domain.Request{Payload: "x", Format: "png", Foreground: "transparent"}, "foreground"},
		{"bad level", domain.Request{Payload: "x", Format: "png", Level: "Z"}, "level"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mem := save.NewMemory()
			_, err := newSvc().Export(context.Background(), c.req, mem)
			e, ok := perr.As(err)
			if !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != c.field {
				t.Fatalf("err = %v", err)
			}
			if perr.Retryable(err) || !perr.IsUserFixable(err) {
				t.Fatalf("validation should not be retryable")
			}
			if len(mem.Names()) != 0 {
				t.Fatalf("save called on invalid request")
			}
		})
	}
}

func TestExportOne_SourceChecks(t *testing.T) {
	svc := newSvc()
	mem := save.NewMemory()

	_, err := svc.ExportOne(context.Background(), nil, qr.FormatPNG, qr.Options{}, mem)
	if !perr.IsCode(err, perr.ErrorCodeSourceNotFound) {
		t.Fatalf("nil source err = %v", err)
	}
	if UserMessage(err) != "Generate a QR code first." {
		t.Fatalf("message = %q", UserMessage(err))
	}

	_, err = svc.ExportOne(context.Background(), &vector.Source{Markup: []byte("<html/>"), Size: 300}, qr.FormatSVG, qr.Options{}, mem)
	if !perr.IsCode(err, perr.ErrorCodeSerialization) || perr.Retryable(err) {
		t.Fatalf("bad markup err = %v", err)
	}
	if len(mem.Names()) != 0 {
		t.Fatalf("save called on failure")
	}
}

func TestExportOne_RendersThenSaves(t *testing.T) {
	svc := newSvc()
	src, err := svc.Render(context.Background(), qr.Options{Payload: "one", SizePx: 150})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	mem := save.NewMemory()
	art, err := svc.ExportOne(context.Background(), src, qr.FormatPNG, qr.Options{}, mem)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if b := kit.DecodePNG(t, art.Bytes).Bounds(); b.Dx() != 150 {
		t.Fatalf("source size not honored: %v", b)
	}
	if f, ok := mem.Last(); !ok || f.Name != "qrcode.png" {
		t.Fatalf("last = %+v", f)
	}
}

func TestExport_SaveFailure(t *testing.T) {
	boom := errors.New("disk full")
	sink := save.Func(func(context.Context, string, []byte) error { return boom })
	_, err := newSvc().Export(context.Background(), domain.Request{Payload: "x", Format: "svg"}, sink)
	if !errors.Is(err, boom) || !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if _, err := newSvc().Export(context.Background(), domain.Request{Payload: "x", Format: "svg"}, nil); err == nil {
		t.Fatalf("nil sink accepted")
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{context.Canceled, "Export cancelled."},
		{perr.Validationf("size_px must be at most 1000"), "size_px must be at most 1000"},
		{perr.Serializationf("x"), "The QR code could not be read. Regenerate it and export again."},
		{perr.Rasterizationf("x"), "Rendering the image failed. Please try again."},
		{perr.Encodingf("x"), "Building the file failed. Please try again."},
		{perr.Archivef("x"), "Packaging the archive failed. Please start the batch again."},
		{perr.Unavailablef("x"), "Export failed. Please try again."},
		{perr.Conflictf("x"), "Export failed."},
		{errors.New("plain"), "Export failed. Please try again."},
	}
	for _, c := range cases {
		if got := UserMessage(c.err); got != c.want {
			t.Fatalf("UserMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestNew_Panics(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, encode.NewRegistry(raster.New(), nil)) })
	kit.MustPanic(t, func() { New(vector.NewRenderer(nil), nil) })
}
