package vector

import (
	"context"
	"strings"
	"testing"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"
	kit "qrforge/internal/platform/testkit"
)

func TestRender_SVGShape(t *testing.T) {
	for _, eng := range []MatrixEngine{Skip2{}, RSC{}} {
		t.Run(eng.Name(), func(t *testing.T) {
			src, err := NewRenderer(eng).Render(context.Background(), qr.Options{Payload: "https://example.com"})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if src.Size != qr.DefaultSize || src.Modules < 21+2*QuietZone {
				t.Fatalf("size=%d modules=%d", src.Size, src.Modules)
			}
			s := src.String()
			kit.MustContain(t, s, `width="300" height="300"`)
			kit.MustContain(t, s, `viewBox="0 0 `)
			kit.MustContain(t, s, `fill="#ffffff"`)
			kit.MustContain(t, s, `fill="#000000"`)
			kit.MustContain(t, s, `<rect`)
			kit.MustContain(t, s, `</svg>`)
		})
	}
}

func TestRender_TransparentSkipsBackground(t *testing.T) {
	src, err := NewRenderer(nil).Render(context.Background(), qr.Options{
		Payload: "hello", Background: "transparent", Foreground: "navy",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(src.String(), "#ffffff") || strings.Contains(src.String(), "transparent") {
		t.Fatalf("background rect present:\n%s", src)
	}
	kit.MustContain(t, src.String(), `fill="navy"`)
}

func TestRender_Errors(t *testing.T) {
	r := NewRenderer(nil)

	_, err := r.Render(context.Background(), qr.Options{})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty payload err = %v", err)
	}

	huge := strings.Repeat("x", qr.MaxPayloadBytes+100)
	_, err = r.Render(context.Background(), qr.Options{Payload: huge, Level: qr.LevelH})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("oversize err = %v", err)
	}
	if e, _ := perr.As(err); e.Field() != "payload" {
		t.Fatalf("field = %q", e.Field())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, qr.Options{Payload: "x"}); err == nil {
		t.Fatalf("cancelled ctx accepted")
	}
}

func TestRSC_QuietZone(t *testing.T) {
	m, err := RSC{}.Matrix("quiet", qr.LevelM)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	n := len(m)
	for i := 0; i < n; i++ {
		if m[0][i] || m[i][0] || m[n-1][i] || m[i][n-1] {
			t.Fatalf("dark module on border at %d", i)
		}
	}
	// finder pattern corner sits just inside the quiet zone
	if !m[QuietZone][QuietZone] {
		t.Fatalf("finder corner not dark")
	}
}

func TestEngineByName(t *testing.T) {
	for name, want := range map[string]string{"": EngineSkip2, "SKIP2": EngineSkip2, " rsc ": EngineRSC} {
		e, err := EngineByName(name)
		if err != nil || e.Name() != want {
			t.Fatalf("EngineByName(%q) = %v, %v", name, e, err)
		}
	}
	if _, err := EngineByName("zxing"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unknown engine err = %v", err)
	}
}

func TestSourceHelpers(t *testing.T) {
	var s *Source
	if s.String() != "" || !s.Empty() {
		t.Fatalf("nil source helpers")
	}
	if !(&Source{Markup: []byte("  \n")}).Empty() {
		t.Fatalf("blank markup not empty")
	}
}
