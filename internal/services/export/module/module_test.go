package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qrforge/internal/core/vector"
	modkit "qrforge/internal/modkit"
	"qrforge/internal/modkit/module"
	"qrforge/internal/platform/config"
	phttp "qrforge/internal/platform/net/http"
	kit "qrforge/internal/platform/testkit"
	"qrforge/internal/services/export/domain"

	"github.com/go-chi/chi/v5"
)

func mount(t *testing.T) phttp.Router {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	New(modkit.Deps{Cfg: config.New()}).MountRoutes(r)
	return r
}

func post(r phttp.Router, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body)))
	return rec
}

func TestExportEndpoint_Download(t *testing.T) {
	r := mount(t)
	rec := post(r, `{"payload":"https://example.com","format":"png","size_px":200,"name":"Front Door"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}
	kit.MustContain(t, rec.Header().Get("Content-Disposition"), `filename=front_door.png`)
	if b := kit.DecodePNG(t, rec.Body.Bytes()).Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Fatalf("bounds = %v", b)
	}

	rec = post(r, `{"payload":"x","format":"svg"}`)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "<?xml") {
		t.Fatalf("svg = %d %q", rec.Code, rec.Body.String())
	}
}

func TestExportEndpoint_Errors(t *testing.T) {
	r := mount(t)
	cases := []struct {
		body   string
		status int
		field  string
	}{
		{`{"payload":"x","format":"gif"}`, 400, "format"},
		{`{"payload":"x","format":"png","size_px":5000}`, 400, "size_px"},
		{`{"payload":"x","format":"png","foreground":"transparent"}`, 400, "foreground"},
		{`{"payload":"x","format":"png","extra":1}`, 400, ""},
		{`{`, 400, ""},
	}
	for _, c := range cases {
		rec := post(r, c.body)
		if rec.Code != c.status {
			t.Fatalf("%s: status = %d %s", c.body, rec.Code, rec.Body.String())
		}
		var env phttp.Envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Field != c.field {
			t.Fatalf("%s: field = %q", c.body, env.Field)
		}
	}
}

func TestPortsAndConfig(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()})
	if m.Name() != "export" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := module.PortsOf[domain.Producer](m); !ok {
		t.Fatalf("producer port missing")
	}
	if _, ok := module.PortsOf[domain.ServicePort](m); !ok {
		t.Fatalf("exporter port missing")
	}

	t.Setenv("CORE_EXPORT_ENGINE", "RSC")
	t.Setenv("CORE_EXPORT_PDF_TITLE", "Menu")
	o := FromConfig(config.New())
	if o.Engine != vector.EngineRSC || o.PDFTitle != "Menu" {
		t.Fatalf("options = %+v", o)
	}
	t.Setenv("CORE_EXPORT_ENGINE", "zxing")
	kit.MustPanic(t, func() { FromConfig(config.New()) })
}

func TestNewService_UnknownEngineFallsBack(t *testing.T) {
	kit.MustNotPanic(t, func() { NewService(modkit.Deps{}, Options{Engine: "nope"}) })
}
