package markup

import (
	"context"
	"strings"
	"testing"

	"qrforge/internal/core/qr"
	"qrforge/internal/core/vector"
	perr "qrforge/internal/platform/errors"
)

const (
	nsDecl    = `xmlns="` + SVGNamespace + `"`
	xlinkDecl = `xmlns:xlink="` + XLinkNamespace + `"`
)

func mustSerialize(t *testing.T, in string) string {
	t.Helper()
	out, err := SerializeString(in)
	if err != nil {
		t.Fatalf("SerializeString(%q): %v", in, err)
	}
	return out
}

func checkDocument(t *testing.T, out string) {
	t.Helper()
	if !strings.HasPrefix(out, Prolog+"\n") {
		t.Fatalf("missing prolog:\n%s", out)
	}
	if n := strings.Count(out, "<?xml"); n != 1 {
		t.Fatalf("prolog count = %d", n)
	}
	if n := strings.Count(out, nsDecl); n != 1 {
		t.Fatalf("svg namespace count = %d\n%s", n, out)
	}
	if n := strings.Count(out, xlinkDecl); n != 1 {
		t.Fatalf("xlink namespace count = %d\n%s", n, out)
	}
	if n := strings.Count(out, "<svg"); n != 1 {
		t.Fatalf("root count = %d", n)
	}
}

func TestSerializeString_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare root gains both namespaces",
			in:   `<svg width="10" height="10"><rect width="1" height="1"/></svg>`,
			want: Prolog + "\n" + `<svg width="10" height="10" ` + nsDecl + ` ` + xlinkDecl + `><rect width="1" height="1"/></svg>`,
		},
		{
			name: "existing declaration replaced",
			in:   "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<svg " + nsDecl + "></svg>",
			want: Prolog + "\n<svg " + nsDecl + " " + xlinkDecl + "></svg>",
		},
		{
			name: "self closing root",
			in:   `<svg/>`,
			want: Prolog + "\n<svg " + nsDecl + " " + xlinkDecl + "/>",
		},
		{
			name: "both namespaces already present",
			in:   "<svg " + nsDecl + " " + xlinkDecl + "><g/></svg>",
			want: Prolog + "\n<svg " + nsDecl + " " + xlinkDecl + "><g/></svg>",
		},
		{
			name: "leading comment kept",
			in:   "<!-- made here -->\n<svg></svg>",
			want: Prolog + "\n<!-- made here -->\n<svg " + nsDecl + " " + xlinkDecl + "></svg>",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := mustSerialize(t, c.in)
			if got != c.want {
				t.Fatalf("got\n%s\nwant\n%s", got, c.want)
			}
			checkDocument(t, got)
		})
	}
}

func TestSerialize_Idempotent(t *testing.T) {
	src, err := vector.NewRenderer(nil).Render(context.Background(), qr.Options{Payload: "https://example.com"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	once, err := Serialize(src)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	checkDocument(t, string(once))

	twice := mustSerialize(t, string(once))
	if twice != string(once) {
		t.Fatalf("not idempotent:\n%s\n---\n%s", once, twice)
	}

	for _, in := range []string{`<svg/>`, `<svg width="1"><g></g></svg>`, "  \n<svg " + xlinkDecl + "></svg>  "} {
		a := mustSerialize(t, in)
		if b := mustSerialize(t, a); a != b {
			t.Fatalf("not idempotent for %q", in)
		}
	}
}

func TestSerialize_Errors(t *testing.T) {
	if _, err := Serialize(nil); !perr.IsCode(err, perr.ErrorCodeSerialization) {
		t.Fatalf("nil source err = %v", err)
	}
	if _, err := Serialize(&vector.Source{}); !perr.IsCode(err, perr.ErrorCodeSerialization) {
		t.Fatalf("empty source err = %v", err)
	}
	bad := []string{
		"",
		"not markup",
		"<svg>",
		"<svg></g>",
		"<html></html>",
		"<svg></svg><svg></svg>",
		"<svg></svg><?xml version=\"1.0\"?>",
	}
	for _, in := range bad {
		if _, err := SerializeString(in); !perr.IsCode(err, perr.ErrorCodeSerialization) {
			t.Fatalf("SerializeString(%q) err = %v", in, err)
		}
	}
}
