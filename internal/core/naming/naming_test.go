package naming

import (
	"regexp"
	"testing"
)

var safe = regexp.MustCompile(`^[a-z0-9_-]+$`)

func TestSanitize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Product", "product"},
		{"SKU 001/blue", "sku_001_blue"},
		{"__a___b__", "a_b"},
		{"keep-dash_and_under", "keep-dash_and_under"},
		{"Crème brûlée", "cr_me_br_l_e"},
		{"", "qrcode"},
		{"!!!", "qrcode"},
		{"   ", "qrcode"},
		{"---", "---"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Fatalf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitize_SafeAndIdempotent(t *testing.T) {
	inputs := []string{
		"a", "A B C", "日本語", "x\x00y", "tab\tsep", "../../etc/passwd", "__", "MiXeD-Case_99",
		"emoji 🎉 here", "dots.and.more.dots", "'quotes' \"too\"",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if !safe.MatchString(once) {
			t.Fatalf("Sanitize(%q) = %q not safe", in, once)
		}
		if twice := Sanitize(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestPositional(t *testing.T) {
	if got := Positional(3); got != "qrcode_3" {
		t.Fatalf("got %q", got)
	}
}

func TestRegistry_Claim(t *testing.T) {
	r := NewRegistry()
	got := []string{
		r.Claim("Product", "png"),
		r.Claim("product", ".png"),
		r.Claim("PRODUCT!", "png"),
		r.Claim("product", "svg"),
	}
	want := []string{"product.png", "product_2.png", "product_3.png", "product.svg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("claim %d = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Len() != 4 {
		t.Fatalf("Len = %d", r.Len())
	}
}

func TestRegistry_SkipsTakenSuffix(t *testing.T) {
	r := NewRegistry()
	a := r.Claim("product_2", "png")
	b := r.Claim("product", "png")
	c := r.Claim("product", "png")
	if a != "product_2.png" || b != "product.png" || c != "product_3.png" {
		t.Fatalf("got %q %q %q", a, b, c)
	}
}
