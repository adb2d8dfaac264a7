package save

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	perr "qrforge/internal/platform/errors"
)

func TestDir_Save(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	d := NewDir(root)
	ctx := context.Background()

	if err := d.Save(ctx, "code.svg", []byte("<svg/>")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := d.Save(ctx, "../../escape.png", []byte("png")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "code.svg"))
	if err != nil || string(got) != "<svg/>" {
		t.Fatalf("read back = %q %v", got, err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.png")); err != nil {
		t.Fatalf("escaped name not confined: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "code.svg.part")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
	if w := d.Written(); len(w) != 2 || filepath.Base(w[1]) != "escape.png" {
		t.Fatalf("written = %v", w)
	}
	if err := d.Save(ctx, "/", nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad name err = %v", err)
	}
}

func TestMemory_Save(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if _, ok := m.Last(); ok {
		t.Fatalf("empty memory has a last file")
	}
	src := []byte("a")
	_ = m.Save(ctx, "b.png", src)
	_ = m.Save(ctx, "a.png", []byte("z"))
	src[0] = 'x'

	if b, ok := m.Get("b.png"); !ok || string(b) != "a" {
		t.Fatalf("Get = %q %v", b, ok)
	}
	if f, ok := m.Last(); !ok || f.Name != "a.png" {
		t.Fatalf("Last = %+v", f)
	}
	if n := m.Names(); len(n) != 2 || n[0] != "a.png" {
		t.Fatalf("Names = %v", n)
	}

	ctx, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.Save(ctx, "c.png", nil); err == nil {
		t.Fatalf("cancelled save accepted")
	}
}

func TestFunc(t *testing.T) {
	var got string
	var p Port = Func(func(_ context.Context, name string, _ []byte) error {
		got = name
		return nil
	})
	_ = p.Save(context.Background(), "x.pdf", nil)
	if got != "x.pdf" {
		t.Fatalf("got %q", got)
	}
}
