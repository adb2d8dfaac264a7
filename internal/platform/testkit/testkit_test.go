package testkit

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, "alpha beta gamma", "beta")
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	img := DecodePNG(t, buf.Bytes())
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestZipEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"b.svg", "a.svg"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = w.Write([]byte(name))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	files, names := ZipEntries(t, buf.Bytes())
	if len(names) != 2 || names[0] != "b.svg" || string(files["a.svg"]) != "a.svg" {
		t.Fatalf("entries = %v", names)
	}
}

func TestFixedClock(t *testing.T) {
	t0 := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !FixedClock(t0)().Equal(t0) {
		t.Fatalf("clock drift")
	}
}
