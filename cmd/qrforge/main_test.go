package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kit "qrforge/internal/platform/testkit"
)

func TestRun_SingleExport(t *testing.T) {
	dir := t.TempDir()
	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-payload", "https://example.com", "-format", "svg", "-name", "Lobby Sign", "-out", dir}, &out, &errb)
	if code != exitOK {
		t.Fatalf("code = %d stderr = %s", code, errb.String())
	}
	b, err := os.ReadFile(filepath.Join(dir, "lobby_sign.svg"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	kit.MustContain(t, string(b), "<svg")
	kit.MustContain(t, out.String(), "lobby_sign.svg")
}

func TestRun_SingleExportInvalid(t *testing.T) {
	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-payload", "x", "-size", "5", "-out", t.TempDir()}, &out, &errb)
	if code != exitFail {
		t.Fatalf("code = %d", code)
	}
	kit.MustContain(t, errb.String(), "size_px")
}

func TestRun_Batch(t *testing.T) {
	t.Setenv("CORE_BATCH_ARCHIVE_NAME", "")
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "rows.csv")
	data := "identifier,payload\nA,https://a.example\nB,\nA,https://c.example\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	var out, errb bytes.Buffer
	code := run(context.Background(), []string{"-csv", csvPath, "-format", "png", "-size", "120", "-out", dir, "-archive", "codes.zip"}, &out, &errb)
	if code != exitOK {
		t.Fatalf("code = %d stderr = %s", code, errb.String())
	}
	kit.MustContain(t, out.String(), "2 succeeded, 1 failed")
	kit.MustContain(t, errb.String(), "3/3 rows (100.0%)\nrow 2 \"B\"")
	if n := strings.Count(errb.String(), `row 2 "B"`); n != 1 {
		t.Fatalf("row 2 reported %d times:\n%s", n, errb.String())
	}

	b, err := os.ReadFile(filepath.Join(dir, "codes.zip"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	_, names := kit.ZipEntries(t, b)
	if strings.Join(names, ",") != "a.png,a_2.png" {
		t.Fatalf("names = %v", names)
	}
}

func TestRun_Usage(t *testing.T) {
	var out, errb bytes.Buffer
	if code := run(context.Background(), nil, &out, &errb); code != exitUsage {
		t.Fatalf("no mode code = %d", code)
	}
	if code := run(context.Background(), []string{"-payload", "x", "-csv", "y"}, &out, &errb); code != exitUsage {
		t.Fatalf("both modes code = %d", code)
	}
	if code := run(context.Background(), []string{"-nope"}, &out, &errb); code != exitUsage {
		t.Fatalf("bad flag code = %d", code)
	}
}

func TestLogOptions(t *testing.T) {
	var errb bytes.Buffer

	t.Setenv("LOG_LEVEL", "")
	opt := logOptions(&errb)
	if opt.Level != "error" || opt.Writer != &errb {
		t.Fatalf("default = %+v", opt)
	}

	t.Setenv("LOG_LEVEL", "debug")
	if opt := logOptions(&errb); opt.Level != "debug" {
		t.Fatalf("explicit level = %q", opt.Level)
	}
}
