package module

import (
	"testing"

	phttp "qrforge/internal/platform/net/http"
	kit "qrforge/internal/platform/testkit"
)

type saver interface{ Save(string) error }

type dirSaver struct{}

func (dirSaver) Save(string) error { return nil }

type portSet struct {
	Saver saver
	Limit int
	hidden saver
}

type stubModule struct{ ports any }

func (s stubModule) MountRoutes(phttp.Router) {}
func (s stubModule) Ports() any               { return s.ports }
func (s stubModule) Name() string             { return "stub" }

func TestPortsOf(t *testing.T) {
	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", dirSaver{}, true},
		{"struct field", portSet{Saver: dirSaver{}}, true},
		{"pointer struct", &portSet{Saver: dirSaver{}}, true},
		{"nil pointer", (*portSet)(nil), false},
		{"unexported only", portSet{hidden: dirSaver{}}, false},
		{"primitive", 42, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := PortsOf[saver](stubModule{ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	kit.MustNotPanic(t, func() { _ = MustPortsOf[saver](stubModule{ports: portSet{Saver: dirSaver{}}}) })
	kit.MustPanic(t, func() { _ = MustPortsOf[saver](stubModule{}) })
}

func TestRegistry(t *testing.T) {
	kit.Serial(t)
	Reset()
	t.Cleanup(Reset)

	Register("export", portSet{Limit: 3})
	if got, ok := PortsAs[portSet]("export"); !ok || got.Limit != 3 {
		t.Fatalf("PortsAs = %+v %v", got, ok)
	}
	if _, ok := PortsAs[portSet]("missing"); ok {
		t.Fatalf("missing name should not be ok")
	}
	if _, ok := PortsAs[int]("export"); ok {
		t.Fatalf("type mismatch should not be ok")
	}
}
