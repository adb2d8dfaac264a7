// Package save holds the Save Port adapters: where finished files go
package save

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	perr "qrforge/internal/platform/errors"
)

// Port receives a finished file. Implementations own the bytes after Save returns
type Port interface {
	Save(ctx context.Context, fileName string, data []byte) error
}

// Func adapts a plain function to Port
type Func func(ctx context.Context, fileName string, data []byte) error

// Save implements Port
func (f Func) Save(ctx context.Context, fileName string, data []byte) error {
	return f(ctx, fileName, data)
}

// Dir writes files under Root. Names are reduced to their base so callers cannot escape Root
type Dir struct {
	Root string
	Perm os.FileMode

	mu      sync.Mutex
	written []string
}

// NewDir returns a Dir rooted at root, created on first Save
func NewDir(root string) *Dir { return &Dir{Root: root, Perm: 0o644} }

// Save writes through a .part file and renames into place
func (d *Dir) Save(ctx context.Context, fileName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	base := filepath.Base(filepath.Clean("/" + fileName))
	if base == "/" || base == "." {
		return perr.InvalidArgf("save: unusable file name %q", fileName)
	}
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "save: create %s", d.Root)
	}

	path := filepath.Join(d.Root, base)
	tmp := path + ".part"
	perm := d.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "save: write %s", base)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "save: rename %s", base)
	}

	d.mu.Lock()
	d.written = append(d.written, path)
	d.mu.Unlock()
	return nil
}

// Written lists every path saved so far, in order
func (d *Dir) Written() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.written...)
}

// File is one captured artifact
type File struct {
	Name  string
	Bytes []byte
}

// Memory captures files in process; the HTTP handlers and tests read them back
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
	last  string
}

// NewMemory returns an empty Memory
func NewMemory() *Memory { return &Memory{files: map[string][]byte{}} }

// Save implements Port. A repeated name replaces the earlier bytes
func (m *Memory) Save(ctx context.Context, fileName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[fileName] = append([]byte(nil), data...)
	m.last = fileName
	return nil
}

// Get returns the bytes saved under name
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[name]
	return b, ok
}

// Last returns the most recently saved file
func (m *Memory) Last() (File, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == "" {
		return File{}, false
	}
	return File{Name: m.last, Bytes: m.files[m.last]}, true
}

// Names lists saved names sorted
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for n := range m.files {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
