// Package archive builds the single ZIP container a batch is delivered in
package archive

import (
	"bytes"
	"io"
	"time"

	perr "qrforge/internal/platform/errors"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// Epoch is the entry timestamp used when none is configured, so equal inputs give equal bytes
var Epoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Options for a Builder
type Options struct {
	// Level is a flate level in [-2, 9]
	Level int
	// Modified stamps every entry; zero means Epoch
	Modified time.Time
	Comment  string
}

// DefaultOptions uses the flate default level
func DefaultOptions() Options { return Options{Level: flate.DefaultCompression} }

// Builder collects entries into one in-memory ZIP. Owned by a single batch run
type Builder struct {
	buf      bytes.Buffer
	zw       *zip.Writer
	modified time.Time
	names    map[string]struct{}
	done     bool
}

// New fails with an archive error when the compression level is unusable
func New(o Options) (*Builder, error) {
	if _, err := flate.NewWriter(io.Discard, o.Level); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeArchive, "archive init: compression level %d", o.Level)
	}
	b := &Builder{modified: o.Modified, names: map[string]struct{}{}}
	if b.modified.IsZero() {
		b.modified = Epoch
	}
	b.zw = zip.NewWriter(&b.buf)
	level := o.Level
	b.zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})
	if o.Comment != "" {
		if err := b.zw.SetComment(o.Comment); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeArchive, "archive init: comment")
		}
	}
	return b, nil
}

// Add writes one entry; names must be unique and non-empty
func (b *Builder) Add(name string, data []byte) error {
	if b.done {
		return perr.Archivef("archive already finalized")
	}
	if name == "" {
		return perr.Archivef("archive entry needs a name")
	}
	if _, dup := b.names[name]; dup {
		return perr.WithField(perr.Archivef("duplicate archive entry %q", name), name)
	}
	w, err := b.zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: b.modified})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeArchive, "archive entry %q", name)
	}
	if _, err := w.Write(data); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeArchive, "archive write %q", name)
	}
	b.names[name] = struct{}{}
	return nil
}

// Len reports how many entries were added
func (b *Builder) Len() int { return len(b.names) }

// Finalize closes the container and returns its bytes. Later calls fail
func (b *Builder) Finalize() ([]byte, error) {
	if b.done {
		return nil, perr.Archivef("archive already finalized")
	}
	b.done = true
	if err := b.zw.Close(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArchive, "archive finalize failed")
	}
	return bytes.Clone(b.buf.Bytes()), nil
}
