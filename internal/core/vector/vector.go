// Package vector builds the self-contained SVG vector source for a QR code.
// The module matrix comes from an external engine; this package only lays it out
package vector

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"qrforge/internal/core/qr"
	perr "qrforge/internal/platform/errors"

	svg "github.com/ajstarks/svgo"
)

// Source is an in-memory vector rendering, sized SizePx on both axes
type Source struct {
	Markup  []byte
	Size    int
	Modules int
}

// String returns the markup as text
func (s *Source) String() string {
	if s == nil {
		return ""
	}
	return string(s.Markup)
}

// Empty reports whether there is nothing to export
func (s *Source) Empty() bool { return s == nil || len(bytes.TrimSpace(s.Markup)) == 0 }

// Renderer produces the vector source for one set of options
type Renderer interface {
	Render(ctx context.Context, opts qr.Options) (*Source, error)
}

// SVG renders with svgo: one rect per horizontal run of dark modules,
// in a viewBox of one unit per module
type SVG struct {
	Engine MatrixEngine
}

// NewRenderer returns an SVG renderer over engine, skip2 when nil
func NewRenderer(engine MatrixEngine) *SVG {
	if engine == nil {
		engine = Skip2{}
	}
	return &SVG{Engine: engine}
}

// Render implements Renderer
func (r *SVG) Render(ctx context.Context, opts qr.Options) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()
	if opts.Payload == "" {
		return nil, perr.WithField(perr.Validationf("payload is required"), "payload")
	}

	m, err := r.Engine.Matrix(opts.Payload, opts.Level)
	if err != nil {
		return nil, perr.WithField(
			perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "payload cannot be encoded at level %s", opts.Level),
			"payload",
		)
	}
	n := len(m)
	if n == 0 {
		return nil, perr.Internalf("%s engine returned an empty matrix", r.Engine.Name())
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Startview(opts.SizePx, opts.SizePx, 0, 0, n, n)
	if !opts.IsTransparent() {
		canvas.Rect(0, 0, n, n, fill(opts.Background))
	}
	canvas.Group(`shape-rendering="crispEdges"`, fill(opts.Foreground))
	for y, row := range m {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			canvas.Rect(start, y, x-start, 1)
		}
	}
	canvas.Gend()
	canvas.End()

	return &Source{Markup: buf.Bytes(), Size: opts.SizePx, Modules: n}, nil
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func fill(color string) string {
	return fmt.Sprintf(`fill="%s"`, attrEscaper.Replace(strings.TrimSpace(color)))
}
