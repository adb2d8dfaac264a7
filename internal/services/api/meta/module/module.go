// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"

	"qrforge/internal/core/qr"
	modkit "qrforge/internal/modkit"
	"qrforge/internal/modkit/httpkit"
	metahttp "qrforge/internal/services/api/meta/http"
	exportdom "qrforge/internal/services/export/domain"
)

// Ports lets meta probe the export pipeline; both fields are optional
type Ports struct {
	Producer     exportdom.Producer
	Capabilities metahttp.CapabilitiesResponse
}

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module. Pass Ports with modkit.WithPorts to enable the
// export readiness probe and capabilities
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	now := deps.Now()
	p, _ := b.Ports.(Ports)
	caps := p.Capabilities
	if len(caps.Formats) == 0 {
		for _, f := range qr.Formats {
			caps.Formats = append(caps.Formats, f.String())
		}
	}
	if caps.MinSizePx == 0 {
		caps.MinSizePx, caps.MaxSizePx = qr.MinSize, qr.MaxSize
	}

	return &Module{
		built: b,
		deps: metahttp.Deps{
			ServiceName:  "qrforge-api",
			StartedAt:    now(),
			Now:          now,
			Checks:       []metahttp.Check{{Name: "export", Fn: probe(p.Producer)}},
			Capabilities: caps,
		},
	}
}

// probe renders and encodes one small SVG and PNG
func probe(p exportdom.Producer) func(context.Context) error {
	if p == nil {
		return nil
	}
	return func(ctx context.Context) error {
		opts := qr.Options{Payload: "ready", SizePx: qr.MinSize}.WithDefaults()
		src, err := p.Render(ctx, opts)
		if err != nil {
			return err
		}
		for _, f := range []qr.Format{qr.FormatSVG, qr.FormatPNG} {
			if _, err := p.Produce(ctx, src, exportdom.Item{Format: f, Options: opts}); err != nil {
				return err
			}
		}
		return nil
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { metahttp.Register(sub, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
