// Package module wires the export service into the API using modkit
package module

import (
	"qrforge/internal/core/encode"
	"qrforge/internal/core/raster"
	"qrforge/internal/core/vector"
	modkit "qrforge/internal/modkit"
	"qrforge/internal/modkit/httpkit"
	str "qrforge/internal/platform/strings"
	exporthttp "qrforge/internal/services/export/http"
	exportsvc "qrforge/internal/services/export/service"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	svc   exportsvc.Service
	ports Ports
}

// New constructs the export module. The matrix engine and PDF title come from
// CORE_EXPORT_* unless WithOptions overrides them
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions is New with explicit module options
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("export"), modkit.WithPrefix("/export")}, opts...)...)

	svc := NewService(deps, o)
	m := &Module{built: b, svc: svc}
	m.ports = Ports{Exporter: svc, Producer: svc}
	return m
}

// NewService builds the export service without HTTP wiring; the CLI uses it directly
func NewService(deps modkit.Deps, o Options) *exportsvc.Svc {
	engine, err := vector.EngineByName(str.FirstNonEmpty(o.Engine, vector.EngineSkip2))
	if err != nil {
		deps.Logger("export").Warn().Err(err).Msg("unknown matrix engine, using skip2")
		engine = vector.Skip2{}
	}
	encoders := encode.NewRegistry(raster.New(), deps.Now())
	return exportsvc.New(vector.NewRenderer(engine), encoders, exportsvc.WithDefaultTitle(o.PDFTitle))
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) { exporthttp.Register(sub, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
