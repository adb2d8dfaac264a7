// Package module wires the batch pipeline and job registry into the API using modkit
package module

import (
	modkit "qrforge/internal/modkit"
	"qrforge/internal/modkit/httpkit"
	"qrforge/internal/modkit/module"
	batchhttp "qrforge/internal/services/batch/http"
	batchsvc "qrforge/internal/services/batch/service"
	exportdom "qrforge/internal/services/export/domain"
	exportmod "qrforge/internal/services/export/module"
)

// Module implements the modkit.Module interface
type Module struct {
	built  modkit.Built
	opts   Options
	ports  Ports
}

// New constructs the batch module. Pass the export module's ports with
// modkit.WithPorts to share its producer; otherwise one is built from config
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return NewWithOptions(deps, FromConfig(deps.Cfg), opts...)
}

// NewWithOptions is New with explicit batch options
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("batch"), modkit.WithPrefix("/batch")}, opts...)...)

	pipeline := batchsvc.NewPipeline(producerFrom(deps, b.Ports), deps.Now())
	jobs := batchsvc.NewJobs(pipeline, o.JobTTL, deps.Now())
	return &Module{
		built:  b,
		opts:   o,
		ports:  Ports{Runner: pipeline, Jobs: jobs},
	}
}

func producerFrom(deps modkit.Deps, ports any) exportdom.Producer {
	switch p := ports.(type) {
	case exportdom.Producer:
		return p
	case exportmod.Ports:
		if p.Producer != nil {
			return p.Producer
		}
	}
	if p, ok := module.PortsAs[exportmod.Ports]("export"); ok && p.Producer != nil {
		return p.Producer
	}
	return exportmod.NewService(deps, exportmod.FromConfig(deps.Cfg))
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(sub httpkit.Router) {
		batchhttp.Register(sub, m.ports.Runner, m.ports.Jobs, m.opts.Limits)
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
