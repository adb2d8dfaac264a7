// Package api provides the HTTP API for the application
package api

import (
	"time"

	"qrforge/internal/core/qr"
	"qrforge/internal/platform/config"
	"qrforge/internal/platform/logger"
	phttp "qrforge/internal/platform/net/http"

	"qrforge/internal/modkit"
	"qrforge/internal/modkit/httpkit"
	"qrforge/internal/modkit/module"
	"qrforge/internal/modkit/swaggerkit"

	metahttp "qrforge/internal/services/api/meta/http"
	metamod "qrforge/internal/services/api/meta/module"
	batchmod "qrforge/internal/services/batch/module"
	exportmod "qrforge/internal/services/export/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Logger         *logger.Logger
	Clock          func() time.Time
	EnableSwagger  bool
	EnableProfiler bool
}

// StackFromConfig reads the versioned API middleware settings with CORE_API_ prefix
func StackFromConfig(cfg config.Conf) httpkit.StackOptions {
	c := cfg.Prefix("CORE_API_")
	return httpkit.StackOptions{
		Timeout:        c.MayDuration("TIMEOUT", 60*time.Second),
		SlowRequest:    c.MayDuration("SLOW_REQUEST", 2*time.Second),
		MaxConcurrent:  c.MayInt("MAX_CONCURRENT", 0),
		AllowedOrigins: c.MayCSV("CORS_ORIGINS", nil),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:   opt.Config,
		Log:   opt.Logger,
		Clock: opt.Clock,
	}

	// export owns the producer; batch and meta reuse it
	expOpts := exportmod.FromConfig(deps.Cfg)
	export := exportmod.New(deps)
	exp := module.MustPortsOf[exportmod.Ports](export)

	batchOpts := batchmod.FromConfig(deps.Cfg)
	batch := batchmod.NewWithOptions(deps, batchOpts, modkit.WithPorts(exp))

	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{
		Producer: exp.Producer,
		Capabilities: metahttp.CapabilitiesResponse{
			Formats:    formatNames(),
			Engine:     expOpts.Engine,
			MinSizePx:  qr.MinSize,
			MaxSizePx:  qr.MaxSize,
			MaxRows:    batchOpts.Limits.MaxRows,
			MaxPayload: batchOpts.Limits.MaxPayloadBytes,
		},
	}))

	mods := []module.Module{meta, export, batch}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(StackFromConfig(deps.Cfg)), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

func formatNames() []string {
	out := make([]string, 0, len(qr.Formats))
	for _, f := range qr.Formats {
		out = append(out, f.String())
	}
	return out
}
