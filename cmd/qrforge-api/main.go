// @title         qrforge API
// @version       0.1.0
// @description   Export QR codes as SVG, PNG or PDF, one at a time or in ZIP batches

package main

import (
	"context"
	"os/signal"
	"syscall"

	"qrforge/internal/platform/config"
	"qrforge/internal/platform/logger"
	phttp "qrforge/internal/platform/net/http"

	"qrforge/internal/services/api"
)

func main() {
	// bring up logging early (LOG_*)
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	// service-scoped config for HTTP (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// modules read their own CORE_EXPORT_* / CORE_BATCH_* scopes from the root
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
