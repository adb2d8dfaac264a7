package module

import (
	"qrforge/internal/core/vector"
	"qrforge/internal/platform/config"
)

// Options tune the export module beyond the shared modkit options
type Options struct {
	Engine   string
	PDFTitle string
}

// FromConfig reads CORE_EXPORT_ENGINE and CORE_EXPORT_PDF_TITLE from cfg's scope
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_EXPORT_")
	return Options{
		Engine:   c.MayEnum("ENGINE", vector.EngineSkip2, vector.EngineSkip2, vector.EngineRSC),
		PDFTitle: c.MayString("PDF_TITLE", ""),
	}
}
