// Package module defines the minimal contract for a modkit module
package module

import phttp "qrforge/internal/platform/net/http"

// Module is kept apart from modkit so a module package can export its own Ports type
// without import cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
