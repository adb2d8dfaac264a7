// Package modkit provides module wiring for the HTTP host
package modkit

import "qrforge/internal/modkit/module"

// Module is the common surface for API modules: mount routes, expose ports, carry a name
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
