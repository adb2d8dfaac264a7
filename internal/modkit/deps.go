package modkit

import (
	"time"

	"qrforge/internal/platform/config"
	"qrforge/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log   *logger.Logger
	Cfg   config.Conf
	Clock func() time.Time
}

// Logger returns Log, or a named child of the root logger when unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		l := d.Log.With().Str("component", component).Logger()
		return &l
	}
	return logger.Named(component)
}

// Now returns the injected clock or time.Now
func (d Deps) Now() func() time.Time {
	if d.Clock != nil {
		return d.Clock
	}
	return time.Now
}
