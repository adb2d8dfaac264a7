package module

import "qrforge/internal/services/batch/domain"

// Ports is what the batch module offers other modules and hosts
type Ports struct {
	Runner domain.Runner
	Jobs   domain.JobsPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
