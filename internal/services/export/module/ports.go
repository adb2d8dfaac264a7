package module

import "qrforge/internal/services/export/domain"

// Ports is what the export module offers other modules
type Ports struct {
	Exporter domain.ServicePort
	Producer domain.Producer
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
