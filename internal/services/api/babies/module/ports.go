package module

import "babyfood/internal/services/api/babies/domain"

// Ports is what babies exposes to other modules
type Ports struct {
	Access domain.Access
	Zones  domain.Zones
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
