package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Module defines the contract for a self-registering business module.
// Each module owns its tables and registers its routes under /api/v1.
type Module interface {
	Name() string
	Models() []any
	RegisterRoutes(api *gin.RouterGroup)
}

// Modules is an ordered set of modules with unique names.
type Modules struct {
	list []Module
}

// NewModules validates ms and keeps their order for migration and routing.
func NewModules(ms ...Module) (*Modules, error) {
	seen := make(map[string]bool, len(ms))
	for i, m := range ms {
		if m == nil {
			return nil, fmt.Errorf("module at index %d is nil", i)
		}
		name := m.Name()
		if name == "" {
			return nil, fmt.Errorf("module at index %d has no name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate module %q", name)
		}
		seen[name] = true
	}
	return &Modules{list: ms}, nil
}

// Names returns the module names in registration order.
func (r *Modules) Names() []string {
	names := make([]string, len(r.list))
	for i, m := range r.list {
		names[i] = m.Name()
	}
	return names
}

// Models returns every model owned by the modules.
func (r *Modules) Models() []any {
	var models []any
	for _, m := range r.list {
		models = append(models, m.Models()...)
	}
	return models
}

// Register mounts every module on api.
func (r *Modules) Register(api *gin.RouterGroup) {
	for _, m := range r.list {
		m.RegisterRoutes(api)
	}
}

// Len reports how many modules are registered.
func (r *Modules) Len() int { return len(r.list) }
