package monitoring

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMonitoringModuleRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mod := NewModule(&VisitHandler{})
	mod.RegisterRoutes(r.Group("/api/v1"))

	expected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/monitoring-visits"},
		{http.MethodPost, "/api/v1/monitoring-visits"},
		{http.MethodGet, "/api/v1/monitoring-visits/:id"},
		{http.MethodPatch, "/api/v1/monitoring-visits/:id"},
		{http.MethodDelete, "/api/v1/monitoring-visits/:id"},
		{http.MethodPost, "/api/v1/monitoring-visits/:id/restore"},
	}

	registered := make(map[string]bool)
	for _, ri := range r.Routes() {
		registered[ri.Method+":"+ri.Path] = true
	}
	for _, exp := range expected {
		if !registered[exp.method+":"+exp.path] {
			t.Errorf("expected route %s %s to be registered", exp.method, exp.path)
		}
	}
	if mod.Name() != "monitoring" {
		t.Errorf("Name = %q", mod.Name())
	}
}

func TestNewModule_PanicsOnNilHandler(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for nil handler")
		}
	}()
	NewModule(nil)
}
