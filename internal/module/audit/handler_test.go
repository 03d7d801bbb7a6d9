package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

const logID = "9d8c7b6a-5f4e-4d3c-8b2a-1f0e9d8c7b6a"

type mockService struct {
	err     error
	entries []domain.AuditLog
	lastReq domain.PageRequest
}

func (m *mockService) Record(context.Context, domain.AuditEntry) {}

func (m *mockService) GetAuditLog(_ context.Context, id string) (*domain.AuditLog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AuditLog{ID: id, Actor: "system", Action: domain.ActionCreate}, nil
}

func (m *mockService) ListAuditLogs(_ context.Context, req domain.PageRequest) (*domain.PageResult[domain.AuditLog], error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return pkg.NewPage(m.entries, int64(len(m.entries)), req), nil
}

func (m *mockService) ExportAuditLogs(_ context.Context, req domain.PageRequest) ([]domain.AuditLog, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func setupRouter(svc domain.AuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewModule(NewAuditHandler(svc)).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestAuditHandler_List(t *testing.T) {
	svc := &mockService{entries: []domain.AuditLog{{ID: logID, Actor: "system", Action: domain.ActionCreate}}}
	r := setupRouter(svc)

	w := doRequest(r, "/api/v1/audit-logs?page=2&per_page=5&sort_by=entity&search=farmer")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}
	want := domain.PageRequest{Page: 2, PerPage: 5, SortBy: "entity", Search: "farmer"}
	if svc.lastReq != want {
		t.Errorf("request = %+v; want %+v", svc.lastReq, want)
	}

	var body struct {
		Data domain.PageResult[domain.AuditLog] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.Total != 1 || body.Data.PageSize != 5 {
		t.Errorf("page = %+v", body.Data)
	}
}

func TestAuditHandler_ListRejectsBadPaging(t *testing.T) {
	r := setupRouter(&mockService{})
	if w := doRequest(r, "/api/v1/audit-logs?per_page=1000"); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want 400", w.Code)
	}
}

func TestAuditHandler_Get(t *testing.T) {
	tests := []struct {
		name string
		err  error
		path string
		want int
	}{
		{"found", nil, "/api/v1/audit-logs/" + logID, http.StatusOK},
		{"missing", domain.NotFoundf("audit log"), "/api/v1/audit-logs/" + logID, http.StatusNotFound},
		{"bad id", nil, "/api/v1/audit-logs/nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&mockService{err: tt.err})
			if w := doRequest(r, tt.path); w.Code != tt.want {
				t.Errorf("status = %d; want %d", w.Code, tt.want)
			}
		})
	}
}

func TestAuditHandler_Export(t *testing.T) {
	detail := "FRM-1"
	svc := &mockService{entries: []domain.AuditLog{
		{ID: logID, Actor: "rosa.quispe", Action: domain.ActionCreate, Entity: "farmer", EntityID: "f1", Detail: &detail, CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	}}
	r := setupRouter(svc)

	w := doRequest(r, "/api/v1/audit-logs/export?search=farmer")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=audit-logs.xlsx" {
		t.Errorf("content disposition = %q", got)
	}

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Audit")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := []string{"2024-06-01T12:00:00Z", "rosa.quispe", "create", "farmer", "f1", "FRM-1"}
	if len(rows) != 2 || len(rows[1]) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Errorf("cell %d = %q; want %q", i, rows[1][i], want[i])
		}
	}
}
