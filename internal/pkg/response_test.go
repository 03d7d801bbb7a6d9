package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/identi-digital/identi-modules/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newResponseTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func newResponseTestContextWithBody(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return resp
}

func TestSuccessAndCreated(t *testing.T) {
	tests := []struct {
		name     string
		send     func(*gin.Context, any)
		wantCode int
	}{
		{"success", Success, http.StatusOK},
		{"created", Created, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext()
			tt.send(c, gin.H{"name": "Cusco"})

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d; want %d", w.Code, tt.wantCode)
			}
			resp := decodeResponse(t, w)
			if resp.Code != tt.wantCode || resp.Message != "success" {
				t.Errorf("envelope = %+v", resp)
			}
			data, ok := resp.Data.(map[string]any)
			if !ok || data["name"] != "Cusco" {
				t.Errorf("data = %v; want name Cusco", resp.Data)
			}
		})
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"not found", domain.NotFoundf("farmer"), http.StatusNotFound, "farmer not found"},
		{"conflict", domain.NewAppError(domain.CodeConflict, "farmer already assigned", nil), http.StatusConflict, "farmer already assigned"},
		{"validation", domain.Validationf("bad input"), http.StatusBadRequest, "bad input"},
		{"storage failure hides cause", domain.NewAppError(domain.CodeInternal, "database error", errors.New("disk full")), http.StatusInternalServerError, "internal error"},
		{"plain error", errors.New("something broke"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext()
			Error(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d; want %d", w.Code, tt.wantStatus)
			}
			resp := decodeResponse(t, w)
			if resp.Code != tt.wantStatus {
				t.Errorf("code = %d; want %d", resp.Code, tt.wantStatus)
			}
			if resp.Message != tt.wantMessage {
				t.Errorf("message = %q; want %q", resp.Message, tt.wantMessage)
			}
			if resp.Data != nil {
				t.Errorf("data = %v; want nil", resp.Data)
			}
		})
	}
}

func TestList_WrapsPageResult(t *testing.T) {
	c, w := newResponseTestContext()

	page := NewPage([]string{"Arequipa", "Cusco"}, 12, domain.PageRequest{Page: 2, PerPage: 2})
	List(c, page)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", w.Code)
	}

	var body struct {
		Data domain.PageResult[string] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Data.Total != 12 || body.Data.TotalPages != 6 || body.Data.Page != 2 || body.Data.PageSize != 2 {
		t.Errorf("page = %+v", body.Data)
	}
	if len(body.Data.Items) != 2 {
		t.Errorf("items = %v", body.Data.Items)
	}
}

type farmerPayload struct {
	FirstName      string `json:"first_name" binding:"required,min=2"`
	DocumentNumber string `json:"document_number" binding:"required,numeric"`
}

func TestBindAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantFields map[string]string
	}{
		{
			name:   "valid",
			body:   `{"first_name":"Rosa","document_number":"44556677"}`,
			wantOK: true,
		},
		{
			name:       "missing fields",
			body:       `{}`,
			wantFields: map[string]string{"first_name": "required", "document_number": "required"},
		},
		{
			name:       "rule parameters are reported",
			body:       `{"first_name":"R","document_number":"abc"}`,
			wantFields: map[string]string{"first_name": "min=2", "document_number": "numeric"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContextWithBody(tt.body)
			var req farmerPayload
			ok := BindAndValidate(c, &req)
			if ok != tt.wantOK {
				t.Fatalf("BindAndValidate = %v; want %v", ok, tt.wantOK)
			}
			if ok {
				return
			}

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; want 400", w.Code)
			}
			var resp ValidationErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Message != "validation error" {
				t.Errorf("message = %q", resp.Message)
			}
			for field, rule := range tt.wantFields {
				if got := resp.Errors[field]; got != rule {
					t.Errorf("errors[%q] = %q; want %q", field, got, rule)
				}
			}
		})
	}
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c, w := newResponseTestContextWithBody(`{"first_name":`)
	var req farmerPayload
	if BindAndValidate(c, &req) {
		t.Fatal("expected malformed JSON to fail")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Message == "" || resp.Message == "validation error" {
		t.Errorf("message = %q; want decoder error", resp.Message)
	}
}
