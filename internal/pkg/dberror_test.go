package pkg

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg/dbtest"
)

type uniqueCode struct {
	ID   string `gorm:"type:varchar(36);primaryKey"`
	Code string `gorm:"size:20;uniqueIndex"`
}

func TestMapError(t *testing.T) {
	assignment := domain.NotFoundf("assignment")
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"record not found", gorm.ErrRecordNotFound, domain.IsNotFound},
		{"wrapped record not found", fmt.Errorf("load farmer: %w", gorm.ErrRecordNotFound), domain.IsNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, domain.IsConflict},
		{"sqlite unique message", errors.New("constraint failed: UNIQUE constraint failed: farmers.code (2067)"), domain.IsConflict},
		{"postgres duplicate message", errors.New(`ERROR: duplicate key value violates unique constraint "idx_farmers_code"`), domain.IsConflict},
		{"other driver failure", errors.New("database is locked"), domain.IsInternal},
		{"app error passes through", assignment, domain.IsNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); !tt.check(got) {
				t.Errorf("MapError(%v) = %v; wrong category", tt.err, got)
			}
		})
	}

	if MapError(nil) != nil {
		t.Error("MapError(nil) should be nil")
	}
	if got := MapError(assignment); got != error(assignment) {
		t.Errorf("MapError(app error) = %v; want the same value", got)
	}
}

func TestMapError_KeepsDriverCause(t *testing.T) {
	db := dbtest.Open(t, &uniqueCode{})
	if err := db.Create(&uniqueCode{ID: NewID(), Code: "PE"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	raw := db.Create(&uniqueCode{ID: NewID(), Code: "PE"}).Error
	if raw == nil {
		t.Fatal("duplicate insert succeeded")
	}
	err := MapError(raw)
	if !domain.IsConflict(err) {
		t.Fatalf("MapError = %v; want conflict", err)
	}
	if !errors.Is(err, raw) {
		t.Error("conflict should wrap the driver error")
	}
	if domain.HTTPStatusCode(err) != 409 {
		t.Errorf("status = %d; want 409", domain.HTTPStatusCode(err))
	}
}
