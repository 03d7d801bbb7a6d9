package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
	"github.com/identi-digital/identi-modules/internal/pkg/dbtest"
)

func newTestService(t *testing.T, maxRows int) domain.AuditService {
	t.Helper()
	db := dbtest.Open(t, &domain.AuditLog{})
	return NewAuditService(NewAuditRepository(db), maxRows)
}

type failingRepo struct {
	domain.AuditRepository
}

func (failingRepo) Create(context.Context, *domain.AuditLog) error {
	return domain.NewAppError(domain.CodeInternal, "database error", errors.New("disk full"))
}

func TestRecord_StoresActorFromContext(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := pkg.WithActor(context.Background(), "rosa.quispe")
	entityID := pkg.NewID()

	svc.Record(ctx, domain.AuditEntry{Action: domain.ActionCreate, Entity: "farmer", EntityID: entityID, Detail: "FRM-1"})
	svc.Record(context.Background(), domain.AuditEntry{Action: domain.ActionDisable, Entity: "farmer", EntityID: entityID})

	page, err := svc.ListAuditLogs(context.Background(), domain.PageRequest{Page: 1, PerPage: 10, SortBy: "action"})
	if err != nil {
		t.Fatalf("ListAuditLogs: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("total = %d; want 2", page.Total)
	}
	created, disabled := page.Items[0], page.Items[1]
	if created.Actor != "rosa.quispe" || created.Detail == nil || *created.Detail != "FRM-1" {
		t.Errorf("create entry = %+v", created)
	}
	if disabled.Actor != pkg.DefaultActor || disabled.Detail != nil {
		t.Errorf("disable entry = %+v", disabled)
	}
	if created.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestRecord_TruncatesDetail(t *testing.T) {
	svc := newTestService(t, 0)
	svc.Record(context.Background(), domain.AuditEntry{Action: domain.ActionUpdate, Entity: "agent", EntityID: pkg.NewID(), Detail: strings.Repeat("ñ", 600)})

	page, err := svc.ListAuditLogs(context.Background(), domain.PageRequest{Page: 1, PerPage: 1})
	if err != nil {
		t.Fatalf("ListAuditLogs: %v", err)
	}
	if got := []rune(*page.Items[0].Detail); len(got) != maxDetail {
		t.Errorf("detail runes = %d; want %d", len(got), maxDetail)
	}
}

func TestRecord_FailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc := NewAuditService(failingRepo{}, 0)
	svc.Record(context.Background(), domain.AuditEntry{Action: domain.ActionCreate, Entity: "farmer", EntityID: "f1"})

	out := buf.String()
	if !strings.Contains(out, "audit record failed") || !strings.Contains(out, "entity_id=f1") {
		t.Errorf("log output = %q", out)
	}
}

func TestAuditService_GetAndSearch(t *testing.T) {
	svc := newTestService(t, 0)
	ctx := context.Background()
	for _, e := range []domain.AuditEntry{
		{Action: domain.ActionCreate, Entity: "farmer", EntityID: pkg.NewID()},
		{Action: domain.ActionAssign, Entity: "agent_assignment", EntityID: pkg.NewID(), Detail: "agent a1 farmer f1"},
		{Action: domain.ActionCreate, Entity: "movement", EntityID: pkg.NewID(), Detail: "in 10 Café"},
	} {
		svc.Record(ctx, e)
	}

	found, err := svc.ListAuditLogs(ctx, domain.PageRequest{Page: 1, PerPage: 10, Search: "café"})
	if err != nil {
		t.Fatalf("ListAuditLogs: %v", err)
	}
	if found.Total != 1 || found.Items[0].Entity != "movement" {
		t.Fatalf("search = %+v", found.Items)
	}

	got, err := svc.GetAuditLog(ctx, found.Items[0].ID)
	if err != nil {
		t.Fatalf("GetAuditLog: %v", err)
	}
	if got.Action != domain.ActionCreate {
		t.Errorf("entry = %+v", got)
	}
	if _, err := svc.GetAuditLog(ctx, pkg.NewID()); !domain.IsNotFound(err) {
		t.Errorf("missing entry err = %v; want not found", err)
	}
}

func TestAuditService_ExportHonorsMaxRows(t *testing.T) {
	svc := newTestService(t, 3)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		svc.Record(ctx, domain.AuditEntry{Action: domain.ActionUpdate, Entity: "farmer", EntityID: pkg.NewID()})
	}

	all, err := svc.ExportAuditLogs(ctx, domain.PageRequest{Page: 4, PerPage: 1})
	if err != nil {
		t.Fatalf("ExportAuditLogs: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("exported %d; want 3 regardless of page", len(all))
	}
}
