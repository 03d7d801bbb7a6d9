package farmer

import (
	"context"
	"testing"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
	"github.com/identi-digital/identi-modules/internal/pkg/dbtest"
)

func newTestRepo(t *testing.T) domain.FarmerRepository {
	t.Helper()
	db := dbtest.Open(t, &domain.Farmer{}, &domain.District{})
	return NewFarmerRepository(db)
}

func seedFarmer(t *testing.T, repo domain.FarmerRepository, first, last, doc string, district *string) *domain.Farmer {
	t.Helper()
	f := &domain.Farmer{
		BaseModel:      domain.BaseModel{ID: pkg.NewID()},
		Code:           pkg.ShortCode(codePrefix, timeNow()),
		FirstName:      first,
		LastName:       last,
		DocumentNumber: doc,
		DistrictID:     district,
	}
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("create farmer: %v", err)
	}
	return f
}

func TestFarmerRepository_DuplicateDocumentIsConflict(t *testing.T) {
	repo := newTestRepo(t)
	seedFarmer(t, repo, "Rosa", "Quispe", "44556677", nil)

	dup := &domain.Farmer{
		BaseModel:      domain.BaseModel{ID: pkg.NewID()},
		Code:           "FRM-DUP",
		FirstName:      "Ana",
		LastName:       "Mamani",
		DocumentNumber: "44556677",
	}
	if err := repo.Create(context.Background(), dup); !domain.IsConflict(err) {
		t.Fatalf("err = %v; want conflict", err)
	}
}

func TestFarmerRepository_ListSearchAndFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	district := pkg.NewID()
	seedFarmer(t, repo, "Rosa", "Quispe", "44556677", &district)
	seedFarmer(t, repo, "Juan", "Quispe", "11223344", nil)
	seedFarmer(t, repo, "Ana", "Mamani", "99887766", &district)

	tests := []struct {
		name      string
		q         domain.ListQuery
		wantTotal int64
	}{
		{"all", domain.ListQuery{}, 3},
		{"search last name", domain.ListQuery{PageRequest: domain.PageRequest{Search: "QUISPE"}}, 2},
		{"search document", domain.ListQuery{PageRequest: domain.PageRequest{Search: "9988"}}, 1},
		{"filter district", domain.ListQuery{Filters: map[string]string{"district_id": district}}, 2},
		{"search within district", domain.ListQuery{PageRequest: domain.PageRequest{Search: "rosa"}, Filters: map[string]string{"district_id": district}}, 1},
		{"disabled state empty", domain.ListQuery{State: domain.StateDisabled}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.q.Page, tt.q.PerPage = 1, 10
			res, err := repo.List(ctx, tt.q)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if res.Total != tt.wantTotal || int64(len(res.Items)) != tt.wantTotal {
				t.Errorf("total = %d, items = %d; want %d", res.Total, len(res.Items), tt.wantTotal)
			}
		})
	}
}

func TestFarmerRepository_SortByLastNameWithTieBreak(t *testing.T) {
	repo := newTestRepo(t)
	a := seedFarmer(t, repo, "Rosa", "Quispe", "44556677", nil)
	b := seedFarmer(t, repo, "Juan", "Quispe", "11223344", nil)
	c := seedFarmer(t, repo, "Ana", "Mamani", "99887766", nil)

	res, err := repo.List(context.Background(), domain.ListQuery{PageRequest: domain.PageRequest{Page: 1, PerPage: 10, SortBy: "last_name"}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	first, second := a.ID, b.ID
	if second < first {
		first, second = second, first
	}
	want := []string{c.ID, first, second}
	for i, f := range res.Items {
		if f.ID != want[i] {
			t.Fatalf("position %d = %s; want %s", i, f.ID, want[i])
		}
	}
}

func TestFarmerRepository_DistrictActive(t *testing.T) {
	db := dbtest.Open(t, &domain.Farmer{}, &domain.District{})
	repo := NewFarmerRepository(db)
	ctx := context.Background()

	active := domain.District{BaseModel: domain.BaseModel{ID: pkg.NewID()}, ProvinceID: pkg.NewID(), Name: "Pichanaqui"}
	gone := domain.District{BaseModel: domain.BaseModel{ID: pkg.NewID()}, ProvinceID: pkg.NewID(), Name: "Perené"}
	if err := db.Create(&[]domain.District{active, gone}).Error; err != nil {
		t.Fatalf("seed districts: %v", err)
	}
	if _, err := pkg.Disable[domain.District](ctx, db, gone.ID, timeNow()); err != nil {
		t.Fatalf("disable district: %v", err)
	}

	tests := []struct {
		id   string
		want bool
	}{
		{active.ID, true},
		{gone.ID, false},
		{pkg.NewID(), false},
	}
	for _, tt := range tests {
		got, err := repo.DistrictActive(ctx, tt.id)
		if err != nil {
			t.Fatalf("DistrictActive: %v", err)
		}
		if got != tt.want {
			t.Errorf("DistrictActive(%s) = %v; want %v", tt.id, got, tt.want)
		}
	}
}

func TestFarmerRepository_DisabledFarmerHiddenFromGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	f := seedFarmer(t, repo, "Rosa", "Quispe", "44556677", nil)

	if _, err := repo.Disable(ctx, f.ID); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if _, err := repo.GetByID(ctx, f.ID); !domain.IsNotFound(err) {
		t.Errorf("GetByID err = %v; want not found", err)
	}
	if _, err := repo.Update(ctx, f.ID, func(*domain.Farmer) error { return nil }); !domain.IsNotFound(err) {
		t.Errorf("Update err = %v; want not found", err)
	}
	restored, err := repo.Restore(ctx, f.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !restored.Active() {
		t.Error("restored farmer still disabled")
	}
}
