package warehouse

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

var storeCenterSpec = pkg.ListSpec{
	SearchFields: []pkg.SearchField{
		{Column: "code"},
		{Column: "name"},
		{Column: "address", Nullable: true},
	},
	SortFields: map[string]string{
		"code":       "code",
		"name":       "name",
		"capacity":   "capacity",
		"created_at": "created_at",
	},
	FilterFields: map[string]string{"district_id": "district_id"},
	DefaultSort:  []pkg.OrderTerm{{Column: "created_at", Desc: true}},
}

var movementSpec = pkg.ListSpec{
	SearchFields: []pkg.SearchField{
		{Column: "product"},
		{Column: "reference", Nullable: true},
	},
	SortFields: map[string]string{
		"created_at": "created_at",
		"quantity":   "quantity",
		"product":    "product",
	},
	FilterFields: map[string]string{
		"store_center_id": "store_center_id",
		"farmer_id":       "farmer_id",
		"kind":            "kind",
	},
	DefaultSort: []pkg.OrderTerm{{Column: "created_at", Desc: true}},
}

// storeCenterRepository implements domain.StoreCenterRepository using GORM.
type storeCenterRepository struct {
	*pkg.Store[domain.StoreCenter]
}

// NewStoreCenterRepository creates a new StoreCenterRepository backed by the given GORM database.
func NewStoreCenterRepository(db *gorm.DB) domain.StoreCenterRepository {
	return &storeCenterRepository{Store: pkg.NewStore[domain.StoreCenter](db, storeCenterSpec)}
}

// DistrictActive reports whether the district exists and is not disabled.
func (r *storeCenterRepository) DistrictActive(ctx context.Context, id string) (bool, error) {
	return pkg.Exists[domain.District](ctx, r.DB(), id, pkg.Active())
}

// movementRepository implements domain.MovementRepository using GORM.
// Movements are append-only.
type movementRepository struct {
	db *gorm.DB
}

// NewMovementRepository creates a new MovementRepository backed by the given GORM database.
func NewMovementRepository(db *gorm.DB) domain.MovementRepository {
	return &movementRepository{db: db}
}

// Create inserts m after checking, in the same transaction, that its store
// center and farmer are active and that an exit does not exceed the stock
// of the product at the store center.
func (r *movementRepository) Create(ctx context.Context, m *domain.Movement) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		ok, err := pkg.Exists[domain.StoreCenter](ctx, tx, m.StoreCenterID, pkg.Active())
		if err != nil {
			return err
		}
		if !ok {
			return domain.Validationf("store_center_id must reference an active store center")
		}
		if m.FarmerID != nil {
			if ok, err = pkg.Exists[domain.Farmer](ctx, tx, *m.FarmerID, pkg.Active()); err != nil {
				return err
			}
			if !ok {
				return domain.Validationf("farmer_id must reference an active farmer")
			}
		}

		if m.Kind == domain.MovementOut {
			balance, err := stockBalance(tx, m.StoreCenterID, m.Product)
			if err != nil {
				return err
			}
			if quantityUnits(m.Quantity) > balance {
				return domain.Validationf("quantity exceeds the stock of " + m.Product + " at the store center")
			}
		}

		if err := tx.Create(m).Error; err != nil {
			return pkg.MapError(err)
		}
		return nil
	})
}

// GetByID retrieves a movement by id.
func (r *movementRepository) GetByID(ctx context.Context, id string) (*domain.Movement, error) {
	return pkg.GetOne[domain.Movement](ctx, r.db, id)
}

// List returns a page of movements narrowed by q.Filters. Movements have no
// lifecycle, so q.State is ignored.
func (r *movementRepository) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Movement], error) {
	return pkg.FindPage[domain.Movement](ctx, r.db, movementSpec, q.PageRequest, pkg.Equals(q.Filters, movementSpec.FilterFields))
}

// ListAll returns up to limit movements matching q, in listing order.
func (r *movementRepository) ListAll(ctx context.Context, q domain.ListQuery, limit int) ([]domain.Movement, error) {
	return pkg.FindAll[domain.Movement](ctx, r.db, movementSpec, q.PageRequest, limit, pkg.Equals(q.Filters, movementSpec.FilterFields))
}

// quantityScale is the number of units per quantity; quantities carry at
// most three decimals. stockBalance uses the same factor in SQL.
const quantityScale = 1000

// quantityUnits converts q to whole thousandths.
func quantityUnits(q float64) int64 {
	return int64(math.Round(q * quantityScale))
}

// roundQuantity rounds q to the precision stock balances are kept at.
func roundQuantity(q float64) float64 {
	return float64(quantityUnits(q)) / quantityScale
}

// stockBalance returns the stock of product at the store center in
// thousandths. Summing integers keeps the balance exact.
func stockBalance(tx *gorm.DB, storeCenterID, product string) (int64, error) {
	var balance int64
	err := tx.Model(&domain.Movement{}).
		Select("COALESCE(SUM(CASE WHEN kind = ? THEN CAST(ROUND(quantity * 1000) AS BIGINT) ELSE -CAST(ROUND(quantity * 1000) AS BIGINT) END), 0)", domain.MovementIn).
		Where("store_center_id = ? AND product = ?", storeCenterID, product).
		Row().Scan(&balance)
	if err != nil {
		return 0, pkg.MapError(err)
	}
	return balance, nil
}
