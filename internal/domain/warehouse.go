package domain

import (
	"context"
	"time"
)

// Movement kinds.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// StoreCenter is a collection or storage facility.
type StoreCenter struct {
	BaseModel
	SoftDelete
	Code       string  `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name       string  `gorm:"size:150;not null" json:"name"`
	Address    *string `gorm:"size:255" json:"address"`
	DistrictID *string `gorm:"type:varchar(36);index" json:"district_id"`
	Capacity   float64 `gorm:"not null;default:0" json:"capacity"`
}

// Movement is an immutable stock entry or exit at a store center.
type Movement struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	StoreCenterID string    `gorm:"type:varchar(36);index;not null" json:"store_center_id"`
	FarmerID      *string   `gorm:"type:varchar(36);index" json:"farmer_id"`
	Kind          string    `gorm:"size:10;index;not null" json:"kind"`
	Product       string    `gorm:"size:100;not null" json:"product"`
	Quantity      float64   `gorm:"not null" json:"quantity"`
	Reference     *string   `gorm:"size:100" json:"reference"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// StoreCenterInput carries the fields for creating a store center.
type StoreCenterInput struct {
	Name       string
	Address    *string
	DistrictID *string
	Capacity   float64
}

// StoreCenterPatch carries a partial update; nil fields are left untouched.
type StoreCenterPatch struct {
	Name       *string
	Address    *string
	DistrictID *string
	Capacity   *float64
}

// MovementInput carries the fields for registering a movement.
type MovementInput struct {
	StoreCenterID string
	FarmerID      *string
	Kind          string
	Product       string
	Quantity      float64
	Reference     *string
}

// StoreCenterRepository defines the data access interface for store centers.
type StoreCenterRepository interface {
	Repository[StoreCenter]
	DistrictActive(ctx context.Context, id string) (bool, error)
}

// MovementRepository defines the data access interface for movements.
// Create verifies inside its transaction that the store center (and farmer,
// when set) are active.
type MovementRepository interface {
	Create(ctx context.Context, movement *Movement) error
	GetByID(ctx context.Context, id string) (*Movement, error)
	List(ctx context.Context, q ListQuery) (*PageResult[Movement], error)
	ListAll(ctx context.Context, q ListQuery, limit int) ([]Movement, error)
}

// WarehouseService defines the business logic interface for the warehouse module.
type WarehouseService interface {
	CreateStoreCenter(ctx context.Context, in StoreCenterInput) (*StoreCenter, error)
	GetStoreCenter(ctx context.Context, id string) (*StoreCenter, error)
	ListStoreCenters(ctx context.Context, q ListQuery) (*PageResult[StoreCenter], error)
	UpdateStoreCenter(ctx context.Context, id string, patch StoreCenterPatch) (*StoreCenter, error)
	DisableStoreCenter(ctx context.Context, id string) (*StoreCenter, error)
	RestoreStoreCenter(ctx context.Context, id string) (*StoreCenter, error)

	CreateMovement(ctx context.Context, in MovementInput) (*Movement, error)
	GetMovement(ctx context.Context, id string) (*Movement, error)
	ListMovements(ctx context.Context, q ListQuery) (*PageResult[Movement], error)
	ExportMovements(ctx context.Context, q ListQuery) ([]Movement, error)
}
