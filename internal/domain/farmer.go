package domain

import "context"

// Farmer is a producer registered in the back office.
type Farmer struct {
	BaseModel
	SoftDelete
	Code           string  `gorm:"size:20;uniqueIndex;not null" json:"code"`
	FirstName      string  `gorm:"size:100;not null" json:"first_name"`
	LastName       string  `gorm:"size:100;not null" json:"last_name"`
	DocumentNumber string  `gorm:"size:30;uniqueIndex;not null" json:"document_number"`
	Phone          *string `gorm:"size:30" json:"phone"`
	DistrictID     *string `gorm:"type:varchar(36);index" json:"district_id"`
}

// FarmerInput carries the fields for creating a farmer.
type FarmerInput struct {
	FirstName      string
	LastName       string
	DocumentNumber string
	Phone          *string
	DistrictID     *string
}

// FarmerPatch carries a partial update; nil fields are left untouched.
type FarmerPatch struct {
	FirstName      *string
	LastName       *string
	DocumentNumber *string
	Phone          *string
	DistrictID     *string
}

// FarmerRepository defines the data access interface for farmers.
type FarmerRepository interface {
	Repository[Farmer]
	DistrictActive(ctx context.Context, id string) (bool, error)
}

// FarmerService defines the business logic interface for farmers.
type FarmerService interface {
	CreateFarmer(ctx context.Context, in FarmerInput) (*Farmer, error)
	GetFarmer(ctx context.Context, id string) (*Farmer, error)
	ListFarmers(ctx context.Context, q ListQuery) (*PageResult[Farmer], error)
	UpdateFarmer(ctx context.Context, id string, patch FarmerPatch) (*Farmer, error)
	DisableFarmer(ctx context.Context, id string) (*Farmer, error)
	RestoreFarmer(ctx context.Context, id string) (*Farmer, error)
}
