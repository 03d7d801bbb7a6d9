package domain

import "context"

// Country is the top level of the location hierarchy.
type Country struct {
	BaseModel
	SoftDelete
	Name string `gorm:"size:100;not null" json:"name"`
	Code string `gorm:"size:2;uniqueIndex;not null" json:"code"`
}

// Department belongs to a country.
type Department struct {
	BaseModel
	SoftDelete
	CountryID string `gorm:"type:varchar(36);index;not null" json:"country_id"`
	Name      string `gorm:"size:100;not null" json:"name"`
}

// Province belongs to a department.
type Province struct {
	BaseModel
	SoftDelete
	DepartmentID string `gorm:"type:varchar(36);index;not null" json:"department_id"`
	Name         string `gorm:"size:100;not null" json:"name"`
}

// District belongs to a province. Ubigeo is the optional official district code.
type District struct {
	BaseModel
	SoftDelete
	ProvinceID string  `gorm:"type:varchar(36);index;not null" json:"province_id"`
	Name       string  `gorm:"size:100;not null" json:"name"`
	Ubigeo     *string `gorm:"size:10" json:"ubigeo"`
}

// LocationInput carries the fields for creating any location level.
// ParentID is ignored for countries; Code is the country code or the
// district ubigeo and is ignored for the other levels.
type LocationInput struct {
	ParentID string
	Name     string
	Code     *string
}

// LocationPatch carries a partial update; nil fields are left untouched.
type LocationPatch struct {
	ParentID *string
	Name     *string
	Code     *string
}

// LocationRepository defines the data access interface for one location
// level. ParentActive reports whether the parent row of the level above is
// active; countries have no parent and always report true.
type LocationRepository[T any] interface {
	Repository[T]
	ParentActive(ctx context.Context, parentID string) (bool, error)
}

// LocationService defines the business logic for one location level.
type LocationService[T any] interface {
	Create(ctx context.Context, in LocationInput) (*T, error)
	Get(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, q ListQuery) (*PageResult[T], error)
	Update(ctx context.Context, id string, patch LocationPatch) (*T, error)
	Disable(ctx context.Context, id string) (*T, error)
	Restore(ctx context.Context, id string) (*T, error)
}
