package warehouse

// CreateStoreCenterRequest represents the input for registering a store center.
type CreateStoreCenterRequest struct {
	Name       string  `json:"name" binding:"required,min=2,max=150"`
	Address    *string `json:"address" binding:"omitempty,max=255"`
	DistrictID *string `json:"district_id" binding:"omitempty,uuid|len=0"`
	Capacity   float64 `json:"capacity" binding:"gte=0"`
}

// UpdateStoreCenterRequest represents a partial update. An empty address or
// district_id clears it.
type UpdateStoreCenterRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=2,max=150"`
	Address    *string  `json:"address" binding:"omitempty,max=255"`
	DistrictID *string  `json:"district_id" binding:"omitempty,uuid|len=0"`
	Capacity   *float64 `json:"capacity" binding:"omitempty,gte=0"`
}

// CreateMovementRequest represents a stock entry or exit.
type CreateMovementRequest struct {
	StoreCenterID string  `json:"store_center_id" binding:"required,uuid"`
	FarmerID      *string `json:"farmer_id" binding:"omitempty,uuid"`
	Kind          string  `json:"kind" binding:"required,oneof=in out"`
	Product       string  `json:"product" binding:"required,min=2,max=100"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	Reference     *string `json:"reference" binding:"omitempty,max=100"`
}
