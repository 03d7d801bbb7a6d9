package farmer

// CreateFarmerRequest represents the input for registering a farmer.
type CreateFarmerRequest struct {
	FirstName      string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName       string  `json:"last_name" binding:"required,min=2,max=100"`
	DocumentNumber string  `json:"document_number" binding:"required,alphanum,min=6,max=20"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	DistrictID     *string `json:"district_id" binding:"omitempty,uuid|len=0"`
}

// UpdateFarmerRequest represents a partial update. Omitted fields are kept;
// an empty phone or district_id clears it.
type UpdateFarmerRequest struct {
	FirstName      *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName       *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	DocumentNumber *string `json:"document_number" binding:"omitempty,alphanum,min=6,max=20"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	DistrictID     *string `json:"district_id" binding:"omitempty,uuid|len=0"`
}
