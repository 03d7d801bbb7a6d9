package agent

// CreateAgentRequest represents the input for registering an agent and its
// identity document.
type CreateAgentRequest struct {
	FirstName      string  `json:"first_name" binding:"required,min=2,max=100"`
	LastName       string  `json:"last_name" binding:"required,min=2,max=100"`
	Email          *string `json:"email" binding:"omitempty,email|len=0,max=255"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	DocumentType   string  `json:"document_type" binding:"required,oneof=DNI CE PASSPORT RUC"`
	DocumentNumber string  `json:"document_number" binding:"required,alphanum,max=20"`
}

// UpdateAgentRequest represents a partial update of an agent's profile.
// The identity document cannot be changed.
type UpdateAgentRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=100"`
	Email     *string `json:"email" binding:"omitempty,email|len=0,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
}

// AssignFarmerRequest names the farmer to assign.
type AssignFarmerRequest struct {
	FarmerID string `json:"farmer_id" binding:"required,uuid"`
}
