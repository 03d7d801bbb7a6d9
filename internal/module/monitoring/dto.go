package monitoring

import "time"

// CreateVisitRequest represents the input for recording a field visit.
type CreateVisitRequest struct {
	FarmerID     string    `json:"farmer_id" binding:"required,uuid"`
	AgentID      string    `json:"agent_id" binding:"required,uuid"`
	VisitedAt    time.Time `json:"visited_at" binding:"required"`
	Crop         string    `json:"crop" binding:"required,min=2,max=100"`
	Observations *string   `json:"observations" binding:"omitempty,max=1000"`
}

// UpdateVisitRequest represents a partial update. An empty observations
// value clears it.
type UpdateVisitRequest struct {
	VisitedAt    *time.Time `json:"visited_at"`
	Crop         *string    `json:"crop" binding:"omitempty,min=2,max=100"`
	Observations *string    `json:"observations" binding:"omitempty,max=1000"`
}
