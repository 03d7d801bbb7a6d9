package domain

import "context"

// Identity document types accepted for agents.
const (
	DocumentDNI      = "DNI"
	DocumentCE       = "CE"
	DocumentPassport = "PASSPORT"
	DocumentRUC      = "RUC"
)

// Agent is a field agent who visits and assists farmers.
type Agent struct {
	BaseModel
	SoftDelete
	FirstName string         `gorm:"size:100;not null" json:"first_name"`
	LastName  string         `gorm:"size:100;not null" json:"last_name"`
	Email     *string        `gorm:"size:255" json:"email"`
	Phone     *string        `gorm:"size:30" json:"phone"`
	Identity  *AgentIdentity `gorm:"foreignKey:AgentID" json:"identity,omitempty"`
}

// AgentIdentity is the identity document registered together with an agent.
type AgentIdentity struct {
	BaseModel
	AgentID        string `gorm:"type:varchar(36);uniqueIndex;not null" json:"agent_id"`
	DocumentType   string `gorm:"size:20;not null" json:"document_type"`
	DocumentNumber string `gorm:"size:30;uniqueIndex;not null" json:"document_number"`
}

// AgentAssignment links an agent to a farmer they are responsible for.
// At most one active assignment may exist per agent/farmer pair.
type AgentAssignment struct {
	BaseModel
	SoftDelete
	AgentID  string  `gorm:"type:varchar(36);index;uniqueIndex:idx_assignment_active_pair,where:disabled_at IS NULL;not null" json:"agent_id"`
	FarmerID string  `gorm:"type:varchar(36);index;uniqueIndex:idx_assignment_active_pair,where:disabled_at IS NULL;not null" json:"farmer_id"`
	Farmer   *Farmer `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
}

// AgentInput carries the fields for creating an agent and its identity.
type AgentInput struct {
	FirstName      string
	LastName       string
	Email          *string
	Phone          *string
	DocumentType   string
	DocumentNumber string
}

// AgentPatch carries a partial update; nil fields are left untouched.
type AgentPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

// AgentRepository defines the data access interface for agents.
type AgentRepository interface {
	CreateWithIdentity(ctx context.Context, agent *Agent, identity *AgentIdentity) error
	GetByID(ctx context.Context, id string) (*Agent, error)
	List(ctx context.Context, q ListQuery) (*PageResult[Agent], error)
	Update(ctx context.Context, id string, apply func(*Agent) error) (*Agent, error)
	Disable(ctx context.Context, id string) (*Agent, error)
	Restore(ctx context.Context, id string) (*Agent, error)

	Assign(ctx context.Context, assignment *AgentAssignment) error
	Unassign(ctx context.Context, agentID, farmerID string) (*AgentAssignment, error)
	ListAssignments(ctx context.Context, agentID string, req PageRequest) (*PageResult[AgentAssignment], error)
}

// AgentService defines the business logic interface for agents.
type AgentService interface {
	CreateAgent(ctx context.Context, in AgentInput) (*Agent, error)
	GetAgent(ctx context.Context, id string) (*Agent, error)
	ListAgents(ctx context.Context, q ListQuery) (*PageResult[Agent], error)
	UpdateAgent(ctx context.Context, id string, patch AgentPatch) (*Agent, error)
	DisableAgent(ctx context.Context, id string) (*Agent, error)
	RestoreAgent(ctx context.Context, id string) (*Agent, error)

	AssignFarmer(ctx context.Context, agentID, farmerID string) (*AgentAssignment, error)
	UnassignFarmer(ctx context.Context, agentID, farmerID string) (*AgentAssignment, error)
	ListAssignments(ctx context.Context, agentID string, req PageRequest) (*PageResult[AgentAssignment], error)
}
