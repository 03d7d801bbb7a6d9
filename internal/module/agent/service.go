package agent

import (
	"context"
	"net/mail"
	"regexp"
	"strings"

	"github.com/identi-digital/identi-modules/internal/domain"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

const (
	entityAgent      = "agent"
	entityAssignment = "agent_assignment"
)

// documentPatterns lists the accepted identity documents and their formats.
var documentPatterns = map[string]*regexp.Regexp{
	domain.DocumentDNI:      regexp.MustCompile(`^[0-9]{8}$`),
	domain.DocumentRUC:      regexp.MustCompile(`^(10|15|17|20)[0-9]{9}$`),
	domain.DocumentCE:       regexp.MustCompile(`^[A-Z0-9]{9,12}$`),
	domain.DocumentPassport: regexp.MustCompile(`^[A-Z0-9]{6,12}$`),
}

// agentService implements domain.AgentService.
type agentService struct {
	repo  domain.AgentRepository
	audit domain.AuditRecorder
}

// NewAgentService creates a new AgentService with the given repository and audit recorder.
func NewAgentService(repo domain.AgentRepository, audit domain.AuditRecorder) domain.AgentService {
	return &agentService{repo: repo, audit: audit}
}

// CreateAgent validates input and persists the agent together with its identity.
func (s *agentService) CreateAgent(ctx context.Context, in domain.AgentInput) (*domain.Agent, error) {
	agent := &domain.Agent{}
	if err := applyPatch(agent, domain.AgentPatch{
		FirstName: &in.FirstName,
		LastName:  &in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
	}); err != nil {
		return nil, err
	}

	docType, docNumber, err := normalizeDocument(in.DocumentType, in.DocumentNumber)
	if err != nil {
		return nil, err
	}

	agent.ID = pkg.NewID()
	identity := &domain.AgentIdentity{
		BaseModel:      domain.BaseModel{ID: pkg.NewID()},
		DocumentType:   docType,
		DocumentNumber: docNumber,
	}
	if err := s.repo.CreateWithIdentity(ctx, agent, identity); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionCreate, Entity: entityAgent, EntityID: agent.ID, Detail: docType + " " + docNumber})
	return agent, nil
}

// GetAgent retrieves an active agent with its identity.
func (s *agentService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAgents returns a page of agents.
func (s *agentService) ListAgents(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.Agent], error) {
	return s.repo.List(ctx, q)
}

// UpdateAgent applies the fields present in patch to an active agent.
func (s *agentService) UpdateAgent(ctx context.Context, id string, patch domain.AgentPatch) (*domain.Agent, error) {
	agent, err := s.repo.Update(ctx, id, func(a *domain.Agent) error {
		return applyPatch(a, patch)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionUpdate, Entity: entityAgent, EntityID: agent.ID})
	return agent, nil
}

// DisableAgent soft-deletes an agent. Its assignments are left as they are.
func (s *agentService) DisableAgent(ctx context.Context, id string) (*domain.Agent, error) {
	agent, err := s.repo.Disable(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionDisable, Entity: entityAgent, EntityID: agent.ID})
	return agent, nil
}

// RestoreAgent re-activates a disabled agent.
func (s *agentService) RestoreAgent(ctx context.Context, id string) (*domain.Agent, error) {
	agent, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionRestore, Entity: entityAgent, EntityID: agent.ID})
	return agent, nil
}

// AssignFarmer makes the agent responsible for the farmer.
func (s *agentService) AssignFarmer(ctx context.Context, agentID, farmerID string) (*domain.AgentAssignment, error) {
	farmerID, err := pkg.RequireID("farmer_id", farmerID)
	if err != nil {
		return nil, err
	}

	a := &domain.AgentAssignment{
		BaseModel: domain.BaseModel{ID: pkg.NewID()},
		AgentID:   agentID,
		FarmerID:  farmerID,
	}
	if err := s.repo.Assign(ctx, a); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionAssign, Entity: entityAssignment, EntityID: a.ID, Detail: "agent " + agentID + " farmer " + farmerID})
	return a, nil
}

// UnassignFarmer ends the active assignment between agent and farmer.
func (s *agentService) UnassignFarmer(ctx context.Context, agentID, farmerID string) (*domain.AgentAssignment, error) {
	a, err := s.repo.Unassign(ctx, agentID, farmerID)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, domain.AuditEntry{Action: domain.ActionUnassign, Entity: entityAssignment, EntityID: a.ID, Detail: "agent " + agentID + " farmer " + farmerID})
	return a, nil
}

// ListAssignments returns a page of the agent's active assignments.
func (s *agentService) ListAssignments(ctx context.Context, agentID string, req domain.PageRequest) (*domain.PageResult[domain.AgentAssignment], error) {
	return s.repo.ListAssignments(ctx, agentID, req)
}

// applyPatch validates and sets the non-nil fields. Empty email or phone clears it.
func applyPatch(a *domain.Agent, p domain.AgentPatch) error {
	if p.FirstName != nil {
		v, err := pkg.Text("first_name", *p.FirstName, 2, 100)
		if err != nil {
			return err
		}
		a.FirstName = v
	}
	if p.LastName != nil {
		v, err := pkg.Text("last_name", *p.LastName, 2, 100)
		if err != nil {
			return err
		}
		a.LastName = v
	}
	if p.Email != nil {
		v, err := pkg.OptionalText("email", p.Email, 255)
		if err != nil {
			return err
		}
		if v != nil {
			addr, err := mail.ParseAddress(*v)
			if err != nil || addr.Address != *v {
				return domain.Validationf("email must be a valid email address")
			}
			lower := strings.ToLower(*v)
			v = &lower
		}
		a.Email = v
	}
	if p.Phone != nil {
		v, err := pkg.OptionalText("phone", p.Phone, 30)
		if err != nil {
			return err
		}
		a.Phone = v
	}
	return nil
}

func normalizeDocument(docType, number string) (string, string, error) {
	docType = strings.ToUpper(strings.TrimSpace(docType))
	pattern, ok := documentPatterns[docType]
	if !ok {
		return "", "", domain.Validationf("document_type must be one of DNI, CE, PASSPORT, RUC")
	}
	number = strings.ToUpper(strings.TrimSpace(number))
	if !pattern.MatchString(number) {
		return "", "", domain.Validationf("document_number is not a valid " + docType)
	}
	return docType, number, nil
}
