package entity

import (
	"strings"
	"time"

	"github.com/oksasatya/estate-listing-api/internal/domain/errs"
	"github.com/oksasatya/estate-listing-api/internal/domain/valueobject"
)

type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "DRAFT"
	ProposalActive   ProposalStatus = "ACTIVE"
	ProposalArchived ProposalStatus = "ARCHIVED"
)

// AgentProposal is an agent's offer to represent a property.
// Status only moves forward: DRAFT -> ACTIVE -> ARCHIVED.
type AgentProposal struct {
	ID             string
	UserID         string // the proposing agent
	PropertyID     string
	Status         ProposalStatus
	CommissionRate valueobject.CommissionRate
	Pitch          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewAgentProposal(userID, propertyID string, rate valueobject.CommissionRate, pitch string) *AgentProposal {
	return &AgentProposal{
		UserID:         userID,
		PropertyID:     propertyID,
		Status:         ProposalDraft,
		CommissionRate: rate,
		Pitch:          strings.TrimSpace(pitch),
	}
}

// Activate moves DRAFT to ACTIVE. Activating an ACTIVE proposal is a no-op;
// an ARCHIVED proposal can never be reactivated.
func (p *AgentProposal) Activate() error {
	switch p.Status {
	case ProposalDraft:
		p.Status = ProposalActive
		return nil
	case ProposalActive:
		return nil
	default:
		return errs.InvalidTransition("agent proposal", string(p.Status), string(ProposalActive))
	}
}

// Archive moves any state to ARCHIVED.
func (p *AgentProposal) Archive() {
	p.Status = ProposalArchived
}

func (p *AgentProposal) IsArchived() bool { return p.Status == ProposalArchived }

// Revise updates the commercial terms. Archived proposals are frozen.
func (p *AgentProposal) Revise(rate *valueobject.CommissionRate, pitch *string) error {
	if p.IsArchived() {
		return errs.Conflict("archived proposals cannot be revised")
	}
	if rate != nil {
		p.CommissionRate = *rate
	}
	if pitch != nil {
		p.Pitch = strings.TrimSpace(*pitch)
	}
	return nil
}
