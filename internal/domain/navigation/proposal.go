package navigation

import (
	"strings"
	"time"

	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// ProposalState tracks a proposal through the propose → resolve protocol
type ProposalState string

const (
	ProposalAwaitingConfirmation ProposalState = "AWAITING_CONFIRMATION"
	ProposalReady                ProposalState = "READY"
	ProposalResolved             ProposalState = "RESOLVED"
)

// Confirmation is a question the caller must answer before the walk
type Confirmation struct {
	Token    string   `json:"token"`
	Messages []string `json:"messages"`
}

// Proposal is an evaluated travel plan that has not been walked yet.
//
// Fuel already includes every rule fuel delta. A blocked plan is resolved at
// proposal time and carries its Result.
type Proposal struct {
	ID           string
	Plan         TravelPlan
	Effects      []rules.Effect
	Fuel         float64
	Confirmation *Confirmation
	Result       *TravelResult
	CreatedAt    time.Time

	state ProposalState
}

// State returns the proposal's position in the protocol
func (p *Proposal) State() ProposalState {
	return p.state
}

// NeedsConfirmation reports whether Resolve must be called before the walk
func (p *Proposal) NeedsConfirmation() bool {
	return p.state == ProposalAwaitingConfirmation
}

// Warnings returns the non-blocking rule messages
func (p *Proposal) Warnings() []string {
	return rules.Warnings(p.Effects)
}

func (p *Proposal) transition(from, to ProposalState) error {
	if p.state != from {
		return shared.NewStateError(p.Plan.Destination,
			"proposal "+p.ID+" is "+string(p.state)+", expected "+string(from))
	}
	p.state = to
	return nil
}

// ConfirmationRequiredError is returned by Simulate when a rule needs an
// answer. The proposal stays pending and can be resolved by its token.
type ConfirmationRequiredError struct {
	*shared.DomainError
	Proposal *Proposal
}

func NewConfirmationRequiredError(p *Proposal) *ConfirmationRequiredError {
	return &ConfirmationRequiredError{
		DomainError: shared.NewDomainError("confirmation required: " + strings.Join(p.Confirmation.Messages, "; ")),
		Proposal:    p,
	}
}
