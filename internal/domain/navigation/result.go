package navigation

import (
	"fmt"

	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// TravelStatus is the terminal outcome of a simulated trip
type TravelStatus string

const (
	TravelStatusCompleted TravelStatus = "COMPLETED"
	TravelStatusAborted   TravelStatus = "ABORTED"
)

// AbortReason explains an aborted trip
type AbortReason string

const (
	AbortRuleBlock            AbortReason = "RULE_BLOCK"
	AbortInsufficientFuel     AbortReason = "INSUFFICIENT_FUEL"
	AbortConfirmationDeclined AbortReason = "CONFIRMATION_DECLINED"
)

// TravelStep is one traversed edge of the walk
type TravelStep struct {
	From           string   `json:"from"`
	To             string   `json:"to"`
	Distance       float64  `json:"distance"`
	FuelBefore     float64  `json:"fuel_before"`
	FuelAfter      float64  `json:"fuel_after"`
	RefueledAt     []string `json:"refueled_at,omitempty"`
	Refueled       bool     `json:"refueled"`
	BonusApplied   bool     `json:"bonus_applied"`
	PenaltyApplied bool     `json:"penalty_applied"`
	WeightMissing  bool     `json:"weight_missing,omitempty"`
}

func (s TravelStep) String() string {
	return fmt.Sprintf("%s → %s: %.0f (fuel %.0f → %.0f)", s.From, s.To, s.Distance, s.FuelBefore, s.FuelAfter)
}

// TravelResult is the outcome of one simulate call. It is handed to the
// caller and not retained.
//
// BonusApplied and PenaltyApplied report whether rule fuel deltas went into
// FinalFuel. They hold even when no step was walked; the per-step flags only
// mark the first step.
type TravelResult struct {
	ID            string         `json:"id"`
	Plan          TravelPlan     `json:"plan"`
	Status        TravelStatus   `json:"status"`
	Reason        AbortReason    `json:"reason,omitempty"`
	Messages      []string       `json:"messages,omitempty"`
	Effects       []rules.Effect `json:"effects,omitempty"`
	Route         []string       `json:"route,omitempty"`
	Steps         []TravelStep   `json:"steps"`
	StartingFuel  float64        `json:"starting_fuel"`
	TotalDistance float64        `json:"total_distance"`
	FinalFuel     float64        `json:"final_fuel"`

	BonusApplied   bool `json:"bonus_applied"`
	PenaltyApplied bool `json:"penalty_applied"`
}

// Completed reports whether the whole route was walked
func (r *TravelResult) Completed() bool {
	return r.Status == TravelStatusCompleted
}

// RefuelCount is the number of stations that topped up the tank
func (r *TravelResult) RefuelCount() int {
	count := 0
	for _, s := range r.Steps {
		count += len(s.RefueledAt)
	}
	return count
}

// Err maps an aborted result to its typed error, nil when completed
func (r *TravelResult) Err() error {
	if r.Status != TravelStatusAborted {
		return nil
	}

	switch r.Reason {
	case AbortRuleBlock:
		return shared.NewRuleBlockError(r.Messages...)
	case AbortConfirmationDeclined:
		msg := "confirmation declined"
		if len(r.Messages) > 0 {
			msg = r.Messages[0]
		}
		return shared.NewConfirmationDeclinedError(msg)
	case AbortInsufficientFuel:
		if len(r.Steps) == 0 {
			return shared.NewInsufficientFuelError(r.Plan.Origin, r.Plan.Destination, r.FinalFuel)
		}
		last := r.Steps[len(r.Steps)-1]
		return shared.NewInsufficientFuelError(last.From, last.To, last.FuelAfter)
	default:
		return shared.NewDomainError("trip aborted: " + string(r.Reason))
	}
}
