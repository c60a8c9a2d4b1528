package rules

import (
	"fmt"
	"slices"
	"time"

	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// EffectKind identifies what a matched rule does to a trip
type EffectKind string

const (
	EffectBlock               EffectKind = "BLOCK"
	EffectWarn                EffectKind = "WARN"
	EffectRequireConfirmation EffectKind = "REQUIRE_CONFIRMATION"
	EffectFuelDelta           EffectKind = "FUEL_DELTA"
)

// phase returns the evaluation priority of the kind. Lower runs first.
func (k EffectKind) phase() int {
	switch k {
	case EffectBlock:
		return 0
	case EffectWarn, EffectRequireConfirmation:
		return 1
	case EffectFuelDelta:
		return 2
	default:
		return 3
	}
}

// Effect is one outcome of a matched rule
type Effect struct {
	Kind    EffectKind `json:"kind"`
	Rule    string     `json:"rule"`
	Message string     `json:"message,omitempty"`
	Amount  float64    `json:"amount,omitempty"`
}

// Block stops the trip before any route is computed
func Block(reason string) Effect {
	return Effect{Kind: EffectBlock, Message: reason}
}

// Warn informs the traveller without affecting the trip
func Warn(message string) Effect {
	return Effect{Kind: EffectWarn, Message: message}
}

// RequireConfirmation suspends the trip until the traveller answers
func RequireConfirmation(message string) Effect {
	return Effect{Kind: EffectRequireConfirmation, Message: message}
}

// FuelDelta adjusts the starting fuel balance by a signed amount
func FuelDelta(amount float64, message string) Effect {
	return Effect{Kind: EffectFuelDelta, Amount: amount, Message: message}
}

func (e Effect) String() string {
	if e.Kind == EffectFuelDelta {
		return fmt.Sprintf("%s(%+.0f) %s", e.Kind, e.Amount, e.Message)
	}
	return fmt.Sprintf("%s %s", e.Kind, e.Message)
}

// Itinerary is the part of a travel request the rules look at
type Itinerary struct {
	Origin      string
	Destination string
	Stopover    string
	Month       time.Month
}

// Condition matches an itinerary. Empty fields match anything.
type Condition struct {
	Origin      string
	Destination string
	Stopovers   []string
	MonthIn     shared.MonthSet
	MonthNotIn  shared.MonthSet
}

// Matches reports whether every populated field of the condition holds
func (c Condition) Matches(it Itinerary) bool {
	if c.Origin != "" && c.Origin != it.Origin {
		return false
	}
	if c.Destination != "" && c.Destination != it.Destination {
		return false
	}
	if len(c.Stopovers) > 0 && !slices.Contains(c.Stopovers, it.Stopover) {
		return false
	}
	if len(c.MonthIn) > 0 && !c.MonthIn.Contains(it.Month) {
		return false
	}
	if len(c.MonthNotIn) > 0 && c.MonthNotIn.Contains(it.Month) {
		return false
	}
	return true
}

// Rule pairs a condition with the effects it produces
type Rule struct {
	Name      string
	Condition Condition
	Effects   []Effect
}
