package navigation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// NoStopover is the sentinel meaning "travel direct"
const NoStopover = "none"

var planValidator = validator.New()

// TravelPlan is a single travel request
type TravelPlan struct {
	Origin      string     `json:"origin" validate:"required"`
	Destination string     `json:"destination" validate:"required"`
	Stopover    string     `json:"stopover,omitempty"`
	Month       time.Month `json:"month" validate:"min=1,max=12"`
	InitialFuel float64    `json:"initial_fuel" validate:"gte=0"`
}

// NewTravelPlan trims the identifiers and validates the plan
func NewTravelPlan(origin, destination, stopover string, month time.Month, fuel float64) (TravelPlan, error) {
	plan := TravelPlan{
		Origin:      strings.TrimSpace(origin),
		Destination: strings.TrimSpace(destination),
		Stopover:    strings.TrimSpace(stopover),
		Month:       month,
		InitialFuel: fuel,
	}
	if err := plan.Validate(); err != nil {
		return TravelPlan{}, err
	}
	return plan, nil
}

// Validate checks the plan's struct tags, reporting the first failure as a
// ValidationError
func (p TravelPlan) Validate() error {
	err := planValidator.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(strings.ToLower(fe.Field()),
			fmt.Sprintf("failed %s check (value: '%v')", fe.Tag(), fe.Value()))
	}
	return shared.NewValidationError("plan", err.Error())
}

// RequestedStopover returns the stopover unless it is empty or the "none"
// sentinel
func (p TravelPlan) RequestedStopover() (string, bool) {
	if p.Stopover == "" || strings.EqualFold(p.Stopover, NoStopover) {
		return "", false
	}
	return p.Stopover, true
}

// Itinerary projects the plan onto what the rule engine evaluates
func (p TravelPlan) Itinerary() rules.Itinerary {
	stopover, _ := p.RequestedStopover()
	return rules.Itinerary{
		Origin:      p.Origin,
		Destination: p.Destination,
		Stopover:    stopover,
		Month:       p.Month,
	}
}

func (p TravelPlan) String() string {
	via := ""
	if stopover, ok := p.RequestedStopover(); ok {
		via = " via " + stopover
	}
	return fmt.Sprintf("%s → %s%s in %s with %.0f fuel", p.Origin, p.Destination, via, p.Month, p.InitialFuel)
}
