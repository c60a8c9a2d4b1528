package rules

import (
	"slices"
	"time"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// Engine evaluates an ordered rule table against itineraries. It holds no
// per-request state and is safe to share.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over the given rules, kept in table order
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: slices.Clone(rules)}
}

// NewDefaultEngine creates an engine with the standard calendar policy
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultRules()...)
}

// Rules returns a copy of the rule table
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

// Evaluate returns the effects of every matching rule. Block effects come
// first, then warnings and confirmations, then fuel deltas; ties keep table
// order.
func (e *Engine) Evaluate(it Itinerary) []Effect {
	var effects []Effect
	for _, rule := range e.rules {
		if !rule.Condition.Matches(it) {
			continue
		}
		for _, effect := range rule.Effects {
			effect.Rule = rule.Name
			effects = append(effects, effect)
		}
	}

	slices.SortStableFunc(effects, func(a, b Effect) int {
		return a.Kind.phase() - b.Kind.phase()
	})
	return effects
}

// Blocked returns the reasons of every Block effect
func Blocked(effects []Effect) []string {
	return messagesOf(effects, EffectBlock)
}

// Warnings returns the messages of every Warn effect
func Warnings(effects []Effect) []string {
	return messagesOf(effects, EffectWarn)
}

// Confirmations returns the messages that need an answer before travelling
func Confirmations(effects []Effect) []string {
	return messagesOf(effects, EffectRequireConfirmation)
}

// FuelAdjustment sums every FuelDelta effect
func FuelAdjustment(effects []Effect) float64 {
	var total float64
	for _, e := range effects {
		if e.Kind == EffectFuelDelta {
			total += e.Amount
		}
	}
	return total
}

// Bonuses returns the positive fuel deltas
func Bonuses(effects []Effect) []Effect {
	return deltas(effects, func(amount float64) bool { return amount > 0 })
}

// Penalties returns the negative fuel deltas
func Penalties(effects []Effect) []Effect {
	return deltas(effects, func(amount float64) bool { return amount < 0 })
}

func messagesOf(effects []Effect, kind EffectKind) []string {
	var out []string
	for _, e := range effects {
		if e.Kind == kind {
			out = append(out, e.Message)
		}
	}
	return out
}

func deltas(effects []Effect, keep func(float64) bool) []Effect {
	var out []Effect
	for _, e := range effects {
		if e.Kind == EffectFuelDelta && keep(e.Amount) {
			out = append(out, e)
		}
	}
	return out
}

// DefaultRules is the standard calendar policy
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:      "venus-solar-storm",
			Condition: Condition{Destination: catalog.Venus, MonthIn: shared.MonthSet{time.December}},
			Effects: []Effect{
				Block("a solar storm is forecast for December; travel to Venus is postponed to avoid damage to the ship"),
			},
		},
		{
			Name: "saturn-meteor-showers",
			Condition: Condition{
				Destination: catalog.Saturn,
				MonthNotIn:  shared.MonthSet{time.January, time.March, time.June},
			},
			Effects: []Effect{
				RequireConfirmation("travel to Saturn outside January, March or June may meet meteor showers"),
				FuelDelta(-150, "meteor shower detours"),
			},
		},
		{
			Name:      "mars-dust-storms",
			Condition: Condition{Destination: catalog.Mars, MonthIn: shared.MonthSet{time.December, time.February, time.August}},
			Effects: []Effect{
				Warn("travel to Mars in December, February or August may face dust storms"),
				FuelDelta(-200, "dust storm headwinds"),
			},
		},
		{
			Name: "earth-jupiter-alignment",
			Condition: Condition{
				Origin:      catalog.Earth,
				Destination: catalog.Jupiter,
				MonthIn:     shared.MonthSet{time.May, time.June, time.October},
			},
			Effects: []Effect{
				FuelDelta(200, "planetary alignment eases the trip"),
			},
		},
		{
			Name:      "neptune-closure",
			Condition: Condition{Destination: catalog.Neptune, MonthIn: shared.MonthSet{time.January, time.April}},
			Effects: []Effect{
				Block("Neptune approaches are closed in January and April"),
			},
		},
		{
			Name:      "gravity-slingshot",
			Condition: Condition{Stopovers: []string{catalog.Jupiter, catalog.Saturn}},
			Effects: []Effect{
				FuelDelta(300, "gravity slingshot around the stopover"),
			},
		},
	}
}
