package navigation

import (
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// DefaultRefuelAmount is what a station adds the first time a trip touches it
const DefaultRefuelAmount = 1000.0

// RefuelPolicy decides station top-ups during a single walk.
//
// # Refuel rules
//
// A hop refuels only when exactly one of its endpoints is a station that has
// not refuelled yet on this trip. That station is then marked visited, so a
// station refuels at most once per trip. A hop between two unvisited stations
// refuels neither and marks neither.
//
// A policy is created per walk and must not be reused across trips.
type RefuelPolicy struct {
	graph   system.Graph
	amount  float64
	visited map[string]bool
}

// NewRefuelPolicy creates a policy with no stations visited
func NewRefuelPolicy(graph system.Graph, amount float64) *RefuelPolicy {
	return &RefuelPolicy{
		graph:   graph,
		amount:  amount,
		visited: make(map[string]bool),
	}
}

// Visit applies the refuel rule to one hop. It returns the new balance and
// the station that refuelled, if any.
func (p *RefuelPolicy) Visit(fuel shared.Fuel, from, to string) (shared.Fuel, []string) {
	var candidates []string
	for _, id := range []string{from, to} {
		if id != "" && !p.visited[id] && p.isStation(id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) != 1 {
		return fuel, nil
	}

	station := candidates[0]
	p.visited[station] = true
	return fuel.Refuel(p.amount), []string{station}
}

// Visited reports whether the station already refuelled on this trip
func (p *RefuelPolicy) Visited(id string) bool {
	return p.visited[id]
}

func (p *RefuelPolicy) isStation(id string) bool {
	if kind, ok := p.graph.Kind(id); ok {
		return kind == shared.BodyKindStation
	}
	return shared.KindOf(id) == shared.BodyKindStation
}
