// Package catalog holds the authoritative, read-only distance table between
// bodies. Distances are symmetric and partially defined: a missing pair means
// no direct edge can ever exist between the two bodies.
package catalog

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// Pair is an unordered pair of body identifiers, normalised so that A < B
type Pair struct {
	A string
	B string
}

// NewPair builds a normalised pair
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// Distance is one catalog entry
type Distance struct {
	Pair
	Value float64
}

// DistanceCatalog maps unordered body pairs to positive distances.
//
// Invariants:
// - Every pair references two distinct known bodies
// - Every distance is strictly positive
// - Lookups are symmetric: Lookup(a, b) == Lookup(b, a)
type DistanceCatalog struct {
	bodies    map[string]shared.Body
	order     []string
	distances map[Pair]float64
}

// New creates a catalog with validation. Body order is preserved for listings.
func New(bodyIDs []string, distances []Distance) (*DistanceCatalog, error) {
	c := &DistanceCatalog{
		bodies:    make(map[string]shared.Body, len(bodyIDs)),
		order:     make([]string, 0, len(bodyIDs)),
		distances: make(map[Pair]float64, len(distances)),
	}

	for _, id := range bodyIDs {
		body, err := shared.NewBody(id)
		if err != nil {
			return nil, err
		}
		if _, exists := c.bodies[body.ID]; exists {
			return nil, shared.NewValidationError("bodies", fmt.Sprintf("duplicate body %q", body.ID))
		}
		c.bodies[body.ID] = body
		c.order = append(c.order, body.ID)
	}

	for _, d := range distances {
		pair := NewPair(d.A, d.B)
		if pair.A == pair.B {
			return nil, shared.NewValidationError("distances", fmt.Sprintf("self distance for %q", pair.A))
		}
		for _, id := range []string{pair.A, pair.B} {
			if _, ok := c.bodies[id]; !ok {
				return nil, shared.NewUnknownBodyError("distances", id)
			}
		}
		if d.Value <= 0 {
			return nil, shared.NewValidationError("distances", fmt.Sprintf("distance %s-%s must be positive", pair.A, pair.B))
		}
		if _, dup := c.distances[pair]; dup {
			return nil, shared.NewValidationError("distances", fmt.Sprintf("duplicate distance %s-%s", pair.A, pair.B))
		}
		c.distances[pair] = d.Value
	}

	return c, nil
}

// MustNew is New for static tables; it panics on invalid input
func MustNew(bodyIDs []string, distances []Distance) *DistanceCatalog {
	c, err := New(bodyIDs, distances)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog: %v", err))
	}
	return c
}

// Lookup returns the distance between a and b in either order
func (c *DistanceCatalog) Lookup(a, b string) (float64, bool) {
	d, ok := c.distances[NewPair(a, b)]
	return d, ok
}

// Body returns a recognised body
func (c *DistanceCatalog) Body(id string) (shared.Body, bool) {
	b, ok := c.bodies[id]
	return b, ok
}

// IsKnown reports whether id is a recognised body identifier
func (c *DistanceCatalog) IsKnown(id string) bool {
	_, ok := c.bodies[id]
	return ok
}

// Bodies returns all recognised bodies in catalog order
func (c *DistanceCatalog) Bodies() []shared.Body {
	bodies := make([]shared.Body, len(c.order))
	for i, id := range c.order {
		bodies[i] = c.bodies[id]
	}
	return bodies
}

// Distances returns every entry sorted by pair
func (c *DistanceCatalog) Distances() []Distance {
	entries := make([]Distance, 0, len(c.distances))
	for pair, value := range c.distances {
		entries = append(entries, Distance{Pair: pair, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].A != entries[j].A {
			return entries[i].A < entries[j].A
		}
		return entries[i].B < entries[j].B
	})
	return entries
}

// Len returns the number of defined distances
func (c *DistanceCatalog) Len() int {
	return len(c.distances)
}
