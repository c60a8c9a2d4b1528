package system

import "github.com/andrescamacho/starroute-go/internal/domain/shared"

// Graph is the read-only view of the session graph consumed by routing,
// simulation and analysis. *Store implements it.
type Graph interface {
	HasNode(id string) bool
	Kind(id string) (shared.BodyKind, bool)
	HasEdge(a, b string) bool
	Weight(a, b string) (float64, bool)
	Neighbors(id string) []string
	Degree(id string) int
	NodeIDs() []string
	Edges() []Edge
	NodeCount() int
	EdgeCount() int
	Undirected() *View
}

var _ Graph = (*Store)(nil)
