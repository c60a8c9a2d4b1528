package system

import (
	"sort"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// Edge represents an undirected connection between two bodies, normalised so
// that A < B. Weight always comes from the distance catalog.
type Edge struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

func newEdge(a, b string, weight float64) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b, Weight: weight}
}

// Other returns the endpoint opposite to id
func (e Edge) Other(id string) string {
	if e.A == id {
		return e.B
	}
	return e.A
}

// Store owns the session graph: the set of bodies and the catalog-derived
// edges between them.
//
// Invariants:
// - Every edge endpoint is a node of the graph
// - At most one edge per unordered pair, never a self loop
// - Edge weights are copied from the catalog, never invented
// - Failed mutations leave the graph unchanged
type Store struct {
	catalog   *catalog.DistanceCatalog
	nodes     map[string]shared.Body
	adjacency map[string]map[string]float64
	ids       map[string]int64
	nextID    int64
}

// NewStore creates an empty graph bound to a catalog
func NewStore(c *catalog.DistanceCatalog) *Store {
	return &Store{
		catalog:   c,
		nodes:     make(map[string]shared.Body),
		adjacency: make(map[string]map[string]float64),
		ids:       make(map[string]int64),
	}
}

// Catalog returns the catalog the store derives weights from
func (s *Store) Catalog() *catalog.DistanceCatalog {
	return s.catalog
}

// AddNode adds a catalog body and connects it to every present body the
// catalog has a distance for. A body that would be isolated in a non-empty
// graph is rejected. Returns the edges created.
func (s *Store) AddNode(id string) ([]Edge, error) {
	body, ok := s.catalog.Body(id)
	if !ok {
		return nil, shared.NewUnknownBodyError("id", id)
	}
	if _, exists := s.nodes[id]; exists {
		return nil, shared.NewDuplicateBodyError(id)
	}

	var created []Edge
	for _, other := range s.NodeIDs() {
		if d, ok := s.catalog.Lookup(id, other); ok {
			created = append(created, newEdge(id, other, d))
		}
	}
	if len(s.nodes) > 0 && len(created) == 0 {
		return nil, shared.NewIsolatedBodyError(id)
	}

	s.nodes[id] = body
	s.adjacency[id] = make(map[string]float64, len(created))
	s.ids[id] = s.nextID
	s.nextID++
	for _, e := range created {
		other := e.Other(id)
		s.adjacency[id][other] = e.Weight
		s.adjacency[other][id] = e.Weight
	}

	return created, nil
}

// RemoveNode removes a body together with every incident edge
func (s *Store) RemoveNode(id string) error {
	if _, exists := s.nodes[id]; !exists {
		return shared.NewMissingBodyError(id)
	}

	for other := range s.adjacency[id] {
		delete(s.adjacency[other], id)
	}
	delete(s.adjacency, id)
	delete(s.nodes, id)
	delete(s.ids, id)

	return nil
}

// Clear empties the graph
func (s *Store) Clear() {
	s.nodes = make(map[string]shared.Body)
	s.adjacency = make(map[string]map[string]float64)
	s.ids = make(map[string]int64)
}

// HasNode checks if a body is in the graph
func (s *Store) HasNode(id string) bool {
	_, exists := s.nodes[id]
	return exists
}

// Kind returns the kind of a body in the graph
func (s *Store) Kind(id string) (shared.BodyKind, bool) {
	body, ok := s.nodes[id]
	return body.Kind, ok
}

// HasEdge checks if a and b are directly connected
func (s *Store) HasEdge(a, b string) bool {
	_, ok := s.adjacency[a][b]
	return ok
}

// Weight returns the edge weight between a and b
func (s *Store) Weight(a, b string) (float64, bool) {
	w, ok := s.adjacency[a][b]
	return w, ok
}

// Neighbors returns the sorted neighbours of a body
func (s *Store) Neighbors(id string) []string {
	neighbors := make([]string, 0, len(s.adjacency[id]))
	for other := range s.adjacency[id] {
		neighbors = append(neighbors, other)
	}
	sort.Strings(neighbors)
	return neighbors
}

// Degree returns the number of edges incident to a body
func (s *Store) Degree(id string) int {
	return len(s.adjacency[id])
}

// NodeIDs returns the sorted identifiers of all bodies in the graph
func (s *Store) NodeIDs() []string {
	ids := make([]string, 0, len(s.nodes))
	for id := range s.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Nodes returns all bodies sorted by identifier
func (s *Store) Nodes() []shared.Body {
	ids := s.NodeIDs()
	bodies := make([]shared.Body, len(ids))
	for i, id := range ids {
		bodies[i] = s.nodes[id]
	}
	return bodies
}

// Edges returns every edge once, sorted by endpoints
func (s *Store) Edges() []Edge {
	var edges []Edge
	for a, row := range s.adjacency {
		for b, w := range row {
			if a < b {
				edges = append(edges, Edge{A: a, B: b, Weight: w})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// NodeCount returns the number of bodies in the graph
func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of undirected edges in the graph
func (s *Store) EdgeCount() int {
	total := 0
	for _, row := range s.adjacency {
		total += len(row)
	}
	return total / 2
}

// Stations returns the stations currently in the graph
func (s *Store) Stations() []shared.Body {
	var stations []shared.Body
	for _, body := range s.Nodes() {
		if body.IsStation() {
			stations = append(stations, body)
		}
	}
	return stations
}
