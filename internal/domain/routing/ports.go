package routing

import "github.com/andrescamacho/starroute-go/internal/domain/system"

// Router defines route planning over the session graph
type Router interface {
	ShortestPath(g system.Graph, source, target string) (Path, error)
	ShortestPathVia(g system.Graph, source, stopover, target string) (Path, error)
}

var _ Router = (*Planner)(nil)

// Hop is one traversed edge of a path
type Hop struct {
	From string
	To   string
}

// Path is an ordered node sequence with its total weight
type Path struct {
	Nodes []string
	Cost  float64
}

// Hops returns the consecutive node pairs of the path
func (p Path) Hops() []Hop {
	if len(p.Nodes) < 2 {
		return nil
	}
	hops := make([]Hop, 0, len(p.Nodes)-1)
	for i := 0; i < len(p.Nodes)-1; i++ {
		hops = append(hops, Hop{From: p.Nodes[i], To: p.Nodes[i+1]})
	}
	return hops
}

// Len returns the number of nodes in the path
func (p Path) Len() int {
	return len(p.Nodes)
}
