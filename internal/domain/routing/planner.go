package routing

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/graph/path"

	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// Planner computes minimum-weight routes with Dijkstra's algorithm.
//
// Which of several equal-cost paths is returned is implementation-defined.
// ShortestPathVia optimises both legs independently; the result is not a
// jointly optimal constrained path.
type Planner struct{}

// NewPlanner creates a new route planner
func NewPlanner() *Planner {
	return &Planner{}
}

// ShortestPath returns the cheapest node sequence from source to target
func (p *Planner) ShortestPath(g system.Graph, source, target string) (Path, error) {
	for _, id := range []string{source, target} {
		if !g.HasNode(id) {
			return Path{}, shared.NewUnknownNodeError(source, target, id)
		}
	}

	view := g.Undirected()
	from, _ := view.Node(source)
	to, _ := view.Node(target)

	shortest := path.DijkstraFrom(from, view.Graph)
	nodes, cost := shortest.To(to.ID())
	if len(nodes) == 0 || math.IsInf(cost, 1) {
		return Path{}, shared.NewNoPathError(source, target)
	}

	return Path{Nodes: view.Names(nodes), Cost: cost}, nil
}

// ShortestPathVia routes source → stopover → target as two independent legs
// and joins them, keeping the stopover once.
func (p *Planner) ShortestPathVia(g system.Graph, source, stopover, target string) (Path, error) {
	first, err := p.ShortestPath(g, source, stopover)
	if err != nil {
		return Path{}, withLeg(err, 1)
	}
	second, err := p.ShortestPath(g, stopover, target)
	if err != nil {
		return Path{}, withLeg(err, 2)
	}

	nodes := make([]string, 0, len(first.Nodes)+len(second.Nodes)-1)
	nodes = append(nodes, first.Nodes[:len(first.Nodes)-1]...)
	nodes = append(nodes, second.Nodes...)

	return Path{Nodes: nodes, Cost: first.Cost + second.Cost}, nil
}

func withLeg(err error, leg int) error {
	var pathErr *shared.PathError
	if errors.As(err, &pathErr) {
		pathErr.Leg = leg
	}
	return err
}
