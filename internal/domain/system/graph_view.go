package system

import (
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// View is a gonum snapshot of the store used by the path and analysis
// algorithms. It is not updated by later store mutations.
type View struct {
	Graph *simple.WeightedUndirectedGraph
	ids   map[string]int64
	names map[int64]string
}

// Undirected builds a weighted undirected gonum graph of the current store.
// Absent edges weigh +Inf and self weights are 0.
func (s *Store) Undirected() *View {
	v := &View{
		Graph: simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		ids:   make(map[string]int64, len(s.ids)),
		names: make(map[int64]string, len(s.ids)),
	}

	for _, id := range s.NodeIDs() {
		gid := s.ids[id]
		v.ids[id] = gid
		v.names[gid] = id
		v.Graph.AddNode(simple.Node(gid))
	}
	for _, e := range s.Edges() {
		v.Graph.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(v.ids[e.A]),
			T: simple.Node(v.ids[e.B]),
			W: e.Weight,
		})
	}

	return v
}

// Node returns the gonum node for a body identifier
func (v *View) Node(id string) (graph.Node, bool) {
	gid, ok := v.ids[id]
	if !ok {
		return nil, false
	}
	return simple.Node(gid), true
}

// Name returns the body identifier of a gonum node
func (v *View) Name(n graph.Node) string {
	return v.names[n.ID()]
}

// Names maps a gonum node sequence back to body identifiers
func (v *View) Names(nodes []graph.Node) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = v.Name(n)
	}
	return names
}
