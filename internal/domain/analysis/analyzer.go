package analysis

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// EulerClass classifies a graph by its odd-degree node count
type EulerClass string

const (
	Eulerian     EulerClass = "EULERIAN"
	SemiEulerian EulerClass = "SEMI_EULERIAN"
	NotEulerian  EulerClass = "NEITHER"
)

// Analyzer answers read-only structural questions about the session graph.
// Every query reads the graph as it is at call time.
type Analyzer struct {
	graph system.Graph
}

// NewAnalyzer creates an analyzer over the session graph
func NewAnalyzer(g system.Graph) *Analyzer {
	return &Analyzer{graph: g}
}

// IsConnected reports whether every node is reachable from an arbitrary
// start node. The empty graph is connected.
func (a *Analyzer) IsConnected() bool {
	n := a.graph.NodeCount()
	if n == 0 {
		return true
	}

	view := a.graph.Undirected()
	start, _ := view.Node(a.graph.NodeIDs()[0])

	reached := 0
	bf := traverse.BreadthFirst{
		Visit: func(graph.Node) { reached++ },
	}
	bf.Walk(view.Graph, start, nil)
	return reached == n
}

// Components returns the connected components, each sorted by id
func (a *Analyzer) Components() [][]string {
	view := a.graph.Undirected()
	var out [][]string
	for _, component := range topo.ConnectedComponents(view.Graph) {
		out = append(out, view.Names(component))
	}
	sortComponents(out)
	return out
}

// ClassifyEuler counts odd-degree nodes of a connected graph. A
// disconnected graph is never Eulerian.
func (a *Analyzer) ClassifyEuler() EulerClass {
	if !a.IsConnected() {
		return NotEulerian
	}

	odd := 0
	for _, id := range a.graph.NodeIDs() {
		if a.graph.Degree(id)%2 == 1 {
			odd++
		}
	}

	switch odd {
	case 0:
		return Eulerian
	case 2:
		return SemiEulerian
	default:
		return NotEulerian
	}
}

// SelfLoopCount returns the number of edges whose endpoints coincide
func (a *Analyzer) SelfLoopCount() int {
	loops := 0
	for _, e := range a.graph.Edges() {
		if e.A == e.B {
			loops++
		}
	}
	return loops
}

// HasCycle reports whether any cycle exists. An undirected simple graph is
// a forest exactly when E = V - components.
func (a *Analyzer) HasCycle() bool {
	if a.graph.NodeCount() == 0 {
		return false
	}
	components := len(topo.ConnectedComponents(a.graph.Undirected().Graph))
	return a.graph.EdgeCount() > a.graph.NodeCount()-components
}

// HasHamiltonianCycle reports whether a cycle visits every node exactly
// once. Exhaustive backtracking; catalog graphs have at most eleven nodes.
func (a *Analyzer) HasHamiltonianCycle() bool {
	ids := a.graph.NodeIDs()
	n := len(ids)
	if n < 3 || !a.IsConnected() {
		return false
	}
	for _, id := range ids {
		if a.graph.Degree(id) < 2 {
			return false
		}
	}

	start := ids[0]
	visited := map[string]bool{start: true}

	var extend func(current string, depth int) bool
	extend = func(current string, depth int) bool {
		if depth == n {
			return a.graph.HasEdge(current, start)
		}
		for _, next := range a.graph.Neighbors(current) {
			if visited[next] {
				continue
			}
			visited[next] = true
			if extend(next, depth+1) {
				return true
			}
			visited[next] = false
		}
		return false
	}

	return extend(start, 1)
}

// IsSimple reports the absence of self-loops and parallel edges. The store
// cannot hold parallel edges, so only loops are checked.
func (a *Analyzer) IsSimple() bool {
	return a.SelfLoopCount() == 0
}

// IsNull reports whether the graph has no edges
func (a *Analyzer) IsNull() bool {
	return a.graph.EdgeCount() == 0
}

// IsTrivial reports whether the graph has exactly one node
func (a *Analyzer) IsTrivial() bool {
	return a.graph.NodeCount() == 1
}

// IsRegular reports whether every node has the same degree. Graphs with at
// most one node are regular.
func (a *Analyzer) IsRegular() bool {
	ids := a.graph.NodeIDs()
	if len(ids) <= 1 {
		return true
	}
	want := a.graph.Degree(ids[0])
	for _, id := range ids[1:] {
		if a.graph.Degree(id) != want {
			return false
		}
	}
	return true
}

// NodeDegree pairs a node with its degree
type NodeDegree struct {
	Node   string `json:"node"`
	Degree int    `json:"degree"`
}

// Degrees returns the degree of every node in id order
func (a *Analyzer) Degrees() []NodeDegree {
	ids := a.graph.NodeIDs()
	out := make([]NodeDegree, 0, len(ids))
	for _, id := range ids {
		out = append(out, NodeDegree{Node: id, Degree: a.graph.Degree(id)})
	}
	return out
}

// GraphInfo bundles every structural query for presentation
type GraphInfo struct {
	Nodes               int          `json:"nodes"`
	Edges               int          `json:"edges"`
	Connected           bool         `json:"connected"`
	Components          int          `json:"components"`
	Euler               EulerClass   `json:"euler"`
	SelfLoops           int          `json:"self_loops"`
	HasCycle            bool         `json:"has_cycle"`
	HasHamiltonianCycle bool         `json:"has_hamiltonian_cycle"`
	Simple              bool         `json:"simple"`
	Null                bool         `json:"null"`
	Trivial             bool         `json:"trivial"`
	Regular             bool         `json:"regular"`
	Degrees             []NodeDegree `json:"degrees"`
}

// Info runs every query once
func (a *Analyzer) Info() GraphInfo {
	return GraphInfo{
		Nodes:               a.graph.NodeCount(),
		Edges:               a.graph.EdgeCount(),
		Connected:           a.IsConnected(),
		Components:          len(a.Components()),
		Euler:               a.ClassifyEuler(),
		SelfLoops:           a.SelfLoopCount(),
		HasCycle:            a.HasCycle(),
		HasHamiltonianCycle: a.HasHamiltonianCycle(),
		Simple:              a.IsSimple(),
		Null:                a.IsNull(),
		Trivial:             a.IsTrivial(),
		Regular:             a.IsRegular(),
		Degrees:             a.Degrees(),
	}
}
