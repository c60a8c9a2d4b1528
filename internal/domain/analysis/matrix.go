package analysis

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// AdjacencyMatrix holds pairwise edge weights, 0 where no edge exists
type AdjacencyMatrix struct {
	Order []string
	index map[string]int
	dense *mat.SymDense
}

// AdjacencyMatrix builds the weight matrix. With no order the nodes are
// sorted lexicographically; a given order must list every node exactly once.
func (a *Analyzer) AdjacencyMatrix(order ...string) (*AdjacencyMatrix, error) {
	nodes := a.graph.NodeIDs()
	if len(order) == 0 {
		order = nodes
	} else if err := validateOrder(order, nodes); err != nil {
		return nil, err
	}

	m := &AdjacencyMatrix{
		Order: slices.Clone(order),
		index: make(map[string]int, len(order)),
	}
	for i, id := range order {
		m.index[id] = i
	}
	if len(order) == 0 {
		return m, nil
	}

	m.dense = mat.NewSymDense(len(order), nil)
	for _, e := range a.graph.Edges() {
		i, j := m.index[e.A], m.index[e.B]
		if i == j {
			continue
		}
		m.dense.SetSym(i, j, e.Weight)
	}
	return m, nil
}

func validateOrder(order, nodes []string) error {
	if len(order) != len(nodes) {
		return shared.NewValidationError("order",
			fmt.Sprintf("expected %d nodes, got %d", len(nodes), len(order)))
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if seen[id] {
			return shared.NewValidationError("order", fmt.Sprintf("node %s listed twice", id))
		}
		if _, found := slices.BinarySearch(nodes, id); !found {
			return shared.NewValidationError("order", fmt.Sprintf("node %s is not in the graph", id))
		}
		seen[id] = true
	}
	return nil
}

// Size is the number of rows (and columns)
func (m *AdjacencyMatrix) Size() int {
	return len(m.Order)
}

// At returns the cell for two node ids
func (m *AdjacencyMatrix) At(a, b string) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.dense.At(i, j), true
}

// Rows returns the matrix as plain slices in Order
func (m *AdjacencyMatrix) Rows() [][]float64 {
	n := m.Size()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.dense.At(i, j)
		}
	}
	return rows
}

// Dense exposes the gonum matrix, nil for an empty graph
func (m *AdjacencyMatrix) Dense() *mat.SymDense {
	return m.dense
}

func (m *AdjacencyMatrix) String() string {
	if m.dense == nil {
		return "[]"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", m.Order)
	fmt.Fprintf(&b, "%v", mat.Formatted(m.dense, mat.Squeeze()))
	return b.String()
}

func sortComponents(components [][]string) {
	for _, c := range components {
		slices.Sort(c)
	}
	slices.SortFunc(components, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})
}
