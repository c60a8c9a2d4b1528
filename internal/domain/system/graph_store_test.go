package system_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

func newStore(t *testing.T, ids ...string) *system.Store {
	t.Helper()
	store := system.NewStore(catalog.Builtin())
	for _, id := range ids {
		_, err := store.AddNode(id)
		require.NoError(t, err, id)
	}
	return store
}

func TestAddNode_FirstNodeHasNoEdges(t *testing.T) {
	store := newStore(t)

	edges, err := store.AddNode(catalog.Earth)

	require.NoError(t, err)
	assert.Empty(t, edges)
	assert.True(t, store.HasNode(catalog.Earth))
	assert.Equal(t, 1, store.NodeCount())
}

func TestAddNode_ConnectsToEveryCatalogNeighbour(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars)

	edges, err := store.AddNode(catalog.Jupiter)

	require.NoError(t, err)
	assert.Len(t, edges, 2)
	w, ok := store.Weight(catalog.Jupiter, catalog.Earth)
	require.True(t, ok)
	assert.Equal(t, 628.0, w)
	w, ok = store.Weight(catalog.Mars, catalog.Jupiter)
	require.True(t, ok)
	assert.Equal(t, 558.0, w)
	assert.Equal(t, 3, store.EdgeCount())
}

func TestAddNode_UnknownBody(t *testing.T) {
	store := newStore(t)

	_, err := store.AddNode("Pluto")

	var validationErr *shared.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 0, store.NodeCount())
}

func TestAddNode_Duplicate(t *testing.T) {
	store := newStore(t, catalog.Earth)

	_, err := store.AddNode(catalog.Earth)

	var stateErr *shared.StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, catalog.Earth, stateErr.Body)
}

func TestAddNode_RejectsIsolatedNode(t *testing.T) {
	// Station-1 only connects to Mercury and Neptune
	store := newStore(t, catalog.Earth, catalog.Mars)
	before := store.Edges()

	_, err := store.AddNode(catalog.Station1)

	var stateErr *shared.StateError
	require.True(t, errors.As(err, &stateErr))
	assert.False(t, store.HasNode(catalog.Station1))
	assert.Equal(t, before, store.Edges())
}

func TestRemoveNode_DropsIncidentEdges(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)

	require.NoError(t, store.RemoveNode(catalog.Mars))

	assert.False(t, store.HasNode(catalog.Mars))
	assert.False(t, store.HasEdge(catalog.Earth, catalog.Mars))
	assert.Equal(t, []string{catalog.Jupiter}, store.Neighbors(catalog.Earth))
	assert.Equal(t, 1, store.EdgeCount())
}

func TestRemoveNode_Absent(t *testing.T) {
	store := newStore(t, catalog.Earth)

	err := store.RemoveNode(catalog.Mars)

	var stateErr *shared.StateError
	require.True(t, errors.As(err, &stateErr))
	assert.Equal(t, 1, store.NodeCount())
}

func TestAddThenRemove_RestoresGraph(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars, catalog.Neptune)
	nodes, edges := store.NodeIDs(), store.Edges()

	for _, id := range []string{catalog.Jupiter, catalog.Station2, catalog.Venus} {
		_, err := store.AddNode(id)
		require.NoError(t, err)
		require.NoError(t, store.RemoveNode(id))

		assert.Equal(t, nodes, store.NodeIDs(), id)
		assert.Equal(t, edges, store.Edges(), id)
	}
}

func TestWeight_IsSymmetric(t *testing.T) {
	store := newStore(t, catalog.BuiltinBodies...)

	for _, e := range store.Edges() {
		forward, ok := store.Weight(e.A, e.B)
		require.True(t, ok)
		backward, ok := store.Weight(e.B, e.A)
		require.True(t, ok)
		assert.Equal(t, forward, backward)
		assert.True(t, store.HasEdge(e.B, e.A))
	}
	assert.Equal(t, 31, store.EdgeCount())
}

func TestQueries(t *testing.T) {
	store := newStore(t, catalog.Neptune, catalog.Station1, catalog.Station2, catalog.Mars)

	assert.Equal(t, []string{catalog.Mars, catalog.Neptune, catalog.Station1, catalog.Station2}, store.NodeIDs())
	assert.Equal(t, 2, store.Degree(catalog.Neptune))
	assert.Equal(t, []string{catalog.Station1, catalog.Station2}, store.Neighbors(catalog.Neptune))
	assert.Equal(t, []string{catalog.Station2}, store.Neighbors(catalog.Mars))

	kind, ok := store.Kind(catalog.Station2)
	require.True(t, ok)
	assert.Equal(t, shared.BodyKindStation, kind)
	assert.Len(t, store.Stations(), 2)

	store.Clear()
	assert.Equal(t, 0, store.NodeCount())
	assert.Equal(t, 0, store.EdgeCount())
}

func TestUndirected_MirrorsStore(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)

	view := store.Undirected()

	assert.Equal(t, 3, view.Graph.Nodes().Len())
	earth, ok := view.Node(catalog.Earth)
	require.True(t, ok)
	jupiter, ok := view.Node(catalog.Jupiter)
	require.True(t, ok)
	w, ok := view.Graph.Weight(earth.ID(), jupiter.ID())
	require.True(t, ok)
	assert.Equal(t, 628.0, w)
	assert.Equal(t, catalog.Earth, view.Name(earth))

	_, ok = view.Node(catalog.Venus)
	assert.False(t, ok)
}
