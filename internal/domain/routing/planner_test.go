package routing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

func buildStore(t *testing.T, ids ...string) *system.Store {
	t.Helper()
	store := system.NewStore(catalog.Builtin())
	for _, id := range ids {
		_, err := store.AddNode(id)
		require.NoError(t, err, id)
	}
	return store
}

func TestShortestPath_PrefersDirectEdge(t *testing.T) {
	// Arrange: Earth-Mars 78, Mars-Jupiter 558, Earth-Jupiter 628
	store := buildStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)
	planner := routing.NewPlanner()

	// Act
	route, err := planner.ShortestPath(store, catalog.Earth, catalog.Jupiter)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Earth, catalog.Jupiter}, route.Nodes)
	assert.Equal(t, 628.0, route.Cost)
	assert.Equal(t, []routing.Hop{{From: catalog.Earth, To: catalog.Jupiter}}, route.Hops())
}

func TestShortestPath_TakesCheaperDetour(t *testing.T) {
	// Station-2 reaches Earth only through Mars
	store := buildStore(t, catalog.Earth, catalog.Mars, catalog.Station2)
	planner := routing.NewPlanner()

	route, err := planner.ShortestPath(store, catalog.Station2, catalog.Earth)

	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Station2, catalog.Mars, catalog.Earth}, route.Nodes)
	assert.Equal(t, 478.0, route.Cost)
}

func TestShortestPath_SameSourceAndTarget(t *testing.T) {
	store := buildStore(t, catalog.Earth, catalog.Mars)

	route, err := routing.NewPlanner().ShortestPath(store, catalog.Mars, catalog.Mars)

	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Mars}, route.Nodes)
	assert.Zero(t, route.Cost)
	assert.Empty(t, route.Hops())
}

func TestShortestPath_CostIsSymmetric(t *testing.T) {
	store := buildStore(t, catalog.BuiltinBodies...)
	planner := routing.NewPlanner()

	ids := store.NodeIDs()
	for _, a := range ids {
		for _, b := range ids {
			forward, err := planner.ShortestPath(store, a, b)
			require.NoError(t, err)
			backward, err := planner.ShortestPath(store, b, a)
			require.NoError(t, err)
			assert.Equal(t, forward.Cost, backward.Cost, "%s <-> %s", a, b)
		}
	}
}

func TestShortestPath_NoPath(t *testing.T) {
	// Removing Station-1 leaves Mercury and Neptune with no catalog edge
	store := buildStore(t, catalog.Mercury, catalog.Station1, catalog.Neptune)
	require.NoError(t, store.RemoveNode(catalog.Station1))

	_, err := routing.NewPlanner().ShortestPath(store, catalog.Mercury, catalog.Neptune)

	var pathErr *shared.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, shared.PathReasonNoPath, pathErr.Reason)
	assert.Zero(t, pathErr.Leg)
}

func TestShortestPath_UnknownNode(t *testing.T) {
	store := buildStore(t, catalog.Earth, catalog.Mars)

	_, err := routing.NewPlanner().ShortestPath(store, catalog.Earth, catalog.Saturn)

	var pathErr *shared.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, shared.PathReasonUnknownNode, pathErr.Reason)
}

func TestShortestPathVia_ConcatenatesLegs(t *testing.T) {
	store := buildStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)

	route, err := routing.NewPlanner().ShortestPathVia(store, catalog.Earth, catalog.Mars, catalog.Jupiter)

	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Earth, catalog.Mars, catalog.Jupiter}, route.Nodes)
	assert.Equal(t, 636.0, route.Cost)
}

func TestShortestPathVia_StopoverAtEndpoint(t *testing.T) {
	store := buildStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)
	planner := routing.NewPlanner()

	route, err := planner.ShortestPathVia(store, catalog.Earth, catalog.Earth, catalog.Jupiter)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Earth, catalog.Jupiter}, route.Nodes)

	route, err = planner.ShortestPathVia(store, catalog.Earth, catalog.Jupiter, catalog.Jupiter)
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Earth, catalog.Jupiter}, route.Nodes)
}

func TestShortestPathVia_ReportsFailingLeg(t *testing.T) {
	store := buildStore(t, catalog.Mercury, catalog.Station1, catalog.Neptune, catalog.Earth)
	require.NoError(t, store.RemoveNode(catalog.Station1))
	// Mercury-Earth and Earth-Neptune remain, Station-1 is gone

	_, err := routing.NewPlanner().ShortestPathVia(store, catalog.Mercury, catalog.Earth, catalog.Station1)

	var pathErr *shared.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, 2, pathErr.Leg)
	assert.Equal(t, shared.PathReasonUnknownNode, pathErr.Reason)
}
