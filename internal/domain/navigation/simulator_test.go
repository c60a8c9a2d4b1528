package navigation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// spyRouter counts calls and delegates to the real planner unless a fixed
// path is configured
type spyRouter struct {
	calls int
	fixed *routing.Path
	inner *routing.Planner
}

func newSpyRouter() *spyRouter {
	return &spyRouter{inner: routing.NewPlanner()}
}

func (r *spyRouter) ShortestPath(g system.Graph, source, target string) (routing.Path, error) {
	r.calls++
	if r.fixed != nil {
		return *r.fixed, nil
	}
	return r.inner.ShortestPath(g, source, target)
}

func (r *spyRouter) ShortestPathVia(g system.Graph, source, stopover, target string) (routing.Path, error) {
	r.calls++
	if r.fixed != nil {
		return *r.fixed, nil
	}
	return r.inner.ShortestPathVia(g, source, stopover, target)
}

type spyMetrics struct {
	travels   []*navigation.TravelResult
	durations []time.Duration
	failures  []error
}

func (m *spyMetrics) RecordTravel(result *navigation.TravelResult, duration time.Duration) {
	m.travels = append(m.travels, result)
	m.durations = append(m.durations, duration)
}

func (m *spyMetrics) RecordPathFailure(_ navigation.TravelPlan, err error) {
	m.failures = append(m.failures, err)
}

func newStore(t *testing.T, ids ...string) *system.Store {
	t.Helper()
	store := system.NewStore(catalog.Builtin())
	for _, id := range ids {
		_, err := store.AddNode(id)
		require.NoError(t, err, id)
	}
	return store
}

func plan(origin, destination, stopover string, month time.Month, fuel float64) navigation.TravelPlan {
	return navigation.TravelPlan{
		Origin:      origin,
		Destination: destination,
		Stopover:    stopover,
		Month:       month,
		InitialFuel: fuel,
	}
}

func TestSimulate_DirectTripConsumesDistance(t *testing.T) {
	// Arrange
	store := newStore(t, catalog.Earth, catalog.Mars)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	// Act
	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Mars, "", time.May, 100))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, navigation.TravelStatusCompleted, result.Status)
	assert.Equal(t, 22.0, result.FinalFuel)
	assert.Equal(t, 78.0, result.TotalDistance)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, 100.0, result.Steps[0].FuelBefore)
	assert.Equal(t, 22.0, result.Steps[0].FuelAfter)
	assert.False(t, result.Steps[0].Refueled)
	assert.NoError(t, result.Err())
}

func TestSimulate_StationRefuelsOncePerTrip(t *testing.T) {
	// Mars → Station-2 → Neptune touches Station-2 on both edges
	store := newStore(t, catalog.Mars, catalog.Station2, catalog.Neptune)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Mars, catalog.Neptune, "none", time.May, 500))

	require.NoError(t, err)
	require.Equal(t, navigation.TravelStatusCompleted, result.Status)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, []string{catalog.Station2}, result.Steps[0].RefueledAt)
	assert.False(t, result.Steps[1].Refueled)
	assert.Equal(t, 1100.0, result.Steps[0].FuelAfter)
	assert.Equal(t, 200.0, result.FinalFuel)
	assert.Equal(t, 1, result.RefuelCount())
}

func TestSimulate_RefuelAmountIsConfigurable(t *testing.T) {
	store := newStore(t, catalog.Mars, catalog.Station2)
	sim := navigation.NewSimulator(store, routing.NewPlanner(), navigation.WithRefuelAmount(50))

	result, err := sim.Simulate(context.Background(), plan(catalog.Mars, catalog.Station2, "", time.May, 400))

	require.NoError(t, err)
	assert.Equal(t, 50.0, result.FinalFuel)
}

func newStationStore(t *testing.T, distances ...catalog.Distance) *system.Store {
	t.Helper()
	c, err := catalog.New([]string{catalog.Station1, catalog.Station2, catalog.Mars}, distances)
	require.NoError(t, err)
	store := system.NewStore(c)
	for _, id := range []string{catalog.Station1, catalog.Station2, catalog.Mars} {
		if _, err := store.AddNode(id); err != nil {
			var stateErr *shared.StateError
			require.True(t, errors.As(err, &stateErr), id)
		}
	}
	return store
}

func TestSimulate_HopBetweenTwoNewStationsDoesNotRefuel(t *testing.T) {
	// Arrange
	store := newStationStore(t,
		catalog.Distance{Pair: catalog.NewPair(catalog.Station1, catalog.Station2), Value: 100})
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	// Act
	result, err := sim.Simulate(context.Background(), plan(catalog.Station1, catalog.Station2, "", time.May, 150))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, navigation.TravelStatusCompleted, result.Status)
	assert.Equal(t, 50.0, result.FinalFuel)
	assert.Zero(t, result.RefuelCount())
}

func TestSimulate_StationSkippedOnSharedHopRefuelsLater(t *testing.T) {
	// Station-1 → Station-2 touches two new stations, Station-2 → Mars only one
	store := newStationStore(t,
		catalog.Distance{Pair: catalog.NewPair(catalog.Station1, catalog.Station2), Value: 100},
		catalog.Distance{Pair: catalog.NewPair(catalog.Station2, catalog.Mars), Value: 50})
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Station1, catalog.Mars, "", time.May, 500))

	require.NoError(t, err)
	require.Len(t, result.Steps, 2)
	assert.False(t, result.Steps[0].Refueled)
	assert.Equal(t, []string{catalog.Station2}, result.Steps[1].RefueledAt)
	assert.Equal(t, 1350.0, result.FinalFuel)
	assert.Equal(t, 1, result.RefuelCount())
}

func TestSimulate_ZeroHopTripReportsBonus(t *testing.T) {
	// Jupiter is not in the graph, so the trip stays at Earth but the
	// stopover rule still pays out
	store := newStore(t, catalog.Earth)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Earth, catalog.Jupiter, time.July, 0))

	require.NoError(t, err)
	assert.Empty(t, result.Steps)
	assert.Equal(t, 300.0, result.FinalFuel)
	assert.True(t, result.BonusApplied)
	assert.False(t, result.PenaltyApplied)
}

func TestSimulate_BlockedTripNeverRoutes(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Venus)
	router := newSpyRouter()
	sim := navigation.NewSimulator(store, router)

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Venus, "", time.December, 300))

	require.NoError(t, err)
	assert.Equal(t, navigation.TravelStatusAborted, result.Status)
	assert.Equal(t, navigation.AbortRuleBlock, result.Reason)
	assert.Equal(t, 300.0, result.FinalFuel)
	assert.Empty(t, result.Steps)
	assert.Zero(t, router.calls)

	var blockErr *shared.RuleBlockError
	assert.True(t, errors.As(result.Err(), &blockErr))
}

func TestSimulate_BlockAppliesEvenWhenDestinationIsAbsent(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Venus, "", time.December, 300))

	require.NoError(t, err)
	assert.Equal(t, navigation.AbortRuleBlock, result.Reason)
}

func TestSimulate_ConfirmationDeclinedKeepsPenalty(t *testing.T) {
	// Arrange
	store := newStore(t, catalog.Earth, catalog.Saturn)
	router := newSpyRouter()
	sim := navigation.NewSimulator(store, router)
	ctx := context.Background()

	// Act
	_, err := sim.Simulate(ctx, plan(catalog.Earth, catalog.Saturn, "", time.July, 2000))

	// Assert
	var confirmErr *navigation.ConfirmationRequiredError
	require.True(t, errors.As(err, &confirmErr))
	proposal := confirmErr.Proposal
	require.True(t, proposal.NeedsConfirmation())
	assert.Equal(t, 1850.0, proposal.Fuel)
	assert.Equal(t, 1, sim.Pending())

	result, err := sim.Resolve(ctx, proposal.Confirmation.Token, false)
	require.NoError(t, err)
	assert.Equal(t, navigation.AbortConfirmationDeclined, result.Reason)
	assert.Equal(t, 1850.0, result.FinalFuel)
	assert.True(t, result.PenaltyApplied)
	assert.Zero(t, router.calls)
	assert.Zero(t, sim.Pending())

	_, err = sim.Resolve(ctx, proposal.Confirmation.Token, true)
	var stateErr *shared.StateError
	assert.True(t, errors.As(err, &stateErr))
}

func TestSimulate_ConfirmationAcceptedWalksRoute(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Saturn)
	sim := navigation.NewSimulator(store, routing.NewPlanner())
	ctx := context.Background()

	proposal, err := sim.Propose(ctx, plan(catalog.Earth, catalog.Saturn, "", time.July, 2000))
	require.NoError(t, err)
	require.NotNil(t, proposal.Confirmation)

	_, err = sim.Execute(ctx, proposal)
	var confirmErr *navigation.ConfirmationRequiredError
	require.True(t, errors.As(err, &confirmErr))

	result, err := sim.Resolve(ctx, proposal.Confirmation.Token, true)

	require.NoError(t, err)
	assert.Equal(t, navigation.TravelStatusCompleted, result.Status)
	assert.Equal(t, 580.0, result.FinalFuel)
	require.Len(t, result.Steps, 1)
	assert.True(t, result.Steps[0].PenaltyApplied)
	assert.False(t, result.Steps[0].BonusApplied)
	assert.Equal(t, navigation.ProposalResolved, proposal.State())
}

func TestSimulate_InsufficientFuelKeepsFailingStep(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Jupiter)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Jupiter, "", time.July, 100))

	require.NoError(t, err)
	assert.Equal(t, navigation.AbortInsufficientFuel, result.Reason)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, -528.0, result.FinalFuel)

	var fuelErr *shared.InsufficientFuelError
	require.True(t, errors.As(result.Err(), &fuelErr))
	assert.Equal(t, catalog.Jupiter, fuelErr.To)
}

func TestSimulate_MissingWeightCountsAsZero(t *testing.T) {
	// Mercury and Neptune share no catalog distance; the stub router
	// still hands back a direct hop between them
	store := newStore(t, catalog.Mercury, catalog.Station1, catalog.Neptune)
	require.NoError(t, store.RemoveNode(catalog.Station1))
	router := newSpyRouter()
	router.fixed = &routing.Path{Nodes: []string{catalog.Mercury, catalog.Neptune}}
	sim := navigation.NewSimulator(store, router)

	result, err := sim.Simulate(context.Background(), plan(catalog.Mercury, catalog.Neptune, "", time.May, 10))

	require.NoError(t, err)
	assert.Equal(t, navigation.TravelStatusCompleted, result.Status)
	require.Len(t, result.Steps, 1)
	assert.True(t, result.Steps[0].WeightMissing)
	assert.Zero(t, result.Steps[0].Distance)
	assert.Equal(t, 10.0, result.FinalFuel)
}

func TestSimulate_StopoverOutsideGraphStillEarnsSlingshot(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Jupiter, catalog.Saturn, time.July, 1000))

	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Earth, catalog.Jupiter}, result.Route)
	assert.Equal(t, 672.0, result.FinalFuel)
	assert.True(t, result.Steps[0].BonusApplied)
}

func TestSimulate_RoutesThroughStopover(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars, catalog.Jupiter)
	sim := navigation.NewSimulator(store, routing.NewPlanner())

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Jupiter, catalog.Mars, time.July, 1000))

	require.NoError(t, err)
	assert.Equal(t, []string{catalog.Earth, catalog.Mars, catalog.Jupiter}, result.Route)
	assert.Equal(t, 636.0, result.TotalDistance)
	assert.Equal(t, 364.0, result.FinalFuel)
}

func TestSimulate_PathErrorPropagates(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars)
	metrics := &spyMetrics{}
	sim := navigation.NewSimulator(store, routing.NewPlanner(), navigation.WithMetrics(metrics))

	result, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Uranus, "", time.July, 1000))

	assert.Nil(t, result)
	var pathErr *shared.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Equal(t, shared.PathReasonUnknownNode, pathErr.Reason)
	assert.Len(t, metrics.failures, 1)
	assert.Empty(t, metrics.travels)
}

func TestSimulate_ReportsMetrics(t *testing.T) {
	store := newStore(t, catalog.Earth, catalog.Mars)
	metrics := &spyMetrics{}
	sim := navigation.NewSimulator(store, routing.NewPlanner(), navigation.WithMetrics(metrics))

	_, err := sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Mars, "", time.May, 100))
	require.NoError(t, err)
	_, err = sim.Simulate(context.Background(), plan(catalog.Earth, catalog.Venus, "", time.December, 100))
	require.NoError(t, err)

	require.Len(t, metrics.travels, 2)
	assert.True(t, metrics.travels[0].Completed())
	assert.Equal(t, navigation.AbortRuleBlock, metrics.travels[1].Reason)
}

func TestSimulate_DurationSpansTheConfirmation(t *testing.T) {
	// Arrange
	start := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	clock := shared.NewMockClock(start)
	metrics := &spyMetrics{}
	store := newStore(t, catalog.Earth, catalog.Saturn)
	sim := navigation.NewSimulator(store, routing.NewPlanner(),
		navigation.WithClock(clock), navigation.WithMetrics(metrics))
	ctx := context.Background()

	// Act
	proposal, err := sim.Propose(ctx, plan(catalog.Earth, catalog.Saturn, "", time.July, 2000))
	require.NoError(t, err)
	clock.Advance(90 * time.Second)
	_, err = sim.Resolve(ctx, proposal.Confirmation.Token, true)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, start, proposal.CreatedAt)
	require.Len(t, metrics.durations, 1)
	assert.Equal(t, 90*time.Second, metrics.durations[0])
}

func TestPropose_ValidatesPlan(t *testing.T) {
	sim := navigation.NewSimulator(newStore(t, catalog.Earth), routing.NewPlanner())

	tests := []struct {
		name  string
		plan  navigation.TravelPlan
		field string
	}{
		{"missing origin", plan("", catalog.Mars, "", time.May, 10), "origin"},
		{"missing destination", plan(catalog.Earth, "", "", time.May, 10), "destination"},
		{"negative fuel", plan(catalog.Earth, catalog.Mars, "", time.May, -1), "initialfuel"},
		{"month out of range", plan(catalog.Earth, catalog.Mars, "", 0, 10), "month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Propose(context.Background(), tt.plan)

			var validationErr *shared.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestPropose_HonoursCancelledContext(t *testing.T) {
	sim := navigation.NewSimulator(newStore(t, catalog.Earth), routing.NewPlanner())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Propose(ctx, plan(catalog.Earth, catalog.Mars, "", time.May, 10))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestTravelPlan_RequestedStopover(t *testing.T) {
	for _, value := range []string{"", "none", "NONE", "None"} {
		_, ok := plan(catalog.Earth, catalog.Mars, value, time.May, 1).RequestedStopover()
		assert.False(t, ok, value)
	}

	stopover, ok := plan(catalog.Earth, catalog.Mars, catalog.Jupiter, time.May, 1).RequestedStopover()
	assert.True(t, ok)
	assert.Equal(t, catalog.Jupiter, stopover)
}
