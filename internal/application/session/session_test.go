package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starroute-go/internal/application/common"
	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

type recordedMutation struct {
	operation string
	failed    bool
}

type fakeGraphRecorder struct {
	nodes, edges int
	mutations    []recordedMutation
	accepted     int
	rejected     int
	kinds        []string
}

func (f *fakeGraphRecorder) RecordSize(nodes, edges int) {
	f.nodes, f.edges = nodes, edges
}

func (f *fakeGraphRecorder) RecordMutation(operation string, err error) {
	f.mutations = append(f.mutations, recordedMutation{operation: operation, failed: err != nil})
}

func (f *fakeGraphRecorder) RecordImport(accepted, rejected int, kinds []string) {
	f.accepted += accepted
	f.rejected += rejected
	f.kinds = append(f.kinds, kinds...)
}

func newSession(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()
	return session.New(catalog.Builtin(), opts...)
}

func ids(bodies []shared.Body) []string {
	out := make([]string, len(bodies))
	for i, b := range bodies {
		out[i] = b.ID
	}
	return out
}

func TestAddBody_ConnectsToPresentBodies(t *testing.T) {
	// Arrange
	recorder := &fakeGraphRecorder{}
	s := newSession(t, session.WithGraphMetrics(recorder))
	ctx := context.Background()

	// Act
	_, err := s.AddBody(ctx, catalog.Earth)
	require.NoError(t, err)
	edges, err := s.AddBody(ctx, catalog.Mars)

	// Assert
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, 78.0, edges[0].Weight)
	assert.Equal(t, 2, recorder.nodes)
	assert.Equal(t, 1, recorder.edges)
	assert.Len(t, recorder.mutations, 2)
}

func TestAddBody_RejectsIsolatedBody(t *testing.T) {
	recorder := &fakeGraphRecorder{}
	s := newSession(t, session.WithGraphMetrics(recorder))
	ctx := context.Background()
	_, err := s.AddBody(ctx, catalog.Earth)
	require.NoError(t, err)

	_, err = s.AddBody(ctx, catalog.Station1)

	var stateErr *shared.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, catalog.Station1, stateErr.Body)
	assert.Equal(t, []string{catalog.Earth}, ids(s.PresentBodies()))
	assert.True(t, recorder.mutations[1].failed)
}

func TestRemoveBody_RestoresPriorGraph(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	for _, id := range []string{catalog.Earth, catalog.Mars, catalog.Jupiter} {
		_, err := s.AddBody(ctx, id)
		require.NoError(t, err)
	}
	before := s.Edges()

	_, err := s.AddBody(ctx, catalog.Saturn)
	require.NoError(t, err)
	require.NoError(t, s.RemoveBody(ctx, catalog.Saturn))

	assert.Equal(t, before, s.Edges())
	var stateErr *shared.StateError
	assert.ErrorAs(t, s.RemoveBody(ctx, catalog.Saturn), &stateErr)
}

func TestMissingBodies_ListsCatalogBodiesNotInGraph(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()
	_, err := s.AddBody(ctx, catalog.Earth)
	require.NoError(t, err)
	_, err = s.AddBody(ctx, catalog.Mars)
	require.NoError(t, err)

	missing := ids(s.MissingBodies())

	assert.Len(t, missing, len(catalog.BuiltinBodies)-2)
	assert.Equal(t, catalog.Mercury, missing[0])
	assert.NotContains(t, missing, catalog.Earth)
	assert.Equal(t, []string{catalog.Earth, catalog.Mars}, ids(s.PresentBodies()))
}

func TestImport_CollectsDiagnosticsAndKeepsValidRows(t *testing.T) {
	// Arrange
	recorder := &fakeGraphRecorder{}
	s := newSession(t, session.WithGraphMetrics(recorder))
	ctx := context.Background()
	_, err := s.AddBody(ctx, catalog.Venus)
	require.NoError(t, err)

	rows := []session.Row{
		{Line: 2, Body: "Earth", Neighbors: []string{"Mars", " Jupiter"}},
		{Line: 3, Body: "Pluto", Neighbors: []string{"Earth"}},
		{Line: 4, Body: "Station-1", Neighbors: []string{"Neptune"}},
		{Line: 5, Body: "Mars", Neighbors: []string{"Station-3", "Ceres"}},
	}

	// Act
	diagnostics := s.Import(ctx, rows)

	// Assert
	require.Len(t, diagnostics, 3)
	assert.Equal(t, 3, diagnostics[0].Line)
	assert.Equal(t, "validation", diagnostics[0].Kind())
	assert.Equal(t, 5, diagnostics[1].Line)
	assert.Contains(t, diagnostics[1].Error(), "no catalog distance between Mars and Station-3")
	assert.Contains(t, diagnostics[2].Error(), "Ceres")

	var validationErr *shared.ValidationError
	assert.True(t, errors.As(diagnostics[0], &validationErr))

	// Station-1 only connects once Neptune is placed
	assert.Equal(t,
		[]string{catalog.Earth, catalog.Jupiter, catalog.Mars, catalog.Neptune, catalog.Station1},
		ids(s.PresentBodies()))
	assert.Equal(t, 6, s.Graph().EdgeCount())

	// Mars keeps its place despite two bad neighbours; only Pluto is rejected
	assert.Equal(t, 3, recorder.accepted)
	assert.Equal(t, 1, recorder.rejected)
	assert.Len(t, recorder.kinds, 3)
	assert.Equal(t, 5, recorder.nodes)
}

func TestImport_ReportsBodiesThatStayIsolated(t *testing.T) {
	s := newSession(t)

	diagnostics := s.Import(context.Background(), []session.Row{
		{Line: 1, Body: "Earth"},
		{Line: 2, Body: "Station-2"},
	})

	require.Len(t, diagnostics, 1)
	assert.Equal(t, "state", diagnostics[0].Kind())
	assert.Equal(t, catalog.Station2, diagnostics[0].Body)
	assert.Equal(t, 2, diagnostics[0].Line)
	assert.Equal(t, []string{catalog.Earth}, ids(s.PresentBodies()))
}

func TestImport_EmptyBodyIsValidationError(t *testing.T) {
	s := newSession(t)

	diagnostics := s.Import(context.Background(), []session.Row{{Line: 7, Body: "  "}})

	require.Len(t, diagnostics, 1)
	assert.Equal(t, "line 7: body: body identifier is empty", diagnostics[0].Error())
	assert.Zero(t, s.Graph().NodeCount())
}

func TestLoadAll_PlacesEveryCatalogBody(t *testing.T) {
	s := newSession(t)

	diagnostics := s.LoadAll(context.Background())

	assert.Empty(t, diagnostics)
	assert.Equal(t, len(catalog.BuiltinBodies), s.Graph().NodeCount())
	assert.Equal(t, len(catalog.BuiltinDistances), s.Graph().EdgeCount())
	assert.Empty(t, s.MissingBodies())
}

func TestShortestPath_NoneStopoverRoutesDirect(t *testing.T) {
	s := newSession(t)
	s.LoadAll(context.Background())

	direct, err := s.ShortestPath(catalog.Earth, "NONE", catalog.Jupiter)
	require.NoError(t, err)
	via, err := s.ShortestPath(catalog.Earth, catalog.Mars, catalog.Jupiter)
	require.NoError(t, err)

	assert.Equal(t, []string{catalog.Earth, catalog.Venus, catalog.Jupiter}, direct.Nodes)
	assert.Equal(t, 562.0, direct.Cost)
	assert.Equal(t, 636.0, via.Cost)
}

func newMediator(t *testing.T, s *session.Session) common.Mediator {
	t.Helper()
	m := common.NewMediator(common.LoggingBehavior)
	require.NoError(t, session.RegisterHandlers(m, s))
	return m
}

func TestTravelCommand_CompletesWithoutConfirmation(t *testing.T) {
	// Arrange
	s := newSession(t)
	m := newMediator(t, s)
	ctx := context.Background()
	_, err := m.Send(ctx, &session.ImportGraphCommand{Rows: []session.Row{{Line: 1, Body: "Earth", Neighbors: []string{"Mars"}}}})
	require.NoError(t, err)
	plan, err := navigation.NewTravelPlan(catalog.Earth, catalog.Mars, "", time.March, 100)
	require.NoError(t, err)

	// Act
	resp, err := m.Send(ctx, &session.TravelCommand{Plan: plan})

	// Assert
	require.NoError(t, err)
	travel := resp.(*session.TravelResponse)
	assert.False(t, travel.AwaitingConfirmation())
	require.NotNil(t, travel.Result)
	assert.Equal(t, navigation.TravelStatusCompleted, travel.Result.Status)
	assert.Equal(t, 22.0, travel.Result.FinalFuel)
}

func TestTravelCommand_ConfirmationRoundTrip(t *testing.T) {
	// Arrange
	s := newSession(t)
	m := newMediator(t, s)
	ctx := context.Background()
	for _, id := range []string{catalog.Earth, catalog.Saturn} {
		_, err := m.Send(ctx, &session.AddBodyCommand{Body: id})
		require.NoError(t, err)
	}
	plan, err := navigation.NewTravelPlan(catalog.Earth, catalog.Saturn, "none", time.July, 2000)
	require.NoError(t, err)

	// Act
	resp, err := m.Send(ctx, &session.TravelCommand{Plan: plan})
	require.NoError(t, err)
	pending := resp.(*session.TravelResponse)
	require.True(t, pending.AwaitingConfirmation())

	resolved, err := m.Send(ctx, &session.ResolveTravelCommand{
		Token:    pending.Proposal.Confirmation.Token,
		Accepted: true,
	})

	// Assert
	require.NoError(t, err)
	result := resolved.(*session.TravelResponse).Result
	assert.Equal(t, navigation.TravelStatusCompleted, result.Status)
	assert.Equal(t, 580.0, result.FinalFuel)
}

func TestQueries_ReportGraphShape(t *testing.T) {
	s := newSession(t)
	m := newMediator(t, s)
	ctx := context.Background()
	for _, id := range []string{catalog.Earth, catalog.Mars, catalog.Jupiter} {
		_, err := m.Send(ctx, &session.AddBodyCommand{Body: id})
		require.NoError(t, err)
	}

	listing, err := m.Send(ctx, &session.ListBodiesQuery{})
	require.NoError(t, err)
	info, err := m.Send(ctx, &session.GraphInfoQuery{})
	require.NoError(t, err)
	matrix, err := m.Send(ctx, &session.AdjacencyMatrixQuery{})
	require.NoError(t, err)
	path, err := m.Send(ctx, &session.ShortestPathQuery{Source: catalog.Mars, Target: catalog.Jupiter})
	require.NoError(t, err)

	assert.Len(t, listing.(*session.ListBodiesResponse).Edges, 3)
	assert.True(t, info.(*session.GraphInfoResponse).Info.Connected)
	assert.True(t, info.(*session.GraphInfoResponse).Info.Regular)
	assert.Equal(t, 3, matrix.(*session.AdjacencyMatrixResponse).Matrix.Size())
	assert.Equal(t, 558.0, path.(*session.ShortestPathResponse).Path.Cost)
}

func TestRemoveBodyCommand_PropagatesStateError(t *testing.T) {
	m := newMediator(t, newSession(t))

	_, err := m.Send(context.Background(), &session.RemoveBodyCommand{Body: catalog.Venus})

	var stateErr *shared.StateError
	assert.ErrorAs(t, err, &stateErr)
}
