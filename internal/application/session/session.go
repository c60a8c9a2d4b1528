// Package session owns one in-memory route planning session: a graph store
// bound to a distance catalog, and the planner, simulator and analyzer that
// share it.
package session

import (
	"context"
	"strings"

	"github.com/go-logr/logr"

	"github.com/andrescamacho/starroute-go/internal/domain/analysis"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// GraphRecorder receives graph size, mutation and import observations
type GraphRecorder interface {
	RecordSize(nodes, edges int)
	RecordMutation(operation string, err error)
	RecordImport(accepted, rejected int, diagnosticKinds []string)
}

type noopGraphRecorder struct{}

func (noopGraphRecorder) RecordSize(int, int)             {}
func (noopGraphRecorder) RecordMutation(string, error)    {}
func (noopGraphRecorder) RecordImport(int, int, []string) {}

// Option configures a Session
type Option func(*Session)

// WithGraphMetrics records graph mutations and imports
func WithGraphMetrics(recorder GraphRecorder) Option {
	return func(s *Session) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithSimulatorOptions forwards options to the travel simulator
func WithSimulatorOptions(opts ...navigation.Option) Option {
	return func(s *Session) {
		s.simOpts = append(s.simOpts, opts...)
	}
}

// Session is a single-caller planning session. It is not safe for
// concurrent use.
type Session struct {
	catalog   *catalog.DistanceCatalog
	store     *system.Store
	planner   *routing.Planner
	simulator *navigation.Simulator
	analyzer  *analysis.Analyzer
	metrics   GraphRecorder
	simOpts   []navigation.Option
}

// New creates an empty session over the given catalog
func New(c *catalog.DistanceCatalog, opts ...Option) *Session {
	s := &Session{
		catalog: c,
		store:   system.NewStore(c),
		planner: routing.NewPlanner(),
		metrics: noopGraphRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.simulator = navigation.NewSimulator(s.store, s.planner, s.simOpts...)
	s.analyzer = analysis.NewAnalyzer(s.store)
	return s
}

// Catalog returns the catalog the session derives weights from
func (s *Session) Catalog() *catalog.DistanceCatalog {
	return s.catalog
}

// Graph returns the read-only view of the session graph
func (s *Session) Graph() system.Graph {
	return s.store
}

// Simulator returns the session's travel simulator
func (s *Session) Simulator() *navigation.Simulator {
	return s.simulator
}

// Analyzer returns the session's graph analyzer
func (s *Session) Analyzer() *analysis.Analyzer {
	return s.analyzer
}

// AddBody adds a catalog body to the graph, connecting it to every present
// body the catalog has a distance for
func (s *Session) AddBody(ctx context.Context, id string) ([]system.Edge, error) {
	edges, err := s.store.AddNode(id)
	s.observe(ctx, "add", id, err)
	if err != nil {
		return nil, err
	}
	return edges, nil
}

// RemoveBody removes a body and its incident edges
func (s *Session) RemoveBody(ctx context.Context, id string) error {
	err := s.store.RemoveNode(id)
	s.observe(ctx, "remove", id, err)
	return err
}

// Reset empties the graph and drops pending travel confirmations
func (s *Session) Reset(ctx context.Context) {
	s.store.Clear()
	s.simulator = navigation.NewSimulator(s.store, s.planner, s.simOpts...)
	s.metrics.RecordSize(0, 0)
	logr.FromContextOrDiscard(ctx).V(1).Info("session graph cleared")
}

// LoadAll adds every catalog body that can be connected, in catalog order,
// retrying bodies that were isolated until no progress is made
func (s *Session) LoadAll(ctx context.Context) []Diagnostic {
	var rows []Row
	for i, body := range s.catalog.Bodies() {
		rows = append(rows, Row{Line: i + 1, Body: body.ID})
	}
	return s.Import(ctx, rows)
}

// MissingBodies lists catalog bodies that are not in the graph
func (s *Session) MissingBodies() []shared.Body {
	var missing []shared.Body
	for _, body := range s.catalog.Bodies() {
		if !s.store.HasNode(body.ID) {
			missing = append(missing, body)
		}
	}
	return missing
}

// PresentBodies lists the bodies in the graph, sorted by identifier
func (s *Session) PresentBodies() []shared.Body {
	return s.store.Nodes()
}

// Edges lists the graph's edges, sorted by endpoints
func (s *Session) Edges() []system.Edge {
	return s.store.Edges()
}

// ShortestPath routes between two bodies, optionally through a stopover.
// An empty or "none" stopover routes directly.
func (s *Session) ShortestPath(source, stopover, target string) (routing.Path, error) {
	if stopover == "" || strings.EqualFold(stopover, navigation.NoStopover) {
		return s.planner.ShortestPath(s.store, source, target)
	}
	return s.planner.ShortestPathVia(s.store, source, stopover, target)
}

func (s *Session) observe(ctx context.Context, operation, id string, err error) {
	s.metrics.RecordMutation(operation, err)
	s.metrics.RecordSize(s.store.NodeCount(), s.store.EdgeCount())

	log := logr.FromContextOrDiscard(ctx)
	if err != nil {
		log.V(1).Info("graph mutation rejected", "operation", operation, "body", id, "error", err.Error())
		return
	}
	log.V(1).Info("graph mutated", "operation", operation, "body", id,
		"nodes", s.store.NodeCount(), "edges", s.store.EdgeCount())
}
