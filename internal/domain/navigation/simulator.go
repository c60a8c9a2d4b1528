package navigation

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// Simulator evaluates travel plans against the rule engine, routes them and
// walks the route edge by edge keeping the fuel balance.
//
// Invariants:
// - A blocked plan never reaches the router
// - Rule fuel deltas are applied before the first edge
// - A pending confirmation is resolved at most once
//
// Not safe for concurrent use; a session owns one simulator.
type Simulator struct {
	graph        system.Graph
	router       routing.Router
	engine       *rules.Engine
	refuelAmount float64
	metrics      MetricsRecorder
	clock        shared.Clock
	pending      map[string]*Proposal
}

// Option configures a Simulator
type Option func(*Simulator)

// WithRefuelAmount overrides the station top-up amount
func WithRefuelAmount(amount float64) Option {
	return func(s *Simulator) {
		s.refuelAmount = amount
	}
}

// WithRuleEngine replaces the default calendar policy
func WithRuleEngine(engine *rules.Engine) Option {
	return func(s *Simulator) {
		s.engine = engine
	}
}

// WithMetrics reports finished trips to the recorder
func WithMetrics(recorder MetricsRecorder) Option {
	return func(s *Simulator) {
		s.metrics = recorder
	}
}

// WithClock injects the clock used for proposal timestamps and durations
func WithClock(clock shared.Clock) Option {
	return func(s *Simulator) {
		s.clock = clock
	}
}

// NewSimulator creates a simulator over the session graph
func NewSimulator(graph system.Graph, router routing.Router, opts ...Option) *Simulator {
	s := &Simulator{
		graph:        graph,
		router:       router,
		engine:       rules.NewDefaultEngine(),
		refuelAmount: DefaultRefuelAmount,
		clock:        shared.NewRealClock(),
		pending:      make(map[string]*Proposal),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Propose validates the plan and evaluates the rules. A blocked plan comes
// back already resolved; a plan needing confirmation is kept pending under
// its token until Resolve is called.
func (s *Simulator) Propose(ctx context.Context, plan TravelPlan) (*Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	logger := logr.FromContextOrDiscard(ctx).WithValues("origin", plan.Origin, "destination", plan.Destination)

	effects := s.engine.Evaluate(plan.Itinerary())
	p := &Proposal{
		ID:        uuid.New().String(),
		Plan:      plan,
		Effects:   effects,
		Fuel:      shared.Fuel{Units: plan.InitialFuel}.Adjust(rules.FuelAdjustment(effects)).Units,
		CreatedAt: s.clock.Now(),
		state:     ProposalReady,
	}

	if reasons := rules.Blocked(effects); len(reasons) > 0 {
		logger.V(1).Info("trip blocked by calendar rules", "reasons", reasons)
		p.Result = s.finish(ctx, p, &TravelResult{
			Status:       TravelStatusAborted,
			Reason:       AbortRuleBlock,
			Messages:     reasons,
			StartingFuel: plan.InitialFuel,
			FinalFuel:    plan.InitialFuel,
		})
		p.state = ProposalResolved
		return p, nil
	}

	if questions := rules.Confirmations(effects); len(questions) > 0 {
		p.Confirmation = &Confirmation{Token: uuid.New().String(), Messages: questions}
		p.state = ProposalAwaitingConfirmation
		s.pending[p.Confirmation.Token] = p
		logger.V(1).Info("trip awaits confirmation", "token", p.Confirmation.Token)
	}

	return p, nil
}

// Resolve answers a pending confirmation. Declining aborts the trip with the
// rule fuel deltas still applied.
func (s *Simulator) Resolve(ctx context.Context, token string, accepted bool) (*TravelResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, ok := s.pending[token]
	if !ok {
		return nil, shared.NewStateError("", "no pending confirmation for token "+token)
	}
	delete(s.pending, token)

	if !accepted {
		if err := p.transition(ProposalAwaitingConfirmation, ProposalResolved); err != nil {
			return nil, err
		}
		p.Result = s.finish(ctx, p, &TravelResult{
			Status:       TravelStatusAborted,
			Reason:       AbortConfirmationDeclined,
			Messages:     p.Confirmation.Messages,
			StartingFuel: p.Fuel,
			FinalFuel:    p.Fuel,
		})
		return p.Result, nil
	}

	if err := p.transition(ProposalAwaitingConfirmation, ProposalReady); err != nil {
		return nil, err
	}
	return s.Execute(ctx, p)
}

// Execute walks a ready proposal. A proposal resolved at proposal time
// returns its stored result.
func (s *Simulator) Execute(ctx context.Context, p *Proposal) (*TravelResult, error) {
	switch p.State() {
	case ProposalResolved:
		if p.Result == nil {
			return nil, shared.NewStateError(p.Plan.Destination, "proposal "+p.ID+" was already executed")
		}
		return p.Result, nil
	case ProposalAwaitingConfirmation:
		return nil, NewConfirmationRequiredError(p)
	}

	route, err := s.route(p.Plan)
	if err != nil {
		p.state = ProposalResolved
		if s.metrics != nil {
			s.metrics.RecordPathFailure(p.Plan, err)
		}
		logr.FromContextOrDiscard(ctx).Info("no route for trip", "plan", p.Plan.String(), "error", err.Error())
		return nil, err
	}

	result := s.walk(p, route)
	p.state = ProposalResolved
	p.Result = s.finish(ctx, p, result)
	return p.Result, nil
}

// Simulate runs Propose and Execute in one call. When a rule needs an
// answer it returns *ConfirmationRequiredError; resolve its proposal's
// token to continue.
func (s *Simulator) Simulate(ctx context.Context, plan TravelPlan) (*TravelResult, error) {
	p, err := s.Propose(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, p)
}

// Pending returns the number of proposals waiting for an answer
func (s *Simulator) Pending() int {
	return len(s.pending)
}

// Discard drops a pending proposal without resolving it
func (s *Simulator) Discard(token string) bool {
	_, ok := s.pending[token]
	delete(s.pending, token)
	return ok
}

// route picks the via route only when the requested stopover is in the graph
func (s *Simulator) route(plan TravelPlan) (routing.Path, error) {
	if stopover, ok := plan.RequestedStopover(); ok && s.graph.HasNode(stopover) {
		return s.router.ShortestPathVia(s.graph, plan.Origin, stopover, plan.Destination)
	}
	return s.router.ShortestPath(s.graph, plan.Origin, plan.Destination)
}

func (s *Simulator) walk(p *Proposal, route routing.Path) *TravelResult {
	result := &TravelResult{
		Route:        route.Nodes,
		StartingFuel: p.Fuel,
		Steps:        make([]TravelStep, 0, len(route.Nodes)),
	}

	hasBonus := len(rules.Bonuses(p.Effects)) > 0
	hasPenalty := len(rules.Penalties(p.Effects)) > 0
	refuel := NewRefuelPolicy(s.graph, s.refuelAmount)
	fuel := shared.Fuel{Units: p.Fuel}

	for i, hop := range route.Hops() {
		step := TravelStep{From: hop.From, To: hop.To, FuelBefore: fuel.Units}

		fuel, step.RefueledAt = refuel.Visit(fuel, hop.From, hop.To)
		step.Refueled = len(step.RefueledAt) > 0

		distance, ok := s.graph.Weight(hop.From, hop.To)
		if !ok {
			distance = 0
			step.WeightMissing = true
		}
		fuel = fuel.Consume(distance)

		step.Distance = distance
		step.FuelAfter = fuel.Units
		if i == 0 {
			step.BonusApplied = hasBonus
			step.PenaltyApplied = hasPenalty
		}

		result.Steps = append(result.Steps, step)
		result.TotalDistance += distance

		if fuel.Exhausted() {
			result.Status = TravelStatusAborted
			result.Reason = AbortInsufficientFuel
			result.FinalFuel = fuel.Units
			result.Messages = []string{shared.NewInsufficientFuelError(hop.From, hop.To, fuel.Units).Error()}
			return result
		}
	}

	result.Status = TravelStatusCompleted
	result.FinalFuel = fuel.Units
	return result
}

// finish stamps the shared result fields, logs and reports metrics
func (s *Simulator) finish(ctx context.Context, p *Proposal, result *TravelResult) *TravelResult {
	result.ID = p.ID
	result.Plan = p.Plan
	result.Effects = p.Effects
	if result.Reason != AbortRuleBlock {
		result.BonusApplied = len(rules.Bonuses(p.Effects)) > 0
		result.PenaltyApplied = len(rules.Penalties(p.Effects)) > 0
	}
	if result.Steps == nil {
		result.Steps = []TravelStep{}
	}

	logger := logr.FromContextOrDiscard(ctx)
	if !result.Completed() {
		logger.Info("trip aborted", "id", result.ID, "reason", result.Reason, "final_fuel", result.FinalFuel)
	} else {
		logger.Info("trip completed", "id", result.ID, "distance", result.TotalDistance, "final_fuel", result.FinalFuel)
	}

	if s.metrics != nil {
		s.metrics.RecordTravel(result, s.clock.Now().Sub(p.CreatedAt))
	}
	return result
}
