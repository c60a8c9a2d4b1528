package session

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starroute-go/internal/application/common"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// AddBodyCommand adds a catalog body to the session graph
type AddBodyCommand struct {
	Body string
}

// AddBodyResponse lists the edges the new body was connected with
type AddBodyResponse struct {
	Edges []system.Edge
}

// AddBodyHandler handles the AddBody command
type AddBodyHandler struct {
	session *Session
}

// NewAddBodyHandler creates a new AddBodyHandler
func NewAddBodyHandler(s *Session) *AddBodyHandler {
	return &AddBodyHandler{session: s}
}

// Handle executes the AddBody command
func (h *AddBodyHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AddBodyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddBodyCommand")
	}

	edges, err := h.session.AddBody(ctx, cmd.Body)
	if err != nil {
		return nil, err
	}
	return &AddBodyResponse{Edges: edges}, nil
}

// RemoveBodyCommand removes a body and its edges from the session graph
type RemoveBodyCommand struct {
	Body string
}

// RemoveBodyResponse reports the graph size after the removal
type RemoveBodyResponse struct {
	Nodes int
	Edges int
}

// RemoveBodyHandler handles the RemoveBody command
type RemoveBodyHandler struct {
	session *Session
}

// NewRemoveBodyHandler creates a new RemoveBodyHandler
func NewRemoveBodyHandler(s *Session) *RemoveBodyHandler {
	return &RemoveBodyHandler{session: s}
}

// Handle executes the RemoveBody command
func (h *RemoveBodyHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RemoveBodyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveBodyCommand")
	}

	if err := h.session.RemoveBody(ctx, cmd.Body); err != nil {
		return nil, err
	}
	g := h.session.Graph()
	return &RemoveBodyResponse{Nodes: g.NodeCount(), Edges: g.EdgeCount()}, nil
}

// ImportGraphCommand replaces the session graph with imported rows. With
// AllBodies set, Rows is ignored and every catalog body is loaded.
type ImportGraphCommand struct {
	Rows      []Row
	AllBodies bool
}

// ImportGraphResponse carries the per-row diagnostics of an import
type ImportGraphResponse struct {
	Diagnostics []Diagnostic
	Nodes       int
	Edges       int
}

// ImportGraphHandler handles the ImportGraph command
type ImportGraphHandler struct {
	session *Session
}

// NewImportGraphHandler creates a new ImportGraphHandler
func NewImportGraphHandler(s *Session) *ImportGraphHandler {
	return &ImportGraphHandler{session: s}
}

// Handle executes the ImportGraph command
func (h *ImportGraphHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ImportGraphCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportGraphCommand")
	}

	var diagnostics []Diagnostic
	if cmd.AllBodies {
		diagnostics = h.session.LoadAll(ctx)
	} else {
		diagnostics = h.session.Import(ctx, cmd.Rows)
	}

	g := h.session.Graph()
	return &ImportGraphResponse{
		Diagnostics: diagnostics,
		Nodes:       g.NodeCount(),
		Edges:       g.EdgeCount(),
	}, nil
}

// TravelCommand proposes a trip and walks it when no confirmation is needed
type TravelCommand struct {
	Plan navigation.TravelPlan
}

// TravelResponse holds either a finished result or a proposal awaiting an
// answer through ResolveTravelCommand
type TravelResponse struct {
	Proposal *navigation.Proposal
	Result   *navigation.TravelResult
}

// AwaitingConfirmation reports whether the trip needs an answer
func (r *TravelResponse) AwaitingConfirmation() bool {
	return r.Result == nil && r.Proposal != nil && r.Proposal.NeedsConfirmation()
}

// TravelHandler handles the Travel command
type TravelHandler struct {
	session *Session
}

// NewTravelHandler creates a new TravelHandler
func NewTravelHandler(s *Session) *TravelHandler {
	return &TravelHandler{session: s}
}

// Handle executes the Travel command
func (h *TravelHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TravelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TravelCommand")
	}

	simulator := h.session.Simulator()
	proposal, err := simulator.Propose(ctx, cmd.Plan)
	if err != nil {
		return nil, err
	}
	if proposal.NeedsConfirmation() {
		return &TravelResponse{Proposal: proposal}, nil
	}

	result, err := simulator.Execute(ctx, proposal)
	if err != nil {
		return nil, err
	}
	return &TravelResponse{Proposal: proposal, Result: result}, nil
}

// ResolveTravelCommand answers a pending confirmation
type ResolveTravelCommand struct {
	Token    string
	Accepted bool
}

// ResolveTravelHandler handles the ResolveTravel command
type ResolveTravelHandler struct {
	session *Session
}

// NewResolveTravelHandler creates a new ResolveTravelHandler
func NewResolveTravelHandler(s *Session) *ResolveTravelHandler {
	return &ResolveTravelHandler{session: s}
}

// Handle executes the ResolveTravel command
func (h *ResolveTravelHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ResolveTravelCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResolveTravelCommand")
	}

	result, err := h.session.Simulator().Resolve(ctx, cmd.Token, cmd.Accepted)
	if err != nil {
		return nil, err
	}
	return &TravelResponse{Result: result}, nil
}
