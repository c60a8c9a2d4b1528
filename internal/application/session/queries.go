package session

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starroute-go/internal/application/common"
	"github.com/andrescamacho/starroute-go/internal/domain/analysis"
	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// ListBodiesQuery lists the graph's bodies, its edges and the catalog
// bodies still missing from it
type ListBodiesQuery struct{}

// ListBodiesResponse is the graph listing
type ListBodiesResponse struct {
	Present []shared.Body
	Missing []shared.Body
	Edges   []system.Edge
}

// ListBodiesHandler handles the ListBodies query
type ListBodiesHandler struct {
	session *Session
}

// NewListBodiesHandler creates a new ListBodiesHandler
func NewListBodiesHandler(s *Session) *ListBodiesHandler {
	return &ListBodiesHandler{session: s}
}

// Handle executes the ListBodies query
func (h *ListBodiesHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*ListBodiesQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListBodiesQuery")
	}

	return &ListBodiesResponse{
		Present: h.session.PresentBodies(),
		Missing: h.session.MissingBodies(),
		Edges:   h.session.Edges(),
	}, nil
}

// ShortestPathQuery asks for the cheapest route, optionally via a stopover
type ShortestPathQuery struct {
	Source   string
	Stopover string
	Target   string
}

// ShortestPathResponse carries the route found
type ShortestPathResponse struct {
	Path routing.Path
}

// ShortestPathHandler handles the ShortestPath query
type ShortestPathHandler struct {
	session *Session
}

// NewShortestPathHandler creates a new ShortestPathHandler
func NewShortestPathHandler(s *Session) *ShortestPathHandler {
	return &ShortestPathHandler{session: s}
}

// Handle executes the ShortestPath query
func (h *ShortestPathHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ShortestPathQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ShortestPathQuery")
	}

	path, err := h.session.ShortestPath(query.Source, query.Stopover, query.Target)
	if err != nil {
		return nil, err
	}
	return &ShortestPathResponse{Path: path}, nil
}

// GraphInfoQuery asks for the structural classification of the graph
type GraphInfoQuery struct{}

// GraphInfoResponse carries the classification
type GraphInfoResponse struct {
	Info analysis.GraphInfo
}

// GraphInfoHandler handles the GraphInfo query
type GraphInfoHandler struct {
	session *Session
}

// NewGraphInfoHandler creates a new GraphInfoHandler
func NewGraphInfoHandler(s *Session) *GraphInfoHandler {
	return &GraphInfoHandler{session: s}
}

// Handle executes the GraphInfo query
func (h *GraphInfoHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GraphInfoQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GraphInfoQuery")
	}
	return &GraphInfoResponse{Info: h.session.Analyzer().Info()}, nil
}

// AdjacencyMatrixQuery asks for the weighted adjacency matrix. An empty
// Order uses the sorted node identifiers.
type AdjacencyMatrixQuery struct {
	Order []string
}

// AdjacencyMatrixResponse carries the matrix
type AdjacencyMatrixResponse struct {
	Matrix *analysis.AdjacencyMatrix
}

// AdjacencyMatrixHandler handles the AdjacencyMatrix query
type AdjacencyMatrixHandler struct {
	session *Session
}

// NewAdjacencyMatrixHandler creates a new AdjacencyMatrixHandler
func NewAdjacencyMatrixHandler(s *Session) *AdjacencyMatrixHandler {
	return &AdjacencyMatrixHandler{session: s}
}

// Handle executes the AdjacencyMatrix query
func (h *AdjacencyMatrixHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*AdjacencyMatrixQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdjacencyMatrixQuery")
	}

	matrix, err := h.session.Analyzer().AdjacencyMatrix(query.Order...)
	if err != nil {
		return nil, err
	}
	return &AdjacencyMatrixResponse{Matrix: matrix}, nil
}

// RegisterHandlers wires every session command and query into m
func RegisterHandlers(m common.Mediator, s *Session) error {
	registrations := []error{
		common.RegisterHandler[*AddBodyCommand](m, NewAddBodyHandler(s)),
		common.RegisterHandler[*RemoveBodyCommand](m, NewRemoveBodyHandler(s)),
		common.RegisterHandler[*ImportGraphCommand](m, NewImportGraphHandler(s)),
		common.RegisterHandler[*TravelCommand](m, NewTravelHandler(s)),
		common.RegisterHandler[*ResolveTravelCommand](m, NewResolveTravelHandler(s)),
		common.RegisterHandler[*ListBodiesQuery](m, NewListBodiesHandler(s)),
		common.RegisterHandler[*ShortestPathQuery](m, NewShortestPathHandler(s)),
		common.RegisterHandler[*GraphInfoQuery](m, NewGraphInfoHandler(s)),
		common.RegisterHandler[*AdjacencyMatrixQuery](m, NewAdjacencyMatrixHandler(s)),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register session handler: %w", err)
		}
	}
	return nil
}
