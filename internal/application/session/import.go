package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-logr/logr"

	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// Row is one import record: a body and the neighbours it should connect to
type Row struct {
	Line      int
	Body      string
	Neighbors []string
}

// Diagnostic reports a problem with one import row. Diagnostics never abort
// an import.
type Diagnostic struct {
	Line int
	Body string
	Err  error
}

func (d Diagnostic) Error() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %v", d.Line, d.Err)
	}
	return d.Err.Error()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Kind classifies the diagnostic as "validation", "state" or "other"
func (d Diagnostic) Kind() string {
	var validationErr *shared.ValidationError
	var stateErr *shared.StateError
	switch {
	case errors.As(d.Err, &validationErr):
		return "validation"
	case errors.As(d.Err, &stateErr):
		return "state"
	default:
		return "other"
	}
}

type candidate struct {
	id   string
	line int
}

// Import replaces the graph with the bodies named by rows. Each row's body
// and its valid neighbours become candidates, and a row counts as accepted
// once its body is a candidate, even when some neighbours were rejected; candidates are added in row
// order, and those that would be isolated are retried until no further body
// can be placed. Invalid rows and bodies left isolated are reported as
// diagnostics.
func (s *Session) Import(ctx context.Context, rows []Row) []Diagnostic {
	log := logr.FromContextOrDiscard(ctx)
	s.Reset(ctx)

	var diagnostics []Diagnostic
	var candidates []candidate
	seen := make(map[string]bool)
	accepted := 0

	enqueue := func(id string, line int) {
		if !seen[id] {
			seen[id] = true
			candidates = append(candidates, candidate{id: id, line: line})
		}
	}

	for _, row := range rows {
		rowDiagnostics := s.validateRow(row)
		diagnostics = append(diagnostics, rowDiagnostics...)

		body := strings.TrimSpace(row.Body)
		if !s.catalog.IsKnown(body) {
			continue
		}
		accepted++
		enqueue(body, row.Line)
		for _, neighbor := range row.Neighbors {
			neighbor = strings.TrimSpace(neighbor)
			if _, ok := s.catalog.Lookup(body, neighbor); ok {
				enqueue(neighbor, row.Line)
			}
		}
	}

	pending := candidates
	for len(pending) > 0 {
		var deferred []candidate
		for _, c := range pending {
			if _, err := s.store.AddNode(c.id); err != nil {
				deferred = append(deferred, c)
			}
		}
		if len(deferred) == len(pending) {
			break
		}
		pending = deferred
	}
	for _, c := range pending {
		if !s.store.HasNode(c.id) {
			diagnostics = append(diagnostics, Diagnostic{
				Line: c.line,
				Body: c.id,
				Err:  shared.NewIsolatedBodyError(c.id),
			})
		}
	}

	slices.SortStableFunc(diagnostics, func(a, b Diagnostic) int {
		return a.Line - b.Line
	})

	kinds := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		kinds[i] = d.Kind()
	}
	s.metrics.RecordImport(accepted, len(rows)-accepted, kinds)
	s.metrics.RecordSize(s.store.NodeCount(), s.store.EdgeCount())

	log.Info("graph imported",
		"rows", len(rows),
		"accepted", accepted,
		"nodes", s.store.NodeCount(),
		"edges", s.store.EdgeCount(),
		"diagnostics", len(diagnostics))

	return diagnostics
}

func (s *Session) validateRow(row Row) []Diagnostic {
	body := strings.TrimSpace(row.Body)
	if body == "" {
		return []Diagnostic{{Line: row.Line, Err: shared.NewValidationError("body", "body identifier is empty")}}
	}
	if !s.catalog.IsKnown(body) {
		return []Diagnostic{{Line: row.Line, Body: body, Err: shared.NewUnknownBodyError("body", body)}}
	}

	var diagnostics []Diagnostic
	for _, neighbor := range row.Neighbors {
		neighbor = strings.TrimSpace(neighbor)
		switch {
		case neighbor == "":
			continue
		case !s.catalog.IsKnown(neighbor):
			diagnostics = append(diagnostics, Diagnostic{
				Line: row.Line,
				Body: body,
				Err:  shared.NewUnknownBodyError("neighbor", neighbor),
			})
		default:
			if _, ok := s.catalog.Lookup(body, neighbor); !ok {
				diagnostics = append(diagnostics, Diagnostic{
					Line: row.Line,
					Body: body,
					Err: shared.NewValidationError("neighbor",
						fmt.Sprintf("no catalog distance between %s and %s", body, neighbor)),
				})
			}
		}
	}
	return diagnostics
}
