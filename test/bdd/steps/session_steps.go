package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starroute-go/internal/application/common"
	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/analysis"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// sessionContext drives one in-memory session through the mediator, the
// way the CLI does
type sessionContext struct {
	ctx      context.Context
	session  *session.Session
	mediator common.Mediator

	err         error
	diagnostics []session.Diagnostic
	travel      *session.TravelResponse
	path        routing.Path
	info        analysis.GraphInfo
}

func (sc *sessionContext) reset() {
	sc.ctx = context.Background()
	sc.session = nil
	sc.mediator = nil
	sc.err = nil
	sc.diagnostics = nil
	sc.travel = nil
	sc.path = routing.Path{}
	sc.info = analysis.GraphInfo{}
}

func (sc *sessionContext) open() error {
	sc.session = session.New(catalog.Builtin())
	sc.mediator = common.NewMediator(common.LoggingBehavior)
	return session.RegisterHandlers(sc.mediator, sc.session)
}

// Given steps

func (sc *sessionContext) anEmptySessionGraph() error {
	return sc.open()
}

func (sc *sessionContext) aSessionGraphWithBodies(list string) error {
	if err := sc.open(); err != nil {
		return err
	}
	for _, body := range splitList(list) {
		if _, err := sc.mediator.Send(sc.ctx, &session.AddBodyCommand{Body: body}); err != nil {
			return fmt.Errorf("failed to add %s: %w", body, err)
		}
	}
	return nil
}

// When steps

func (sc *sessionContext) iAddTheBody(body string) error {
	_, sc.err = sc.mediator.Send(sc.ctx, &session.AddBodyCommand{Body: body})
	return nil
}

func (sc *sessionContext) iRemoveTheBody(body string) error {
	_, sc.err = sc.mediator.Send(sc.ctx, &session.RemoveBodyCommand{Body: body})
	return nil
}

func (sc *sessionContext) iImportTheRows(table *godog.Table) error {
	var rows []session.Row
	for i, tableRow := range table.Rows {
		if i == 0 {
			continue
		}
		line, err := strconv.Atoi(tableRow.Cells[0].Value)
		if err != nil {
			return fmt.Errorf("invalid line %q: %w", tableRow.Cells[0].Value, err)
		}
		rows = append(rows, session.Row{
			Line:      line,
			Body:      tableRow.Cells[1].Value,
			Neighbors: strings.Split(tableRow.Cells[2].Value, ","),
		})
	}

	resp, err := sc.mediator.Send(sc.ctx, &session.ImportGraphCommand{Rows: rows})
	if err != nil {
		return err
	}
	sc.diagnostics = resp.(*session.ImportGraphResponse).Diagnostics
	return nil
}

// Then steps

func (sc *sessionContext) theGraphShouldHaveBodiesAndEdges(nodes, edges int) error {
	g := sc.session.Graph()
	if g.NodeCount() != nodes || g.EdgeCount() != edges {
		return fmt.Errorf("expected %d bodies and %d edges, got %d and %d", nodes, edges, g.NodeCount(), g.EdgeCount())
	}
	return nil
}

func (sc *sessionContext) theEdgeBetweenShouldWeigh(a, b string, weight float64) error {
	got, ok := sc.session.Graph().Weight(a, b)
	if !ok {
		return fmt.Errorf("no edge between %s and %s", a, b)
	}
	if got != weight {
		return fmt.Errorf("expected weight %.0f, got %.0f", weight, got)
	}
	return nil
}

func (sc *sessionContext) theLastGraphOperationShouldFailWithAStateError() error {
	if sc.err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	var stateErr *shared.StateError
	if !errors.As(sc.err, &stateErr) {
		return fmt.Errorf("expected a state error, got %T: %v", sc.err, sc.err)
	}
	return nil
}

func (sc *sessionContext) theBodyShouldNotBeInTheGraph(body string) error {
	if sc.session.Graph().HasNode(body) {
		return fmt.Errorf("expected %s to be absent", body)
	}
	return nil
}

func (sc *sessionContext) theImportShouldReportDiagnostics(count int) error {
	if len(sc.diagnostics) != count {
		return fmt.Errorf("expected %d diagnostics, got %d: %v", count, len(sc.diagnostics), sc.diagnostics)
	}
	return nil
}

func (sc *sessionContext) thereShouldBeADiagnosticOnLine(line int) error {
	for _, d := range sc.diagnostics {
		if d.Line == line {
			return nil
		}
	}
	return fmt.Errorf("no diagnostic on line %d: %v", line, sc.diagnostics)
}

func splitList(list string) []string {
	var out []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// InitializeSessionScenario registers the graph, path, travel and analysis
// steps over one shared session
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	sc := &sessionContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty session graph$`, sc.anEmptySessionGraph)
	ctx.Step(`^a session graph with bodies "([^"]*)"$`, sc.aSessionGraphWithBodies)

	// When steps
	ctx.Step(`^I add the body "([^"]*)"$`, sc.iAddTheBody)
	ctx.Step(`^I remove the body "([^"]*)"$`, sc.iRemoveTheBody)
	ctx.Step(`^I import the rows:$`, sc.iImportTheRows)

	// Then steps
	ctx.Step(`^the graph should have (\d+) bodies and (\d+) edges$`, sc.theGraphShouldHaveBodiesAndEdges)
	ctx.Step(`^the edge between "([^"]*)" and "([^"]*)" should weigh (\d+)$`, sc.theEdgeBetweenShouldWeigh)
	ctx.Step(`^the last graph operation should fail with a state error$`, sc.theLastGraphOperationShouldFailWithAStateError)
	ctx.Step(`^the body "([^"]*)" should not be in the graph$`, sc.theBodyShouldNotBeInTheGraph)
	ctx.Step(`^the import should report (\d+) diagnostics$`, sc.theImportShouldReportDiagnostics)
	ctx.Step(`^there should be a diagnostic on line (\d+)$`, sc.thereShouldBeADiagnosticOnLine)

	registerPathSteps(ctx, sc)
	registerTravelSteps(ctx, sc)
	registerAnalysisSteps(ctx, sc)
}
