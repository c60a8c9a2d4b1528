package steps

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starroute-go/internal/application/session"
)

func (sc *sessionContext) iAskForTheShortestPath(from, to string) error {
	return sc.askPath(from, "", to)
}

func (sc *sessionContext) iAskForTheShortestPathVia(from, to, via string) error {
	return sc.askPath(from, via, to)
}

func (sc *sessionContext) askPath(from, via, to string) error {
	resp, err := sc.mediator.Send(sc.ctx, &session.ShortestPathQuery{Source: from, Stopover: via, Target: to})
	sc.err = err
	if err == nil {
		sc.path = resp.(*session.ShortestPathResponse).Path
	}
	return nil
}

func (sc *sessionContext) thePathShouldBe(expected string) error {
	if sc.err != nil {
		return fmt.Errorf("path query failed: %w", sc.err)
	}
	got := strings.Join(sc.path.Nodes, ", ")
	if got != expected {
		return fmt.Errorf("expected path %q, got %q", expected, got)
	}
	return nil
}

func (sc *sessionContext) thePathCostShouldBe(cost float64) error {
	if sc.err != nil {
		return fmt.Errorf("path query failed: %w", sc.err)
	}
	if sc.path.Cost != cost {
		return fmt.Errorf("expected cost %.0f, got %.0f", cost, sc.path.Cost)
	}
	return nil
}

func (sc *sessionContext) thePathQueryShouldFail() error {
	if sc.err == nil {
		return fmt.Errorf("expected the path query to fail, got %v", sc.path.Nodes)
	}
	return nil
}

func registerPathSteps(ctx *godog.ScenarioContext, sc *sessionContext) {
	ctx.Step(`^I ask for the shortest path from "([^"]*)" to "([^"]*)"$`, sc.iAskForTheShortestPath)
	ctx.Step(`^I ask for the shortest path from "([^"]*)" to "([^"]*)" via "([^"]*)"$`, sc.iAskForTheShortestPathVia)
	ctx.Step(`^the path should be "([^"]*)"$`, sc.thePathShouldBe)
	ctx.Step(`^the path cost should be (\d+)$`, sc.thePathCostShouldBe)
	ctx.Step(`^the path query should fail$`, sc.thePathQueryShouldFail)
}
