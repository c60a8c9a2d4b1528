package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starroute-go/internal/application/session"
)

func (sc *sessionContext) iAnalyzeTheGraph() error {
	resp, err := sc.mediator.Send(sc.ctx, &session.GraphInfoQuery{})
	if err != nil {
		return err
	}
	sc.info = resp.(*session.GraphInfoResponse).Info
	return nil
}

func (sc *sessionContext) theEulerClassShouldBe(class string) error {
	if string(sc.info.Euler) != class {
		return fmt.Errorf("expected Euler class %s, got %s", class, sc.info.Euler)
	}
	return nil
}

func expectFlag(name string, got, want bool) error {
	if got != want {
		return fmt.Errorf("expected %s to be %t", name, want)
	}
	return nil
}

func registerAnalysisSteps(ctx *godog.ScenarioContext, sc *sessionContext) {
	ctx.Step(`^I analyze the graph$`, sc.iAnalyzeTheGraph)
	ctx.Step(`^the Euler class should be "([^"]*)"$`, sc.theEulerClassShouldBe)

	flags := map[string]func() bool{
		"be connected":             func() bool { return sc.info.Connected },
		"have a cycle":             func() bool { return sc.info.HasCycle },
		"have a Hamiltonian cycle": func() bool { return sc.info.HasHamiltonianCycle },
		"be regular":               func() bool { return sc.info.Regular },
		"be null":                  func() bool { return sc.info.Null },
	}
	ctx.Step(`^the graph should (not )?(be connected|have a cycle|have a Hamiltonian cycle|be regular|be null)$`,
		func(negated, property string) error {
			return expectFlag(property, flags[property](), negated == "")
		})
}
