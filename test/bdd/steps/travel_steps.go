package steps

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// When steps

func (sc *sessionContext) iTravel(from, to, month string, fuel float64) error {
	m, err := shared.ParseMonth(month)
	if err != nil {
		return err
	}
	plan, err := navigation.NewTravelPlan(from, to, navigation.NoStopover, m, fuel)
	if err != nil {
		return err
	}

	resp, err := sc.mediator.Send(sc.ctx, &session.TravelCommand{Plan: plan})
	if err != nil {
		return err
	}
	sc.travel = resp.(*session.TravelResponse)
	return nil
}

func (sc *sessionContext) iAcceptTheConfirmation() error {
	return sc.answer(true)
}

func (sc *sessionContext) iDeclineTheConfirmation() error {
	return sc.answer(false)
}

func (sc *sessionContext) answer(accepted bool) error {
	if sc.travel == nil || !sc.travel.AwaitingConfirmation() {
		return fmt.Errorf("no trip is awaiting confirmation")
	}
	resp, err := sc.mediator.Send(sc.ctx, &session.ResolveTravelCommand{
		Token:    sc.travel.Proposal.Confirmation.Token,
		Accepted: accepted,
	})
	if err != nil {
		return err
	}
	sc.travel = resp.(*session.TravelResponse)
	return nil
}

// Then steps

func (sc *sessionContext) result() (*navigation.TravelResult, error) {
	if sc.travel == nil {
		return nil, fmt.Errorf("no trip was simulated")
	}
	if sc.travel.Result == nil {
		return nil, fmt.Errorf("trip is still awaiting confirmation")
	}
	return sc.travel.Result, nil
}

func (sc *sessionContext) theTripShouldAwaitConfirmation() error {
	if sc.travel == nil || !sc.travel.AwaitingConfirmation() {
		return fmt.Errorf("expected the trip to await confirmation")
	}
	return nil
}

func (sc *sessionContext) theTripShouldBeCompleted() error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	if !result.Completed() {
		return fmt.Errorf("expected a completed trip, got %s (%s): %v", result.Status, result.Reason, result.Messages)
	}
	return nil
}

func (sc *sessionContext) theTripShouldBeAbortedWithReason(reason string) error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	if result.Status != navigation.TravelStatusAborted || string(result.Reason) != reason {
		return fmt.Errorf("expected aborted with %s, got %s (%s)", reason, result.Status, result.Reason)
	}
	return nil
}

func (sc *sessionContext) theTotalDistanceShouldBe(distance float64) error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	if result.TotalDistance != distance {
		return fmt.Errorf("expected total distance %.0f, got %.0f", distance, result.TotalDistance)
	}
	return nil
}

func (sc *sessionContext) theStartingFuelShouldBe(fuel float64) error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	if result.StartingFuel != fuel {
		return fmt.Errorf("expected starting fuel %.0f, got %.0f", fuel, result.StartingFuel)
	}
	return nil
}

func (sc *sessionContext) theFuelLeftShouldBe(fuel float64) error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	if result.FinalFuel != fuel {
		return fmt.Errorf("expected %.0f fuel left, got %.0f", fuel, result.FinalFuel)
	}
	return nil
}

func (sc *sessionContext) theTripShouldCarryTheWarning(fragment string) error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	for _, effect := range result.Effects {
		if effect.Kind == rules.EffectWarn && strings.Contains(effect.Message, fragment) {
			return nil
		}
	}
	return fmt.Errorf("no warning containing %q in %v", fragment, result.Effects)
}

func (sc *sessionContext) theTripShouldRefuelAt(station string) error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	for _, step := range result.Steps {
		if slices.Contains(step.RefueledAt, station) {
			return nil
		}
	}
	return fmt.Errorf("trip never refuelled at %s", station)
}

func (sc *sessionContext) theTripShouldHaveNoSteps() error {
	result, err := sc.result()
	if err != nil {
		return err
	}
	if len(result.Steps) != 0 {
		return fmt.Errorf("expected no steps, got %d", len(result.Steps))
	}
	return nil
}

func registerTravelSteps(ctx *godog.ScenarioContext, sc *sessionContext) {
	// When steps
	ctx.Step(`^I travel from "([^"]*)" to "([^"]*)" in "([^"]*)" with (\d+) fuel$`, sc.iTravel)
	ctx.Step(`^I accept the confirmation$`, sc.iAcceptTheConfirmation)
	ctx.Step(`^I decline the confirmation$`, sc.iDeclineTheConfirmation)

	// Then steps
	ctx.Step(`^the trip should await confirmation$`, sc.theTripShouldAwaitConfirmation)
	ctx.Step(`^the trip should be completed$`, sc.theTripShouldBeCompleted)
	ctx.Step(`^the trip should be aborted with reason "([^"]*)"$`, sc.theTripShouldBeAbortedWithReason)
	ctx.Step(`^the total distance should be (\d+)$`, sc.theTotalDistanceShouldBe)
	ctx.Step(`^the starting fuel should be (\d+)$`, sc.theStartingFuelShouldBe)
	ctx.Step(`^the fuel left should be (\d+)$`, sc.theFuelLeftShouldBe)
	ctx.Step(`^the trip should carry the warning "([^"]*)"$`, sc.theTripShouldCarryTheWarning)
	ctx.Step(`^the trip should refuel at "([^"]*)"$`, sc.theTripShouldRefuelAt)
	ctx.Step(`^the trip should have no steps$`, sc.theTripShouldHaveNoSteps)
}
