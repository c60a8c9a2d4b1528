package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/config"
)

// NewTravelCommand creates the travel command
func NewTravelCommand(rt *runtime) *cobra.Command {
	var (
		from, to, via string
		month         string
		fuel          float64
		yes, no       bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "travel",
		Short: "Simulate a trip with fuel and calendar rules",
		Long: `Simulate a trip along the shortest route.

Calendar rules run first: a closure cancels the trip before any routing,
warnings are shown, bonuses and penalties adjust the starting fuel, and some
destinations ask for confirmation. Every station the route touches refuels
once. The trip aborts when fuel drops below zero.

--month accepts 1-12 or a month name. Without --month or --fuel the defaults
from 'starroute config' are used, then the current month and travel.default_fuel.

Examples:
  starroute travel --from Earth --to Mars --fuel 100
  starroute travel --from Earth --to Saturn --month july --fuel 2000 --yes
  starroute travel --from Mars --to Neptune --via Jupiter --fuel 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to flags are required")
			}
			if yes && no {
				return fmt.Errorf("--yes and --no cannot be used together")
			}

			userCfg, err := rt.app.user.Load()
			if err != nil {
				return err
			}

			travelMonth, err := resolveMonth(month, userCfg.DefaultMonth)
			if err != nil {
				return err
			}
			initialFuel := rt.app.cfg.Travel.DefaultFuel
			if cmd.Flags().Changed("fuel") {
				initialFuel = fuel
			} else if userCfg.DefaultFuel != nil {
				initialFuel = *userCfg.DefaultFuel
			}

			plan, err := navigation.NewTravelPlan(from, to, via, travelMonth, initialFuel)
			if err != nil {
				return err
			}

			mode := rt.app.cfg.Travel.Confirm
			switch {
			case yes:
				mode = config.ConfirmAccept
			case no:
				mode = config.ConfirmDecline
			}
			ask := newConfirmer(mode, rt.reader(cmd), cmd.InOrStdin(), cmd.ErrOrStderr())

			result, err := runTravel(cmd.Context(), rt.app, plan, ask)
			if err != nil {
				return err
			}
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), result)
			}
			renderTravel(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Origin body (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination body (required)")
	cmd.Flags().StringVar(&via, "via", "", "Optional stopover body (\"none\" for direct)")
	cmd.Flags().StringVar(&month, "month", "", "Travel month, 1-12 or name")
	cmd.Flags().Float64Var(&fuel, "fuel", 0, "Initial fuel units")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept rule confirmations")
	cmd.Flags().BoolVar(&no, "no", false, "Decline rule confirmations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// runTravel sends the trip through the mediator and answers a confirmation
// if one is needed
func runTravel(ctx context.Context, a *app, plan navigation.TravelPlan, ask *confirmer) (*navigation.TravelResult, error) {
	resp, err := a.mediator.Send(ctx, &session.TravelCommand{Plan: plan})
	if err != nil {
		return nil, err
	}
	travel := resp.(*session.TravelResponse)
	if !travel.AwaitingConfirmation() {
		return travel.Result, nil
	}

	proposal := travel.Proposal
	accepted, err := ask.Ask(proposal.Confirmation.Messages)
	if err != nil {
		a.session.Simulator().Discard(proposal.Confirmation.Token)
		return nil, err
	}

	resolved, err := a.mediator.Send(ctx, &session.ResolveTravelCommand{
		Token:    proposal.Confirmation.Token,
		Accepted: accepted,
	})
	if err != nil {
		return nil, err
	}
	return resolved.(*session.TravelResponse).Result, nil
}

// resolveMonth picks the flag, then the stored default, then the current
// month
func resolveMonth(flag, stored string) (time.Month, error) {
	switch {
	case flag != "":
		return shared.ParseMonth(flag)
	case stored != "":
		return shared.ParseMonth(stored)
	default:
		return time.Now().Month(), nil
	}
}
