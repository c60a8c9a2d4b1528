package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/andrescamacho/starroute-go/internal/application/session"
	"github.com/andrescamacho/starroute-go/internal/domain/analysis"
	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/routing"
	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/domain/system"
)

// renderTravel narrates a trip: rule messages, starting fuel, every hop with
// its refuels, then the outcome
func renderTravel(out io.Writer, result *navigation.TravelResult) {
	plan := result.Plan
	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Trip %s %s %s (%s)",
		plan.Origin, iconArrow, plan.Destination, plan.Month)))

	for _, effect := range result.Effects {
		switch effect.Kind {
		case rules.EffectWarn:
			fmt.Fprintf(out, "%s %s\n", styles.Warning.Render(iconWarning), effect.Message)
		case rules.EffectFuelDelta:
			fmt.Fprintf(out, "%s %s (%+.0f)\n", styles.Muted.Render(iconFuel), effect.Message, effect.Amount)
		}
	}

	if result.Reason == navigation.AbortRuleBlock {
		for _, msg := range result.Messages {
			fmt.Fprintf(out, "%s %s\n", styles.Error.Render(iconError), msg)
		}
		fmt.Fprintln(out, styles.Error.Render("Trip cancelled before departure."))
		return
	}
	if result.Reason == navigation.AbortConfirmationDeclined {
		fmt.Fprintf(out, "%s Trip declined. Fuel after rule adjustments: %.0f units\n",
			styles.Warning.Render(iconWarning), result.FinalFuel)
		return
	}

	fmt.Fprintf(out, "Initial fuel: %.0f units\n", result.StartingFuel)
	for _, step := range result.Steps {
		if step.Refueled {
			fmt.Fprintf(out, "  %s Refueled at %s. Fuel: %.0f units\n",
				styles.Station.Render(iconFuel), strings.Join(step.RefueledAt, ", "), step.FuelAfter+step.Distance)
		}
		line := fmt.Sprintf("  %s %s %s: %.0f km. Fuel left: %.0f units",
			step.From, iconArrow, step.To, step.Distance, step.FuelAfter)
		if step.WeightMissing {
			line += styles.Muted.Render(" (distance unknown, counted as 0)")
		}
		fmt.Fprintln(out, line)
	}

	if result.Reason == navigation.AbortInsufficientFuel {
		fmt.Fprintln(out, styles.Error.Render(iconError+" Trip interrupted: out of fuel."))
		return
	}

	fmt.Fprintln(out, styles.Success.Render(iconOK+" Trip completed!"))
	fmt.Fprintf(out, "Total distance: %.0f km\n", result.TotalDistance)
	fmt.Fprintf(out, "Fuel left: %.0f units\n", result.FinalFuel)
}

func renderPath(out io.Writer, path routing.Path) {
	fmt.Fprintf(out, "%s\n", strings.Join(path.Nodes, " "+iconArrow+" "))
	fmt.Fprintf(out, "%s %.0f\n", styles.Label.Render("Cost:"), path.Cost)
}

func renderDiagnostics(out io.Writer, diagnostics []session.Diagnostic) {
	for _, d := range diagnostics {
		fmt.Fprintf(out, "%s %s\n", styles.Warning.Render(iconWarning), d.Error())
	}
}

func renderBodies(out io.Writer, present, missing []shared.Body, edges []system.Edge) {
	fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Graph: %d bodies, %d edges", len(present), len(edges))))
	for _, body := range present {
		name := body.ID
		if body.IsStation() {
			name = styles.Station.Render(name)
		}
		fmt.Fprintf(out, "  %s\n", name)
	}
	if len(edges) > 0 {
		fmt.Fprintln(out, styles.Label.Render("Edges:"))
		for _, e := range edges {
			fmt.Fprintf(out, "  %s - %s: %.0f\n", e.A, e.B, e.Weight)
		}
	}
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, body := range missing {
			names[i] = body.ID
		}
		fmt.Fprintf(out, "%s %s\n", styles.Muted.Render("Not in graph:"), strings.Join(names, ", "))
	}
}

func renderInfo(out io.Writer, info analysis.GraphInfo) {
	yesNo := func(v bool) string {
		if v {
			return styles.Success.Render("yes")
		}
		return styles.Muted.Render("no")
	}

	fmt.Fprintln(out, styles.Title.Render("Graph information"))
	fmt.Fprintf(out, "  Nodes:              %d\n", info.Nodes)
	fmt.Fprintf(out, "  Edges:              %d\n", info.Edges)
	fmt.Fprintf(out, "  Connected:          %s (%d components)\n", yesNo(info.Connected), info.Components)
	fmt.Fprintf(out, "  Eulerian:           %s\n", info.Euler)
	fmt.Fprintf(out, "  Self loops:         %d\n", info.SelfLoops)
	fmt.Fprintf(out, "  Has cycle:          %s\n", yesNo(info.HasCycle))
	fmt.Fprintf(out, "  Hamiltonian cycle:  %s\n", yesNo(info.HasHamiltonianCycle))
	fmt.Fprintf(out, "  Simple:             %s\n", yesNo(info.Simple))
	fmt.Fprintf(out, "  Null:               %s\n", yesNo(info.Null))
	fmt.Fprintf(out, "  Trivial:            %s\n", yesNo(info.Trivial))
	fmt.Fprintf(out, "  Regular:            %s\n", yesNo(info.Regular))
	if len(info.Degrees) > 0 {
		fmt.Fprintln(out, styles.Label.Render("Degrees:"))
		for _, d := range info.Degrees {
			fmt.Fprintf(out, "  %-12s %d\n", d.Node, d.Degree)
		}
	}
}

func renderMatrix(out io.Writer, m *analysis.AdjacencyMatrix) {
	if m.Size() == 0 {
		fmt.Fprintln(out, styles.Muted.Render("(empty graph)"))
		return
	}

	width := 8
	for _, id := range m.Order {
		if len(id)+1 > width {
			width = len(id) + 1
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width))
	for _, id := range m.Order {
		fmt.Fprintf(&b, "%*s", width, id)
	}
	b.WriteString("\n")
	for i, row := range m.Rows() {
		fmt.Fprintf(&b, "%-*s", width, m.Order[i])
		for _, v := range row {
			fmt.Fprintf(&b, "%*.0f", width, v)
		}
		b.WriteString("\n")
	}
	fmt.Fprint(out, b.String())
}

// renderJSON prints v as indented JSON
func renderJSON(out io.Writer, v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(out, string(bytes))
	return nil
}
