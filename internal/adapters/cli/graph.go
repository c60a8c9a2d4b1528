package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starroute-go/internal/application/session"
)

// NewGraphCommand creates the graph command with subcommands
func NewGraphCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Inspect and edit the session graph",
		Long: `Inspect and edit the session graph.

Edges are never entered by hand: adding a body connects it to every body
already in the graph that the distance catalog has a distance for.

Examples:
  starroute graph list
  starroute graph import routes.csv
  starroute graph add Saturn --graph routes.csv
  starroute graph remove Station-1`,
	}

	cmd.AddCommand(newGraphListCommand(rt))
	cmd.AddCommand(newGraphAddCommand(rt))
	cmd.AddCommand(newGraphRemoveCommand(rt))
	cmd.AddCommand(newGraphImportCommand(rt))

	return cmd
}

func newGraphListCommand(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bodies and edges in the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.app.mediator.Send(cmd.Context(), &session.ListBodiesQuery{})
			if err != nil {
				return err
			}
			listing := resp.(*session.ListBodiesResponse)
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), listing)
			}
			renderBodies(cmd.OutOrStdout(), listing.Present, listing.Missing, listing.Edges)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the listing as JSON")
	return cmd
}

func newGraphAddCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "add <body>...",
		Short: "Add catalog bodies to the graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, body := range args {
				resp, err := rt.app.mediator.Send(cmd.Context(), &session.AddBodyCommand{Body: body})
				if err != nil {
					return fmt.Errorf("failed to add %s: %w", body, err)
				}
				edges := resp.(*session.AddBodyResponse).Edges
				fmt.Fprintf(out, "%s Added %s (%d edges)\n", styles.Success.Render(iconOK), body, len(edges))
				for _, e := range edges {
					fmt.Fprintf(out, "  %s - %s: %.0f\n", e.A, e.B, e.Weight)
				}
			}
			return nil
		},
	}
}

func newGraphRemoveCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <body>...",
		Short: "Remove bodies and their edges from the graph",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, body := range args {
				resp, err := rt.app.mediator.Send(cmd.Context(), &session.RemoveBodyCommand{Body: body})
				if err != nil {
					return fmt.Errorf("failed to remove %s: %w", body, err)
				}
				size := resp.(*session.RemoveBodyResponse)
				fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %s (%d bodies, %d edges left)\n",
					styles.Success.Render(iconOK), body, size.Nodes, size.Edges)
			}
			return nil
		},
	}
}

func newGraphImportCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace the graph with the bodies of a CSV file",
		Long: `Replace the graph with the bodies of a CSV file.

The file uses ';' between columns and a header row naming the "body" and
"connections" columns. Connections are comma separated. Problems with single
rows are reported and the rest of the file is still imported.

Example file:
  body;connections
  Earth;Mars,Jupiter
  Station-2;Mars,Neptune`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := rt.app.loadGraph(cmd.Context(), out, args[0]); err != nil {
				return err
			}
			g := rt.app.session.Graph()
			fmt.Fprintf(out, "%s Imported %s: %d bodies, %d edges\n",
				styles.Success.Render(iconOK), args[0], g.NodeCount(), g.EdgeCount())
			return nil
		},
	}
}
