package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrescamacho/starroute-go/internal/application/session"
)

// NewAnalyzeCommand creates the analyze command with subcommands
func NewAnalyzeCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Structural queries over the session graph",
		Long: `Structural queries over the session graph.

info reports connectivity, Eulerian classification, cycles, simplicity,
regularity and per-body degrees. matrix prints the weighted adjacency matrix.

Examples:
  starroute analyze info
  starroute analyze matrix --order Earth,Mars,Jupiter --graph routes.csv`,
	}

	cmd.AddCommand(newAnalyzeInfoCommand(rt))
	cmd.AddCommand(newAnalyzeMatrixCommand(rt))

	return cmd
}

func newAnalyzeInfoCommand(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Classify the graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.app.mediator.Send(cmd.Context(), &session.GraphInfoQuery{})
			if err != nil {
				return err
			}
			info := resp.(*session.GraphInfoResponse).Info
			if asJSON {
				return renderJSON(cmd.OutOrStdout(), info)
			}
			renderInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the classification as JSON")
	return cmd
}

func newAnalyzeMatrixCommand(rt *runtime) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the weighted adjacency matrix",
		Long: `Print the weighted adjacency matrix of the session graph.

Rows and columns follow --order when given; it must list every body in the
graph exactly once. Otherwise bodies are sorted by name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rt.app.mediator.Send(cmd.Context(), &session.AdjacencyMatrixQuery{Order: order})
			if err != nil {
				return err
			}
			renderMatrix(cmd.OutOrStdout(), resp.(*session.AdjacencyMatrixResponse).Matrix)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "Comma separated row order")
	return cmd
}
