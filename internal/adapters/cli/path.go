package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starroute-go/internal/application/session"
)

// NewPathCommand creates the path command
func NewPathCommand(rt *runtime) *cobra.Command {
	var from, to, via string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Find the shortest route between two bodies",
		Long: `Find the shortest route between two bodies of the session graph.

With --via the route is the shortest path to the stopover followed by the
shortest path from it; the two legs are optimised independently.

Examples:
  starroute path --from Earth --to Jupiter
  starroute path --from Earth --to Jupiter --via Mars`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to flags are required")
			}

			resp, err := rt.app.mediator.Send(cmd.Context(), &session.ShortestPathQuery{
				Source:   from,
				Stopover: via,
				Target:   to,
			})
			if err != nil {
				return err
			}
			renderPath(cmd.OutOrStdout(), resp.(*session.ShortestPathResponse).Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Origin body (required)")
	cmd.Flags().StringVar(&to, "to", "", "Destination body (required)")
	cmd.Flags().StringVar(&via, "via", "", "Optional stopover body (\"none\" for direct)")

	return cmd
}
