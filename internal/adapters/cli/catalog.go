package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show or seed the distance catalog",
		Long: `Show or seed the distance catalog.

The catalog is the fixed table of recognised bodies and the distances between
them. It comes from the compiled-in table (catalog.source=builtin) or from the
bodies and distances tables of the configured database (catalog.source=database).

Examples:
  starroute catalog list
  SR_DATABASE_PATH=catalog.db starroute catalog seed`,
	}

	cmd.AddCommand(newCatalogListCommand(rt))
	cmd.AddCommand(newCatalogSeedCommand(rt))

	return cmd
}

func newCatalogListCommand(rt *runtime) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recognised bodies and catalog distances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.openSession(cmd.Context()); err != nil {
				return err
			}
			distances := rt.app.session.Catalog()
			out := cmd.OutOrStdout()

			if asJSON {
				return renderJSON(out, map[string]interface{}{
					"bodies":    distances.Bodies(),
					"distances": distances.Distances(),
				})
			}

			fmt.Fprintln(out, styles.Title.Render(fmt.Sprintf("Catalog (%s): %d bodies, %d distances",
				rt.app.cfg.Catalog.Source, len(distances.Bodies()), distances.Len())))
			for _, body := range distances.Bodies() {
				fmt.Fprintf(out, "  %-10s %s\n", body.ID, styles.Muted.Render(string(body.Kind)))
			}
			fmt.Fprintln(out, styles.Label.Render("Distances:"))
			for _, d := range distances.Distances() {
				fmt.Fprintf(out, "  %s - %s: %.0f\n", d.A, d.B, d.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog as JSON")
	return cmd
}

func newCatalogSeedCommand(rt *runtime) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in catalog into the configured database",
		Long: `Write the built-in catalog into the configured database.

Existing rows are kept unless --force is given, in which case every built-in
body and distance is upserted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, closeDB, err := openCatalogRepository(rt.app.cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			builtin := catalog.Builtin()
			if force {
				if err := repo.Save(ctx, builtin); err != nil {
					return err
				}
			} else {
				seeded, err := repo.SeedIfEmpty(ctx, builtin)
				if err != nil {
					return err
				}
				if !seeded {
					fmt.Fprintln(cmd.OutOrStdout(), styles.Muted.Render("Catalog already present; use --force to overwrite."))
				}
			}

			bodies, distances, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Catalog database holds %d bodies and %d distances\n",
				styles.Success.Render(iconOK), bodies, distances)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Upsert the built-in rows even if the catalog is not empty")
	return cmd
}
