package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starroute-go/internal/domain/shared"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Starroute configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SR_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default fuel and month for travel) are stored in
~/.starroute/config.json

Examples:
  starroute config show
  starroute config set-fuel 1500
  starroute config set-month june
  starroute config clear`,
	}

	cmd.AddCommand(newConfigShowCommand(rt))
	cmd.AddCommand(newConfigSetFuelCommand(rt))
	cmd.AddCommand(newConfigSetMonthCommand(rt))
	cmd.AddCommand(newConfigClearCommand(rt))

	return cmd
}

func newConfigShowCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.app.cfg
			out := cmd.OutOrStdout()

			userCfg, err := rt.app.user.Load()
			if err != nil {
				return err
			}

			fmt.Fprintln(out, styles.Title.Render("Starroute Configuration"))

			fmt.Fprintln(out, styles.Label.Render("User Preferences:"))
			fmt.Fprintf(out, "  Config file:      %s\n", rt.app.user.GetConfigPath())
			if userCfg.DefaultFuel != nil {
				fmt.Fprintf(out, "  Default fuel:     %.0f\n", *userCfg.DefaultFuel)
			} else {
				fmt.Fprintf(out, "  Default fuel:     (not set)\n")
			}
			if userCfg.DefaultMonth != "" {
				fmt.Fprintf(out, "  Default month:    %s\n", userCfg.DefaultMonth)
			} else {
				fmt.Fprintf(out, "  Default month:    (not set)\n")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, styles.Label.Render("Catalog:"))
			fmt.Fprintf(out, "  Source:           %s\n", cfg.Catalog.Source)
			fmt.Fprintf(out, "  Seed:             %t\n", cfg.Catalog.Seed)

			fmt.Fprintln(out)
			fmt.Fprintln(out, styles.Label.Render("Database:"))
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == config.DatabaseSQLite:
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, styles.Label.Render("Travel:"))
			fmt.Fprintf(out, "  Refuel amount:    %.0f\n", cfg.Travel.RefuelAmount)
			fmt.Fprintf(out, "  Default fuel:     %.0f\n", cfg.Travel.DefaultFuel)
			fmt.Fprintf(out, "  Confirm:          %s\n", cfg.Travel.Confirm)

			fmt.Fprintln(out)
			fmt.Fprintln(out, styles.Label.Render("Logging:"))
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out)
			fmt.Fprintln(out, styles.Label.Render("Metrics:"))
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Fprintf(out, "  Textfile:         %s\n", cfg.Metrics.Textfile)
			}

			return nil
		},
	}
}

func newConfigSetFuelCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set-fuel <units>",
		Short: "Set the default initial fuel for travel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fuel, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return shared.NewValidationError("fuel", fmt.Sprintf("not a number: %q", args[0]))
			}
			if err := rt.app.user.SetDefaultFuel(fuel); err != nil {
				return fmt.Errorf("failed to set default fuel: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Default fuel set to %.0f\n", styles.Success.Render(iconOK), fuel)
			return nil
		},
	}
}

func newConfigSetMonthCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "set-month <month>",
		Short: "Set the default travel month (1-12 or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := shared.ParseMonth(args[0])
			if err != nil {
				return err
			}
			if err := rt.app.user.SetDefaultMonth(month.String()); err != nil {
				return fmt.Errorf("failed to set default month: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Default month set to %s\n", styles.Success.Render(iconOK), month)
			return nil
		},
	}
}

func newConfigClearCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear stored travel defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.app.user.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Travel defaults cleared\n", styles.Success.Render(iconOK))
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
