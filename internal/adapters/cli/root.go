package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// annotationSession marks commands that run against a loaded session graph
const annotationSession = "starroute/session"

// globalOptions are the persistent root flags
type globalOptions struct {
	configPath    string
	graphPath     string
	userConfigDir string
	verbose       bool
}

// runtime is shared by every command of one process
type runtime struct {
	opts *globalOptions
	app  *app
	in   *bufio.Reader
}

func (rt *runtime) reader(cmd *cobra.Command) *bufio.Reader {
	if rt.in == nil {
		rt.in = bufio.NewReader(cmd.InOrStdin())
	}
	return rt.in
}

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd, _ := newRootCommand()
	return rootCmd
}

func newRootCommand() (*cobra.Command, *runtime) {
	rt := &runtime{opts: &globalOptions{}}

	rootCmd := &cobra.Command{
		Use:   "starroute",
		Short: "Starroute - plan interplanetary routes and simulate fuel",
		Long: `Starroute plans routes between the bodies of a small solar system graph,
simulates fuel consumption with once-per-station refueling, and applies the
calendar travel rules (storms, alignments, closures, slingshots).

The session graph lives in memory. One-shot commands load it from --graph, or
with every catalog body when no file is given. Use 'starroute shell' to edit
the graph interactively.

Examples:
  starroute travel --from Earth --to Jupiter --month may --fuel 800
  starroute travel --from Mars --to Neptune --via Station-2 --fuel 500
  starroute path --from Mercury --to Neptune
  starroute graph import routes.csv
  starroute analyze info --graph routes.csv
  starroute shell`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, ctx, err := newApp(cmd.Context(), rt.opts)
			if err != nil {
				return err
			}
			rt.app = a
			cmd.SetContext(ctx)

			if !needsSession(cmd) {
				return nil
			}
			if err := a.openSession(ctx); err != nil {
				return err
			}
			return a.loadGraph(ctx, cmd.ErrOrStderr(), rt.opts.graphPath)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&rt.opts.configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/starroute)")
	rootCmd.PersistentFlags().StringVar(&rt.opts.graphPath, "graph", "",
		"CSV file (body;connections) to load the session graph from")
	rootCmd.PersistentFlags().BoolVarP(&rt.opts.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rt.opts.userConfigDir, "user-config-dir", "",
		"Directory holding the user config (default ~/.starroute)")
	_ = rootCmd.PersistentFlags().MarkHidden("user-config-dir")

	rootCmd.AddCommand(NewConfigCommand(rt))
	rootCmd.AddCommand(NewCatalogCommand(rt))
	for _, cmd := range sessionCommands(rt) {
		cmd.Annotations = map[string]string{annotationSession: "true"}
		rootCmd.AddCommand(cmd)
	}
	shell := NewShellCommand(rt)
	shell.Annotations = map[string]string{annotationSession: "true"}
	rootCmd.AddCommand(shell)

	return rootCmd, rt
}

func needsSession(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSession] != "" {
			return true
		}
	}
	return false
}

// sessionCommands builds the commands that operate on the session graph.
// The shell builds a fresh set for every input line.
func sessionCommands(rt *runtime) []*cobra.Command {
	return []*cobra.Command{
		NewGraphCommand(rt),
		NewPathCommand(rt),
		NewTravelCommand(rt),
		NewAnalyzeCommand(rt),
	}
}

// Run executes the CLI with the given arguments and returns the error the
// command failed with, if any
func Run(ctx context.Context, args []string) error {
	rootCmd, rt := newRootCommand()
	rootCmd.SetArgs(args)

	executed, err := rootCmd.ExecuteContextC(ctx)
	if rt.app != nil {
		name := rootCmd.Name()
		if executed != nil {
			name = executed.CommandPath()
		}
		err = errors.Join(err, rt.app.finish(name, err))
	}
	return err
}

// Execute runs the root command with the process arguments
func Execute() {
	if err := Run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
