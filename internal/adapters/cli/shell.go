package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellPrompt = "starroute> "

// NewShellCommand creates the interactive session shell
func NewShellCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the graph and plan trips in one interactive session",
		Long: `Start an interactive session over one in-memory graph.

Each line is a starroute command without the program name, for example
'graph add Saturn' or 'travel --from Earth --to Saturn --month july'. Graph
edits persist until the shell exits. Type 'help' for the command list and
'exit' or 'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := rt.reader(cmd)
			out := cmd.OutOrStdout()
			interactive := isTerminal(cmd.InOrStdin())

			if interactive {
				fmt.Fprintln(out, styles.Box.Render(fmt.Sprintf("Starroute session: %d bodies, %d edges. Type 'help' or 'exit'.",
					rt.app.session.Graph().NodeCount(), rt.app.session.Graph().EdgeCount())))
			}

			for {
				if interactive {
					fmt.Fprint(out, styles.Title.Render(shellPrompt))
				}
				line, err := in.ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("failed to read input: %w", err)
				}

				fields := strings.Fields(line)
				if len(fields) > 0 {
					if fields[0] == "exit" || fields[0] == "quit" {
						return nil
					}
					runShellLine(cmd, rt, fields)
				}

				if errors.Is(err, io.EOF) {
					return nil
				}
			}
		},
	}
}

// runShellLine executes one line against a fresh command tree that shares
// the open session. Errors are printed, never returned.
func runShellLine(parent *cobra.Command, rt *runtime, args []string) {
	line := &cobra.Command{
		Use:           "starroute",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	for _, cmd := range sessionCommands(rt) {
		line.AddCommand(cmd)
	}
	line.SetArgs(args)
	line.SetIn(parent.InOrStdin())
	line.SetOut(parent.OutOrStdout())
	line.SetErr(parent.ErrOrStderr())

	if err := line.ExecuteContext(parent.Context()); err != nil {
		fmt.Fprintf(parent.ErrOrStderr(), "%s %v\n", styles.Error.Render(iconError), err)
	}
}
