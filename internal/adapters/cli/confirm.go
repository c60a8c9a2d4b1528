package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/andrescamacho/starroute-go/internal/infrastructure/config"
)

// confirmer answers travel confirmations according to travel.confirm:
// always accept, always decline, or prompt when stdin is a terminal.
// A prompt without a terminal declines.
type confirmer struct {
	mode        string
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newConfirmer(mode string, in *bufio.Reader, source io.Reader, out io.Writer) *confirmer {
	return &confirmer{
		mode:        mode,
		in:          in,
		out:         out,
		interactive: isTerminal(source),
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Ask shows the questions and returns the answer
func (c *confirmer) Ask(questions []string) (bool, error) {
	for _, q := range questions {
		fmt.Fprintf(c.out, "%s %s\n", styles.Warning.Render(iconWarning), q)
	}

	switch c.mode {
	case config.ConfirmAccept:
		fmt.Fprintln(c.out, styles.Muted.Render("Continuing (travel.confirm=accept)."))
		return true, nil
	case config.ConfirmDecline:
		fmt.Fprintln(c.out, styles.Muted.Render("Declining (travel.confirm=decline)."))
		return false, nil
	}

	if !c.interactive {
		fmt.Fprintln(c.out, styles.Muted.Render("No terminal to ask on; declining. Use --yes to accept."))
		return false, nil
	}

	for {
		fmt.Fprint(c.out, "Continue anyway? [y/N] ")
		line, err := c.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("failed to read answer: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
	}
}
