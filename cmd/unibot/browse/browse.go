// Package browsecmder provides the browse command, a terminal UI over the
// knowledge table with an inline question prompt.
package browsecmder

import (
	"context"
	"errors"
	"os"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/assistant"
	"github.com/papercomputeco/unibot/pkg/bootstrap"
	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
)

const browseLongDesc string = `Browse the knowledge table in a terminal UI.

Topics are listed on the left and the selected topic is rendered on the
right. Press / to ask a question; the answer replaces the topic view until
you move the selection or press esc.

Keys:
  j/k, up/down      Select topic
  pgup/pgdown, J/K  Scroll
  /                 Ask a question
  ?                 Toggle help
  q                 Quit

Examples:
  unibot browse
  unibot browse --knowledge ./campus.yaml`

const browseShortDesc string = "Browse the knowledge table"

var errNotTerminal = errors.New("browse needs an interactive terminal; use \"unibot topics\" instead")

type browseCommander struct {
	knowledge string
}

func NewBrowseCmd() *cobra.Command {
	cmder := &browseCommander{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: browseShortDesc,
		Long:  browseLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagKnowledge, &cmder.knowledge)

	return cmd
}

func (c *browseCommander) run(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if !cliui.IsTerminal(out) {
		return errNotTerminal
	}

	rt, err := bootstrap.Open(bootstrap.Options{
		Cmd:      cmd,
		FlagKeys: []string{config.FlagKnowledge},
		Stderr:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	if os.Getenv("NO_COLOR") == "" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	ctx := cmd.Context()
	a := assistant.New(rt.Store,
		assistant.WithLogger(rt.Logger),
		assistant.WithPublisher(rt.Publisher),
	)

	model := newBrowseModel(rt.Store, askFunc(ctx, a), renderMarkdown)

	program := bubbletea.NewProgram(model,
		bubbletea.WithContext(ctx),
		bubbletea.WithAltScreen(),
		bubbletea.WithInput(cmd.InOrStdin()),
		bubbletea.WithOutput(out),
	)
	_, err = program.Run()
	return err
}

func askFunc(ctx context.Context, a *assistant.Assistant) func(string) string {
	return func(question string) string {
		return a.Respond(ctx, question).Text
	}
}

func renderMarkdown(md string, width int) string {
	// RenderMarkdown hands back the raw markdown on failure.
	rendered, _ := cliui.RenderMarkdown(md, width)
	return rendered
}
