// Package askcmder provides the ask command, which answers one question and
// exits.
package askcmder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/assistant"
	"github.com/papercomputeco/unibot/pkg/bootstrap"
	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
	"github.com/papercomputeco/unibot/pkg/intent"
	"github.com/papercomputeco/unibot/pkg/utils"
)

const askLongDesc string = `Answer a single question and exit.

The question is classified into a topic and answered from the knowledge
table, exactly as in a chat session. Use --explain to also print which
topic was chosen and the pattern that matched.

Examples:
  unibot ask what is the fee for btech
  unibot ask "how do I apply?" --explain
  unibot ask hostel facilities --knowledge ./campus.yaml`

const askShortDesc string = "Answer a single question"

var errEmptyQuestion = errors.New("question is empty")

type askCommander struct {
	explain        bool
	knowledge      string
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string

	out io.Writer
}

var askFlags = []string{
	config.FlagKnowledge,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
}

func NewAskCmd() *cobra.Command {
	cmder := &askCommander{}

	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.out = cmd.OutOrStdout()
			return cmder.run(cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVar(&cmder.explain, "explain", false, "Show the matched topic and pattern")
	config.AddStringFlag(cmd, config.Registry, config.FlagKnowledge, &cmder.knowledge)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsTopic, &cmder.eventsTopic)

	return cmd
}

func (c *askCommander) run(cmd *cobra.Command, question string) error {
	if strings.TrimSpace(question) == "" {
		return errEmptyQuestion
	}

	rt, err := bootstrap.Open(bootstrap.Options{
		Cmd:      cmd,
		FlagKeys: askFlags,
		Stderr:   cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			rt.Logger.Warn("closing runtime", "error", err)
		}
	}()

	if c.explain {
		c.printExplain(question)
	}

	a := assistant.New(rt.Store,
		assistant.WithLogger(rt.Logger),
		assistant.WithPublisher(rt.Publisher),
	)
	reply := a.Respond(cmd.Context(), question)
	if reply.Failed {
		return errors.New(reply.Text)
	}

	_, err = fmt.Fprintln(c.out, reply.Text)
	return err
}

func (c *askCommander) printExplain(question string) {
	classifier := intent.NewClassifier()
	match := classifier.Explain(question)

	fmt.Fprintf(c.out, "\n  %s %s\n",
		cliui.KeyStyle.Render("Intent:"),
		cliui.ValueStyle.Render(match.Intent.String()),
	)

	if !match.Matched() {
		fmt.Fprintf(c.out, "  %s %s\n\n",
			cliui.KeyStyle.Render("Pattern:"),
			cliui.DimStyle.Render("none matched, using the general answer"),
		)
		return
	}

	pattern := classifier.Patterns(match.Intent)[match.Pattern]
	fmt.Fprintf(c.out, "  %s %s\n\n",
		cliui.KeyStyle.Render("Pattern:"),
		cliui.DimStyle.Render(utils.Truncate(pattern, 72)),
	)
}
