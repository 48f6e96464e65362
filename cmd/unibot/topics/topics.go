// Package topicscmder provides the topics command for inspecting the
// knowledge table the assistant answers from.
package topicscmder

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/bootstrap"
	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
	"github.com/papercomputeco/unibot/pkg/knowledge"
)

const topicsLongDesc string = `List the topics of the knowledge table, or show one topic.

Without an argument the topic keys are listed with their titles. With a
topic key the topic is rendered as markdown. Output to a pipe is plain
markdown; use --raw to force it on a terminal.

Examples:
  unibot topics
  unibot topics placements
  unibot topics fees --raw > fees.md`

const topicsShortDesc string = "Show the knowledge table"

type topicsCommander struct {
	knowledge string
	raw       bool

	out io.Writer
}

func NewTopicsCmd() *cobra.Command {
	cmder := &topicsCommander{}

	cmd := &cobra.Command{
		Use:   "topics [topic]",
		Short: topicsShortDesc,
		Long:  topicsLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmder.out = cmd.OutOrStdout()

			rt, err := bootstrap.Open(bootstrap.Options{
				Cmd:      cmd,
				FlagKeys: []string{config.FlagKnowledge},
				Stderr:   cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			if len(args) == 0 {
				return cmder.list(rt.Store, rt.KnowledgeSource)
			}
			return cmder.show(rt.Store, args[0])
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return knowledge.Default().Topics(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}

	cmd.Flags().BoolVar(&cmder.raw, "raw", false, "Print markdown without terminal styling")
	config.AddStringFlag(cmd, config.Registry, config.FlagKnowledge, &cmder.knowledge)

	return cmd
}

func (c *topicsCommander) list(store *knowledge.Store, source string) error {
	if source == "" {
		source = "built-in"
	}
	fmt.Fprintf(c.out, "\n  %s %s\n\n",
		cliui.KeyStyle.Render("Knowledge:"),
		cliui.DimStyle.Render(source),
	)

	topics := store.Topics()
	maxLen := 0
	for _, t := range topics {
		maxLen = max(maxLen, len(t))
	}

	for _, t := range topics {
		fmt.Fprintf(c.out, "  %-*s  %s\n", maxLen, t, cliui.ValueStyle.Render(knowledge.Humanize(t)))
	}
	fmt.Fprintln(c.out)

	return nil
}

func (c *topicsCommander) show(store *knowledge.Store, topic string) error {
	md, err := store.Markdown(topic)
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownTopic) {
			return fmt.Errorf("%w\n\nValid topics: %s", err, strings.Join(store.Topics(), ", "))
		}
		return err
	}

	if c.raw || !cliui.IsTerminal(c.out) {
		_, err = io.WriteString(c.out, md)
		return err
	}

	rendered, err := cliui.RenderMarkdown(md, cliui.Width(c.out, 80))
	if err != nil {
		return fmt.Errorf("rendering %s: %w", topic, err)
	}
	_, err = io.WriteString(c.out, rendered)
	return err
}
