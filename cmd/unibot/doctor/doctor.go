// Package doctorcmder provides the doctor command, which reports whether
// voice mode can run on this machine with the current configuration.
package doctorcmder

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/bootstrap"
	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
	"github.com/papercomputeco/unibot/pkg/speech"
)

const doctorLongDesc string = `Check the prerequisites of voice mode.

Reports the recorder and synthesizer programs found on PATH, whether the
configured transcriber has credentials, which knowledge table is loaded
and where turn events go. Nothing is recorded or sent.

Examples:
  unibot doctor
  unibot doctor --transcriber assemblyai`

const doctorShortDesc string = "Check voice mode prerequisites"

type doctorCommander struct {
	knowledge      string
	transcriber    string
	language       string
	eventsProvider string

	out    io.Writer
	prober *speech.Prober
}

var doctorFlags = []string{
	config.FlagKnowledge,
	config.FlagTranscriber,
	config.FlagLanguage,
	config.FlagEventsProvider,
}

func NewDoctorCmd() *cobra.Command {
	return newDoctorCmd(speech.NewProber())
}

func newDoctorCmd(prober *speech.Prober) *cobra.Command {
	cmder := &doctorCommander{prober: prober}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: doctorShortDesc,
		Long:  doctorLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmder.out = cmd.OutOrStdout()
			return cmder.run(cmd)
		},
	}

	config.AddStringFlag(cmd, config.Registry, config.FlagKnowledge, &cmder.knowledge)
	config.AddStringFlag(cmd, config.Registry, config.FlagTranscriber, &cmder.transcriber)
	config.AddStringFlag(cmd, config.Registry, config.FlagLanguage, &cmder.language)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsProvider, &cmder.eventsProvider)

	return cmd
}

func (c *doctorCommander) run(cmd *cobra.Command) error {
	fmt.Fprintln(c.out)

	var rt *bootstrap.Runtime
	err := cliui.Step(c.out, "Loading configuration", func() error {
		var err error
		rt, err = bootstrap.Open(bootstrap.Options{
			Cmd:      cmd,
			FlagKeys: doctorFlags,
			Stderr:   cmd.ErrOrStderr(),
		})
		return err
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config
	source := rt.KnowledgeSource
	if source == "" {
		source = "built-in"
	}

	fmt.Fprintf(c.out, "\n  %s\n", cliui.KeyStyle.Render("Runtime"))
	fmt.Fprintln(c.out, cliui.Check(true, "knowledge", fmt.Sprintf("%s (%d topics)", source, len(rt.Store.Topics()))))
	fmt.Fprintln(c.out, cliui.Check(true, "events", cfg.Events.Provider))

	avail := c.prober.Probe(cfg.Speech.Voice())

	fmt.Fprintf(c.out, "\n  %s %s\n",
		cliui.KeyStyle.Render("Voice"),
		cliui.DimStyle.Render("language "+cfg.Speech.Language),
	)
	for _, check := range avail.Checks() {
		fmt.Fprintln(c.out, cliui.Check(check.OK, check.Name, check.Detail))
	}

	fmt.Fprintln(c.out)
	if avail.Ready() {
		fmt.Fprintf(c.out, "  %s\n\n", cliui.ValueStyle.Render("Voice mode is available: unibot chat --voice"))
		return nil
	}
	fmt.Fprintf(c.out, "  %s\n\n", cliui.WarnStyle.Render("Voice mode unavailable ("+avail.Reason()+"). Chat will run in text mode."))
	return nil
}
