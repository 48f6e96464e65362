// Package chatcmder provides the chat command: an interactive session with
// the assistant over the terminal or, when available, microphone and speaker.
package chatcmder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/assistant"
	"github.com/papercomputeco/unibot/pkg/bootstrap"
	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
	"github.com/papercomputeco/unibot/pkg/speech"
)

const chatLongDesc string = `Start an interactive session with the university assistant.

Type a question and press enter. These words are handled by the session
itself instead of being answered:

  help       Show what the assistant can do
  voice      Switch to voice input and spoken answers
  text       Switch back to typed input
  summary    Show a summary of the conversation so far
  quit       End the session (also exit, stop, end)

Voice mode needs a recorder (arecord), a transcriber (Google Speech or
AssemblyAI) and optionally a speech synthesizer (espeak). Run
"unibot doctor" to check. Without them the session stays in text mode.

Examples:
  unibot chat
  unibot chat --voice --transcriber assemblyai
  unibot chat --follow-up=false --events-provider kafka --events-brokers localhost:9092`

const chatShortDesc string = "Chat with the university assistant"

type chatCommander struct {
	voice          bool
	mode           string
	knowledge      string
	timeout        time.Duration
	followUp       bool
	transcriber    string
	language       string
	eventsProvider string
	eventsBrokers  string
	eventsTopic    string
	logJSON        bool
}

var chatFlags = []string{
	config.FlagKnowledge,
	config.FlagMode,
	config.FlagTimeout,
	config.FlagFollowUp,
	config.FlagTranscriber,
	config.FlagLanguage,
	config.FlagEventsProvider,
	config.FlagEventsBrokers,
	config.FlagEventsTopic,
	config.FlagLogJSON,
}

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().BoolVar(&cmder.voice, "voice", false, "Start in voice mode")
	config.AddStringFlag(cmd, config.Registry, config.FlagKnowledge, &cmder.knowledge)
	config.AddStringFlag(cmd, config.Registry, config.FlagMode, &cmder.mode)
	config.AddDurationFlag(cmd, config.Registry, config.FlagTimeout, &cmder.timeout)
	config.AddBoolFlag(cmd, config.Registry, config.FlagFollowUp, &cmder.followUp)
	config.AddStringFlag(cmd, config.Registry, config.FlagTranscriber, &cmder.transcriber)
	config.AddStringFlag(cmd, config.Registry, config.FlagLanguage, &cmder.language)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsProvider, &cmder.eventsProvider)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsBrokers, &cmder.eventsBrokers)
	config.AddStringFlag(cmd, config.Registry, config.FlagEventsTopic, &cmder.eventsTopic)
	config.AddBoolFlag(cmd, config.Registry, config.FlagLogJSON, &cmder.logJSON)

	return cmd
}

func (c *chatCommander) run(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.Open(bootstrap.Options{
		Cmd:      cmd,
		FlagKeys: chatFlags,
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

	cfg := rt.Config
	out := cmd.OutOrStdout()

	a := assistant.New(rt.Store,
		assistant.WithLogger(rt.Logger),
		assistant.WithPublisher(rt.Publisher),
	)
	rt.Logger.Debug("session started",
		"session", a.SessionID(),
		"knowledge", knowledgeLabel(rt.KnowledgeSource),
		"events", cfg.Events.Provider,
	)

	session := assistant.NewSession(a, assistant.SessionConfig{
		Console:       speech.NewConsole(cmd.InOrStdin(), out),
		OpenVoice:     voiceOpener(cfg.Speech.Voice(), out, rt.Logger),
		StartVoice:    c.voice || cfg.Chat.Mode == config.ModeVoice,
		ListenTimeout: cfg.Speech.Timeout(),
		FollowUp:      cfg.Chat.FollowUp,
		Out:           out,
		Logger:        rt.Logger,
	})

	return session.Run(ctx)
}

// voiceOpener checks prerequisites before touching the recognizer so a
// missing tool is reported by name.
func voiceOpener(cfg speech.Config, out io.Writer, logger *slog.Logger) assistant.VoiceOpener {
	return func(ctx context.Context) (speech.IO, error) {
		avail := speech.Probe(cfg)
		if !avail.Ready() {
			return nil, fmt.Errorf("%w: %s", speech.ErrUnavailable, avail.Reason())
		}
		if !avail.Synthesizer.OK {
			fmt.Fprintln(out, cliui.WarnStyle.Render("⚠️  Speech synthesis unavailable, answers will be printed only"))
		}
		v, err := speech.OpenVoice(ctx, cfg, out, logger)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func knowledgeLabel(source string) string {
	if source == "" {
		return "built-in"
	}
	return source
}
