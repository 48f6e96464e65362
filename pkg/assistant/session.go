package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/intent"
	"github.com/papercomputeco/unibot/pkg/speech"
)

// VoiceOpener builds voice IO on demand, when the user asks for it.
type VoiceOpener func(ctx context.Context) (speech.IO, error)

type SessionConfig struct {
	// Console is the text channel; it is also the fallback from voice.
	Console speech.IO

	// OpenVoice is nil when voice mode is not offered.
	OpenVoice VoiceOpener

	// StartVoice begins the session in voice mode.
	StartVoice bool

	ListenTimeout time.Duration
	FollowUp      bool
	Out           io.Writer
	Logger        *slog.Logger
}

// Session is the interactive loop around an Assistant.
type Session struct {
	a       *Assistant
	cfg     SessionConfig
	current speech.IO
	voice   speech.IO
	logger  *slog.Logger
}

func NewSession(a *Assistant, cfg SessionConfig) *Session {
	if cfg.ListenTimeout <= 0 {
		cfg.ListenTimeout = speech.DefaultListenTimeout
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{a: a, cfg: cfg, current: cfg.Console, logger: logger}
}

// Run greets the user and answers until quit, end of input, or ctx is
// cancelled. Only a missing console is an error.
func (s *Session) Run(ctx context.Context) error {
	if s.cfg.Console == nil {
		return errors.New("session has no console")
	}
	defer s.closeVoice()

	if s.cfg.StartVoice {
		if err := s.enableVoice(ctx); err != nil {
			fmt.Fprintln(s.cfg.Out, cliui.WarnStyle.Render(VoiceFallback))
			s.logger.Info("voice unavailable", "error", err)
		}
	}

	fmt.Fprintln(s.cfg.Out, "\n"+cliui.Banner(Title))
	s.current.Speak(ctx, WelcomeMessage)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.cfg.Out, "\n\n"+StoppedMessage)
			return nil
		}
		if s.turn(ctx) {
			return nil
		}
	}
}

// turn runs one listen, answer and speak cycle and reports whether the
// session ends. A panic anywhere in the cycle becomes an apology.
func (s *Session) turn(ctx context.Context) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("turn failed", "panic", r, "mode", s.current.Mode())
			s.apologize(ctx, r)
			done = false
		}
	}()

	if s.current.Mode() == speech.ModeVoice {
		fmt.Fprintln(s.cfg.Out, "\n"+VoicePrompt)
	}

	input, err := s.current.Listen(ctx, s.cfg.ListenTimeout)
	if err != nil {
		switch {
		case ctx.Err() != nil:
			fmt.Fprintln(s.cfg.Out, "\n\n"+StoppedMessage)
			return true
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.cfg.Out)
			s.current.Speak(ctx, FarewellMessage)
			return true
		}
		fmt.Fprintln(s.cfg.Out, speech.Message(err))
		return false
	}

	if cmd, ok := ParseCommand(input); ok {
		return s.command(ctx, cmd)
	}

	reply := s.a.Respond(ctx, input)
	if reply.Skipped {
		return false
	}
	s.current.Speak(ctx, reply.Text)

	if s.cfg.FollowUp && !reply.Failed && reply.Intent != intent.Goodbye && s.current.Mode() == speech.ModeText {
		fmt.Fprintln(s.cfg.Out, "\n"+cliui.HintStyle.Render("💭 "+FollowUpPrompt))
	}
	return false
}

// apologize speaks the apology, printing it instead when speaking fails too.
func (s *Session) apologize(ctx context.Context, cause any) {
	msg := fmt.Sprintf(apologyFormat, cause)
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(s.cfg.Out, msg)
		}
	}()
	s.current.Speak(ctx, msg)
}

// command handles a control word and reports whether the session ends.
func (s *Session) command(ctx context.Context, cmd Command) bool {
	switch cmd {
	case CommandQuit:
		s.current.Speak(ctx, FarewellMessage)
		return true

	case CommandHelp:
		s.current.Speak(ctx, HelpText)

	case CommandSummary:
		s.current.Speak(ctx, s.a.Summarize())

	case CommandVoice:
		if s.current.Mode() == speech.ModeVoice {
			s.current.Speak(ctx, VoiceAlreadyOn)
			return false
		}
		if err := s.enableVoice(ctx); err != nil {
			s.current.Speak(ctx, fmt.Sprintf(voiceFailureFormat, err))
			return false
		}
		s.current.Speak(ctx, VoiceEnabledMessage)

	case CommandText:
		if s.current.Mode() == speech.ModeText {
			s.current.Speak(ctx, TextAlreadyOn)
			return false
		}
		s.current = s.cfg.Console
		s.a.SetMode(speech.ModeText)
		fmt.Fprintln(s.cfg.Out, TextSwitchedMessage)
	}
	return false
}

func (s *Session) enableVoice(ctx context.Context) error {
	if s.voice == nil {
		if s.cfg.OpenVoice == nil {
			return speech.ErrUnavailable
		}
		v, err := s.cfg.OpenVoice(ctx)
		if err != nil {
			return err
		}
		s.voice = v
	}
	s.current = s.voice
	s.a.SetMode(speech.ModeVoice)
	return nil
}

func (s *Session) closeVoice() {
	c, ok := s.voice.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		s.logger.Warn("close voice", "error", err)
	}
}
