package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/papercomputeco/unibot/pkg/cliui"
)

// Transcriber backends accepted by speech.transcriber.
const (
	TranscriberGoogle     = "google"
	TranscriberAssemblyAI = "assemblyai"
)

// Config carries the speech.* settings.
type Config struct {
	Transcriber     string
	Language        string
	RecordCommand   string
	SynthCommand    string
	CredentialsFile string
	AssemblyAIKey   string
}

// Voice records, transcribes, and speaks. Status lines go to out.
type Voice struct {
	recorder    Recorder
	transcriber Transcriber
	synth       Synthesizer
	out         io.Writer
	logger      *slog.Logger
}

func NewVoice(rec Recorder, tr Transcriber, synth Synthesizer, out io.Writer, logger *slog.Logger) *Voice {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Voice{recorder: rec, transcriber: tr, synth: synth, out: out, logger: logger}
}

// OpenVoice builds a Voice from config. It fails with ErrUnavailable when
// the transcriber backend cannot be constructed.
func OpenVoice(ctx context.Context, cfg Config, out io.Writer, logger *slog.Logger) (*Voice, error) {
	var (
		tr  Transcriber
		err error
	)
	switch cfg.Transcriber {
	case TranscriberGoogle, "":
		tr, err = NewGoogleTranscriber(ctx, GoogleConfig{
			CredentialsFile: cfg.CredentialsFile,
			LanguageCode:    cfg.Language,
		})
	case TranscriberAssemblyAI:
		tr, err = NewAssemblyAITranscriber(cfg.AssemblyAIKey, cfg.Language)
	default:
		err = fmt.Errorf("unknown transcriber %q", cfg.Transcriber)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return NewVoice(
		NewCommandRecorder(cfg.RecordCommand),
		tr,
		NewCommandSynthesizer(cfg.SynthCommand),
		out,
		logger,
	), nil
}

func (v *Voice) Listen(ctx context.Context, timeout time.Duration) (string, error) {
	fmt.Fprintln(v.out, cliui.HintStyle.Render("🎤 Listening..."))

	audio, err := v.recorder.Record(ctx, timeout)
	if err != nil {
		return "", err
	}

	fmt.Fprintln(v.out, cliui.HintStyle.Render("🔄 Processing speech..."))
	text, err := v.transcriber.Transcribe(ctx, audio)
	if err != nil {
		if !errors.Is(err, ErrUnintelligible) && !errors.Is(err, ErrService) {
			err = fmt.Errorf("%w: %w", ErrService, err)
		}
		return "", err
	}

	fmt.Fprintln(v.out, cliui.UserLine(text))
	return text, nil
}

// Speak prints the reply and then voices it. A synthesizer failure is
// logged; the printed line already reached the user.
func (v *Voice) Speak(ctx context.Context, text string) {
	fmt.Fprintln(v.out, cliui.BotLine(text))
	if v.synth == nil {
		return
	}
	if err := v.synth.Say(ctx, text); err != nil {
		v.logger.Warn("speech synthesis failed", "error", err)
	}
}

func (v *Voice) Mode() Mode {
	return ModeVoice
}

// Close releases the transcriber.
func (v *Voice) Close() error {
	if v.transcriber == nil {
		return nil
	}
	return v.transcriber.Close()
}
