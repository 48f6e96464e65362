package config

import "github.com/papercomputeco/unibot/pkg/speech"

// Allowed values for enumerated keys.
const (
	ModeText  = string(speech.ModeText)
	ModeVoice = string(speech.ModeVoice)

	TranscriberGoogle     = speech.TranscriberGoogle
	TranscriberAssemblyAI = speech.TranscriberAssemblyAI

	EventsNone  = "none"
	EventsKafka = "kafka"
)

const (
	defaultListenTimeout = speech.DefaultListenTimeout
	defaultLanguage      = "en-US"
	defaultEventsTopic   = "unibot.turns"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Chat: ChatConfig{
			Mode:     ModeText,
			FollowUp: true,
		},
		Speech: SpeechConfig{
			Transcriber:   TranscriberGoogle,
			Language:      defaultLanguage,
			ListenTimeout: defaultListenTimeout.String(),
			RecordCommand: speech.DefaultRecordCommand,
			SynthCommand:  speech.DefaultSynthCommand,
		},
		Events: EventsConfig{
			Provider: EventsNone,
			Topic:    defaultEventsTopic,
		},
	}
}
