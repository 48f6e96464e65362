package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/unibot/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the UNIBOT_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (UNIBOT_CHAT_MODE, UNIBOT_SPEECH_LANGUAGE, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("UNIBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	v.SetDefault("knowledge.path", d.Knowledge.Path)

	v.SetDefault("chat.mode", d.Chat.Mode)
	v.SetDefault("chat.follow_up", d.Chat.FollowUp)

	v.SetDefault("speech.transcriber", d.Speech.Transcriber)
	v.SetDefault("speech.language", d.Speech.Language)
	v.SetDefault("speech.listen_timeout", d.Speech.ListenTimeout)
	v.SetDefault("speech.record_command", d.Speech.RecordCommand)
	v.SetDefault("speech.synth_command", d.Speech.SynthCommand)
	v.SetDefault("speech.credentials_file", d.Speech.CredentialsFile)
	v.SetDefault("speech.assemblyai_key", d.Speech.AssemblyAIKey)

	v.SetDefault("events.provider", d.Events.Provider)
	v.SetDefault("events.brokers", d.Events.Brokers)
	v.SetDefault("events.topic", d.Events.Topic)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.file", d.Log.File)
}

// FromViper snapshots the resolved settings into a Config.
func FromViper(v *viper.Viper) *Config {
	var brokers []string
	for _, b := range v.GetStringSlice("events.brokers") {
		brokers = append(brokers, SplitList(b)...)
	}

	return &Config{
		Version: v.GetInt("version"),
		Knowledge: KnowledgeConfig{
			Path: v.GetString("knowledge.path"),
		},
		Chat: ChatConfig{
			Mode:     v.GetString("chat.mode"),
			FollowUp: v.GetBool("chat.follow_up"),
		},
		Speech: SpeechConfig{
			Transcriber:     v.GetString("speech.transcriber"),
			Language:        v.GetString("speech.language"),
			ListenTimeout:   v.GetString("speech.listen_timeout"),
			RecordCommand:   v.GetString("speech.record_command"),
			SynthCommand:    v.GetString("speech.synth_command"),
			CredentialsFile: v.GetString("speech.credentials_file"),
			AssemblyAIKey:   v.GetString("speech.assemblyai_key"),
		},
		Events: EventsConfig{
			Provider: v.GetString("events.provider"),
			Brokers:  brokers,
			Topic:    v.GetString("events.topic"),
		},
		Log: LogConfig{
			JSON: v.GetBool("log.json"),
			File: v.GetString("log.file"),
		},
	}
}
