package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/papercomputeco/unibot/pkg/speech"
)

// Config represents the persistent unibot configuration stored as config.toml
// in the .unibot/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Knowledge KnowledgeConfig `toml:"knowledge"`
	Chat      ChatConfig      `toml:"chat"`
	Speech    SpeechConfig    `toml:"speech"`
	Events    EventsConfig    `toml:"events"`
	Log       LogConfig       `toml:"log"`
}

// KnowledgeConfig selects the fact table. An empty path means the built-in one.
type KnowledgeConfig struct {
	Path string `toml:"path,omitempty"`
}

// ChatConfig holds interactive session settings.
type ChatConfig struct {
	Mode     string `toml:"mode,omitempty"`
	FollowUp bool   `toml:"follow_up"`
}

// SpeechConfig holds voice mode settings. ListenTimeout is a Go duration
// string such as "5s".
type SpeechConfig struct {
	Transcriber     string `toml:"transcriber,omitempty"`
	Language        string `toml:"language,omitempty"`
	ListenTimeout   string `toml:"listen_timeout,omitempty"`
	RecordCommand   string `toml:"record_command,omitempty"`
	SynthCommand    string `toml:"synth_command,omitempty"`
	CredentialsFile string `toml:"credentials_file,omitempty"`
	AssemblyAIKey   string `toml:"assemblyai_key,omitempty"`
}

// Timeout parses ListenTimeout, falling back to the default on a bad value.
func (s SpeechConfig) Timeout() time.Duration {
	d, err := time.ParseDuration(s.ListenTimeout)
	if err != nil || d <= 0 {
		return defaultListenTimeout
	}
	return d
}

// Voice returns the settings speech.OpenVoice and speech.Probe take.
func (s SpeechConfig) Voice() speech.Config {
	return speech.Config{
		Transcriber:     s.Transcriber,
		Language:        s.Language,
		RecordCommand:   s.RecordCommand,
		SynthCommand:    s.SynthCommand,
		CredentialsFile: s.CredentialsFile,
		AssemblyAIKey:   s.AssemblyAIKey,
	}
}

// EventsConfig selects where recorded turns are published.
type EventsConfig struct {
	Provider string   `toml:"provider,omitempty"`
	Brokers  []string `toml:"brokers,omitempty"`
	Topic    string   `toml:"topic,omitempty"`
}

// LogConfig controls the stderr logger and an optional log file.
type LogConfig struct {
	JSON bool   `toml:"json,omitempty"`
	File string `toml:"file,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func oneOf(key, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("invalid value for %s: %q (allowed: %s)", key, v, strings.Join(allowed, ", "))
}

func setBool(key string, dst *bool) func(c *Config, v string) error {
	return func(_ *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*dst = b
		return nil
	}
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"knowledge.path": {
		get: func(c *Config) string { return c.Knowledge.Path },
		set: func(c *Config, v string) error { c.Knowledge.Path = v; return nil },
	},
	"chat.mode": {
		get: func(c *Config) string { return c.Chat.Mode },
		set: func(c *Config, v string) error {
			if err := oneOf("chat.mode", v, ModeText, ModeVoice); err != nil {
				return err
			}
			c.Chat.Mode = v
			return nil
		},
	},
	"chat.follow_up": {
		get: func(c *Config) string { return strconv.FormatBool(c.Chat.FollowUp) },
		set: func(c *Config, v string) error { return setBool("chat.follow_up", &c.Chat.FollowUp)(c, v) },
	},
	"speech.transcriber": {
		get: func(c *Config) string { return c.Speech.Transcriber },
		set: func(c *Config, v string) error {
			if err := oneOf("speech.transcriber", v, TranscriberGoogle, TranscriberAssemblyAI); err != nil {
				return err
			}
			c.Speech.Transcriber = v
			return nil
		},
	},
	"speech.language": {
		get: func(c *Config) string { return c.Speech.Language },
		set: func(c *Config, v string) error { c.Speech.Language = v; return nil },
	},
	"speech.listen_timeout": {
		get: func(c *Config) string { return c.Speech.ListenTimeout },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid value for speech.listen_timeout: %w", err)
			}
			if d <= 0 {
				return fmt.Errorf("invalid value for speech.listen_timeout: must be positive")
			}
			c.Speech.ListenTimeout = d.String()
			return nil
		},
	},
	"speech.record_command": {
		get: func(c *Config) string { return c.Speech.RecordCommand },
		set: func(c *Config, v string) error { c.Speech.RecordCommand = v; return nil },
	},
	"speech.synth_command": {
		get: func(c *Config) string { return c.Speech.SynthCommand },
		set: func(c *Config, v string) error { c.Speech.SynthCommand = v; return nil },
	},
	"speech.credentials_file": {
		get: func(c *Config) string { return c.Speech.CredentialsFile },
		set: func(c *Config, v string) error { c.Speech.CredentialsFile = v; return nil },
	},
	"speech.assemblyai_key": {
		get: func(c *Config) string { return c.Speech.AssemblyAIKey },
		set: func(c *Config, v string) error { c.Speech.AssemblyAIKey = v; return nil },
	},
	"events.provider": {
		get: func(c *Config) string { return c.Events.Provider },
		set: func(c *Config, v string) error {
			if err := oneOf("events.provider", v, EventsNone, EventsKafka); err != nil {
				return err
			}
			c.Events.Provider = v
			return nil
		},
	},
	"events.brokers": {
		get: func(c *Config) string { return strings.Join(c.Events.Brokers, ",") },
		set: func(c *Config, v string) error { c.Events.Brokers = SplitList(v); return nil },
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
	"log.json": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.JSON) },
		set: func(c *Config, v string) error { return setBool("log.json", &c.Log.JSON)(c, v) },
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
}
