// Package configcmder provides the config command for managing persistent
// unibot configuration stored in the .unibot/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
	"github.com/papercomputeco/unibot/pkg/dotdir"
)

const configLongDesc string = `Manage persistent unibot configuration.

Configuration is stored as config.toml in the .unibot/ directory and provides
default values for command flags. CLI flags and UNIBOT_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  knowledge.path,
  chat.mode, chat.follow_up,
  speech.transcriber, speech.language, speech.listen_timeout,
  speech.record_command, speech.synth_command,
  speech.credentials_file, speech.assemblyai_key,
  events.provider, events.brokers, events.topic,
  log.json, log.file

Use subcommands to create, get, set, or list configuration values:
  unibot config init [--preset name]    Write a starter config.toml
  unibot config set <key> <value>       Set a configuration value
  unibot config get <key>               Get a configuration value
  unibot config list                    List all configuration values

Examples:
  unibot config init --preset assemblyai
  unibot config set speech.language en-IN
  unibot config set events.brokers localhost:9092,localhost:9093
  unibot config get chat.mode
  unibot config list`

const configShortDesc string = "Manage persistent unibot configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
		key, strings.Join(config.ValidConfigKeys(), ", "))
}

// writableConfiger resolves the config directory, creating ~/.unibot when
// none exists yet.
func writableConfiger(configDir string) (*config.Configer, error) {
	dir, err := dotdir.NewManager().Ensure(configDir)
	if err != nil {
		return nil, err
	}
	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfger, nil
}

func printTarget(out io.Writer, target string) {
	if target != "" {
		fmt.Fprintf(out, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
		return
	}
	fmt.Fprintf(out, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
}

// displayValue masks secrets and marks empty values.
func displayValue(key, value string) string {
	if value == "" {
		return cliui.DimStyle.Render("<not set>")
	}
	if config.IsSecretKey(key) {
		return cliui.ValueStyle.Render(mask(value))
	}
	return cliui.ValueStyle.Render(value)
}

func mask(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-visible) + secret[len(secret)-visible:]
}
