package configcmder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/unibot/pkg/cliui"
	"github.com/papercomputeco/unibot/pkg/config"
)

const initLongDesc string = `Write a starter config.toml.

Presets:
  text         Typed chat only (default)
  google       Voice mode with Google Cloud Speech-to-Text
  assemblyai   Voice mode with AssemblyAI

The file goes to the resolved .unibot/ directory; --local creates
./.unibot/ in the current directory instead. An existing file is kept
unless --force is given.

Examples:
  unibot config init
  unibot config init --preset google --local
  unibot config init --preset assemblyai --force`

const initShortDesc string = "Write a starter config.toml"

// localDir is the project-local directory created by --local.
const localDir = ".unibot"

var errConfigExists = errors.New("config file already exists (use --force to overwrite)")

type initCommander struct {
	preset string
	local  bool
	force  bool
}

func newInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			if cmder.local && configDir == "" {
				configDir = localDir
			}
			return cmder.run(cmd.OutOrStdout(), configDir)
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "text",
		"Starter preset ("+strings.Join(config.ValidPresetNames(), ", ")+")")
	cmd.Flags().BoolVar(&cmder.local, "local", false, "Create ./.unibot in the current directory")
	cmd.Flags().BoolVar(&cmder.force, "force", false, "Overwrite an existing config.toml")

	_ = cmd.RegisterFlagCompletionFunc("preset", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.ValidPresetNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *initCommander) run(out io.Writer, configDir string) error {
	cfg, err := config.PresetConfig(c.preset)
	if err != nil {
		return err
	}

	cfger, err := writableConfiger(configDir)
	if err != nil {
		return err
	}
	target := cfger.GetTarget()

	if _, err := os.Stat(target); err == nil && !c.force {
		return fmt.Errorf("%s: %w", target, errConfigExists)
	}

	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Wrote %s preset to %s\n\n",
		cliui.SuccessMark,
		cliui.KeyStyle.Render(c.preset),
		cliui.DimStyle.Render(target),
	)
	return nil
}
