// Package unibotcmder
package unibotcmder

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	askcmder "github.com/papercomputeco/unibot/cmd/unibot/ask"
	browsecmder "github.com/papercomputeco/unibot/cmd/unibot/browse"
	chatcmder "github.com/papercomputeco/unibot/cmd/unibot/chat"
	configcmder "github.com/papercomputeco/unibot/cmd/unibot/config"
	doctorcmder "github.com/papercomputeco/unibot/cmd/unibot/doctor"
	topicscmder "github.com/papercomputeco/unibot/cmd/unibot/topics"
	versioncmder "github.com/papercomputeco/unibot/cmd/version"
)

const unibotLongDesc string = `Unibot answers questions about Manav Rachna University:
admissions, courses, fees, placements, facilities, campus life and contacts.

Talk to it using:
  unibot chat              Start an interactive session (text or voice)
  unibot ask <question>    Answer a single question and exit
  unibot topics [topic]    Show the knowledge table
  unibot browse            Browse the knowledge table in a terminal UI
  unibot doctor            Check voice mode prerequisites`

const unibotShortDesc string = "Unibot - University FAQ Assistant"

func NewUnibotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "unibot",
		Short:        unibotShortDesc,
		Long:         unibotLongDesc,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadDotEnv()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .unibot config directory")

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(topicscmder.NewTopicsCmd())
	cmd.AddCommand(browsecmder.NewBrowseCmd())
	cmd.AddCommand(doctorcmder.NewDoctorCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}

// loadDotEnv reads ./.env when present. Variables already set win.
func loadDotEnv() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}
