package cmd

import (
	"fmt"
	"os"

	"github.com/koscakluka/fable-core/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	sessionID   string
	characterID string
	worldbooks  []string
	plainChat   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fable-chat",
	Short: "Stream turns from a fable generation service",
	Long: `A thin command-line client for a staged story-generation service.

It sends a turn, ingests the streamed stages (outline, narrative,
image prompt, rendered image, audio) and prints state changes as they
are reconciled.

Quick Start:
  fable-chat send "Hello there"          # Send a turn
  fable-chat regenerate <message-id>     # Regenerate an assistant message`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "Chat session identifier")
	rootCmd.PersistentFlags().StringVar(&characterID, "character", "", "Active character identifier")
	rootCmd.PersistentFlags().StringSliceVar(&worldbooks, "worldbook", nil, "Active worldbook identifiers")
	rootCmd.PersistentFlags().BoolVar(&plainChat, "plain", false, "Use the plain chat endpoint instead of the staged pipeline")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if sessionID != "" {
		cfg.SessionID = sessionID
	}
	if characterID != "" {
		cfg.CharacterID = characterID
	}
	if len(worldbooks) > 0 {
		cfg.WorldbookIDs = worldbooks
	}
	if plainChat {
		cfg.PlainChat = true
	}

	if cfg.SessionID == "" {
		return config.Config{}, fmt.Errorf("a session id is required (--session or config file)")
	}

	return cfg, nil
}
