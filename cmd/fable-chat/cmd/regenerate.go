package cmd

import (
	"github.com/spf13/cobra"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate <message-id>",
	Short: "Regenerate an assistant message in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conversation := newConversation(cfg)
		return conversation.Regenerate(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(regenerateCmd)
}
