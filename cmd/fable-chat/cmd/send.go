package cmd

import (
	"fmt"
	"os"
	"strings"

	chat "github.com/koscakluka/fable-core/core"
	"github.com/koscakluka/fable-core/core/pipeline"
	"github.com/koscakluka/fable-core/internal/config"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a turn and stream the response",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conversation := newConversation(cfg)
		return conversation.StartTurn(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func newConversation(cfg config.Config) *chat.Conversation {
	opts := []chat.ConversationOption{
		chat.WithCharacter(cfg.CharacterID),
		chat.WithWorldbooks(cfg.WorldbookIDs...),
		chat.WithContentSegmentCallback(func(_ string, segment string) {
			fmt.Print(segment)
		}),
		chat.WithContentReplacedCallback(func(_ string, content string) {
			fmt.Printf("\n--- post-processed ---\n%s\n", content)
		}),
		chat.WithStageChangedCallback(func(stage string) {
			fmt.Fprintf(os.Stderr, "[stage] %s\n", stage)
		}),
		chat.WithStageOutputFinalCallback(func(stage string, output string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, output)
		}),
		chat.WithImageCallback(func(_ string, url string, _ string) {
			fmt.Fprintf(os.Stderr, "[image] %s\n", url)
		}),
		chat.WithAudioCallback(func(_ string, clips []chat.AudioClip) {
			for _, clip := range clips {
				fmt.Fprintf(os.Stderr, "[audio] %s: %s\n", clip.Speaker, clip.URL)
			}
		}),
		chat.WithTurnCompletedCallback(func(string) {
			fmt.Println()
		}),
		chat.WithTurnFailedCallback(func(_ string, reason string) {
			fmt.Fprintf(os.Stderr, "\n[error] %s\n", reason)
		}),
	}
	if cfg.PlainChat {
		opts = append(opts, chat.WithoutStagedPipeline())
	}

	client := pipeline.NewClient(cfg.BaseURL)
	return chat.NewConversation(client, cfg.SessionID, opts...)
}
