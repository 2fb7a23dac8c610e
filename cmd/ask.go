package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/filmrehberi/filmrehberi/internal/pipeline"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Long:  `Runs one question through the full pipeline and prints the answer. No conversation history is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("show-context", false, "print the retrieved context before the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	showContext, _ := cmd.Flags().GetBool("show-context")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}

	pipe := pipeline.New(provider, store, cfg)

	st, err := pipe.Ask(ctx, args[0], nil)
	if err != nil {
		fmt.Printf("Hata: %v\n", err)
		return nil
	}

	if verbose {
		fmt.Printf("Intent: %s\n\n", st.Intent)
	}
	if showContext && st.Context != "" {
		fmt.Println(st.Context)
		fmt.Println()
	}
	fmt.Println(st.FinalText())
	return nil
}
