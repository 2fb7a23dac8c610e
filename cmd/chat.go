package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/filmrehberi/filmrehberi/internal/history"
	"github.com/filmrehberi/filmrehberi/internal/pipeline"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session with the movie assistant",
	Long: `Opens an interactive terminal session. Each message is routed through
intent classification, movie retrieval, and answer generation. The
conversation is stored locally and carried into later turns. Type
"exit" or press Ctrl+D to leave.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	sessions, err := history.Open(historyPath(cfg))
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer sessions.Close()

	session, err := sessions.CreateSession(ctx, "cli")
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	pipe := pipeline.New(provider, store, cfg)

	fmt.Println("Film Rehberi'ne hoş geldiniz! Film önerileri için sorularınızı yazın.")
	fmt.Printf("(%d belge yüklendi, çıkmak için \"exit\" yazın)\n\n", store.Count())

	var turns []pipeline.Turn
	for {
		prompt := promptui.Prompt{Label: "Sen"}
		input, err := prompt.Run()
		if err != nil {
			// Ctrl+C or Ctrl+D ends the session.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("Görüşmek üzere!")
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "çıkış" {
			fmt.Println("Görüşmek üzere!")
			return nil
		}

		answer, intent := runChatTurn(ctx, pipe, input, turns)
		fmt.Printf("\nAsistan: %s\n\n", answer)

		turns = append(turns, pipeline.Turn{Role: "user", Content: input})
		turns = append(turns, pipeline.Turn{Role: "assistant", Content: answer})

		if err := sessions.AppendTurn(ctx, session.ID, "user", input, string(intent)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record turn: %v\n", err)
		}
		if err := sessions.AppendTurn(ctx, session.ID, "assistant", answer, string(intent)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record turn: %v\n", err)
		}
	}
}

// runChatTurn executes one pipeline turn. Pipeline failures become chat text
// so the session keeps going.
func runChatTurn(ctx context.Context, pipe *pipeline.Pipeline, input string, turns []pipeline.Turn) (string, pipeline.Intent) {
	st, err := pipe.Ask(ctx, input, turns)
	if err != nil {
		return fmt.Sprintf("Hata: %v", err), st.Intent
	}
	return st.FinalText(), st.Intent
}
