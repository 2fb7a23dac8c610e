package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filmrehberi/filmrehberi/internal/history"
	"github.com/filmrehberi/filmrehberi/internal/pipeline"
	"github.com/filmrehberi/filmrehberi/internal/server"
)

var (
	servePort     int
	serveAllowAll bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat server",
	Long: `Starts an HTTP server exposing the assistant over a JSON chat endpoint
and a WebSocket. Sessions are stored in a local SQLite database so
conversations survive restarts.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveAllowAll, "allow-all-origins", false, "allow cross-origin requests from any host")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	allowAll := cfg.Server.AllowAll || serveAllowAll

	store, err := openStore(context.Background(), cfg)
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

	pipe := pipeline.New(provider, store, cfg)
	srv := server.New(server.Config{
		Port:     port,
		AllowAll: allowAll,
	}, pipe, sessions)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "filmrehberi server v%s starting on port %d\n", Version, port)
	fmt.Fprintf(os.Stderr, "  History: %s\n", historyPath(cfg))
	fmt.Fprintf(os.Stderr, "  Documents indexed: %d\n", store.Count())

	return srv.Start()
}
