package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "filmrehberi",
	Short: "Turkish movie recommendation assistant with semantic search",
	Long: `Film Rehberi is a conversational movie assistant. It classifies each
message as film-related or general chat, retrieves matching movie
descriptions and user reviews from a local vector index, and answers
in Turkish grounded on what it found.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".filmrehberi.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
