package cmd

import (
	"github.com/spf13/cobra"

	"github.com/filmrehberi/filmrehberi/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize filmrehberi configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a provider and models, and writes a .filmrehberi.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
