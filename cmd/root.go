package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "labstock",
	Short: "LLM-driven laboratory inventory",
	Long: `Labstock turns free-form model replies into catalog mutations: it parses
the structured JSON a language model emits, resolves the product mention
against the catalog, plans the change, applies it with single-level undo,
logs stock movements, and raises low-stock alerts.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".labstock.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
