package cmd

import (
	"github.com/spf13/cobra"

	"labstock/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize labstock configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure labstock and generates a .labstock.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
