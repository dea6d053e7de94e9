package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"labstock/internal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import catalog items from a CSV file",
	Long: `Loads catalog rows from a CSV file. Rows whose name matches an existing
item update it; everything else is created. Headers accept English and
Spanish column names (name/nombre, quantity/cantidad, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStack(false)
		if err != nil {
			return err
		}
		defer st.Close()

		res, err := importer.ImportFile(context.Background(), st.store, args[0], importer.NewReporter())
		if err != nil {
			return err
		}

		fmt.Printf("Imported %s: %d created, %d updated, %d skipped\n",
			args[0], res.Created, res.Updated, res.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
