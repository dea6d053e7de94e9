package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"labstock/internal/snapshot"
)

var undoSession string

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last applied command",
	Long:  `Restores the items touched by the last applied command in the session. One level only; a second undo fails until another command applies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStack(false)
		if err != nil {
			return err
		}
		defer st.Close()

		out, err := st.engine.Undo(context.Background(), undoSession)
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			return fmt.Errorf("nothing to undo")
		}
		if err != nil {
			return err
		}

		fmt.Println(out.Message)
		for _, it := range out.Items {
			fmt.Printf("  %s: %g %s\n", it.Name, it.Quantity, it.Unit)
		}
		return nil
	},
}

func init() {
	undoCmd.Flags().StringVar(&undoSession, "session", snapshot.DefaultSession, "undo session key")
	rootCmd.AddCommand(undoCmd)
}
