package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "labstock/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing inventory tools so AI agents can apply commands, list stock, and undo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStack(false)
		if err != nil {
			return err
		}
		defer st.Close()

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "labstock MCP server started on stdio (db=%s)\n", st.cfg.DBPath)

		srv := mcpserver.NewServer(st.engine, st.store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
