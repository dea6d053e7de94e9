package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"labstock/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inventory HTTP server",
	Long:  `Starts the labstock HTTP server exposing the command pipeline, catalog reads, movement history, undo, and a websocket feed of low-stock alerts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStack(true)
		if err != nil {
			return err
		}
		defer st.Close()

		port := servePort
		if port == 0 {
			port = st.cfg.Port
		}

		srv := server.New(server.Config{
			Port:     port,
			AllowAll: st.cfg.AllowAll,
		}, st.engine, st.store, st.movements, st.hub)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "labstock v%s starting on port %d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", st.cfg.DBPath)

		return srv.Start()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
