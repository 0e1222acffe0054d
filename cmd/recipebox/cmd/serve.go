package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recipebox/internal/backend"
	"recipebox/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recipe HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := backend.Open(cfg)
		if err != nil {
			return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
		}
		defer func() { _ = st.Close() }()

		srv := server.New(cfg.ListenAddr(), st)

		errChan := make(chan error, 1)
		go func() {
			log.Printf("Serving recipes from %s backend on %s", cfg.Backend, cfg.ListenAddr())
			errChan <- srv.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errChan:
			if err != nil {
				return err
			}
		case sig := <-quit:
			log.Printf("Received signal: %v", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
