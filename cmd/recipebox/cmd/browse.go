package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/internal/app"
	"recipebox/internal/backend"
	"recipebox/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and manage recipes in the terminal",
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

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ctrl := app.NewController(st)
		if err := ctrl.Start(ctx); err != nil {
			return fmt.Errorf("start controller: %w", err)
		}
		defer ctrl.Stop()

		return tui.Run(ctrl)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
