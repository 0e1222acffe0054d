package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"recipebox/config"
)

var backendFlag string

var rootCmd = &cobra.Command{
	Use:   "recipebox",
	Short: "Recipe manager with interchangeable storage backends",
	Long: `Recipebox manages a recipe collection as cards in the terminal,
backed by postgres, sqlite, a local file, redis, or a remote recipebox
server. Select the backend with --backend or RECIPEBOX_BACKEND.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "",
		"storage backend (postgres|sqlite|file|redis|http)")
}

// loadConfig reads the environment config, letting the --backend flag
// override the selected backend.
func loadConfig() (*config.Config, error) {
	if backendFlag != "" {
		os.Setenv("RECIPEBOX_BACKEND", backendFlag)
	}
	return config.Load()
}
