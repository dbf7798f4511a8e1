package main

import (
	"fmt"
	"os"
	"recipe/internal/config"
	"recipe/internal/logging"

	"github.com/spf13/cobra"
)

// cfg is populated by the root command before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Recipe API server",
	Long: `Recipe API server: user registration, token authentication and
per-user tags and ingredients.

Configuration is read from the environment (DBType, DBPath, DSN_URL,
HTTP_PORT, TOKEN_HEADER, MIN_PASSWORD_LENGTH, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		parsed, err := config.ParseConfig()
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		cfg = parsed
		logging.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(waitForDBCmd)
	rootCmd.AddCommand(createSuperuserCmd)
	rootCmd.AddCommand(versionCmd)
}
