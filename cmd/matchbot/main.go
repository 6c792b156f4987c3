// Command matchbot serves the matchmaking bot's Discord interactions
// endpoint and publishes its slash commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sakemo/matchmake-bot/internal/config"
	"github.com/Sakemo/matchmake-bot/internal/logger"
)

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "matchbot",
	Short: "Survey-based matchmaking bot for Discord communities",
	Long: `matchbot collects survey answers, personality test results and role
metadata from community members and suggests the most compatible member
through an accept/reject browse flow.

Configuration is read from environment variables (see internal/config).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetBool("debug"); v {
			cfg.Log.Debug = true
		}
		log, err = logger.New(cfg.Log.JSON, cfg.Log.Debug)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.AddCommand(newServeCmd(), newRegisterCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
