package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "finpsych",
	Short: "Psychometric creditworthiness scoring",
	Long:  "Scores financial-psychology questionnaires into a creditworthiness index, 5Cs breakdown and risk band, and checks answers for inconsistent or gamed responding.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
