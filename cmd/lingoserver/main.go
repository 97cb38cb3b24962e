// Command lingoserver serves the web front of the language learning client.
//
//	lingoserver serve -c config.yaml
//	lingoserver token --actor user-123
package main

import (
	"context"
	"os"

	"cattlecloud.net/go/webguard/internal/config"
	"cattlecloud.net/go/webguard/logs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath string
		cfg        *config.Config
		logger     *zap.Logger
	)

	root := &cobra.Command{
		Use:          "lingoserver",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			logger, err = logs.Setup(cfg.Environment)
			return err
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (environment only when empty)")

	root.AddCommand(
		serveCommand(func() (*config.Config, *zap.Logger) { return cfg, logger }),
		tokenCommand(func() *config.Config { return cfg }),
	)

	err := root.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		logs.Error(context.Background(), "exiting", zap.Error(err))
		os.Exit(1)
	}
}
