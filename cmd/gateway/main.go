package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/testdeck/session-gateway/backend"
	"github.com/testdeck/session-gateway/internal/config"
	"github.com/testdeck/session-gateway/tokens"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gateway",
		Short: "Session gateway for the test-management admin backend",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	root.AddCommand(serveCmd())
	root.AddCommand(loginCmd())
	root.AddCommand(logoutCmd())
	root.AddCommand(whoamiCmd())
	return root
}

func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("ENV") == "" || os.Getenv("ENV") == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func credentialStore(cfg config.Config) (*tokens.FileStore, error) {
	return tokens.NewFileStore(filepath.Join(cfg.GetDataFolder(), "credentials.json"))
}

func backendClient(cfg config.Config) (*backend.Client, error) {
	return backend.New(cfg.GetBackendBaseURL())
}
