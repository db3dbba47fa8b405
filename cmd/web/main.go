package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/rankboard/pkg/runtime/terminal/export"
	"github.com/de-tools/rankboard/pkg/server"
	"github.com/de-tools/rankboard/pkg/services/config"
	"github.com/de-tools/rankboard/pkg/services/institute"
	"github.com/de-tools/rankboard/pkg/services/registry"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for RankBoard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	logger, err := config.NewLogger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	source, err := registry.NewDefaultRegistry().Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer source.Close()

	branding, err := config.NewBrandingRegistry(cfg.Branding.File)
	if err != nil {
		return fmt.Errorf("failed to load branding overrides: %w", err)
	}
	overrides, _ := branding.GetInstitutes(ctx)
	logger.Info().
		Str("driver", string(cfg.Store.Driver)).
		Strs("branding_overrides", overrides).
		Msg("record store ready")

	explorer := institute.NewExplorer(source.Store, branding, institute.Settings{
		Insights: cfg.Insights,
		Layout:   cfg.Layout,
	})

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Explorer: explorer,
			Page:     export.PageConfigFromLayout(cfg.Layout),
		},
	})
	return api.Start()
}
