package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	daemon "github.com/sevlyar/go-daemon"
	"github.com/spf13/cobra"

	"github.com/weathermcp/weathermcp/internal/config"
	"github.com/weathermcp/weathermcp/internal/server"
	"github.com/weathermcp/weathermcp/internal/weatherxm"
)

var (
	daemonMode bool
	configPath string
	transport  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weathermcp",
		Short: "WeatherXM MCP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if daemonMode {
				cntxt := &daemon.Context{
					PidFileName: "weathermcp.pid",
					PidFilePerm: 0644,
				}
				child, err := cntxt.Reborn()
				if err != nil {
					return err
				}
				if child != nil {
					return nil
				}
				defer cntxt.Release()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}

			// Logs go to stderr; stdout belongs to the stdio transport.
			logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

			client, err := weatherxm.New(weatherxm.Config{
				BaseURL: cfg.Upstream.BaseURL,
				APIKey:  cfg.Upstream.APIKey,
				Timeout: cfg.Upstream.Timeout,
			}, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Options{Config: cfg, Client: client, Logger: logger})
			return srv.Run(ctx)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&daemonMode, "daemon", false, "run in background")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/weathermcp.yaml", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&transport, "transport", "", "override transport (stdio or sse)")
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
