package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"vidurl/internal/auth"
	"vidurl/internal/extract"
	"vidurl/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Routes:
  GET  /                 liveness
  GET  /extract?xid=URL  resolve a post to its best direct MP4
  POST /extract          same, with {"xid": "URL"} as the body

When api_key is set, /extract requires it in the x-api-key header or query parameter.`,
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func serveRun(cmd *cobra.Command, args []string) error {
	resolver, err := extract.New(cfg)
	if err != nil {
		return fmt.Errorf("creating resolver: %w", err)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if !cfg.AuthEnabled() {
		logger.Warn("no API key configured, /extract is open to everyone")
	}
	logger.WithField("resolver", cfg.Resolver).Debug("resolver ready")

	srv := server.New(server.Options{
		Listen:          cfg.Listen,
		ResolveTimeout:  cfg.ResolveDeadline(),
		ShutdownTimeout: cfg.ShutdownDeadline(),
	}, resolver, auth.NewGate(cfg.APIKey), logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
