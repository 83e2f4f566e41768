package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jstrzelecki/filesearch/internal/audit"
	"github.com/jstrzelecki/filesearch/internal/config"
	"github.com/jstrzelecki/filesearch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromViper()
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	var trail *audit.Trail
	if cfg.AuditEnabled {
		t, err := audit.Open(cfg.AuditPath)
		if err != nil {
			return fmt.Errorf("cannot open audit trail: %w", err)
		}
		defer t.Close()
		trail = t
		logger.Info("audit trail enabled", "path", cfg.AuditPath)
	}

	srv, err := server.New(cfg, logger, trail)
	if err != nil {
		return err
	}

	color.Green("🚀 File Search API nasłuchuje na http://%s", cfg.Addr())
	color.Cyan("🔍 API gotowe do wyszukiwania!")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
