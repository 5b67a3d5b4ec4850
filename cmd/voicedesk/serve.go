package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite"
	"github.com/matiasleandrokruk/voicedesk/internal/server"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			logger := cfg.Log.NewLogger(a.errOut)

			db, err := sqlite.OpenMigrated(cfg.Database.Path)
			if err != nil {
				return err
			}
			srv, err := server.NewServer(db, cfg, server.DefaultTimeouts(), logger)
			if err != nil {
				_ = db.Close()
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start(ctx) }()

			var startErr error
			select {
			case startErr = <-errCh:
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return errors.Join(startErr, srv.Shutdown(shutdownCtx))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the configured HTTP port")
	return cmd
}
