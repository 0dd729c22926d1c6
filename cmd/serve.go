package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ledgerapi/config"
	"ledgerapi/database"
	"ledgerapi/logging"
	"ledgerapi/middleware"
	"ledgerapi/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if port != "" {
			if !strings.HasPrefix(port, ":") {
				port = ":" + port
			}
			cfg.Server.Port = port
		}
		config.PrintConfig()

		if err := database.Init(cfg); err != nil {
			return err
		}
		middleware.InitJWT(cfg)

		srv := &http.Server{
			Addr:              cfg.Server.Port,
			Handler:           router.SetupRouter(cfg, database.DB),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logging.Component("server")
		errCh := make(chan error, 1)
		go func() {
			log.Infof("listening on %s (swagger at /swagger/index.html)", cfg.Server.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "listen port, e.g. 8080 or :8080")
}
