package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelsim/expertpanel/internal/config"
	"github.com/panelsim/expertpanel/internal/handler"
	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/internal/report"
	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the panel API over HTTP",
	Long: `serve exposes the expert catalog and panel sessions over HTTP,
including SSE and websocket feeds of discussions in progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store := expert.NewBuiltinStore()
		svc := panelservice.NewService()
		writer := report.NewWriter(cfg.Output.Dir)
		orch := panelservice.NewOrchestrator(store, svc, cfg, writer)

		router := handler.NewRouter(orch)

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		log.Printf("expertpanel API listening on %s", cfg.Server.Addr)
		return runServer(cmd.Context(), srv)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
