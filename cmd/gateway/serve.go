package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/testdeck/session-gateway/guard"
	"github.com/testdeck/session-gateway/internal/metrics"
	"github.com/testdeck/session-gateway/server"
	"github.com/testdeck/session-gateway/session"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "[runServe] loadConfig")
	}

	displayAppname(cfg.GetAppName())

	store, err := credentialStore(cfg)
	if err != nil {
		return errors.Wrap(err, "[runServe] credentialStore")
	}

	api, err := backendClient(cfg)
	if err != nil {
		return errors.Wrap(err, "[runServe] backendClient")
	}

	sess, err := session.New(store, api)
	if err != nil {
		return errors.Wrap(err, "[runServe] session.New")
	}

	navigator := guard.NewNavigator(guard.WithPaths(cfg.GetLoginPath(), cfg.GetLandingPath()))
	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: server.New(cfg, sess, navigator)}

	// The server accepts requests while bootstrap is in flight; the guard
	// answers Loading until it completes.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetRequestTimeout()*2)
		defer cancel()
		if err := sess.Bootstrap(ctx); err != nil {
			log.Error().Err(err).Msg("bootstrap refused")
			return
		}
		outcome := "unauthenticated"
		if sess.IsAuthenticated() {
			outcome = "authenticated"
		}
		metrics.BootstrapTotal.WithLabelValues(outcome).Inc()
	}()

	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	log.Info().Msg("server stopped")
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
