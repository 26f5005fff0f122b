// Copyright (C) 2026 Loamly
//
// This file is part of attribution-edge.
//
// attribution-edge is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// attribution-edge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with attribution-edge.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/loamly/attribution-edge/pkg/classifier"
	"github.com/loamly/attribution-edge/pkg/config"
	"github.com/loamly/attribution-edge/pkg/cookie"
	"github.com/loamly/attribution-edge/pkg/ingest"
	"github.com/loamly/attribution-edge/pkg/keystore"
	"github.com/loamly/attribution-edge/pkg/logging"
	"github.com/loamly/attribution-edge/pkg/metrics"
	"github.com/loamly/attribution-edge/pkg/server"
	"github.com/loamly/attribution-edge/pkg/verifier"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the attribution edge proxy",
	Long: `Run the edge proxy and the admin listener.

Required environment:
  LOAMLY_WORKSPACE_ID    workspace identifier sent with every event
  LOAMLY_WORKSPACE_KEY   ingest API key
  LOAMLY_INGEST_URL      ingest endpoint for attribution events
  LOAMLY_ORIGIN_URL      upstream origin to proxy to

Optional environment:
  LOAMLY_LISTEN_ADDR        proxy listen address (default :8080)
  LOAMLY_ADMIN_ADDR         metrics/health listen address (default :9090)
  LOAMLY_INGEST_TIMEOUT     event POST timeout (default 5s)
  LOAMLY_FORWARD_UNSIGNED   emit events for unverifiable requests (default false)
  LOAMLY_KEY_DIRECTORY_URL  JWKS key directory; empty disables the tier
  LOAMLY_KEY_DIRECTORY_TTL  key directory cache lifetime (default 10m)
  LOAMLY_LOG_LEVEL          zerolog level (default info)
  LOAMLY_LOG_PRETTY         console log format (default false)`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty)

	origin, err := url.Parse(cfg.OriginURL)
	if err != nil {
		return fmt.Errorf("parse origin url: %w", err)
	}
	if origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("origin url %q must be absolute", cfg.OriginURL)
	}

	keys, err := keystore.DefaultKeys()
	if err != nil {
		return fmt.Errorf("load embedded keys: %w", err)
	}

	tiers := []verifier.Strategy{
		verifier.NewDirectoryVerifier(cfg.KeyDirectoryURL, cfg.KeyDirectoryTTL,
			verifier.WithLogger(log)),
		verifier.NewEmbeddedVerifier(keystore.New(keys)),
		verifier.NewHeuristicVerifier(),
	}
	tiered := verifier.NewTieredVerifier(tiers,
		verifier.WithForwardUnsigned(cfg.ForwardUnsigned),
		verifier.WithTieredLogger(log),
	)

	emitter := ingest.NewClient(cfg.IngestURL, cfg.WorkspaceKey,
		ingest.WithTimeout(cfg.IngestTimeout),
		ingest.WithLogger(log),
	)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	pipeline := server.NewPipeline(cfg.WorkspaceID, tiered, emitter, m, log)
	handler := server.NewHandler(origin, classifier.New(), cookie.NewMinter(), pipeline, m, log)

	edgeSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	adminSrv := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           server.NewAdminMux(registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.AdminAddr).Msg("starting admin listener")
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("admin listener error")
		}
	}()
	go func() {
		log.Info().
			Str("addr", cfg.ListenAddr).
			Str("origin", origin.String()).
			Msg("starting edge proxy")
		if err := edgeSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("edge proxy error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := edgeSrv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("edge proxy shutdown")
	}
	if err := adminSrv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("admin listener shutdown")
	}

	// Drain in-flight attribution tasks before exiting.
	pipeline.Wait()

	return nil
}
