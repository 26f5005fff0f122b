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

package server

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/loamly/attribution-edge/pkg/classifier"
	"github.com/loamly/attribution-edge/pkg/cookie"
	"github.com/loamly/attribution-edge/pkg/metrics"
)

// Handler is the edge entry point. The origin pass-through is the
// primary path and never waits on verification: classification and
// cookie minting happen synchronously, everything else runs detached.
type Handler struct {
	proxy      *httputil.ReverseProxy
	classifier *classifier.Classifier
	minter     *cookie.Minter
	pipeline   *Pipeline
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewHandler builds the edge handler proxying to origin.
func NewHandler(origin *url.URL, cls *classifier.Classifier, minter *cookie.Minter, pipeline *Pipeline, m *metrics.Metrics, log zerolog.Logger) *Handler {
	proxy := httputil.NewSingleHostReverseProxy(origin)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("origin fetch failed")
		w.WriteHeader(http.StatusBadGateway)
	}

	return &Handler{
		proxy:      proxy,
		classifier: cls,
		minter:     minter,
		pipeline:   pipeline,
		metrics:    m,
		log:        log,
	}
}

// ServeHTTP classifies, schedules the background continuation, attaches
// the attribution cookie when the request qualifies, and forwards to the
// origin. The response is returned as soon as the origin responds —
// verification outcome never influences it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.metrics.RequestsTotal.Inc()

	cls := h.classifier.Classify(r.Header)
	snap := snapshotRequest(r)

	if cls.IsAgentFetch {
		h.metrics.AgentFetchTotal.WithLabelValues(assistantLabel(cls)).Inc()
	}

	// Verification runs concurrently with the origin fetch.
	h.pipeline.Schedule(snap, cls)

	if cookie.Qualifies(r.Method, cls) {
		if c, err := h.minter.Mint(cls.Assistant); err == nil {
			http.SetCookie(w, c)
			h.metrics.CookiesMinted.WithLabelValues(string(cls.Assistant)).Inc()
		} else {
			// The response is never blocked on the cookie.
			h.log.Warn().Err(err).Msg("cookie minting failed")
		}
	}

	h.proxy.ServeHTTP(w, r)
}

func assistantLabel(cls classifier.Classification) string {
	if cls.Assistant == "" {
		return "unknown"
	}
	return string(cls.Assistant)
}
