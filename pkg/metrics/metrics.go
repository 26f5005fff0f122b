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

// Package metrics exposes the edge's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the pipeline touches. One instance per
// process, registered once.
type Metrics struct {
	RequestsTotal    prometheus.Counter
	AgentFetchTotal  *prometheus.CounterVec
	VerifyTotal      *prometheus.CounterVec
	EventsEmitted    prometheus.Counter
	EventsSuppressed prometheus.Counter
	IngestFailures   prometheus.Counter
	CookiesMinted    *prometheus.CounterVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "requests_total",
			Help:      "Requests seen by the edge handler.",
		}),
		AgentFetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "agent_fetch_total",
			Help:      "Requests classified as agent fetches, by assistant.",
		}, []string{"assistant"}),
		VerifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "verification_total",
			Help:      "Verification outcomes by method and result.",
		}, []string{"method", "result"}),
		EventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "events_emitted_total",
			Help:      "Attribution events delivered to the ingest service.",
		}),
		EventsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "events_suppressed_total",
			Help:      "Requests that terminated without an attribution event.",
		}),
		IngestFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "ingest_failures_total",
			Help:      "Attribution events that failed delivery.",
		}),
		CookiesMinted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attribution",
			Name:      "cookies_minted_total",
			Help:      "Attribution cookies attached to responses, by assistant.",
		}, []string{"assistant"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.AgentFetchTotal,
		m.VerifyTotal,
		m.EventsEmitted,
		m.EventsSuppressed,
		m.IngestFailures,
		m.CookiesMinted,
	)
	return m
}
