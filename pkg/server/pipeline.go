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
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/loamly/attribution-edge/pkg/classifier"
	"github.com/loamly/attribution-edge/pkg/httpsig"
	"github.com/loamly/attribution-edge/pkg/ingest"
	"github.com/loamly/attribution-edge/pkg/metrics"
	"github.com/loamly/attribution-edge/pkg/verifier"
)

// State names the pipeline stages. Each request visits every state at
// most once; EMITTED and SUPPRESSED are terminal.
type State string

// Pipeline states.
const (
	StateReceived     State = "RECEIVED"
	StateClassified   State = "CLASSIFIED"
	StatePassthrough  State = "PASSTHROUGH"
	StateParsed       State = "PARSED"
	StateVerified     State = "VERIFIED"
	StatePayloadBuilt State = "PAYLOAD_BUILT"
	StateEmitted      State = "EMITTED"
	StateSuppressed   State = "SUPPRESSED"
)

// backgroundDeadline bounds the whole detached task. There is no
// cancellation path once verification begins; the deadline guarantees it
// still terminates.
const backgroundDeadline = 10 * time.Second

// Pipeline runs the verification-and-emission continuation for one
// request. It is stateless across invocations; every run gets its own
// Snapshot and never shares data with concurrent runs.
type Pipeline struct {
	workspaceID string
	verifier    *verifier.TieredVerifier
	emitter     *ingest.Client
	metrics     *metrics.Metrics
	log         zerolog.Logger

	wg sync.WaitGroup
}

// NewPipeline wires the background continuation.
func NewPipeline(workspaceID string, tv *verifier.TieredVerifier, emitter *ingest.Client, m *metrics.Metrics, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		workspaceID: workspaceID,
		verifier:    tv,
		emitter:     emitter,
		metrics:     m,
		log:         log,
	}
}

// Schedule detaches the continuation for a classified request. The
// caller returns the origin response without waiting; the hosting
// platform is expected to let the task run to completion, but a killed
// instance dropping one event is acceptable.
func (p *Pipeline) Schedule(snap *Snapshot, cls classifier.Classification) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(snap, cls)
	}()
}

// Wait blocks until all scheduled continuations finish. Used by graceful
// shutdown and tests.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// run executes PARSED → VERIFIED → PAYLOAD_BUILT → EMITTED|SUPPRESSED.
// It never panics and never reports errors upward; terminal states are
// counted and logged.
func (p *Pipeline) run(snap *Snapshot, cls classifier.Classification) {
	ctx, cancel := context.WithTimeout(context.Background(), backgroundDeadline)
	defer cancel()

	log := p.log.With().Str("trace_id", uuid.NewString()).Logger()

	rawInput := snap.Header.Get("Signature-Input")
	in := &verifier.Input{
		Request:           snap.request(),
		RawSignature:      snap.Header.Get("Signature"),
		RawSignatureInput: rawInput,
		SigInput:          httpsig.ParseSignatureInput(rawInput),
		Classification:    cls,
	}

	outcome, produced := p.verifier.Verify(ctx, in)
	if !produced {
		p.metrics.EventsSuppressed.Inc()
		log.Debug().Str("state", string(StateSuppressed)).Msg("no attribution outcome")
		return
	}
	p.metrics.VerifyTotal.WithLabelValues(string(outcome.Method), verifyResult(outcome)).Inc()

	ev := ingest.BuildEvent(ingest.EventParams{
		WorkspaceID:          p.workspaceID,
		LandingPage:          snap.landingPage(),
		Referrer:             snap.Header.Get("Referer"),
		UserAgent:            snap.Header.Get("User-Agent"),
		Now:                  time.Now(),
		Classification:       cls,
		Outcome:              outcome,
		SignatureAgentHeader: snap.Header.Get("Signature-Agent"),
		Country:              country(snap.Header),
		IPAddress:            clientIP(snap.Header, snap.RemoteAddr),
	})

	delivered := p.emitter.Send(ctx, ev)
	if delivered {
		p.metrics.EventsEmitted.Inc()
	} else {
		p.metrics.IngestFailures.Inc()
	}
	log.Debug().
		Str("state", string(StateEmitted)).
		Str("method", string(outcome.Method)).
		Bool("verified", outcome.Valid).
		Bool("delivered", delivered).
		Msg("attribution event emitted")
}

func verifyResult(out verifier.Outcome) string {
	if out.Valid {
		return "valid"
	}
	return "invalid"
}
