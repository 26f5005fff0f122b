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

package ingest

import (
	"strings"
	"time"

	"github.com/loamly/attribution-edge/pkg/classifier"
	"github.com/loamly/attribution-edge/pkg/verifier"
)

// Event is the attribution payload POSTed to the ingest service. It is
// constructed once per request and sent once, best-effort.
type Event struct {
	WorkspaceID       string  `json:"workspace_id"`
	LandingPage       string  `json:"landing_page"`
	Referrer          string  `json:"referrer"`
	UserAgent         string  `json:"user_agent"`
	Timestamp         string  `json:"timestamp"`
	SignatureVerified bool    `json:"signature_verified"`
	SignatureAgent    *string `json:"signature_agent"`
	SignatureKeyID    *string `json:"signature_key_id"`
	SignatureCreated  *string `json:"signature_created"`
	SignatureExpires  *string `json:"signature_expires"`
	VerificationMeth  string  `json:"verification_method"`
	VerificationError *string `json:"verification_error"`
	Country           *string `json:"country"`

	// IPAddress is passed through for upstream hashing only; this edge
	// never stores or logs it.
	IPAddress *string `json:"ip_address,omitempty"`
}

// EventParams collects the request-scoped facts an Event is built from.
type EventParams struct {
	WorkspaceID string
	LandingPage string
	Referrer    string
	UserAgent   string
	Now         time.Time

	Classification classifier.Classification
	Outcome        verifier.Outcome

	// SignatureAgentHeader is the raw Signature-Agent value, possibly
	// quoted, possibly empty.
	SignatureAgentHeader string

	Country   string
	IPAddress string
}

// BuildEvent flattens classification, verification, and request metadata
// into the wire payload.
func BuildEvent(p EventParams) Event {
	method := string(p.Outcome.Method)
	if method == "" {
		method = string(verifier.MethodNone)
	}

	ev := Event{
		WorkspaceID:       p.WorkspaceID,
		LandingPage:       p.LandingPage,
		Referrer:          p.Referrer,
		UserAgent:         p.UserAgent,
		Timestamp:         p.Now.UTC().Format(time.RFC3339),
		SignatureVerified: p.Outcome.Valid,
		SignatureAgent:    resolveSignatureAgent(p.SignatureAgentHeader, p.Classification.Assistant),
		SignatureKeyID:    optional(p.Outcome.KeyID),
		SignatureCreated:  isoTime(p.Outcome.Created),
		SignatureExpires:  isoTime(p.Outcome.Expires),
		VerificationMeth:  method,
		VerificationError: optional(p.Outcome.Error),
		Country:           optional(p.Country),
		IPAddress:         optional(p.IPAddress),
	}
	return ev
}

// resolveSignatureAgent prefers the quote-stripped Signature-Agent header
// and falls back to the matched assistant's canonical origin.
func resolveSignatureAgent(header string, assistant classifier.Assistant) *string {
	if v := strings.Trim(header, `"`); v != "" {
		return &v
	}
	if origin := classifier.Origin(assistant); origin != "" {
		return &origin
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isoTime(unix int64) *string {
	if unix == 0 {
		return nil
	}
	s := time.Unix(unix, 0).UTC().Format(time.RFC3339)
	return &s
}
