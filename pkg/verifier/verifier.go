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

package verifier

import (
	"context"
	"net/http"

	"github.com/loamly/attribution-edge/pkg/classifier"
	"github.com/loamly/attribution-edge/pkg/httpsig"
)

// Method identifies how a verification outcome was reached.
type Method string

// Verification methods, in decreasing order of trust.
const (
	MethodRFC9421         Method = "rfc9421"
	MethodProbabilisticUA Method = "probabilistic_ua"
	MethodNone            Method = "none"
)

// Outcome error strings. These travel verbatim into the ingest event's
// verification_error field.
const (
	ErrMissingSignatureHeaders = "missing_signature_headers"
	ErrKeyNotFound             = "key_not_found"
	ErrDecodeFailure           = "decode_failure"
	ErrSignatureMismatch       = "signature_mismatch"
	ErrDirectoryUnreachable    = "directory_unreachable"
)

// Outcome is the result of running the tiered verification for one
// request. Exactly one Outcome exists per verified request; once Method
// is rfc9421 it is never downgraded.
type Outcome struct {
	// Valid is true only when a signature cryptographically verified.
	Valid bool

	// Method records which strategy produced this outcome.
	Method Method

	// KeyID, Created and Expires echo the signature metadata when a
	// signature was verified. Created/Expires are Unix seconds, 0 = unset.
	KeyID   string
	Created int64
	Expires int64

	// Error carries a short machine-readable reason when Valid is false.
	Error string
}

// Input bundles everything a strategy may need: the immutable request
// snapshot, the raw signature headers, the parsed metadata, and the
// classifier's verdict.
type Input struct {
	// Request is a detached reconstruction of the original request. It is
	// never the live request and strategies must not mutate it.
	Request *http.Request

	// RawSignature and RawSignatureInput are the header values as sent.
	RawSignature      string
	RawSignatureInput string

	// SigInput is the parsed Signature-Input metadata; Empty() when the
	// request carried none.
	SigInput httpsig.SignatureInput

	// Classification is the header classifier's verdict.
	Classification classifier.Classification
}

// HasSignatureHeaders reports whether the request carried both signature
// headers.
func (in *Input) HasSignatureHeaders() bool {
	return in.RawSignature != "" && in.RawSignatureInput != ""
}

// Strategy is one verification tier. Applies is a cheap precondition
// check; Verify must never panic or return a Go error — every internal
// failure is folded into the Outcome so nothing propagates past the tier
// boundary.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Applies reports whether this tier's preconditions hold.
	Applies(in *Input) bool

	// Verify runs the tier and returns its outcome.
	Verify(ctx context.Context, in *Input) Outcome
}

// SignatureVerifier verifies a full HTTP request signature against a
// resolved public key. Satisfied by RFC9421Verifier.
type SignatureVerifier interface {
	VerifyHTTPRequest(req *http.Request, pubKey interface{}) error
}
