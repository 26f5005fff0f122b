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
	"crypto"
	"net/http"

	"github.com/sage-x-project/sage/pkg/agent/core/rfc9421"
)

// RFC9421Verifier implements SignatureVerifier using SAGE's RFC 9421 HTTP
// verifier. It is the standards-conformant engine behind the
// key-directory tier.
type RFC9421Verifier struct {
	verifier *rfc9421.HTTPVerifier
	options  *rfc9421.HTTPVerificationOptions
}

// NewRFC9421Verifier creates a new RFC9421Verifier with default options
func NewRFC9421Verifier() *RFC9421Verifier {
	return &RFC9421Verifier{
		verifier: rfc9421.NewHTTPVerifier(),
		options:  rfc9421.DefaultHTTPVerificationOptions(),
	}
}

// VerifyHTTPRequest verifies an HTTP request signature using RFC 9421
func (v *RFC9421Verifier) VerifyHTTPRequest(req *http.Request, pubKey interface{}) error {
	cryptoPubKey, ok := pubKey.(crypto.PublicKey)
	if !ok {
		// Try to use as-is if it's already a valid public key type
		cryptoPubKey = pubKey
	}
	return v.verifier.VerifyRequest(req, cryptoPubKey, v.options)
}
