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

// Package httpsig implements the RFC 9421 HTTP Message Signature pieces
// the attribution pipeline needs: parsing Signature-Input metadata,
// rebuilding the exact signature base a signer produced, and extracting
// the signature bytes from the Signature header.
//
// # Parsing
//
// ParseSignatureInput works on an attacker-influenced header and never
// returns an error; malformed input parses to the zero value, which the
// verifier treats as an unsigned request:
//
//	si := httpsig.ParseSignatureInput(r.Header.Get("Signature-Input"))
//	if si.Empty() {
//	    // no usable signature metadata
//	}
//
// # Signature base
//
// BuildSignatureBase reproduces the canonical signed string byte for
// byte. The covered-component order from the source text is preserved,
// absent headers are omitted rather than blanked, and the closing
// "@signature-params" line carries the raw parameter text verbatim —
// re-serializing it would change the bytes the signer covered and break
// every verification.
//
// # Signing
//
// SignRequest is the counterpart used by first-party agents and by the
// verifier tests; it guarantees that what it signs is exactly what
// BuildSignatureBase will rebuild on the receiving side.
package httpsig
