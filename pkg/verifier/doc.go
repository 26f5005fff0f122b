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

// Package verifier establishes how much trust to place in a request's
// claim of coming from an AI agent, through three escalating strategies.
//
// # Tiers
//
// Each tier is a Strategy selected by precondition and attempted only
// when the previous tier did not produce a valid signature:
//
//	store := keystore.New(keys)
//	tiers := []verifier.Strategy{
//	    verifier.NewDirectoryVerifier(directoryURL, ttl),
//	    verifier.NewEmbeddedVerifier(store),
//	    verifier.NewHeuristicVerifier(),
//	}
//	tv := verifier.NewTieredVerifier(tiers)
//	outcome, produced := tv.Verify(ctx, input)
//
// Tier 1 (DirectoryVerifier) resolves the signer's key from its published
// JWKS directory and delegates to SAGE's RFC 9421 engine. The directory
// is remote infrastructure: unreachable means fall through, not fail.
//
// Tier 2 (EmbeddedVerifier) is fully offline. It looks the keyid up in
// the embedded allow-list, rebuilds the exact signature base with
// pkg/httpsig, and checks the Ed25519 signature directly.
//
// Tier 3 (HeuristicVerifier) applies when the User-Agent matched a known
// assistant but no signature verified; it records probabilistic_ua
// attribution with valid=false.
//
// # Outcome discipline
//
// A tier's internal failures are folded into Outcome.Error strings
// (key_not_found, decode_failure, signature_mismatch, ...) — nothing in
// this package returns a Go error to the pipeline, and nothing panics on
// attacker-controlled input. When no tier applies and forward-unsigned is
// off, Verify reports that no outcome exists and the pipeline suppresses
// the event entirely.
package verifier
