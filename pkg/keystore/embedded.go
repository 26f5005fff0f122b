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

package keystore

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"time"
)

// embeddedKey is the JWK-shaped source form of an allow-list entry: an
// OKP/Ed25519 public key as published in the signer's key directory,
// snapshotted here so Tier 2 works without any network access.
type embeddedKey struct {
	kid       string
	x         string // base64url raw public key
	notBefore string // RFC 3339, empty = unconstrained
	expiresAt string // RFC 3339, empty = unconstrained
}

// embeddedKeys is the shipped allow-list. Entries are snapshots of the
// assistant publishers' signing keys; rotation lands here as a new entry
// with a window, never as an in-place edit.
var embeddedKeys = []embeddedKey{
	{
		kid: "E6vuoEcQQo53rXMXFPoz2jZqd_B88jMCKT5YQAT2ecU",
		x:   "E6vuoEcQQo53rXMXFPoz2jZqd_B88jMCKT5YQAT2ecU",
	},
	{
		kid:       "gVAaZfNKvez6N8neaMS60bIEhn4lKOJG5tvD8ctRoe4",
		x:         "gVAaZfNKvez6N8neaMS60bIEhn4lKOJG5tvD8ctRoe4",
		notBefore: "2025-06-01T00:00:00Z",
	},
	{
		kid:       "frnMPMXDIwzPwdGehuc_03zIlREgnVsn1QkV9L7qOJo",
		x:         "frnMPMXDIwzPwdGehuc_03zIlREgnVsn1QkV9L7qOJo",
		notBefore: "2024-01-01T00:00:00Z",
		expiresAt: "2025-12-31T23:59:59Z",
	},
}

// DefaultKeys decodes the embedded allow-list. It fails only on a
// corrupted table, which is a build defect rather than a runtime
// condition.
func DefaultKeys() ([]Key, error) {
	keys := make([]Key, 0, len(embeddedKeys))
	for _, e := range embeddedKeys {
		raw, err := base64.RawURLEncoding.DecodeString(e.x)
		if err != nil {
			return nil, fmt.Errorf("embedded key %s: %w", e.kid, err)
		}
		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("embedded key %s: bad length %d", e.kid, len(raw))
		}
		k := Key{KID: e.kid, Public: ed25519.PublicKey(raw)}
		if e.notBefore != "" {
			t, err := time.Parse(time.RFC3339, e.notBefore)
			if err != nil {
				return nil, fmt.Errorf("embedded key %s notBefore: %w", e.kid, err)
			}
			k.NotBefore = &t
		}
		if e.expiresAt != "" {
			t, err := time.Parse(time.RFC3339, e.expiresAt)
			if err != nil {
				return nil, fmt.Errorf("embedded key %s expiresAt: %w", e.kid, err)
			}
			k.ExpiresAt = &t
		}
		keys = append(keys, k)
	}
	return keys, nil
}
