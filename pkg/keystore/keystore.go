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
	"errors"
	"time"
)

// ErrKeyNotFound is returned when a key id is unknown or outside its
// validity window. The two cases are deliberately indistinguishable: the
// lookup fails closed either way.
var ErrKeyNotFound = errors.New("key not found")

// Key is one entry of the embedded allow-list: an Ed25519 public key with
// an optional validity window.
type Key struct {
	// KID is the key id the signer references in Signature-Input.
	KID string

	// Public is the raw 32-byte Ed25519 public key.
	Public ed25519.PublicKey

	// NotBefore and ExpiresAt bound the validity window. A nil bound is
	// unconstrained on that side.
	NotBefore *time.Time
	ExpiresAt *time.Time
}

// usableAt reports whether the key is within its validity window at t.
// Bounds are inclusive on both sides.
func (k Key) usableAt(t time.Time) bool {
	if k.NotBefore != nil && t.Before(*k.NotBefore) {
		return false
	}
	if k.ExpiresAt != nil && t.After(*k.ExpiresAt) {
		return false
	}
	return true
}

// Store is the process-wide, read-only key table. It is built once at
// startup and safe for concurrent use without synchronization.
type Store struct {
	keys map[string]Key
}

// New builds a Store from a key list. Later entries with a duplicate KID
// replace earlier ones.
func New(keys []Key) *Store {
	m := make(map[string]Key, len(keys))
	for _, k := range keys {
		m[k.KID] = k
	}
	return &Store{keys: m}
}

// Lookup returns the key for kid if it exists and is usable at now.
// An absent id or an out-of-window key both return ErrKeyNotFound — a
// key past expiry is never returned, even if it was usable earlier.
func (s *Store) Lookup(kid string, now time.Time) (Key, error) {
	k, ok := s.keys[kid]
	if !ok {
		return Key{}, ErrKeyNotFound
	}
	if !k.usableAt(now) {
		return Key{}, ErrKeyNotFound
	}
	return k, nil
}

// Len returns the number of entries in the table.
func (s *Store) Len() int {
	return len(s.keys)
}
