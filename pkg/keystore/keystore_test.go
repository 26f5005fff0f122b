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
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T, kid string) Key {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return Key{KID: kid, Public: pub}
}

func TestLookup(t *testing.T) {
	now := time.Now()
	k := newTestKey(t, "active")
	store := New([]Key{k})

	got, err := store.Lookup("active", now)
	require.NoError(t, err)
	assert.Equal(t, k.Public, got.Public)

	_, err = store.Lookup("unknown", now)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLookupValidityWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name      string
		notBefore *time.Time
		expiresAt *time.Time
		usable    bool
	}{
		{"unconstrained", nil, nil, true},
		{"expired one second ago", nil, &past, false},
		{"expires one second from now", nil, &future, true},
		{"not yet valid", &future, nil, false},
		{"became valid one second ago", &past, nil, true},
		{"inside window", &past, &future, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := newTestKey(t, "k")
			k.NotBefore = tt.notBefore
			k.ExpiresAt = tt.expiresAt
			store := New([]Key{k})

			_, err := store.Lookup("k", now)
			if tt.usable {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrKeyNotFound)
			}
		})
	}
}

func TestLookupWindowBoundariesInclusive(t *testing.T) {
	now := time.Unix(1735689600, 0)
	k := newTestKey(t, "k")
	k.NotBefore = &now
	k.ExpiresAt = &now
	store := New([]Key{k})

	_, err := store.Lookup("k", now)
	assert.NoError(t, err, "notBefore <= now <= expiresAt must be usable at the exact bounds")
}

func TestDuplicateKIDLastWins(t *testing.T) {
	a := newTestKey(t, "dup")
	b := newTestKey(t, "dup")
	store := New([]Key{a, b})
	require.Equal(t, 1, store.Len())

	got, err := store.Lookup("dup", time.Now())
	require.NoError(t, err)
	assert.Equal(t, b.Public, got.Public)
}

func TestDefaultKeys(t *testing.T) {
	keys, err := DefaultKeys()
	require.NoError(t, err)
	require.NotEmpty(t, keys)
	for _, k := range keys {
		assert.NotEmpty(t, k.KID)
		assert.Len(t, []byte(k.Public), ed25519.PublicKeySize)
	}
}
