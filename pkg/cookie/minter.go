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

// Package cookie mints the short-lived cross-context attribution cookie
// set on responses to qualifying agent fetches. The cookie lets the
// browser-side tracker correlate a later human visit with the agent
// fetch that preceded it; nothing is persisted server-side.
package cookie

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/loamly/attribution-edge/pkg/classifier"
)

// Name is the attribution cookie name.
const Name = "__loamly_ai_ref"

// TTL is the cookie lifetime. Five minutes covers the gap between an
// agent fetching a page and the user clicking through.
const TTL = 300 * time.Second

// Minter creates attribution cookies.
type Minter struct {
	now  func() time.Time
	rand func(b []byte) error
}

// NewMinter creates a Minter using the system clock and crypto/rand.
func NewMinter() *Minter {
	return &Minter{
		now: time.Now,
		rand: func(b []byte) error {
			_, err := rand.Read(b)
			return err
		},
	}
}

// Mint produces the attribution cookie for a resolved assistant:
// value "<assistant>:<epoch-ms>:<8-hex>", Path=/, Max-Age=300,
// SameSite=Lax, Secure. It errors only when the random source is
// unavailable; callers drop the cookie and return the response anyway.
func (m *Minter) Mint(assistant classifier.Assistant) (*http.Cookie, error) {
	var nonce [4]byte
	if err := m.rand(nonce[:]); err != nil {
		return nil, fmt.Errorf("mint nonce: %w", err)
	}

	value := fmt.Sprintf("%s:%d:%s", assistant, m.now().UnixMilli(), hex.EncodeToString(nonce[:]))
	return &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   true,
	}, nil
}

// Qualifies reports whether a request/classification pair should receive
// an attribution cookie: GET, agent fetch, assistant resolved.
func Qualifies(method string, cls classifier.Classification) bool {
	return method == http.MethodGet && cls.IsAgentFetch && cls.Assistant != ""
}
