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
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// DirectoryVerifier is the first tier: it resolves the signer's key from
// its published JWKS directory and delegates full RFC 9421 verification
// to a standards engine. The directory lives on someone else's
// infrastructure, so an unreachable or incomplete directory is an
// expected condition that falls through to the next tier, never an
// exception.
type DirectoryVerifier struct {
	directoryURL string
	client       *http.Client
	sigVerifier  SignatureVerifier
	log          zerolog.Logger

	mu        sync.Mutex
	fetchedAt time.Time
	ttl       time.Duration
	keys      map[string]ed25519.PublicKey
}

// DirectoryOption customizes a DirectoryVerifier.
type DirectoryOption func(*DirectoryVerifier)

// WithHTTPClient overrides the directory fetch client.
func WithHTTPClient(c *http.Client) DirectoryOption {
	return func(v *DirectoryVerifier) { v.client = c }
}

// WithSignatureVerifier overrides the RFC 9421 verification engine.
func WithSignatureVerifier(sv SignatureVerifier) DirectoryOption {
	return func(v *DirectoryVerifier) { v.sigVerifier = sv }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) DirectoryOption {
	return func(v *DirectoryVerifier) { v.log = log }
}

// NewDirectoryVerifier creates the key-directory tier. directoryURL may
// be empty, in which case the tier never applies. ttl bounds how long a
// fetched key set is reused.
func NewDirectoryVerifier(directoryURL string, ttl time.Duration, opts ...DirectoryOption) *DirectoryVerifier {
	v := &DirectoryVerifier{
		directoryURL: directoryURL,
		client:       &http.Client{Timeout: 5 * time.Second},
		sigVerifier:  NewRFC9421Verifier(),
		log:          zerolog.Nop(),
		ttl:          ttl,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Name identifies the strategy in logs.
func (v *DirectoryVerifier) Name() string { return "key_directory" }

// Applies requires both signature headers, a keyid, and a configured
// directory.
func (v *DirectoryVerifier) Applies(in *Input) bool {
	return v.directoryURL != "" && in.HasSignatureHeaders() && in.SigInput.KeyID != ""
}

// Verify resolves the key from the directory and runs the standards
// engine. All failures are folded into the outcome.
func (v *DirectoryVerifier) Verify(ctx context.Context, in *Input) Outcome {
	pub, err := v.resolveKey(ctx, in.SigInput.KeyID)
	if err != nil {
		v.log.Debug().Err(err).Str("keyid", in.SigInput.KeyID).Msg("key directory lookup failed")
		return Outcome{Method: MethodRFC9421, Error: ErrDirectoryUnreachable}
	}
	if pub == nil {
		return Outcome{Method: MethodRFC9421, Error: ErrKeyNotFound}
	}

	if err := v.sigVerifier.VerifyHTTPRequest(in.Request, pub); err != nil {
		return Outcome{Method: MethodRFC9421, Error: ErrSignatureMismatch}
	}

	return Outcome{
		Valid:   true,
		Method:  MethodRFC9421,
		KeyID:   in.SigInput.KeyID,
		Created: in.SigInput.Created,
		Expires: in.SigInput.Expires,
	}
}

// resolveKey returns the directory key for kid, (nil, nil) when the
// directory was reachable but does not list it.
func (v *DirectoryVerifier) resolveKey(ctx context.Context, kid string) (ed25519.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keys == nil || time.Since(v.fetchedAt) > v.ttl {
		keys, err := v.fetchDirectory(ctx)
		if err != nil {
			return nil, err
		}
		v.keys = keys
		v.fetchedAt = time.Now()
	}
	return v.keys[kid], nil
}

// jwk is the subset of RFC 7517 this verifier understands: OKP keys on
// the Ed25519 curve.
type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	Use string `json:"use"`
	X   string `json:"x"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

func (v *DirectoryVerifier) fetchDirectory(ctx context.Context) (map[string]ed25519.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.directoryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch key directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("key directory returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read key directory: %w", err)
	}

	var doc jwks
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode key directory: %w", err)
	}

	keys := make(map[string]ed25519.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "OKP" || k.Crv != "Ed25519" {
			continue
		}
		if k.Use != "" && k.Use != "sig" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(k.X)
		if err != nil || len(raw) != ed25519.PublicKeySize {
			v.log.Debug().Str("kid", k.Kid).Msg("skipping malformed directory key")
			continue
		}
		keys[k.Kid] = ed25519.PublicKey(raw)
	}
	return keys, nil
}
