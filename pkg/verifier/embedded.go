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
	"time"

	"github.com/loamly/attribution-edge/pkg/httpsig"
	"github.com/loamly/attribution-edge/pkg/keystore"
)

// EmbeddedVerifier is the second tier: it verifies the signature against
// the static embedded allow-list, entirely offline. The signature base is
// rebuilt from the request and must match the signer's bytes exactly.
type EmbeddedVerifier struct {
	store *keystore.Store
	now   func() time.Time
}

// NewEmbeddedVerifier creates the embedded-key tier over a key store.
func NewEmbeddedVerifier(store *keystore.Store) *EmbeddedVerifier {
	return &EmbeddedVerifier{store: store, now: time.Now}
}

// Name identifies the strategy in logs.
func (v *EmbeddedVerifier) Name() string { return "embedded_key" }

// Applies requires both signature headers and a keyid to look up.
func (v *EmbeddedVerifier) Applies(in *Input) bool {
	return in.HasSignatureHeaders() && in.SigInput.KeyID != ""
}

// Verify looks up the key, rebuilds the signature base, and checks the
// Ed25519 signature. Every failure mode maps to a recorded error string;
// nothing escapes the tier.
func (v *EmbeddedVerifier) Verify(_ context.Context, in *Input) Outcome {
	key, err := v.store.Lookup(in.SigInput.KeyID, v.now())
	if err != nil {
		return Outcome{Method: MethodRFC9421, Error: ErrKeyNotFound}
	}

	sig, err := httpsig.ExtractSignature(in.RawSignature)
	if err != nil {
		return Outcome{Method: MethodRFC9421, Error: ErrDecodeFailure}
	}
	if len(sig) != ed25519.SignatureSize {
		return Outcome{Method: MethodRFC9421, Error: ErrDecodeFailure}
	}

	base := httpsig.BuildSignatureBase(in.Request, in.SigInput)
	if !ed25519.Verify(key.Public, []byte(base), sig) {
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
