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

package httpsig

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SignOptions controls how a request is signed.
type SignOptions struct {
	// Components are the covered components, e.g. "@authority", "@method".
	Components []string

	// Created is the signature creation time (Unix seconds). Zero means
	// current time.
	Created int64

	// Expires is the signature expiry time (Unix seconds). Zero means no
	// expiry parameter.
	Expires int64
}

// defaultComponents mirrors what the known assistant fetchers cover.
var defaultComponents = []string{"@authority", "@method", "@path"}

// SignRequest signs an HTTP request with an Ed25519 key and attaches the
// Signature-Input and Signature headers. The signature base produced here
// round-trips exactly through ParseSignatureInput and BuildSignatureBase,
// which is what the verifier tests rely on.
func SignRequest(req *http.Request, keyID string, priv ed25519.PrivateKey, opts *SignOptions) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if len(priv) != ed25519.PrivateKeySize {
		return fmt.Errorf("invalid ed25519 private key length %d", len(priv))
	}
	if keyID == "" {
		return fmt.Errorf("key id cannot be empty")
	}

	if opts == nil {
		opts = &SignOptions{}
	}
	components := opts.Components
	if len(components) == 0 {
		components = defaultComponents
	}
	created := opts.Created
	if created == 0 {
		created = time.Now().Unix()
	}

	rawParams := buildParams(components, keyID, created, opts.Expires)
	si := SignatureInput{
		Label:      "sig1",
		KeyID:      keyID,
		Created:    created,
		Expires:    opts.Expires,
		Components: components,
		RawParams:  rawParams,
	}

	base := BuildSignatureBase(req, si)
	signature := ed25519.Sign(priv, []byte(base))

	req.Header.Set("Signature-Input", "sig1="+rawParams)
	req.Header.Set("Signature", "sig1=:"+base64.RawURLEncoding.EncodeToString(signature)+":")
	return nil
}

// buildParams assembles the parameter text after the "sigN=" label:
// the quoted component list followed by created/expires/keyid/alg.
func buildParams(components []string, keyID string, created, expires int64) string {
	quoted := make([]string, len(components))
	for i, c := range components {
		quoted[i] = fmt.Sprintf("%q", c)
	}

	params := []string{fmt.Sprintf("(%s)", strings.Join(quoted, " "))}
	if created > 0 {
		params = append(params, fmt.Sprintf("created=%d", created))
	}
	if expires > 0 {
		params = append(params, fmt.Sprintf("expires=%d", expires))
	}
	params = append(params, fmt.Sprintf("keyid=%q", keyID))
	params = append(params, `alg="ed25519"`)

	return strings.Join(params, ";")
}
