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
	"crypto/rand"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignatureBase(t *testing.T) {
	req := httptest.NewRequest("GET", "https://example.com/articles/42?ref=chat", nil)
	req.Header.Set("Signature-Agent", `"https://chatgpt.com"`)

	si := SignatureInput{
		Label:      "sig1",
		Components: []string{"@authority", "@method", "@path", "@query", "signature-agent"},
		RawParams:  `("@authority" "@method" "@path" "@query" "signature-agent");created=100;keyid="k1"`,
	}

	base := BuildSignatureBase(req, si)
	expected := `"@authority": example.com
"@method": GET
"@path": /articles/42
"@query": ?ref=chat
"signature-agent": "https://chatgpt.com"
"@signature-params": ("@authority" "@method" "@path" "@query" "signature-agent");created=100;keyid="k1"`
	assert.Equal(t, expected, base)
}

func TestBuildSignatureBaseTargetURI(t *testing.T) {
	req := httptest.NewRequest("POST", "https://example.com/a/b?x=1", nil)
	si := SignatureInput{
		Label:      "sig1",
		Components: []string{"@target-uri"},
		RawParams:  `("@target-uri")`,
	}
	base := BuildSignatureBase(req, si)
	assert.Equal(t, "\"@target-uri\": https://example.com/a/b?x=1\n\"@signature-params\": (\"@target-uri\")", base)
}

func TestBuildSignatureBaseOmitsAbsentHeaders(t *testing.T) {
	req := httptest.NewRequest("GET", "https://example.com/", nil)
	req.Header.Set("X-Custom", "present")

	si := SignatureInput{
		Label:      "sig1",
		Components: []string{"x-custom", "x-missing", "@method"},
		RawParams:  `("x-custom" "x-missing" "@method")`,
	}

	base := BuildSignatureBase(req, si)
	expected := `"x-custom": present
"@method": GET
"@signature-params": ("x-custom" "x-missing" "@method")`
	assert.Equal(t, expected, base)
}

func TestBuildSignatureBaseHeaderLookupCaseInsensitive(t *testing.T) {
	req := httptest.NewRequest("GET", "https://example.com/", nil)
	req.Header.Set("Content-Type", "application/json")

	si := SignatureInput{
		Label:      "sig1",
		Components: []string{"CONTENT-TYPE"},
		RawParams:  `("CONTENT-TYPE")`,
	}

	base := BuildSignatureBase(req, si)
	// The component name is lowercased in the base line; the value is not.
	assert.Contains(t, base, `"content-type": application/json`)
}

func TestBuildSignatureBaseAlwaysClosesWithParams(t *testing.T) {
	req := httptest.NewRequest("GET", "https://example.com/", nil)
	si := SignatureInput{Label: "sig1", RawParams: `();keyid="k"`}
	base := BuildSignatureBase(req, si)
	assert.Equal(t, `"@signature-params": ();keyid="k"`, base)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "https://example.com/page?q=1", nil)
	req.Header.Set("Signature-Agent", `"https://chatgpt.com"`)

	err = SignRequest(req, "test-key", priv, &SignOptions{
		Components: []string{"@authority", "@method", "@path", "signature-agent"},
		Created:    1735689600,
		Expires:    1735693200,
	})
	require.NoError(t, err)

	// The receiving side sees only the headers; parse them back.
	si := ParseSignatureInput(req.Header.Get("Signature-Input"))
	require.False(t, si.Empty())
	assert.Equal(t, "test-key", si.KeyID)
	assert.Equal(t, int64(1735689600), si.Created)
	assert.Equal(t, int64(1735693200), si.Expires)

	base := BuildSignatureBase(req, si)
	sig, err := ExtractSignature(req.Header.Get("Signature"))
	require.NoError(t, err)

	assert.True(t, ed25519.Verify(pub, []byte(base), sig))
}

func TestSignVerifyDetectsMutation(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "https://example.com/page", nil)
	require.NoError(t, SignRequest(req, "test-key", priv, nil))

	// Mutate a covered component after signing.
	req.URL.Path = "/other"

	si := ParseSignatureInput(req.Header.Get("Signature-Input"))
	base := BuildSignatureBase(req, si)
	sig, err := ExtractSignature(req.Header.Get("Signature"))
	require.NoError(t, err)

	assert.False(t, ed25519.Verify(pub, []byte(base), sig))
}

func TestSignRequestValidation(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "https://example.com/", nil)
	assert.Error(t, SignRequest(nil, "k", priv, nil))
	assert.Error(t, SignRequest(req, "", priv, nil))
	assert.Error(t, SignRequest(req, "k", ed25519.PrivateKey{}, nil))
}
