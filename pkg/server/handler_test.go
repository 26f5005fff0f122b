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

package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loamly/attribution-edge/pkg/classifier"
	"github.com/loamly/attribution-edge/pkg/cookie"
	"github.com/loamly/attribution-edge/pkg/httpsig"
	"github.com/loamly/attribution-edge/pkg/ingest"
	"github.com/loamly/attribution-edge/pkg/keystore"
	"github.com/loamly/attribution-edge/pkg/metrics"
	"github.com/loamly/attribution-edge/pkg/verifier"
)

type edgeFixture struct {
	handler  *Handler
	pipeline *Pipeline
	rec      *ingestRecorder
	origin   *httptest.Server
	ingest   *httptest.Server
}

func (f *edgeFixture) close() {
	f.origin.Close()
	f.ingest.Close()
}

func newEdgeFixture(t *testing.T, keys []keystore.Key) *edgeFixture {
	t.Helper()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Origin", "yes")
		_, _ = io.WriteString(w, "origin body: "+r.URL.Path)
	}))

	rec := &ingestRecorder{}
	ingestSrv := httptest.NewServer(rec.handler())

	tv := verifier.NewTieredVerifier([]verifier.Strategy{
		verifier.NewEmbeddedVerifier(keystore.New(keys)),
		verifier.NewHeuristicVerifier(),
	})

	m := metrics.New(prometheus.NewRegistry())
	pipe := NewPipeline("ws_test", tv, ingest.NewClient(ingestSrv.URL, "sk_test"), m, zerolog.Nop())

	originURL, err := url.Parse(origin.URL)
	require.NoError(t, err)

	h := NewHandler(originURL, classifier.New(), cookie.NewMinter(), pipe, m, zerolog.Nop())
	return &edgeFixture{handler: h, pipeline: pipe, rec: rec, origin: origin, ingest: ingestSrv}
}

func attributionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == cookie.Name {
			return c
		}
	}
	return nil
}

func TestHandlerPassThroughUntouched(t *testing.T) {
	f := newEdgeFixture(t, nil)
	defer f.close()

	r := httptest.NewRequest(http.MethodGet, "https://site.example/docs/install", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15")
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, r)
	f.pipeline.Wait()

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "origin body: /docs/install", string(body))
	assert.Equal(t, "yes", resp.Header.Get("X-Origin"))
	assert.Nil(t, attributionCookie(t, resp))
	assert.Empty(t, f.rec.all())
}

func TestHandlerMintsCookieForAgentGet(t *testing.T) {
	f := newEdgeFixture(t, nil)
	defer f.close()

	r := httptest.NewRequest(http.MethodGet, "https://site.example/pricing", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ChatGPT-User/1.0; +https://openai.com/bot)")
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, r)
	f.pipeline.Wait()

	c := attributionCookie(t, w.Result())
	require.NotNil(t, c)
	assert.True(t, strings.HasPrefix(c.Value, "chatgpt:"))
	assert.Equal(t, 300, c.MaxAge)
	assert.True(t, c.Secure)

	events := f.rec.all()
	require.Len(t, events, 1)
	assert.Equal(t, "probabilistic_ua", events[0].VerificationMeth)
	require.NotNil(t, events[0].SignatureAgent)
	assert.Equal(t, "https://chatgpt.com", *events[0].SignatureAgent)
}

func TestHandlerNoCookieOnPost(t *testing.T) {
	f := newEdgeFixture(t, nil)
	defer f.close()

	r := httptest.NewRequest(http.MethodPost, "https://site.example/api/chat", strings.NewReader("{}"))
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ChatGPT-User/1.0; +https://openai.com/bot)")
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, r)
	f.pipeline.Wait()

	assert.Nil(t, attributionCookie(t, w.Result()))
	// The event still flows; only the cookie is gated on GET.
	assert.Len(t, f.rec.all(), 1)
}

func TestHandlerVerifiedSignedFetch(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	f := newEdgeFixture(t, []keystore.Key{{KID: "agent-key-1", Public: pub}})
	defer f.close()

	r := httptest.NewRequest(http.MethodGet, "https://site.example/pricing", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ChatGPT-User/1.0; +https://openai.com/bot)")
	r.Header.Set("Signature-Agent", `"https://chatgpt.com"`)
	require.NoError(t, httpsig.SignRequest(r, "agent-key-1", priv, nil))

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, r)
	f.pipeline.Wait()

	events := f.rec.all()
	require.Len(t, events, 1)
	ev := events[0]
	assert.True(t, ev.SignatureVerified)
	assert.Equal(t, "rfc9421", ev.VerificationMeth)
	require.NotNil(t, ev.SignatureKeyID)
	assert.Equal(t, "agent-key-1", *ev.SignatureKeyID)
	assert.Nil(t, ev.VerificationError)

	require.NotNil(t, attributionCookie(t, w.Result()))
}

func TestHandlerOriginDown(t *testing.T) {
	f := newEdgeFixture(t, nil)
	f.origin.Close()
	defer f.ingest.Close()

	r := httptest.NewRequest(http.MethodGet, "https://site.example/", nil)
	r.Header.Set("User-Agent", "Mozilla/5.0 Safari/605.1.15")
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, r)
	f.pipeline.Wait()

	assert.Equal(t, http.StatusBadGateway, w.Result().StatusCode)
}
