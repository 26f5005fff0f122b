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

package ingest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// maxLoggedBody caps how much of a failed ingest response lands in logs.
const maxLoggedBody = 256

// Client delivers attribution events to the ingest service. Delivery is
// strictly best-effort: one authenticated POST with a bounded timeout, no
// retries, and failures are logged and swallowed so that nothing ever
// propagates back into the request pipeline.
type Client struct {
	url    string
	apiKey string
	http   *http.Client
	log    zerolog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTimeout bounds the ingest POST.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates an ingest client for the given endpoint and
// workspace API key.
func NewClient(url, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 5 * time.Second},
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send POSTs one event. It reports success for metrics but never
// surfaces delivery errors to the caller.
func (c *Client) Send(ctx context.Context, ev Event) bool {
	body, err := json.Marshal(ev)
	if err != nil {
		c.log.Error().Err(err).Msg("encode ingest event")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.Error().Err(err).Msg("build ingest request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Msg("ingest delivery failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("ingest rejected event")
		return false
	}

	return true
}
