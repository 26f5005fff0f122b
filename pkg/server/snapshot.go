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
	"net/http"
	"net/url"
)

// Snapshot is an immutable copy of the request facts the background
// pipeline needs. The live *http.Request belongs to the proxy path and
// may be recycled the moment the response is written, so the pipeline
// only ever sees this detached copy.
type Snapshot struct {
	Method     string
	URL        *url.URL
	Host       string
	Header     http.Header
	RemoteAddr string
}

// snapshotRequest clones what the pipeline needs before the request is
// handed to the proxy.
func snapshotRequest(r *http.Request) *Snapshot {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return &Snapshot{
		Method:     r.Method,
		URL:        &u,
		Host:       r.Host,
		Header:     r.Header.Clone(),
		RemoteAddr: r.RemoteAddr,
	}
}

// request rebuilds a detached *http.Request for signature verification.
// It shares nothing with the live request.
func (s *Snapshot) request() *http.Request {
	u := *s.URL
	return &http.Request{
		Method: s.Method,
		URL:    &u,
		Host:   s.Host,
		Header: s.Header.Clone(),
	}
}

// landingPage is the full URL the agent fetched.
func (s *Snapshot) landingPage() string {
	return s.URL.String()
}
