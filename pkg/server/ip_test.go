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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "cloudflare header wins",
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Real-IP": "198.51.100.1"},
			remoteAddr: "10.0.0.1:443",
			want:       "203.0.113.7",
		},
		{
			name:       "true client ip",
			headers:    map[string]string{"True-Client-IP": "198.51.100.9"},
			remoteAddr: "10.0.0.1:443",
			want:       "198.51.100.9",
		},
		{
			name:       "xff skips private hops",
			headers:    map[string]string{"X-Forwarded-For": "10.1.2.3, 192.168.0.5, 203.0.113.50"},
			remoteAddr: "10.0.0.1:443",
			want:       "203.0.113.50",
		},
		{
			name:       "falls back to remote addr",
			remoteAddr: "198.51.100.77:52110",
			want:       "198.51.100.77",
		},
		{
			name:       "private remote addr yields empty",
			remoteAddr: "192.168.1.10:52110",
			want:       "",
		},
		{
			name:       "garbage header ignored",
			headers:    map[string]string{"CF-Connecting-IP": "not-an-ip"},
			remoteAddr: "203.0.113.2:443",
			want:       "203.0.113.2",
		},
		{
			name:       "ipv6",
			headers:    map[string]string{"X-Real-IP": "2001:db8::1"},
			remoteAddr: "10.0.0.1:443",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(h, tt.remoteAddr))
		})
	}
}

func TestCountry(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare", map[string]string{"CF-IPCountry": "DE"}, "DE"},
		{"cloudfront", map[string]string{"CloudFront-Viewer-Country": "us"}, "US"},
		{"vercel", map[string]string{"X-Vercel-IP-Country": "JP"}, "JP"},
		{"unknown sentinel skipped", map[string]string{"CF-IPCountry": "XX", "X-Vercel-IP-Country": "FR"}, "FR"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tt.headers {
				h.Set(k, v)
			}
			assert.Equal(t, tt.want, country(h))
		})
	}
}
