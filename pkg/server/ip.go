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
	"net"
	"net/http"
	"strings"
)

// The edge sits behind a CDN, so RemoteAddr alone never identifies the
// real client. Forwarding headers are consulted in a fixed priority
// order; the first usable public address wins.
var ipHeaderPriority = []string{
	"CF-Connecting-IP",
	"True-Client-IP",
	"X-Real-IP",
}

// Geo headers set by the common edge providers, first non-empty wins.
var countryHeaderPriority = []string{
	"CF-IPCountry",
	"CloudFront-Viewer-Country",
	"X-Vercel-IP-Country",
}

// clientIP extracts the most trustworthy client address, or empty when
// none resolves. The address is only ever passed through to the ingest
// service for upstream hashing.
func clientIP(h http.Header, remoteAddr string) string {
	for _, name := range ipHeaderPriority {
		if ip := safeParseIP(h.Get(name)); isPublicIP(ip) {
			return ip.String()
		}
	}

	// X-Forwarded-For: first public entry, skipping internal hops.
	if xff := h.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := safeParseIP(part); isPublicIP(ip) {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if ip := safeParseIP(host); isPublicIP(ip) {
		return ip.String()
	}
	return ""
}

// country returns the uppercased two-letter country code from the first
// populated geo header, or empty.
func country(h http.Header) string {
	for _, name := range countryHeaderPriority {
		if v := strings.TrimSpace(h.Get(name)); v != "" && v != "XX" {
			return strings.ToUpper(v)
		}
	}
	return ""
}

func safeParseIP(s string) net.IP {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return net.ParseIP(s)
}

func isPublicIP(ip net.IP) bool {
	if ip == nil {
		return false
	}
	if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return false
	}
	return true
}
