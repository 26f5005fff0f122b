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
	"fmt"
	"net/http"
	"strings"
)

// BuildSignatureBase reconstructs the canonical string the signer signed,
// one line per covered component in listed order, closed by the
// "@signature-params" line carrying the verbatim parameter text.
//
// Byte-for-byte fidelity is mandatory: any deviation in whitespace,
// component order, or header values makes verification fail, which is the
// correct outcome for a tampered request.
func BuildSignatureBase(req *http.Request, si SignatureInput) string {
	var lines []string

	for _, component := range si.Components {
		var value string

		switch component {
		case "@authority":
			value = authority(req)
		case "@method":
			value = req.Method
		case "@target-uri":
			value = req.URL.String()
		case "@path":
			value = req.URL.Path
		case "@query":
			value = "?" + req.URL.RawQuery
		case "signature-agent":
			// The raw, still-quoted header value as sent.
			value = req.Header.Get("Signature-Agent")
		default:
			value = req.Header.Get(component)
			if value == "" {
				// Absent headers are omitted, never substituted with an
				// empty string.
				continue
			}
		}

		lines = append(lines, fmt.Sprintf("%q: %s", strings.ToLower(component), value))
	}

	lines = append(lines, fmt.Sprintf("%q: %s", "@signature-params", si.RawParams))

	return strings.Join(lines, "\n")
}

func authority(req *http.Request) string {
	if req.Host != "" {
		return req.Host
	}
	return req.URL.Host
}
