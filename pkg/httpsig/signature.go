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
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

var signatureRe = regexp.MustCompile(`sig\d+=:([^:]+):`)

// ExtractSignature pulls the signature bytes out of a Signature header
// value of the form `sigN=:<base64>:`. Signers in the wild disagree on
// the exact base64 alphabet and padding, so both the url-safe and the
// standard alphabet are accepted.
func ExtractSignature(header string) ([]byte, error) {
	m := signatureRe.FindStringSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("no signature member in header")
	}
	return decodeBase64(m[1])
}

func decodeBase64(s string) ([]byte, error) {
	trimmed := strings.TrimRight(s, "=")
	if b, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("decode signature: %w", err)
	}
	return b, nil
}
