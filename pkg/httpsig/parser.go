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
	"regexp"
	"strconv"
	"strings"
)

// SignatureInput is the parsed metadata of one Signature-Input dictionary
// member. Produced once per request and never mutated.
type SignatureInput struct {
	// Label is the dictionary member label, e.g. "sig1". Empty means the
	// header was absent or unparseable; the request is treated as unsigned.
	Label string

	// KeyID is the keyid parameter. Required for embedded-key verification.
	KeyID string

	// Created and Expires are Unix seconds; 0 means the parameter was
	// absent.
	Created int64
	Expires int64

	// Components is the covered-component list in source order. The order
	// is load-bearing: the signature base must reproduce it exactly.
	Components []string

	// RawParams is the verbatim text after the "sigN=" label. The signer
	// covered exactly this substring under "@signature-params", so it must
	// never be re-serialized.
	RawParams string
}

// Empty reports whether the input parsed to nothing, i.e. the request
// carries no usable signature metadata.
func (si SignatureInput) Empty() bool {
	return si.Label == ""
}

var (
	memberRe     = regexp.MustCompile(`(sig\d+)=`)
	nextMemberRe = regexp.MustCompile(`,\s*sig\d+=`)
	componentsRe = regexp.MustCompile(`\(([^)]*)\)`)
	quotedRe     = regexp.MustCompile(`"([^"]*)"`)
	keyIDRe      = regexp.MustCompile(`keyid="([^"]+)"`)
	createdRe    = regexp.MustCompile(`created=(\d+)`)
	expiresRe    = regexp.MustCompile(`expires=(\d+)`)
)

// ParseSignatureInput parses a raw Signature-Input header value. The
// header is attacker-influenced, so any malformed syntax yields the zero
// value rather than an error; upstream treats that identically to "no
// signature".
func ParseSignatureInput(value string) SignatureInput {
	loc := memberRe.FindStringSubmatchIndex(value)
	if loc == nil {
		return SignatureInput{}
	}
	label := value[loc[2]:loc[3]]

	// Everything after "sigN=" up to the next member (if any) is the raw
	// parameter text the signer covered.
	raw := value[loc[1]:]
	if next := nextMemberRe.FindStringIndex(raw); next != nil {
		raw = raw[:next[0]]
	}
	raw = strings.TrimSpace(raw)

	list := componentsRe.FindStringSubmatch(raw)
	if list == nil {
		return SignatureInput{}
	}
	var components []string
	for _, m := range quotedRe.FindAllStringSubmatch(list[1], -1) {
		components = append(components, m[1])
	}

	si := SignatureInput{
		Label:      label,
		Components: components,
		RawParams:  raw,
	}
	if m := keyIDRe.FindStringSubmatch(raw); m != nil {
		si.KeyID = m[1]
	}
	if m := createdRe.FindStringSubmatch(raw); m != nil {
		si.Created, _ = strconv.ParseInt(m[1], 10, 64)
	}
	if m := expiresRe.FindStringSubmatch(raw); m != nil {
		si.Expires, _ = strconv.ParseInt(m[1], 10, 64)
	}
	return si
}
