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

// Package classifier detects requests made by known AI assistants.
//
// Classification is a cheap, synchronous, header-only check that runs on
// the hot path of every edge request, before the request is forwarded to
// the origin:
//
//	c := classifier.New()
//	cls := c.Classify(r.Header)
//	if cls.IsAgentFetch {
//	    // mint attribution cookie, schedule verification
//	}
//
// # Detection signals
//
// Three signals feed the agent-fetch decision, any one of which suffices:
//
//   - Signature and Signature-Input headers both present (the request
//     claims an RFC 9421 signature, verified later by pkg/verifier)
//   - Signature-Agent header naming chatgpt.com
//   - User-Agent substring match against a per-assistant pattern set
//
// # Pattern sets
//
// Pattern sets live in patterns.go as plain data keyed by assistant.
// Custom sets can be supplied with NewWithPatterns; patterns are matched
// case-insensitively against the lowercased User-Agent.
//
// Classification is deterministic and idempotent. It never errors: a
// request with no headers at all classifies as not-a-bot.
package classifier
