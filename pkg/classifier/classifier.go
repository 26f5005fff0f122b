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

package classifier

import (
	"net/http"
	"strings"
)

// Classification is the result of inspecting a request's headers.
// It is a pure function of the headers: classifying the same headers twice
// yields identical results.
type Classification struct {
	// IsAIBot is true when the User-Agent matches a known assistant
	// pattern set.
	IsAIBot bool

	// IsAgentFetch is true when the request is believed to be an AI agent
	// fetching on a user's behalf: signature headers present, a
	// Signature-Agent naming a known assistant origin, or a matching
	// User-Agent.
	IsAgentFetch bool

	// Assistant names the matched assistant, empty when none resolved.
	Assistant Assistant
}

// Classifier maps request headers to a Classification.
type Classifier struct {
	patterns map[Assistant][]string
}

// New creates a Classifier with the default pattern sets.
func New() *Classifier {
	return &Classifier{patterns: defaultPatterns}
}

// NewWithPatterns creates a Classifier with custom pattern sets. Patterns
// must be lowercase; assistants absent from the map are never matched.
func NewWithPatterns(patterns map[Assistant][]string) *Classifier {
	return &Classifier{patterns: patterns}
}

// Classify inspects the headers and returns a Classification. It has no
// side effects and never fails: missing headers are treated as absent.
func (c *Classifier) Classify(h http.Header) Classification {
	var result Classification

	ua := strings.ToLower(h.Get("User-Agent"))
	if ua != "" {
		for _, assistant := range assistantOrder {
			if matchesAny(ua, c.patterns[assistant]) {
				result.IsAIBot = true
				result.Assistant = assistant
				break
			}
		}
	}

	hasSignature := h.Get("Signature") != "" && h.Get("Signature-Input") != ""
	agentHeader := strings.Trim(h.Get("Signature-Agent"), `"`)
	chatgptAgent := strings.Contains(agentHeader, "chatgpt.com")

	result.IsAgentFetch = hasSignature || chatgptAgent || result.IsAIBot

	// A Signature-Agent naming chatgpt.com resolves the assistant even when
	// the User-Agent does not match any pattern.
	if result.Assistant == "" && chatgptAgent {
		result.Assistant = AssistantChatGPT
	}

	return result
}

func matchesAny(ua string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(ua, p) {
			return true
		}
	}
	return false
}
