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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headers(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestClassifyUserAgents(t *testing.T) {
	tests := []struct {
		name      string
		userAgent string
		isAIBot   bool
		assistant Assistant
	}{
		{
			name:      "chatgpt user fetch",
			userAgent: "Mozilla/5.0 AppleWebKit/537.36; compatible; ChatGPT-User/1.0; +https://openai.com/bot",
			isAIBot:   true,
			assistant: AssistantChatGPT,
		},
		{
			name:      "gptbot crawler",
			userAgent: "Mozilla/5.0 (compatible; GPTBot/1.2; +https://openai.com/gptbot)",
			isAIBot:   true,
			assistant: AssistantChatGPT,
		},
		{
			name:      "claudebot",
			userAgent: "Mozilla/5.0 (compatible; ClaudeBot/1.0; +claudebot@anthropic.com)",
			isAIBot:   true,
			assistant: AssistantClaude,
		},
		{
			name:      "claude user fetch",
			userAgent: "Mozilla/5.0 (compatible; Claude-User/1.0)",
			isAIBot:   true,
			assistant: AssistantClaude,
		},
		{
			name:      "perplexity bot",
			userAgent: "Mozilla/5.0 (compatible; PerplexityBot/1.0; +https://perplexity.ai/perplexitybot)",
			isAIBot:   true,
			assistant: AssistantPerplexity,
		},
		{
			name:      "gemini deep research",
			userAgent: "Gemini-Deep-Research/1.0",
			isAIBot:   true,
			assistant: AssistantGemini,
		},
		{
			name:      "google extended",
			userAgent: "Mozilla/5.0 (compatible; Google-Extended/1.0)",
			isAIBot:   true,
			assistant: AssistantGemini,
		},
		{
			name:      "ordinary desktop browser",
			userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36",
			isAIBot:   false,
			assistant: "",
		},
		{
			name:      "empty user agent",
			userAgent: "",
			isAIBot:   false,
			assistant: "",
		},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := c.Classify(headers("User-Agent", tt.userAgent))
			assert.Equal(t, tt.isAIBot, cls.IsAIBot)
			assert.Equal(t, tt.assistant, cls.Assistant)
			// Any matched bot is by definition an agent fetch.
			assert.Equal(t, tt.isAIBot, cls.IsAgentFetch)
		})
	}
}

func TestClassifySignatureHeaders(t *testing.T) {
	c := New()

	t.Run("signature pair marks agent fetch without bot UA", func(t *testing.T) {
		cls := c.Classify(headers(
			"User-Agent", "Mozilla/5.0",
			"Signature", "sig1=:abc:",
			"Signature-Input", `sig1=("@authority");keyid="k1"`,
		))
		assert.False(t, cls.IsAIBot)
		assert.True(t, cls.IsAgentFetch)
		assert.Equal(t, Assistant(""), cls.Assistant)
	})

	t.Run("signature header alone is not enough", func(t *testing.T) {
		cls := c.Classify(headers("Signature", "sig1=:abc:"))
		assert.False(t, cls.IsAgentFetch)
	})

	t.Run("signature-agent resolves chatgpt", func(t *testing.T) {
		cls := c.Classify(headers("Signature-Agent", `"https://chatgpt.com"`))
		assert.False(t, cls.IsAIBot)
		assert.True(t, cls.IsAgentFetch)
		assert.Equal(t, AssistantChatGPT, cls.Assistant)
	})

	t.Run("signature-agent for other origin ignored", func(t *testing.T) {
		cls := c.Classify(headers("Signature-Agent", `"https://example.com"`))
		assert.False(t, cls.IsAgentFetch)
	})
}

func TestClassifyNoHeaders(t *testing.T) {
	c := New()
	cls := c.Classify(http.Header{})
	assert.False(t, cls.IsAIBot)
	assert.False(t, cls.IsAgentFetch)
	assert.Empty(t, cls.Assistant)
}

func TestClassifyIdempotent(t *testing.T) {
	c := New()
	h := headers(
		"User-Agent", "ChatGPT-User/1.0",
		"Signature-Agent", `"https://chatgpt.com"`,
	)
	first := c.Classify(h)
	second := c.Classify(h)
	require.Equal(t, first, second)
}

func TestCustomPatterns(t *testing.T) {
	c := NewWithPatterns(map[Assistant][]string{
		AssistantClaude: {"my-internal-agent"},
	})

	cls := c.Classify(headers("User-Agent", "My-Internal-Agent/2.0"))
	assert.True(t, cls.IsAIBot)
	assert.Equal(t, AssistantClaude, cls.Assistant)

	// Default patterns are not in effect for a custom classifier.
	cls = c.Classify(headers("User-Agent", "GPTBot/1.0"))
	assert.False(t, cls.IsAIBot)
}

func TestOrigin(t *testing.T) {
	assert.Equal(t, "https://chatgpt.com", Origin(AssistantChatGPT))
	assert.Equal(t, "https://claude.ai", Origin(AssistantClaude))
	assert.Empty(t, Origin(Assistant("unknown")))
}
