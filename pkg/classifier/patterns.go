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

// Assistant identifies a known AI assistant platform.
type Assistant string

// Known assistants. The string values appear verbatim in attribution
// cookies and ingest events.
const (
	AssistantChatGPT    Assistant = "chatgpt"
	AssistantClaude     Assistant = "claude"
	AssistantPerplexity Assistant = "perplexity"
	AssistantGemini     Assistant = "gemini"
)

// assistantOrder fixes the evaluation order so classification is
// deterministic when a User-Agent matches more than one pattern set.
var assistantOrder = []Assistant{
	AssistantChatGPT,
	AssistantClaude,
	AssistantPerplexity,
	AssistantGemini,
}

// defaultPatterns maps each assistant to lowercase User-Agent substrings.
// Kept as data rather than inline branches so that deployments can extend
// the sets without touching classification logic.
var defaultPatterns = map[Assistant][]string{
	AssistantChatGPT: {
		"chatgpt-user",
		"chatgpt.com",
		"gptbot",
		"oai-searchbot",
	},
	AssistantClaude: {
		"claudebot",
		"claude-user",
		"claude-web",
		"anthropic-ai",
		"anthropic.com",
	},
	AssistantPerplexity: {
		"perplexitybot",
		"perplexity-user",
		"perplexity.ai",
	},
	AssistantGemini: {
		"google-extended",
		"gemini-deep-research",
	},
}

// assistantOrigins maps each assistant to its canonical web origin, used
// when a request carries no Signature-Agent header of its own.
var assistantOrigins = map[Assistant]string{
	AssistantChatGPT:    "https://chatgpt.com",
	AssistantClaude:     "https://claude.ai",
	AssistantPerplexity: "https://www.perplexity.ai",
	AssistantGemini:     "https://gemini.google.com",
}

// Origin returns the canonical origin URL for a known assistant, or an
// empty string for an unknown one.
func Origin(a Assistant) string {
	return assistantOrigins[a]
}
