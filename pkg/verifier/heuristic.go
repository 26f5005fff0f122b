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

package verifier

import "context"

// HeuristicVerifier is the last tier: when no signature verified but the
// User-Agent matched a known assistant, the request is attributed
// probabilistically. It never produces a valid outcome — it records that
// attribution rests on the UA claim alone.
type HeuristicVerifier struct{}

// NewHeuristicVerifier creates the UA-heuristic tier.
func NewHeuristicVerifier() *HeuristicVerifier {
	return &HeuristicVerifier{}
}

// Name identifies the strategy in logs.
func (v *HeuristicVerifier) Name() string { return "ua_heuristic" }

// Applies requires a User-Agent classified as a known AI bot.
func (v *HeuristicVerifier) Applies(in *Input) bool {
	return in.Classification.IsAIBot
}

// Verify always produces an outcome; valid stays false.
func (v *HeuristicVerifier) Verify(_ context.Context, in *Input) Outcome {
	out := Outcome{Method: MethodProbabilisticUA}
	if !in.HasSignatureHeaders() {
		out.Error = ErrMissingSignatureHeaders
	}
	return out
}
