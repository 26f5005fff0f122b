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

import (
	"context"

	"github.com/rs/zerolog"
)

// TieredVerifier runs the escalation chain: each tier is attempted only
// when the previous one did not produce a valid signature, and a tier's
// internal failures never propagate to the caller.
type TieredVerifier struct {
	tiers           []Strategy
	forwardUnsigned bool
	log             zerolog.Logger
}

// TieredOption customizes a TieredVerifier.
type TieredOption func(*TieredVerifier)

// WithForwardUnsigned makes the chain produce a method="none" outcome for
// requests no tier can handle, so they still reach the ingest service.
func WithForwardUnsigned(forward bool) TieredOption {
	return func(v *TieredVerifier) { v.forwardUnsigned = forward }
}

// WithTieredLogger attaches a logger.
func WithTieredLogger(log zerolog.Logger) TieredOption {
	return func(v *TieredVerifier) { v.log = log }
}

// NewTieredVerifier composes the given strategies in priority order.
func NewTieredVerifier(tiers []Strategy, opts ...TieredOption) *TieredVerifier {
	v := &TieredVerifier{tiers: tiers, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify runs the chain and returns the outcome plus whether one was
// produced at all. No outcome means the pipeline suppresses the event.
func (v *TieredVerifier) Verify(ctx context.Context, in *Input) (Outcome, bool) {
	var (
		last    Outcome
		lastErr string
		applied bool
	)

	for _, tier := range v.tiers {
		if !tier.Applies(in) {
			continue
		}
		out := tier.Verify(ctx, in)
		if out.Valid {
			v.log.Debug().Str("tier", tier.Name()).Str("keyid", out.KeyID).Msg("signature verified")
			return out, true
		}
		v.log.Debug().Str("tier", tier.Name()).Str("error", out.Error).Msg("tier fell through")
		if out.Error != "" {
			lastErr = out.Error
		}
		last = out
		applied = true
	}

	// The heuristic tier terminates the chain even without a valid
	// signature; carry the most specific earlier error along.
	if applied && last.Method == MethodProbabilisticUA {
		if last.Error == "" {
			last.Error = lastErr
		}
		return last, true
	}

	if v.forwardUnsigned {
		if applied {
			if last.Error == "" {
				last.Error = lastErr
			}
			return last, true
		}
		return Outcome{Method: MethodNone, Error: ErrMissingSignatureHeaders}, true
	}

	return Outcome{}, false
}
