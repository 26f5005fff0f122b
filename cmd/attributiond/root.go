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

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attributiond",
	Short: "AI-agent attribution edge proxy",
	Long: `attributiond sits in front of a customer origin and attributes
AI-assistant traffic. Every request passes through to the origin
untouched; in the background the daemon verifies any HTTP Message
Signature (RFC 9421) the agent attached, falls back to an embedded key
allow-list and finally a User-Agent heuristic, and reports an
attribution event to the Loamly ingest service. Qualifying agent GETs
receive a short-lived attribution cookie on the response.

Configuration is read from LOAMLY_* environment variables; see
"attributiond serve --help".`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
