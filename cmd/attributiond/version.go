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
	"fmt"

	"github.com/spf13/cobra"

	attributionedge "github.com/loamly/attribution-edge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := attributionedge.GetVersionInfo()
		fmt.Printf("attributiond %s\n", info.EdgeVersion)
		fmt.Printf("  signatures:     %s\n", info.MessageSignatureSpec)
		fmt.Printf("  ingest schema:  %s\n", info.IngestSchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
