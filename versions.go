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

// Package attributionedge provides version information for attribution-edge
// and the specifications it implements.
package attributionedge

const (
	// Version is the current version of attribution-edge
	Version = "1.2.0"

	// MessageSignatureSpec is the HTTP Message Signatures specification this
	// module verifies against
	// See: https://www.rfc-editor.org/rfc/rfc9421
	MessageSignatureSpec = "RFC 9421"

	// IngestSchemaVersion is the attribution event schema version emitted to
	// the ingest service
	IngestSchemaVersion = "2026-01"
)

// VersionInfo contains detailed version information
type VersionInfo struct {
	EdgeVersion          string
	MessageSignatureSpec string
	IngestSchemaVersion  string
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		EdgeVersion:          Version,
		MessageSignatureSpec: MessageSignatureSpec,
		IngestSchemaVersion:  IngestSchemaVersion,
	}
}
