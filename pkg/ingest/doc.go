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

// Package ingest builds and delivers attribution events.
//
// BuildEvent flattens the classifier verdict, the verification outcome,
// and the request metadata into the wire schema the ingest service
// accepts. The client IP, when available, rides along solely so the
// ingest service can hash it upstream — the edge neither logs nor stores
// it.
//
// Delivery is fire-and-forget by contract: a terminated worker before
// the POST completes drops that one event and nothing depends on it
// arriving. The Client therefore makes exactly one attempt within a
// bounded timeout and folds every failure into a warn log.
package ingest
