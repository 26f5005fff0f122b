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

// Package server hosts the edge HTTP handler and the background
// attribution pipeline.
//
// The handler is a reverse proxy in front of the customer origin. Every
// request is classified synchronously, snapshotted, and handed to the
// pipeline, which verifies any HTTP Message Signature and posts an
// attribution event to the ingest service — all after the origin
// response is already on its way back to the client. Qualifying agent
// GETs additionally receive the attribution cookie on the response.
//
// Operational endpoints (Prometheus metrics, health) live on a separate
// admin mux so they never shadow origin paths.
package server
