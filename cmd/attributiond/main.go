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

// attributiond is the Loamly attribution edge daemon: a reverse proxy
// that attributes AI-agent traffic to the assistant that fetched it and
// reports attribution events to the Loamly ingest service.
package main

func main() {
	Execute()
}
