// This file is part of Phosphor.
//
// Phosphor is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Phosphor is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Phosphor.  If not, see <https://www.gnu.org/licenses/>.

// Package coords converts between the coordinate space of the beam device and
// the coordinate space of the raster buffer.
//
// Device space has its origin at the top-right with X increasing leftward and
// Y increasing downward. It is rotated by ninety degrees relative to raster
// space, which has its origin at the top-left. The transform is applied once,
// when an event is ingested, and nothing downstream of ingestion sees device
// coordinates.
package coords

import "github.com/fpg1/phosphor/crt/signal"

// DeviceToBuffer maps a device position to a raster buffer position.
func DeviceToBuffer(x, y signal.Coord) (bx, by signal.Coord) {
	return y & signal.CoordMask, x.Invert()
}

// BufferToDevice is the inverse of DeviceToBuffer.
func BufferToDevice(bx, by signal.Coord) (x, y signal.Coord) {
	return by.Invert(), bx & signal.CoordMask
}

// Ingest applies DeviceToBuffer to the position of a PixelEvent. Brightness is
// unchanged.
func Ingest(ev signal.PixelEvent) signal.PixelEvent {
	ev.X, ev.Y = DeviceToBuffer(ev.X, ev.Y)
	return ev
}

// Within is true if v is in the half-open window [top, top+n). The window does
// not wrap.
func Within(v signal.Coord, top int, n int) bool {
	return int(v) >= top && int(v) < top+n
}
