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

// Package rowbuffer implements the row staging buffer. The point store holds
// points in the order they were struck but the raster is scanned in line
// order. The row buffer bridges the two: it holds a small window of scanlines
// just ahead of the scan position, which is filled from the point store taps
// as points pass them.
//
// The read port is registered. The value addressed by Fetch() is returned by
// the following call to Fetch(), so the reader must address the buffer one
// tick ahead of where it wants the data.
package rowbuffer

import (
	"github.com/fpg1/phosphor/crt/coords"
	"github.com/fpg1/phosphor/crt/pointstore"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
)

// Buffer is the row staging buffer.
type Buffer struct {
	lookahead int

	// indexed by [line % lookahead][x]
	cells [][]signal.Intensity

	// position of the most recent fetch
	readLine int
	readX    int

	// value addressed by the most recent fetch
	latched signal.Intensity

	// number of taps written to the buffer and the number of taps skipped
	// because the scan had already passed their cell
	Flushed int
	Late    int
}

// NewBuffer is the preferred method of initialisation for the Buffer type.
func NewBuffer(spec specification.Spec) *Buffer {
	rb := &Buffer{
		lookahead: spec.Lookahead,
		cells:     make([][]signal.Intensity, spec.Lookahead),
	}
	for i := range rb.cells {
		rb.cells[i] = make([]signal.Intensity, signal.CoordRange)
	}
	return rb
}

// Reset clears every cell and the read latch.
func (rb *Buffer) Reset() {
	for i := range rb.cells {
		clear(rb.cells[i])
	}
	rb.readLine = 0
	rb.readX = 0
	rb.latched = 0
	rb.Flushed = 0
	rb.Late = 0
}

// Fetch addresses the cell at line and x. The cell is cleared once it has
// been read. Returns the value addressed by the previous call to Fetch().
func (rb *Buffer) Fetch(line int, x int) signal.Intensity {
	v := rb.latched
	rb.readLine = line
	rb.readX = x

	if x < 0 || x >= signal.CoordRange || line < 0 {
		rb.latched = 0
		return v
	}

	row := rb.cells[line%rb.lookahead]
	rb.latched = row[x]
	row[x] = 0

	return v
}

// ahead is true if the scan has not yet read the cell for this line this
// frame.
func (rb *Buffer) ahead(y, x int) bool {
	return y > rb.readLine || (y == rb.readLine && x > rb.readX)
}

// Flush writes the first tap, in the order given, that is visible and is in
// the window of lines starting at beamY. Taps for cells that have already
// been read this frame are skipped. Returns true if a tap was written.
func (rb *Buffer) Flush(taps []pointstore.Tap, beamY int) bool {
	for _, t := range taps {
		if !coords.Within(t.Point.Y, beamY, rb.lookahead) {
			continue
		}

		i := t.Point.Luma.Intensity()
		if i == 0 {
			continue
		}

		y := int(t.Point.Y)
		x := int(t.Point.X)

		// writing into a cell that has already been read would leave the
		// value to be read again lookahead lines later
		if !rb.ahead(y, x) {
			rb.Late++
			continue
		}

		rb.cells[y%rb.lookahead][x] = i
		rb.Flushed++
		return true
	}
	return false
}

// Peek returns the current value of a cell without affecting the read port.
func (rb *Buffer) Peek(line int, x int) signal.Intensity {
	if x < 0 || x >= signal.CoordRange || line < 0 {
		return 0
	}
	return rb.cells[line%rb.lookahead][x]
}
