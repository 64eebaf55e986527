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

// Package linedelay implements the scanline delay registers that give the
// blur stage access to the lines above and below the current pixel.
//
// Each Line is a circular buffer. The read pointer trails the write pointer
// by exactly one scanline so that the value read on any tick is the value
// written one scanline earlier. Three Lines in series provide three adjacent
// scanlines.
package linedelay

import (
	"math/bits"

	"github.com/fpg1/phosphor/crt/signal"
)

// Line is a single scanline delay register.
type Line struct {
	buf    []signal.Intensity
	mask   int
	length int
	write  int
}

// NewLine is the preferred method of initialisation for the Line type. The
// length is the number of clocks in a scanline, including blanking.
func NewLine(length int) *Line {
	size := 1 << bits.Len(uint(length))
	return &Line{
		buf:    make([]signal.Intensity, size),
		mask:   size - 1,
		length: length,
	}
}

// Reset zeroes the register.
func (ln *Line) Reset() {
	clear(ln.buf)
	ln.write = 0
}

// Len returns the delay of the register in ticks.
func (ln *Line) Len() int {
	return ln.length
}

// Push writes v to the register and returns the value written one scanline
// earlier.
func (ln *Line) Push(v signal.Intensity) signal.Intensity {
	ln.buf[ln.write] = v
	read := (ln.write - ln.length) & ln.mask
	ln.write = (ln.write + 1) & ln.mask
	return ln.buf[read]
}

// Neighbourhood is a three by three window of samples, indexed by row and
// then by column. Row zero is the line above the centre and column zero is
// the pixel to the left.
type Neighbourhood [3][3]signal.Intensity

// Centre returns the sample at the centre of the window.
func (n Neighbourhood) Centre() signal.Intensity {
	return n[1][1]
}

// Window produces a Neighbourhood from a stream of samples arriving in raster
// order. The stream is expected to run two lines and one pixel ahead of the
// centre of the window.
type Window struct {
	lines [3]*Line
	n     Neighbourhood
}

// NewWindow is the preferred method of initialisation for the Window type.
func NewWindow(length int) *Window {
	return &Window{
		lines: [3]*Line{NewLine(length), NewLine(length), NewLine(length)},
	}
}

// Reset zeroes the delay lines and the window.
func (w *Window) Reset() {
	for _, ln := range w.lines {
		ln.Reset()
	}
	w.n = Neighbourhood{}
}

// Push feeds the next sample of the stream into the window and returns the
// updated Neighbourhood.
func (w *Window) Push(v signal.Intensity) Neighbourhood {
	d1 := w.lines[0].Push(v)
	d2 := w.lines[1].Push(d1)
	d3 := w.lines[2].Push(d2)

	// rows are shifted right so that the newest sample is on the right
	for r, s := range [3]signal.Intensity{d3, d2, d1} {
		w.n[r][0] = w.n[r][1]
		w.n[r][1] = w.n[r][2]
		w.n[r][2] = s
	}

	return w.n
}
