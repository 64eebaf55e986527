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

package linedelay_test

import (
	"testing"

	"github.com/fpg1/phosphor/crt/linedelay"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/test"
)

func TestLineDelay(t *testing.T) {
	const length = 10

	ln := linedelay.NewLine(length)
	test.ExpectEquality(t, ln.Len(), length)

	for i := range 50 {
		v := ln.Push(signal.Intensity(i))
		if i < length {
			test.ExpectEquality(t, v, signal.Intensity(0))
		} else {
			test.ExpectEquality(t, v, signal.Intensity(i-length))
		}
	}

	ln.Reset()
	for range length {
		test.ExpectEquality(t, ln.Push(1), signal.Intensity(0))
	}
}

func TestLineDelayPowerOfTwo(t *testing.T) {
	const length = 16

	ln := linedelay.NewLine(length)
	for i := range 100 {
		v := ln.Push(signal.Intensity(i))
		if i >= length {
			test.ExpectEquality(t, v, signal.Intensity(i-length))
		}
	}
}

func TestWindow(t *testing.T) {
	const length = 8

	// a stream of a single lit sample
	w := linedelay.NewWindow(length)

	var n linedelay.Neighbourhood
	var found bool
	for i := range 6 * length {
		v := signal.Intensity(0)
		if i == 0 {
			v = 200
		}
		n = w.Push(v)

		// the sample reaches the centre of the window after two lines and
		// one pixel of delay
		if i == 2*length+1 {
			test.ExpectEquality(t, n.Centre(), signal.Intensity(200))
			found = true
		} else {
			test.ExpectEquality(t, n.Centre(), signal.Intensity(0))
		}
	}
	test.ExpectSuccess(t, found)
}

func TestWindowOrientation(t *testing.T) {
	const length = 8

	// sample value is the raster position, numbered from one
	w := linedelay.NewWindow(length)

	var n linedelay.Neighbourhood
	var pushed int
	for y := range 5 {
		for x := range length {
			pushed++
			n = w.Push(signal.Intensity(y*length + x + 1))
		}
	}

	// the right hand column holds the last pixel of lines 1 to 3. the
	// centre is one pixel to the left of that
	test.ExpectEquality(t, pushed, 5*length)
	test.ExpectEquality(t, n[0][2], signal.Intensity(1*length+length))
	test.ExpectEquality(t, n[1][2], signal.Intensity(2*length+length))
	test.ExpectEquality(t, n[2][2], signal.Intensity(3*length+length))
	test.ExpectEquality(t, n[1][1], signal.Intensity(2*length+length-1))
	test.ExpectEquality(t, n[1][0], signal.Intensity(2*length+length-2))
}
