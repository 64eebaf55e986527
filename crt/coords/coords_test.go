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

package coords_test

import (
	"testing"

	"github.com/fpg1/phosphor/crt/coords"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/test"
)

func TestTransform(t *testing.T) {
	bx, by := coords.DeviceToBuffer(0, 0)
	test.ExpectEquality(t, bx, signal.Coord(0))
	test.ExpectEquality(t, by, signal.Coord(1023))

	// device X increases leftwards which is downwards in the buffer
	bx, by = coords.DeviceToBuffer(100, 200)
	test.ExpectEquality(t, bx, signal.Coord(200))
	test.ExpectEquality(t, by, signal.Coord(923))
}

func TestRoundTrip(t *testing.T) {
	seen := make(map[[2]signal.Coord]bool)

	for x := 0; x < signal.CoordRange; x++ {
		for y := 0; y < signal.CoordRange; y += 7 {
			dx := signal.Coord(x)
			dy := signal.Coord(y)
			bx, by := coords.DeviceToBuffer(dx, dy)

			rx, ry := coords.BufferToDevice(bx, by)
			if rx != dx || ry != dy {
				t.Fatalf("round trip failed for (%d,%d): got (%d,%d)", dx, dy, rx, ry)
			}

			k := [2]signal.Coord{bx, by}
			if seen[k] {
				t.Fatalf("transform is not injective at (%d,%d)", dx, dy)
			}
			seen[k] = true
		}
	}
}

func TestIngest(t *testing.T) {
	x, y := coords.BufferToDevice(100, 100)
	ev := coords.Ingest(signal.PixelEvent{X: x, Y: y, Brightness: 5})
	test.ExpectEquality(t, ev, signal.PixelEvent{X: 100, Y: 100, Brightness: 5})
}

func TestWithin(t *testing.T) {
	test.ExpectSuccess(t, coords.Within(100, 100, 8))
	test.ExpectSuccess(t, coords.Within(107, 100, 8))
	test.ExpectFailure(t, coords.Within(108, 100, 8))
	test.ExpectFailure(t, coords.Within(99, 100, 8))
}
