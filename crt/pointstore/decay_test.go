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

package pointstore_test

import (
	"testing"

	"github.com/fpg1/phosphor/crt/pointstore"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/test"
)

func TestDim(t *testing.T) {
	// the afterglow knee
	test.ExpectEquality(t, pointstore.Dim(3900), signal.Luma(2576))
	test.ExpectEquality(t, pointstore.Dim(3865), signal.Luma(2576))
	test.ExpectEquality(t, pointstore.Dim(3935), signal.Luma(2576))

	// either side of the knee
	test.ExpectEquality(t, pointstore.Dim(3936), signal.Luma(3935))
	test.ExpectEquality(t, pointstore.Dim(3864), signal.Luma(3863))
	test.ExpectEquality(t, pointstore.Dim(4095), signal.Luma(4094))

	// saturation
	test.ExpectEquality(t, pointstore.Dim(1), signal.Luma(0))
	test.ExpectEquality(t, pointstore.Dim(0), signal.Luma(0))
}

func TestDimN(t *testing.T) {
	starts := []signal.Luma{0, 1, 15, 16, 100, 2576, 3864, 3865, 3900, 3935, 3936, 4000, 4095}

	for _, l := range starts {
		iter := l
		for n := uint64(0); n < 4200; n++ {
			if pointstore.DimN(l, n) != iter {
				t.Fatalf("DimN(%d, %d) = %d but iterative result is %d", l, n, pointstore.DimN(l, n), iter)
			}
			iter = pointstore.Dim(iter)
		}
	}
}

func TestDecayIsMonotonicAndBounded(t *testing.T) {
	l := signal.LumaMax
	steps := 0
	for l > 0 {
		n := pointstore.Dim(l)
		if n > l {
			t.Fatalf("decay increased luma from %d to %d", l, n)
		}
		l = n
		steps++
		if steps > int(signal.LumaMax) {
			t.Fatalf("luma did not reach zero")
		}
	}

	// 159 steps to reach the top of the knee, one step into the knee, one
	// step to the knee target and then linear to zero
	test.ExpectEquality(t, steps, 159+1+1+2576)
}
