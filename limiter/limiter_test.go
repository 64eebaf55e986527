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

package limiter_test

import (
	"testing"

	"github.com/fpg1/phosphor/limiter"
	"github.com/fpg1/phosphor/test"
)

// tolerance of measurement
const measurementTolerance = 0.1

func TestLimiter(t *testing.T) {
	if testing.Short() {
		t.Skip("limiter test takes several seconds")
	}

	lmtr := limiter.NewLimiter(60.0)
	defer lmtr.Stop()

	for _, hz := range []float32{60.0, 30.0} {
		lmtr.SetLimit(hz)
		test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), hz)

		// the first measurement may include time spent before the limit was
		// changed. the second is the one that is checked
		for range int(hz * 2.5) {
			lmtr.CheckFrame()
			lmtr.MeasureActual()
		}
		rate := lmtr.Measured.Load().(float32)
		test.ExpectApproximate(t, rate, hz, measurementTolerance)
	}
}

func TestMatchRefreshRate(t *testing.T) {
	lmtr := limiter.NewLimiter(50.0)
	defer lmtr.Stop()
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(50.0))

	lmtr.SetLimit(100.0)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(100.0))

	lmtr.SetLimit(limiter.MatchRefreshRate)
	test.ExpectEquality(t, lmtr.IdealFPS.Load().(float32), float32(50.0))
}

func TestInactive(t *testing.T) {
	lmtr := limiter.NewLimiter(1.0)
	defer lmtr.Stop()
	lmtr.Active = false

	// would take a long time if the limiter was waiting
	for range 1000 {
		lmtr.CheckFrame()
	}
}
