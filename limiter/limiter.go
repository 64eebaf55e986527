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

// Package limiter paces the monitor so that frames are produced at the
// refresh rate of the specification, or at some other requested rate. It
// also measures the rate that is actually achieved.
package limiter

import (
	"sync/atomic"
	"time"
)

// MatchRefreshRate can be passed to SetLimit() to request that the limit
// equals the refresh rate.
const MatchRefreshRate float32 = -1.0

// Limiter waits at the end of each frame for the frame period to elapse.
type Limiter struct {
	// whether to wait at all
	Active bool

	// the refresh rate of the specification
	RefreshRate atomic.Value // float32

	// the rate the limiter is trying to achieve
	IdealFPS atomic.Value // float32

	// the rate the limiter is achieving. updated once a second by
	// MeasureActual()
	Measured atomic.Value // float32

	// the period of the pulse covers several frames. waiting on every frame
	// is needlessly expensive at high rates
	pulse        *time.Ticker
	pulseCt      int
	pulseCtLimit int

	measuringPulse *time.Ticker
	measureTime    time.Time
	measureCt      int
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The limit matches the refresh rate.
func NewLimiter(refreshRate float32) *Limiter {
	lmtr := &Limiter{
		Active:         true,
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Second),
		measureTime:    time.Now(),
	}
	lmtr.Measured.Store(float32(0.0))
	lmtr.RefreshRate.Store(refreshRate)
	lmtr.SetLimit(MatchRefreshRate)
	return lmtr
}

// Stop the limiter. The Limiter should not be used after Stop().
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}

// SetLimit sets the number of frames per second. A value of zero or less
// matches the refresh rate.
func (lmtr *Limiter) SetLimit(fps float32) {
	if fps <= 0.0 {
		fps = lmtr.RefreshRate.Load().(float32)
	}
	if fps <= 0.0 {
		return
	}

	lmtr.IdealFPS.Store(fps)

	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// CheckFrame should be called at the end of every frame. It blocks if the
// frame has been produced too quickly.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	if !lmtr.Active {
		return
	}

	lmtr.pulseCt++
	if lmtr.pulseCt >= lmtr.pulseCtLimit {
		lmtr.pulseCt = 0
		<-lmtr.pulse.C
	}
}

// MeasureActual updates the Measured value if a second has passed since the
// previous measurement.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		lmtr.Measured.Store(float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds()))
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}
