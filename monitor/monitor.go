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

// Package monitor drives a CRT with a raster timing generator and sends the
// visible output to any number of PixelRenderers.
//
// The monitor owns the raster clock domain. Every call to Frame() must be
// made from the same goroutine, which is checked once per frame. Beam events
// can be sent to the CRT from any goroutine.
package monitor

import (
	"context"

	"github.com/fpg1/phosphor/assert"
	"github.com/fpg1/phosphor/crt"
	"github.com/fpg1/phosphor/crt/raster"
	"github.com/fpg1/phosphor/curated"
	"github.com/fpg1/phosphor/limiter"
	"github.com/fpg1/phosphor/logger"
)

// Sentinal error patterns.
const (
	RendererError = "monitor: renderer: %v"
	WrongOwner    = "monitor: %v"
)

// Monitor is the raster display of the CRT.
type Monitor struct {
	crt    *crt.CRT
	timing *raster.Timing
	lmtr   *limiter.Limiter
	owner  assert.Owner

	renderers []PixelRenderer
	triggers  []FrameTrigger

	frameNum int
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
// The frame rate is capped at the refresh rate of the CRT specification.
func NewMonitor(c *crt.CRT) *Monitor {
	return &Monitor{
		crt:    c,
		timing: raster.NewTiming(c.Spec()),
		lmtr:   limiter.NewLimiter(c.Spec().RefreshRate),
	}
}

func (mon *Monitor) String() string {
	return mon.crt.Spec().ID
}

// CRT returns the CRT being driven by the monitor.
func (mon *Monitor) CRT() *crt.CRT {
	return mon.crt
}

// AddPixelRenderer registers an additional PixelRenderer.
func (mon *Monitor) AddPixelRenderer(r PixelRenderer) error {
	if err := r.Resize(mon.crt.Spec()); err != nil {
		return curated.Errorf(RendererError, err)
	}
	mon.renderers = append(mon.renderers, r)
	return nil
}

// AddFrameTrigger registers an additional FrameTrigger.
func (mon *Monitor) AddFrameTrigger(f FrameTrigger) {
	mon.triggers = append(mon.triggers, f)
}

// SetFPSCap sets whether the monitor waits for the frame limiter.
func (mon *Monitor) SetFPSCap(limit bool) {
	mon.lmtr.Active = limit
}

// SetFPS requests the number of frames per second. A value of zero or less
// restores the refresh rate of the specification.
func (mon *Monitor) SetFPS(fps float32) {
	mon.lmtr.SetLimit(fps)
}

// GetActualFPS returns the measured number of frames per second.
func (mon *Monitor) GetActualFPS() float32 {
	return mon.lmtr.Measured.Load().(float32)
}

// FrameNum returns the number of frames completed.
func (mon *Monitor) FrameNum() int {
	return mon.frameNum
}

// Frame scans a single frame.
func (mon *Monitor) Frame() error {
	if err := mon.owner.Claim(); err != nil {
		return curated.Errorf(WrongOwner, err)
	}

	frameNum := mon.frameNum + 1
	for _, r := range mon.renderers {
		if err := r.NewFrame(frameNum); err != nil {
			return curated.Errorf(RendererError, err)
		}
	}

	for {
		pos := mon.timing.Position()
		c := mon.crt.Tick(pos)
		if pos.Visible {
			for _, r := range mon.renderers {
				if err := r.SetPixel(pos.X, pos.Y, c); err != nil {
					return curated.Errorf(RendererError, err)
				}
			}
		}
		if mon.timing.Step() {
			break
		}
	}

	mon.frameNum = frameNum
	for _, f := range mon.triggers {
		if err := f.EndFrame(frameNum); err != nil {
			return curated.Errorf(RendererError, err)
		}
	}

	mon.lmtr.CheckFrame()
	mon.lmtr.MeasureActual()

	return nil
}

// Run scans frames until the context is cancelled or until the number of
// frames has been reached. A frames value of zero or less means there is no
// limit.
func (mon *Monitor) Run(ctx context.Context, frames int) error {
	logger.Logf(logger.Allow, "monitor", "running %s at %.2fHz", mon, mon.lmtr.IdealFPS.Load().(float32))

	for frames <= 0 || mon.frameNum < frames {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := mon.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// End the monitor. EndRendering() is called on every PixelRenderer and the
// Monitor should not be used afterwards.
func (mon *Monitor) End() error {
	mon.lmtr.Stop()

	var err error
	for _, r := range mon.renderers {
		if e := r.EndRendering(); e != nil && err == nil {
			err = curated.Errorf(RendererError, e)
		}
	}

	logger.Logf(logger.Allow, "monitor", "ended after %d frames", mon.frameNum)
	return err
}
