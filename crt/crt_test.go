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

package crt_test

import (
	"path/filepath"
	"testing"

	"github.com/fpg1/phosphor/crt"
	"github.com/fpg1/phosphor/crt/coords"
	"github.com/fpg1/phosphor/crt/raster"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/test"
)

type harness struct {
	crt *crt.CRT
	tm  *raster.Timing
}

func newHarness(t *testing.T, spec specification.Spec) *harness {
	t.Helper()
	c, err := crt.NewCRT(spec)
	test.DemandSuccess(t, err)
	return &harness{
		crt: c,
		tm:  raster.NewTiming(spec),
	}
}

// tick once and return the colour at the position that was ticked.
func (h *harness) tick() (raster.Position, signal.RGB) {
	p := h.tm.Position()
	c := h.crt.Tick(p)
	h.tm.Step()
	return p, c
}

func (h *harness) run(n int) {
	for range n {
		h.tick()
	}
}

// run until the next tick is at the position.
func (h *harness) runTo(x, y int) {
	for {
		p := h.tm.Position()
		if p.X == x && p.Y == y {
			return
		}
		h.tick()
	}
}

// the device coordinates of a position in the raster.
func device(x, y int) (int, int) {
	dx, dy := coords.BufferToDevice(signal.NewCoord(x), signal.NewCoord(y))
	return int(dx), int(dy)
}

func TestNewCRT(t *testing.T) {
	c, err := crt.NewCRT(specification.SpecVGA)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Spec().ID, "VGA")

	spec := specification.SpecVGA
	spec.Taps = 3
	_, err = crt.NewCRT(spec)
	test.ExpectFailure(t, err)
}

func TestBlanking(t *testing.T) {
	h := newHarness(t, specification.SpecVGA)
	for range h.crt.Spec().ClksFrame() {
		p, c := h.tick()
		if !p.Visible {
			test.DemandSuccess(t, c.IsBlack())
		}
	}
}

// a single event at a known position reaches the row buffer ahead of the
// scan and is visible when the scan reaches it
func TestSinglePoint(t *testing.T) {
	h := newHarness(t, specification.SpecVGA)

	h.runTo(0, 80)
	dx, dy := device(100, 100)
	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(dx, dy, 3)))

	// the row buffer cell is filled before the scan reads it. the
	// row buffer is read two lines and two pixels ahead of the scan
	var staged bool
	for {
		p, _ := h.tick()
		if p.X == 97 && p.Y == 98 {
			break
		}

		cell := h.crt.Rows().Peek(100, 100)
		if cell == 0 {
			continue
		}
		staged = true

		pts := h.crt.Store().Find(signal.NewCoord(100), signal.NewCoord(100))
		test.DemandEquality(t, len(pts), 1)
		test.ExpectApproximate(t, int(cell), int(pts[0].Luma.Intensity()), 0.05)
	}
	test.ExpectSuccess(t, staged)

	// the cell is cleared when it is read
	h.runTo(0, 99)
	test.ExpectEquality(t, h.crt.Rows().Peek(100, 100), signal.Intensity(0))

	h.runTo(100, 100)
	p, c := h.tick()
	test.ExpectEquality(t, p, raster.Position{X: 100, Y: 100, Visible: true})
	test.ExpectFailure(t, c.IsBlack())

	// a point far from the event is black
	h.runTo(300, 300)
	_, c = h.tick()
	test.ExpectSuccess(t, c.IsBlack())
}

func TestThickBeam(t *testing.T) {
	h := newHarness(t, specification.SpecVGA)

	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 3)))
	h.run(2000)

	cluster := [][2]int{{50, 50}, {50, 49}, {50, 51}, {49, 50}, {51, 50}}
	for _, d := range cluster {
		bx, by := coords.DeviceToBuffer(signal.NewCoord(d[0]), signal.NewCoord(d[1]))
		test.ExpectEquality(t, len(h.crt.Store().Find(bx, by)), 1, d)
	}
	test.ExpectEquality(t, h.crt.Store().Live(), len(cluster))
}

func TestNoExpand(t *testing.T) {
	h := newHarness(t, specification.SpecVGA)

	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 0)))
	h.run(2000)
	test.ExpectEquality(t, h.crt.Store().Live(), 1)
}

func TestDedup(t *testing.T) {
	h := newHarness(t, specification.SpecVGA)

	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 3)))
	h.run(2000)
	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 3)))
	h.run(2000)

	test.ExpectEquality(t, h.crt.Store().Live(), 5)
	test.ExpectEquality(t, h.crt.Store().Refreshed, 5)
	test.ExpectEquality(t, h.crt.Store().Inserted, 5)
}

func TestInboxOverflow(t *testing.T) {
	spec := specification.SpecVGA
	spec.InboxDepth = 2
	h := newHarness(t, spec)

	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(1, 1, 0)))
	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(2, 2, 0)))
	test.ExpectFailure(t, h.crt.Beam(signal.NewPixelEvent(3, 3, 0)))

	// one full frame and the first tick of the next
	h.run(spec.ClksFrame() + 1)

	tel := h.crt.Telemetry()
	test.ExpectEquality(t, tel.Frames, 1)
	test.ExpectEquality(t, tel.FrameReceived, 2)
	test.ExpectEquality(t, tel.FrameInserted, 2)
	test.ExpectEquality(t, tel.FrameDropped, 1)
	test.ExpectEquality(t, tel.InboxLen, 0)
	test.ExpectEquality(t, tel.QueueLen, 0)
}

func TestTelemetry(t *testing.T) {
	spec := specification.SpecVGA
	h := newHarness(t, spec)

	test.ExpectEquality(t, h.crt.Telemetry().Frames, 0)

	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 3)))
	h.run(spec.ClksFrame() + 1)

	tel := h.crt.Telemetry()
	test.ExpectEquality(t, tel.Spec, "VGA")
	test.ExpectEquality(t, tel.Frames, 1)
	test.ExpectEquality(t, tel.FrameReceived, 1)
	test.ExpectEquality(t, tel.FrameExpanded, 4)
	test.ExpectEquality(t, tel.FrameInserted, 5)
	test.ExpectEquality(t, tel.FrameDropped, 0)

	// the points have decayed by the end of the frame
	test.ExpectEquality(t, tel.Live, 0)

	// counters are per frame
	h.run(spec.ClksFrame())
	tel = h.crt.Telemetry()
	test.ExpectEquality(t, tel.Frames, 2)
	test.ExpectEquality(t, tel.FrameReceived, 0)
	test.ExpectEquality(t, tel.FrameInserted, 0)
}

func TestReset(t *testing.T) {
	h := newHarness(t, specification.SpecVGA)

	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 3)))
	h.run(2000)
	test.ExpectInequality(t, h.crt.Store().Live(), 0)

	h.crt.Beam(signal.NewPixelEvent(60, 60, 3))
	h.crt.Reset()
	test.ExpectEquality(t, h.crt.Store().Live(), 0)
	test.ExpectEquality(t, h.crt.Telemetry().Frames, 0)

	// the event in the inbox was discarded
	h.run(2000)
	test.ExpectEquality(t, h.crt.Store().Live(), 0)
}

func TestPreferences(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")

	p, err := crt.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Spec.String(), "VGA")
	test.ExpectEquality(t, p.ThickBeam.Get().(bool), true)
	test.ExpectEquality(t, p.Blur.Get().(bool), true)

	// unknown specifications are rejected
	test.ExpectFailure(t, p.Spec.Set("PAL"))
	test.ExpectSuccess(t, p.Spec.Set("xga"))
	spec, err := p.Specification()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, spec.ID, "XGA")

	test.ExpectSuccess(t, p.ThickBeam.Set(false))
	test.DemandSuccess(t, p.Save())

	// values survive a round trip through the file
	q, err := crt.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.Spec.String(), "xga")
	test.ExpectEquality(t, q.ThickBeam.Get().(bool), false)

	// thick beam preference takes effect
	h := newHarness(t, specification.SpecVGA)
	h.crt.SetPreferences(q)
	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(50, 50, 3)))
	h.run(2000)
	test.ExpectEquality(t, h.crt.Store().Live(), 1)
}

func TestBlurPreference(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "preferences")
	p, err := crt.NewPreferencesFromFile(pth)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.ThickBeam.Set(false))
	test.ExpectSuccess(t, p.Blur.Set(false))

	h := newHarness(t, specification.SpecVGA)
	h.crt.SetPreferences(p)

	h.runTo(0, 90)
	dx, dy := device(100, 100)
	test.ExpectSuccess(t, h.crt.Beam(signal.NewPixelEvent(dx, dy, 0)))

	// without blur a point does not spread to its neighbours
	h.runTo(99, 100)
	_, c := h.tick()
	test.ExpectSuccess(t, c.IsBlack())
	_, c = h.tick()
	test.ExpectFailure(t, c.IsBlack())
	_, c = h.tick()
	test.ExpectSuccess(t, c.IsBlack())
}
