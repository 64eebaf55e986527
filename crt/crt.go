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

// Package crt emulates the phosphor of a vector display CRT on a raster
// display. Beam events arrive from the beam device at irregular intervals
// and the raster is scanned at a fixed rate. Between the two, a bounded
// store of glowing points decays each point over time, giving the afterglow
// of the original display without a full framebuffer.
//
// The CRT is driven by two clock domains. Beam() may be called from any
// goroutine. Tick() and every other function that touches the pipeline must
// be called from a single goroutine.
package crt

import (
	"sync/atomic"

	"github.com/fpg1/phosphor/crt/blur"
	"github.com/fpg1/phosphor/crt/coords"
	"github.com/fpg1/phosphor/crt/inputqueue"
	"github.com/fpg1/phosphor/crt/linedelay"
	"github.com/fpg1/phosphor/crt/pointstore"
	"github.com/fpg1/phosphor/crt/raster"
	"github.com/fpg1/phosphor/crt/rowbuffer"
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/crt/synchroniser"
	"github.com/fpg1/phosphor/logger"
)

// Lead is the number of scanlines the row buffer is read ahead of the raster
// position. The line delay registers return it to the raster position.
const Lead = 2

// the number of ticks the row buffer is read ahead of the raster position.
// the extra pixel is taken up by the registered read of the row buffer and
// the extra pixel after that by the shift registers of the neighbourhood
func fetchAhead(spec specification.Spec) int {
	return Lead*spec.ClksScanline + 2
}

// CRT is the phosphor emulation pipeline.
type CRT struct {
	spec specification.Spec

	// device domain. events are carried across the clock domain by the
	// inbox
	inbox        chan signal.PixelEvent
	inboxDropped atomic.Int64

	// raster domain
	strober synchroniser.Strober
	sync    synchroniser.Synchroniser
	queue   *inputqueue.Queue
	store   *pointstore.Store
	rows    *rowbuffer.Buffer
	window  *linedelay.Window
	timing  *raster.Timing

	prefs *Preferences

	// values sampled from the preferences at the start of every frame
	blurEnabled bool

	// telemetry is accumulated over a frame and published at the end of the
	// frame
	frame     telemetryFrame
	telemetry atomic.Value
}

// NewCRT is the preferred method of initialisation for the CRT type.
func NewCRT(spec specification.Spec) (*CRT, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	crt := &CRT{
		spec:        spec,
		inbox:       make(chan signal.PixelEvent, spec.InboxDepth),
		queue:       inputqueue.NewQueue(spec),
		store:       pointstore.NewStore(spec),
		rows:        rowbuffer.NewBuffer(spec),
		window:      linedelay.NewWindow(spec.ClksScanline),
		timing:      raster.NewTiming(spec),
		blurEnabled: true,
	}
	crt.telemetry.Store(Telemetry{Spec: spec.ID})

	logger.Logf(logger.Allow, "crt", "created with %s (%dx%d)", spec.ID, spec.Width, spec.Height)

	return crt, nil
}

// Spec returns the specification the CRT was created with.
func (crt *CRT) Spec() specification.Spec {
	return crt.spec
}

// Store returns the point store. It should be used for inspection only.
func (crt *CRT) Store() *pointstore.Store {
	return crt.store
}

// Rows returns the row staging buffer. It should be used for inspection only.
func (crt *CRT) Rows() *rowbuffer.Buffer {
	return crt.rows
}

// SetPreferences attaches preferences to the CRT. Preferences are sampled at
// the start of every frame. A nil value detaches the preferences.
func (crt *CRT) SetPreferences(p *Preferences) {
	crt.prefs = p
	crt.samplePreferences()
}

func (crt *CRT) samplePreferences() {
	if crt.prefs == nil {
		return
	}
	crt.blurEnabled = crt.prefs.Blur.Get().(bool)
	crt.queue.SetThickBeam(crt.prefs.ThickBeam.Get().(bool))
}

// Reset returns the pipeline to its power on state. Events waiting in the
// inbox are discarded.
func (crt *CRT) Reset() {
drain:
	for {
		select {
		case <-crt.inbox:
		default:
			break drain
		}
	}

	crt.inboxDropped.Store(0)
	crt.strober.Reset()
	crt.sync.Reset()
	crt.queue.Reset()
	crt.store.Reset()
	crt.rows.Reset()
	crt.window.Reset()
	crt.frame = telemetryFrame{}
	crt.telemetry.Store(Telemetry{Spec: crt.spec.ID})

	logger.Log(logger.Allow, "crt", "reset")
}

// Beam is the entry point for the beam device. It never blocks. Returns false
// if the inbox is full, in which case the event is dropped.
//
// Beam can be called from any goroutine.
func (crt *CRT) Beam(ev signal.PixelEvent) bool {
	select {
	case crt.inbox <- ev:
		return true
	default:
		crt.inboxDropped.Add(1)
		logger.Log(logger.Allow, "crt", "inbox full: beam event dropped")
		return false
	}
}

// Tick advances every stage of the pipeline by one tick and returns the
// colour at the raster position.
func (crt *CRT) Tick(pos raster.Position) signal.RGB {
	if pos.X == 0 && pos.Y == 0 {
		if crt.store.Ticks() > 0 {
			crt.endFrame()
		}
		crt.samplePreferences()
	}

	// clock domain crossing
	if crt.strober.Ready() {
		select {
		case ev := <-crt.inbox:
			crt.strober.Present(ev)
		default:
		}
	}
	if ev, ok := crt.sync.Tick(crt.strober.Wires()); ok {
		crt.frame.received++
		if crt.queue.Push(coords.Ingest(ev)) == 0 {
			logger.Logf(logger.Allow, "crt", "input queue full: %s dropped", ev)
		}
	}

	crt.store.Tick(crt.queue)

	// the row buffer is read ahead of the raster position. the flush is
	// keyed to the read position so that the flush window is always ahead
	// of the scan
	f := crt.timing.Offset(pos, fetchAhead(crt.spec))
	v := crt.rows.Fetch(f.Y, f.X)
	crt.rows.Flush(crt.store.Taps(), f.Y)

	n := crt.window.Push(v)

	if !pos.Visible {
		return signal.VideoBlack
	}

	if !crt.blurEnabled {
		return blur.Colour(n.Centre())
	}
	return blur.Colour(blur.Blur(n, int(crt.spec.BlurThreshold)))
}
