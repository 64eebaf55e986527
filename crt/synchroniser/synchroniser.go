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

// Package synchroniser carries pixel events from the beam device into the
// pixel clock domain.
//
// The device presents an event by holding the coordinate and brightness
// wires steady and raising the strobe. Every wire passes through two flip
// flops before it is examined. The event is taken on the falling edge of the
// synchronised strobe, by which time the fields have been stable for at least
// two ticks.
package synchroniser

import (
	"fmt"

	"github.com/fpg1/phosphor/crt/signal"
)

// Wires is the state of the interface between the device and the pixel clock
// domain on a single tick.
type Wires struct {
	Event  signal.PixelEvent
	Strobe bool
}

func (w Wires) String() string {
	if w.Strobe {
		return fmt.Sprintf("%s strobe", w.Event)
	}
	return w.Event.String()
}

// Synchroniser is a two flip flop synchroniser with falling edge detection on
// the strobe.
type Synchroniser struct {
	ff1 Wires
	ff2 Wires

	// fields captured while the synchronised strobe was high
	held signal.PixelEvent
	high bool

	// number of events delivered
	Delivered int
}

// Reset returns the synchroniser to its power on state.
func (sy *Synchroniser) Reset() {
	*sy = Synchroniser{}
}

// Tick clocks the wires through the synchroniser. Returns an event on the
// tick that the synchronised strobe falls.
func (sy *Synchroniser) Tick(w Wires) (signal.PixelEvent, bool) {
	sy.ff2 = sy.ff1
	sy.ff1 = w

	if sy.ff2.Strobe {
		sy.held = sy.ff2.Event
		sy.high = true
		return signal.PixelEvent{}, false
	}

	if sy.high {
		sy.high = false
		sy.Delivered++
		return sy.held, true
	}

	return signal.PixelEvent{}, false
}

type strobePhase int

const (
	phaseIdle strobePhase = iota
	phaseHigh
	phaseLow
)

// Strober drives the wires on behalf of the device. Each event is presented
// with the strobe high for one tick followed by the strobe low for one tick,
// the fields being held for both.
type Strober struct {
	ev    signal.PixelEvent
	phase strobePhase
}

// Reset discards any event being presented.
func (st *Strober) Reset() {
	*st = Strober{}
}

// Ready is true if the Strober can accept another event.
func (st *Strober) Ready() bool {
	return st.phase == phaseIdle
}

// Present begins presenting an event. Returns false if an event is already
// being presented.
func (st *Strober) Present(ev signal.PixelEvent) bool {
	if st.phase != phaseIdle {
		return false
	}
	st.ev = ev
	st.phase = phaseHigh
	return true
}

// Wires returns the state of the wires for this tick and advances the
// Strober.
func (st *Strober) Wires() Wires {
	switch st.phase {
	case phaseHigh:
		st.phase = phaseLow
		return Wires{Event: st.ev, Strobe: true}
	case phaseLow:
		st.phase = phaseIdle
		return Wires{Event: st.ev}
	}
	return Wires{Event: st.ev}
}
