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

// Package raster generates the scan position of the output display. The
// position includes horizontal and vertical blanking, during which the output
// is not visible.
package raster

import (
	"fmt"

	"github.com/fpg1/phosphor/crt/specification"
)

// Position is the scan position on a single tick.
type Position struct {
	X       int
	Y       int
	Visible bool
}

func (p Position) String() string {
	if p.Visible {
		return fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return fmt.Sprintf("%d,%d (blank)", p.X, p.Y)
}

// Generator is implemented by any type that produces scan positions.
type Generator interface {
	// Position returns the current scan position
	Position() Position

	// Step advances the scan position by one tick. Returns true if the
	// position has wrapped around to the start of a new frame
	Step() bool
}

// Timing is a Generator for a specification.Spec. The visible area is at the
// top-left of the scan.
type Timing struct {
	width  int
	height int
	clks   int
	lines  int

	x int
	y int

	// number of completed frames
	Frames int
}

// NewTiming is the preferred method of initialisation for the Timing type.
func NewTiming(spec specification.Spec) *Timing {
	return &Timing{
		width:  spec.Width,
		height: spec.Height,
		clks:   spec.ClksScanline,
		lines:  spec.ScanlinesTotal,
	}
}

// Reset returns the scan position to the start of the frame.
func (tm *Timing) Reset() {
	tm.x = 0
	tm.y = 0
	tm.Frames = 0
}

// Position implements the Generator interface.
func (tm *Timing) Position() Position {
	return Position{
		X:       tm.x,
		Y:       tm.y,
		Visible: tm.x < tm.width && tm.y < tm.height,
	}
}

// Step implements the Generator interface.
func (tm *Timing) Step() bool {
	tm.x++
	if tm.x < tm.clks {
		return false
	}
	tm.x = 0
	tm.y++
	if tm.y < tm.lines {
		return false
	}
	tm.y = 0
	tm.Frames++
	return true
}

// Offset returns the position n ticks after p, wrapping at the end of the
// frame. The Visible field of the returned Position is set correctly.
func (tm *Timing) Offset(p Position, n int) Position {
	frame := tm.clks * tm.lines
	t := (p.Y*tm.clks + p.X + n) % frame
	if t < 0 {
		t += frame
	}
	x := t % tm.clks
	y := t / tm.clks
	return Position{
		X:       x,
		Y:       y,
		Visible: x < tm.width && y < tm.height,
	}
}
