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

// Package signal defines the fixed-width values that flow between the stages
// of the CRT emulation. Each type documents how it behaves when a value does
// not fit the field: coordinates wrap, luma saturates, brightness is masked.
package signal

import (
	"fmt"
	"strings"
)

// CoordBits is the width of a coordinate field.
const CoordBits = 10

// CoordMask isolates the bits of a coordinate field.
const CoordMask = (1 << CoordBits) - 1

// CoordRange is the number of distinct coordinates on either axis.
const CoordRange = CoordMask + 1

// Coord is a 10-bit screen coordinate. Arithmetic wraps modulo CoordRange, in
// the same way as a hardware register of that width.
type Coord uint16

// NewCoord wraps v into the coordinate range. Negative values wrap from the
// top of the range.
func NewCoord(v int) Coord {
	return Coord(v & CoordMask)
}

// Add returns c+d wrapped to the coordinate range.
func (c Coord) Add(d int) Coord {
	return NewCoord(int(c) + d)
}

// Invert flips every bit of the coordinate field.
func (c Coord) Invert() Coord {
	return ^c & CoordMask
}

// LumaBits is the width of the luma field.
const LumaBits = 12

// LumaMax is the luma of a freshly struck phosphor point.
const LumaMax Luma = (1 << LumaBits) - 1

// Luma is the 12-bit intensity of a glowing point. Luma never underflows:
// subtraction saturates at zero.
type Luma uint16

// Intensity returns the top eight bits of the luma value.
func (l Luma) Intensity() Intensity {
	return Intensity(l >> (LumaBits - 8))
}

// Visible is true if the top eight bits of luma are not all zero.
func (l Luma) Visible() bool {
	return l>>(LumaBits-8) != 0
}

// Sub returns l-n, saturating at zero.
func (l Luma) Sub(n int) Luma {
	if n >= int(l) {
		return 0
	}
	return l - Luma(n)
}

// BrightnessMask isolates the three bits of the brightness field.
const BrightnessMask = 0x07

// Brightness is the 3-bit brightness code sent with every beam event.
type Brightness uint8

// NewBrightness masks v to the brightness field.
func NewBrightness(v int) Brightness {
	return Brightness(v & BrightnessMask)
}

// Intensity is an eight bit sample as it travels through the row buffer, line
// delays and blur stage.
type Intensity uint8

// PixelEvent is a single beam strike as it arrives from the device.
type PixelEvent struct {
	X          Coord
	Y          Coord
	Brightness Brightness
}

// NewPixelEvent creates a PixelEvent with every field forced into range.
func NewPixelEvent(x, y, brightness int) PixelEvent {
	return PixelEvent{
		X:          NewCoord(x),
		Y:          NewCoord(y),
		Brightness: NewBrightness(brightness),
	}
}

func (ev PixelEvent) String() string {
	return fmt.Sprintf("X:%d Y:%d B:%d", ev.X, ev.Y, ev.Brightness)
}

// LivePoint is a glowing point on the phosphor. A zero value is an empty slot.
type LivePoint struct {
	X    Coord
	Y    Coord
	Luma Luma
}

func (p LivePoint) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("(%d,%d) luma=%d", p.X, p.Y, p.Luma))
	if !p.Luma.Visible() {
		s.WriteString(" [invisible]")
	}
	return s.String()
}

// At is true if the point is at the same position as the event.
func (p LivePoint) At(x, y Coord) bool {
	return p.X == x && p.Y == y
}

// RGB is the colour produced for one raster tick.
type RGB struct {
	R, G, B uint8
}

// VideoBlack is the colour output during blanking.
var VideoBlack = RGB{}

// IsBlack is true if all colour components are zero.
func (c RGB) IsBlack() bool {
	return c == VideoBlack
}
