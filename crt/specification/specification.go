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

// Package specification contains the construction-time constants of the CRT
// emulation. A Spec describes both the raster that the CRT is scanned onto and
// the dimensions of the phosphor model. Nothing in a Spec can be changed once
// a CRT has been created with it.
package specification

import (
	"strings"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/curated"
)

// Sentinal error patterns.
const (
	UnknownSpec = "specification: unknown specification (%s)"
	InvalidSpec = "specification: %s: %s"
)

// NumStages is the number of stages in the phosphor point store. The stage
// priority order used by the point store and row buffer depends on there
// being exactly four.
const NumStages = 4

// Spec is the complete set of construction-time constants.
type Spec struct {
	ID string

	// the visible portion of the raster
	Width  int
	Height int

	// the total number of clocks in a scanline, including horizontal blanking.
	// this is also the length of each line delay register
	ClksScanline int

	// the total number of scanlines in a frame, including vertical blanking
	ScanlinesTotal int

	// the number of frames per second required by the specification
	RefreshRate float32

	// number of slots in each stage of the point store
	Depth int

	// number of externally visible taps on each stage
	Taps int

	// number of scanlines in the row staging buffer
	Lookahead int

	// decay is applied once every DecayDivisor ticks
	DecayDivisor int

	// number of ticks without a refresh or insertion before the point store
	// looks beyond the incoming points for a reclaimable slot
	StaleThreshold int

	// centre samples at or above this intensity are not blurred
	BlurThreshold signal.Intensity

	// capacity of the input queue
	QueueDepth int

	// capacity of the inbox that carries events from the device domain to the
	// raster domain
	InboxDepth int

	// whether events are expanded into a five point cluster
	ThickBeam bool

	// events with this brightness are never expanded
	NoExpandBrightness signal.Brightness
}

func (spec Spec) String() string {
	return spec.ID
}

// Capacity is the maximum number of simultaneous live points.
func (spec Spec) Capacity() int {
	return NumStages * spec.Depth
}

// TapSpacing is the distance in slots between adjacent taps on a stage.
func (spec Spec) TapSpacing() int {
	return spec.Depth / spec.Taps
}

// SearchWindow is the number of ticks an event is compared against the taps
// before it is inserted. Every slot in the point store passes a visible tap
// within TapSpacing ticks. The extra tick means that events inserted back to
// back do not arrive at the taps on the same ticks as one another.
func (spec Spec) SearchWindow() int {
	return spec.TapSpacing() + 1
}

// ClksFrame is the total number of clocks in a frame.
func (spec Spec) ClksFrame() int {
	return spec.ClksScanline * spec.ScanlinesTotal
}

// Validate checks that the values in the specification are usable.
func (spec Spec) Validate() error {
	if spec.Width <= 0 || spec.Width > signal.CoordRange {
		return curated.Errorf(InvalidSpec, spec.ID, "visible width out of range")
	}
	if spec.Height <= 0 || spec.Height > signal.CoordRange {
		return curated.Errorf(InvalidSpec, spec.ID, "visible height out of range")
	}
	if spec.ClksScanline < spec.Width {
		return curated.Errorf(InvalidSpec, spec.ID, "scanline shorter than visible width")
	}
	if spec.ScanlinesTotal < spec.Height {
		return curated.Errorf(InvalidSpec, spec.ID, "frame shorter than visible height")
	}
	if spec.Taps <= 0 || spec.Depth < spec.Taps || spec.Depth%spec.Taps != 0 {
		return curated.Errorf(InvalidSpec, spec.ID, "depth must be a multiple of the number of taps")
	}
	if spec.Lookahead <= 0 {
		return curated.Errorf(InvalidSpec, spec.ID, "lookahead must be positive")
	}
	if spec.DecayDivisor <= 0 {
		return curated.Errorf(InvalidSpec, spec.ID, "decay divisor must be positive")
	}
	if spec.QueueDepth <= 0 || spec.InboxDepth <= 0 {
		return curated.Errorf(InvalidSpec, spec.ID, "queues must have a positive capacity")
	}
	return nil
}

// phosphor values are the same for every raster. they are those of the
// original hardware
func withPhosphor(spec Spec) Spec {
	spec.Depth = 1024
	spec.Taps = 8
	spec.Lookahead = 8
	spec.DecayDivisor = 8
	spec.StaleThreshold = 1024
	spec.BlurThreshold = 242
	spec.QueueDepth = 64
	spec.InboxDepth = 256
	spec.ThickBeam = true
	spec.NoExpandBrightness = 0
	return spec
}

// SpecVGA is the 640x480 raster. This is the default specification.
var SpecVGA = withPhosphor(Spec{
	ID:             "VGA",
	Width:          640,
	Height:         480,
	ClksScanline:   800,
	ScanlinesTotal: 525,
	RefreshRate:    60.0,
})

// SpecSVGA is the 800x600 raster.
var SpecSVGA = withPhosphor(Spec{
	ID:             "SVGA",
	Width:          800,
	Height:         600,
	ClksScanline:   1056,
	ScanlinesTotal: 628,
	RefreshRate:    60.0,
})

// SpecXGA is the 1024x768 raster.
var SpecXGA = withPhosphor(Spec{
	ID:             "XGA",
	Width:          1024,
	Height:         768,
	ClksScanline:   1344,
	ScanlinesTotal: 806,
	RefreshRate:    60.0,
})

// SpecList is the list of specifications that can be requested by name.
var SpecList = []string{"VGA", "SVGA", "XGA"}

// GetSpec returns the named specification. Names are not case sensitive.
func GetSpec(id string) (Spec, error) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case "VGA", "":
		return SpecVGA, nil
	case "SVGA":
		return SpecSVGA, nil
	case "XGA":
		return SpecXGA, nil
	}
	return Spec{}, curated.Errorf(UnknownSpec, id)
}
