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

package trace

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/curated"
)

// Sentinal error patterns.
const (
	InvalidField = "trace: invalid %s field (%s)"
)

var (
	pixelPattern = regexp.MustCompile(`P:(\d+)\s+X:(\d+)\s+Y:(\d+)\s+B:(\d+)(?:\s+R:(\d+))?`)
	framePattern = regexp.MustCompile(`F:([[:xdigit:]]+)\s+PC:([[:xdigit:]]+)`)
)

// Kind of record parsed from a log line.
type Kind int

// List of valid Kind values.
const (
	KindNone Kind = iota
	KindPixel
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindPixel:
		return "pixel"
	case KindFrame:
		return "frame"
	}
	return "none"
}

// Pixel is a single logged beam strike.
type Pixel struct {
	Num        int
	X          int
	Y          int
	Brightness int

	// Ring is only meaningful if HasRing is true
	Ring    int
	HasRing bool
}

func (p Pixel) String() string {
	if p.HasRing {
		return fmt.Sprintf("P:%d X:%d Y:%d B:%d R:%d", p.Num, p.X, p.Y, p.Brightness, p.Ring)
	}
	return fmt.Sprintf("P:%d X:%d Y:%d B:%d", p.Num, p.X, p.Y, p.Brightness)
}

// InRange is true if the pixel fits the device coordinate and brightness
// fields without wrapping.
func (p Pixel) InRange() bool {
	return p.X >= 0 && p.X < signal.CoordRange &&
		p.Y >= 0 && p.Y < signal.CoordRange &&
		p.Brightness >= 0 && p.Brightness <= signal.BrightnessMask
}

// Event converts the pixel to the event presented to the CRT.
func (p Pixel) Event() signal.PixelEvent {
	return signal.NewPixelEvent(p.X, p.Y, p.Brightness)
}

// Frame marks the start of a new frame in the log.
type Frame struct {
	Num int
	PC  int
}

func (f Frame) String() string {
	return fmt.Sprintf("F:%x PC:%x", f.Num, f.PC)
}

// Record is the result of parsing one line. Only the field indicated by Kind
// is meaningful.
type Record struct {
	Kind  Kind
	Pixel Pixel
	Frame Frame
}

func (r Record) String() string {
	switch r.Kind {
	case KindPixel:
		return r.Pixel.String()
	case KindFrame:
		return r.Frame.String()
	}
	return r.Kind.String()
}

// ParseLine parses a single line of the log. The line may contain other text
// around the record. A line that contains no record returns a Record of
// KindNone and no error. An error is only returned if a number in a record
// can't be represented.
func ParseLine(line string) (Record, error) {
	if m := pixelPattern.FindStringSubmatch(line); m != nil {
		var p Pixel
		var err error

		if p.Num, err = number(m[1], 10, "P"); err != nil {
			return Record{}, err
		}
		if p.X, err = number(m[2], 10, "X"); err != nil {
			return Record{}, err
		}
		if p.Y, err = number(m[3], 10, "Y"); err != nil {
			return Record{}, err
		}
		if p.Brightness, err = number(m[4], 10, "B"); err != nil {
			return Record{}, err
		}
		if m[5] != "" {
			if p.Ring, err = number(m[5], 10, "R"); err != nil {
				return Record{}, err
			}
			p.HasRing = true
		}

		return Record{Kind: KindPixel, Pixel: p}, nil
	}

	if m := framePattern.FindStringSubmatch(line); m != nil {
		var f Frame
		var err error

		if f.Num, err = number(m[1], 16, "F"); err != nil {
			return Record{}, err
		}
		if f.PC, err = number(m[2], 16, "PC"); err != nil {
			return Record{}, err
		}

		return Record{Kind: KindFrame, Frame: f}, nil
	}

	return Record{Kind: KindNone}, nil
}

func number(s string, base int, field string) (int, error) {
	v, err := strconv.ParseInt(s, base, 32)
	if err != nil {
		return 0, curated.Errorf(InvalidField, field, s)
	}
	return int(v), nil
}
