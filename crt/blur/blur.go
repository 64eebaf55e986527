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

// Package blur implements the output stage: a weighted blur over a three by
// three neighbourhood followed by the mapping of intensity to the colour of
// the phosphor.
package blur

import (
	"github.com/fpg1/phosphor/crt/linedelay"
	"github.com/fpg1/phosphor/crt/signal"
)

// DefaultThreshold is the centre intensity at and above which the centre is
// passed through unblurred.
const DefaultThreshold = 242

// FlashThreshold is the intensity at which the colour mapping moves from the
// yellow-green afterglow to the blue-white flash of a freshly struck point.
const FlashThreshold = 0x80

// Blur returns the intensity of the centre of the neighbourhood. Bright
// centres pass through unchanged. Otherwise the result is the average of the
// neighbourhood with the top-left and bottom-right corners at half weight.
func Blur(n linedelay.Neighbourhood, threshold int) signal.Intensity {
	c := n.Centre()
	if int(c) >= threshold {
		return c
	}

	var sum int
	for r := range 3 {
		for col := range 3 {
			sum += int(n[r][col])
		}
	}

	// half weight corners
	sum -= int(n[0][0]) - int(n[0][0])/2
	sum -= int(n[2][2]) - int(n[2][2])/2

	return signal.Intensity(sum >> 3)
}

func saturate(v int) uint8 {
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

// Colour maps intensity to RGB. The ramp is continuous at FlashThreshold.
func Colour(i signal.Intensity) signal.RGB {
	v := int(i)
	if v < FlashThreshold {
		return signal.RGB{
			R: uint8(v),
			G: uint8(v + v/2),
			B: uint8(v / 4),
		}
	}

	t := v - FlashThreshold
	return signal.RGB{
		R: saturate(128 + t),
		G: saturate(192 + t/2),
		B: saturate(32 + 2*t),
	}
}
