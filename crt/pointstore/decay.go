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

package pointstore

import "github.com/fpg1/phosphor/crt/signal"

// the afterglow knee. a point decaying through the knee window drops
// immediately to the knee target
const (
	KneeLow    signal.Luma = 3865
	KneeHigh   signal.Luma = 3935
	KneeTarget signal.Luma = 2576
)

// Dim returns the luma after one decay step.
func Dim(l signal.Luma) signal.Luma {
	if l >= KneeLow && l <= KneeHigh {
		return KneeTarget
	}
	return l.Sub(1)
}

// DimN returns the luma after n decay steps. The result is the same as calling
// Dim() n times.
func DimN(l signal.Luma, n uint64) signal.Luma {
	for n > 0 && l > 0 {
		switch {
		case l >= KneeLow && l <= KneeHigh:
			l = KneeTarget
			n--
		case l > KneeHigh:
			d := uint64(l - KneeHigh)
			if n <= d {
				return l - signal.Luma(n)
			}
			l = KneeHigh
			n -= d
		default:
			if n >= uint64(l) {
				return 0
			}
			return l - signal.Luma(n)
		}
	}
	return l
}
