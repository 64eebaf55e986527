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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is remembered and is
// used to identify the error later, so patterns should be declared as
// constants by the package that raises them. For example:
//
//	const SpecUnknown = "spec: unknown specification (%s)"
//
//	e := curated.Errorf(SpecUnknown, "VGA2")
//
//	if curated.Is(e, SpecUnknown) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("phosphor: %v", e)
//
//	if curated.Has(f, SpecUnknown) {
//		fmt.Println("true")
//	}
//
// When curated errors are wrapped inside one another the message of each
// error is joined with ": ". Adjacent duplicate parts of the message are
// removed, so wrapping an error with the same prefix does not stutter.
package curated
