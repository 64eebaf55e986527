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

// Package trace reads the serial debug log written by the display hardware.
// Each pixel the hardware plots is logged as a single line:
//
//	P:1234 X:512 Y:300 B:7 R:42
//
// P is a running count of pixels, X and Y are device coordinates, B is the
// brightness code and R (optional) is the position of the hardware ring
// buffer. Frame boundaries are logged as:
//
//	F:1a PC:3f2
//
// with both fields in hexadecimal. Lines matching neither form are ignored.
//
// A parsed log can be replayed into the CRT with Replay() or summarised as an
// ASCII picture with the Preview type.
package trace
