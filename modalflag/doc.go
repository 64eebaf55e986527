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

// Package modalflag wraps the flag package from the standard library so that
// a program can be divided into modes, each mode having its own set of flags.
//
// Arguments are given once with NewArgs(). Flags for the top level are then
// added and Parse() is called. If sub-modes were added with AddSubModes(),
// the first non-flag argument is checked against the list of sub-modes and
// the result is available with Mode(). An unrecognised argument selects the
// first (default) sub-mode and is left in place for the mode to use.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RENDER", "VIEW", "ASCII")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "VIEW":
//		md.NewMode()
//		scale := md.AddFloat64("scale", 1.0, "window scale")
//		...
//	}
//
// Each call to NewMode() starts a new set of flags for the arguments that
// remain. Modes can be nested to any depth and the full route taken is
// available with Path().
//
// Help is printed to the Output writer when -help or -h is given and Parse()
// returns ParseHelp.
package modalflag
