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

// Package logger is the central log for the application. Log entries are
// tagged and kept in a bounded list. Repeated entries are collapsed into a
// single entry with a repeat count, which is important for the CRT pipeline
// because a dropped event tends to be followed by many more.
//
// Most code should use the package level functions Log() and Logf(), which
// write to the central logger. Independent loggers can be created with
// NewLogger(), which is mostly useful for testing.
//
// Every log request is accompanied by a Permission. Code that runs inside a
// tight loop, such as the raster tick, can use a Permission that only allows
// logging when something worth reporting has happened.
package logger
