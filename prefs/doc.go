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

// Package prefs holds user preferences. Each preference is a live value that
// can be read and written from any goroutine. Preferences are grouped by a
// Disk, which persists them to a plain text file.
//
// The file is made up of one preference per line, of the form:
//
//	key :: value
//
// Several Disk instances can share the same file. Saving one Disk does not
// disturb the values belonging to another.
//
// Values can be overridden from the command line with a preferences string.
// See PushCommandLineStack() for details.
package prefs
