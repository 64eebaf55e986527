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

// Package digest contains a PixelRenderer that produces a cryptographic hash
// of the monitor output. The hash can be compared with the hash from a
// previous run. If the hashes differ then something has changed. This is the
// basis of the regression tests for the CRT pipeline.
package digest

// Digest implementations return a cryptographic hash of the data they have
// seen.
type Digest interface {
	Hash() string
	ResetDigest()
}
