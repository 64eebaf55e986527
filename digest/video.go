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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
)

// Video is an implementation of the monitor.PixelRenderer interface. It
// generates a sha1 value of the image every frame. It does not display the
// image anywhere.
//
// The digest of each frame includes the digest of the previous frame, so the
// final value reflects every frame that has been rendered.
//
// Note that the use of sha1 is fine for this application because this is not
// a cryptographic task.
type Video struct {
	digest [sha1.Size]byte
	width  int
	height int

	// the first sha1.Size bytes are the digest of the previous frame
	pixels []byte

	// whether the pixels buffer holds a frame that has not been included in
	// the digest
	pending bool

	frameNum int
}

const pixelDepth = 3

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	dig.flush()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.pending = false
}

// Frames returns the number of the most recent frame.
func (dig *Video) Frames() int {
	return dig.frameNum
}

// Resize implements the monitor.PixelRenderer interface.
func (dig *Video) Resize(spec specification.Spec) error {
	dig.width = spec.Width
	dig.height = spec.Height
	dig.pixels = make([]byte, len(dig.digest)+dig.width*dig.height*pixelDepth)
	dig.pending = false
	return nil
}

// chain the digest of the previous frame with the pixels of the most recent
// frame
func (dig *Video) flush() {
	if !dig.pending {
		return
	}
	copy(dig.pixels, dig.digest[:])
	dig.digest = sha1.Sum(dig.pixels)
	dig.pending = false
}

// NewFrame implements the monitor.PixelRenderer interface.
func (dig *Video) NewFrame(frameNum int) error {
	dig.flush()
	dig.frameNum = frameNum
	return nil
}

// SetPixel implements the monitor.PixelRenderer interface.
func (dig *Video) SetPixel(x, y int, c signal.RGB) error {
	if x < 0 || x >= dig.width || y < 0 || y >= dig.height {
		return nil
	}
	i := len(dig.digest) + (y*dig.width+x)*pixelDepth
	dig.pixels[i] = c.R
	dig.pixels[i+1] = c.G
	dig.pixels[i+2] = c.B
	dig.pending = true
	return nil
}

// EndRendering implements the monitor.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	dig.flush()
	return nil
}
