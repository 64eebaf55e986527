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

// Package screenshot contains a PixelRenderer that keeps the most recent
// frame as an image and saves it to disk on request.
package screenshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"

	"golang.org/x/image/draw"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/curated"
	"github.com/fpg1/phosphor/logger"
)

// Sentinal error patterns.
const (
	NoFrame    = "screenshot: no frame to save"
	FileExists = "screenshot: file already exists (%s)"
	SaveError  = "screenshot: %v"
)

// Image is an implementation of the monitor.PixelRenderer interface. It keeps
// the current frame and the most recently completed frame.
type Image struct {
	geom image.Rectangle

	// the frame being drawn. frame number zero means no frame has been drawn
	curr    *image.RGBA
	currNum int

	// the most recently completed frame. this is the frame saved by Save()
	last    *image.RGBA
	lastNum int
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage() *Image {
	return &Image{}
}

// Resize implements the monitor.PixelRenderer interface.
func (im *Image) Resize(spec specification.Spec) error {
	im.geom = image.Rect(0, 0, spec.Width, spec.Height)
	im.curr = image.NewRGBA(im.geom)
	im.last = nil
	im.lastNum = 0
	return nil
}

// NewFrame implements the monitor.PixelRenderer interface.
func (im *Image) NewFrame(frameNum int) error {
	if im.currNum > 0 {
		im.last = im.curr
		im.lastNum = im.currNum
		im.curr = image.NewRGBA(im.geom)
	}
	im.currNum = frameNum
	return nil
}

// SetPixel implements the monitor.PixelRenderer interface.
func (im *Image) SetPixel(x, y int, c signal.RGB) error {
	if !image.Pt(x, y).In(im.geom) {
		return nil
	}
	i := im.curr.PixOffset(x, y)
	im.curr.Pix[i] = c.R
	im.curr.Pix[i+1] = c.G
	im.curr.Pix[i+2] = c.B
	im.curr.Pix[i+3] = 0xff
	return nil
}

// EndRendering implements the monitor.PixelRenderer interface. The frame
// being drawn is treated as complete.
func (im *Image) EndRendering() error {
	if im.currNum > 0 {
		im.last = im.curr
		im.lastNum = im.currNum
	}
	return nil
}

// Frame returns the most recently completed frame and its number. The image
// is nil if no frame has been completed.
func (im *Image) Frame() (*image.RGBA, int) {
	return im.last, im.lastNum
}

// Scale returns a copy of the image scaled by an integer amount. Pixels are
// duplicated and never smoothed.
func Scale(src image.Image, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Save the most recently completed frame to a PNG file. The frame number and
// file extension are appended to fileNameBase. The image is scaled by an
// integer amount. Existing files are never overwritten.
//
// Returns the name of the file that was written.
func (im *Image) Save(fileNameBase string, scale int) (string, error) {
	if im.last == nil {
		return "", curated.Errorf(NoFrame)
	}

	name := fmt.Sprintf("%s_%d.png", fileNameBase, im.lastNum)
	if err := WritePNG(name, im.last, scale); err != nil {
		return "", err
	}

	return name, nil
}

// WritePNG scales the image by an integer amount and writes it to the named
// file in PNG format. An existing file is never overwritten.
func WritePNG(name string, img image.Image, scale int) error {
	if _, err := os.Stat(name); err == nil {
		return curated.Errorf(FileExists, name)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return curated.Errorf(SaveError, err)
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	err = png.Encode(f, Scale(img, scale))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	logger.Logf(logger.Allow, "screenshot", "saved %s", name)

	return nil
}
