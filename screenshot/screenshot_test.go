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

package screenshot_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/curated"
	"github.com/fpg1/phosphor/screenshot"
	"github.com/fpg1/phosphor/test"
)

func TestFrames(t *testing.T) {
	im := screenshot.NewImage()
	test.DemandSuccess(t, im.Resize(specification.SpecVGA))

	img, num := im.Frame()
	test.ExpectSuccess(t, img == nil)
	test.ExpectEquality(t, num, 0)

	test.ExpectSuccess(t, im.NewFrame(1))
	test.ExpectSuccess(t, im.SetPixel(10, 20, signal.RGB{R: 1, G: 2, B: 3}))

	// the first frame is not complete until the second frame starts
	img, _ = im.Frame()
	test.ExpectSuccess(t, img == nil)

	test.ExpectSuccess(t, im.NewFrame(2))
	img, num = im.Frame()
	test.DemandSuccess(t, img != nil)
	test.ExpectEquality(t, num, 1)
	test.ExpectEquality(t, img.RGBAAt(10, 20), color.RGBA{R: 1, G: 2, B: 3, A: 255})
	test.ExpectEquality(t, img.Bounds(), image.Rect(0, 0, 640, 480))

	// out of range pixels are ignored
	test.ExpectSuccess(t, im.SetPixel(1000, 1000, signal.RGB{R: 1}))
}

func TestScale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})

	dst := screenshot.Scale(src, 3)
	test.ExpectEquality(t, dst.Bounds(), image.Rect(0, 0, 6, 6))
	test.ExpectEquality(t, dst.RGBAAt(3, 3), color.RGBA{R: 255, A: 255})
	test.ExpectEquality(t, dst.RGBAAt(5, 5), color.RGBA{R: 255, A: 255})
	test.ExpectEquality(t, dst.RGBAAt(2, 2), color.RGBA{})
}

func TestSave(t *testing.T) {
	base := filepath.Join(t.TempDir(), "shot")

	im := screenshot.NewImage()
	test.DemandSuccess(t, im.Resize(specification.SpecVGA))

	_, err := im.Save(base, 1)
	test.ExpectSuccess(t, curated.Is(err, screenshot.NoFrame))

	test.ExpectSuccess(t, im.NewFrame(1))
	test.ExpectSuccess(t, im.SetPixel(0, 0, signal.RGB{R: 255, G: 255, B: 255}))
	test.ExpectSuccess(t, im.EndRendering())

	name, err := im.Save(base, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, name, base+"_1.png")

	f, err := os.Open(name)
	test.DemandSuccess(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds(), image.Rect(0, 0, 1280, 960))

	// files are never overwritten
	_, err = im.Save(base, 1)
	test.ExpectSuccess(t, curated.Is(err, screenshot.FileExists))
}

func TestWritePNG(t *testing.T) {
	name := filepath.Join(t.TempDir(), "preview.png")

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(2, 1, color.RGBA{G: 200, A: 255})
	test.DemandSuccess(t, screenshot.WritePNG(name, src, 3))

	f, err := os.Open(name)
	test.DemandSuccess(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds(), image.Rect(0, 0, 9, 6))

	r, g, b, a := img.At(8, 5).RGBA()
	test.ExpectEquality(t, [4]uint32{r, g, b, a}, [4]uint32{0, 200 * 0x101, 0, 0xffff})

	// files are never overwritten
	err = screenshot.WritePNG(name, src, 1)
	test.ExpectSuccess(t, curated.Is(err, screenshot.FileExists))
}
