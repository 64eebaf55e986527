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

package trace

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/fpg1/phosphor/crt/signal"
	"golang.org/x/term"
)

// brightness codes map to these characters. a code of zero is the same as an
// unlit position
const previewChars = " .:-=+*#@"

// DefaultPreviewWidth is the widest a preview will be drawn if the width of
// the terminal can't be determined.
const DefaultPreviewWidth = 160

// Preview accumulates pixels into a downscaled picture, keeping the brightest
// code seen at each position.
type Preview struct {
	width  int
	height int
	scale  int

	// scaled dimensions
	cols int
	rows int

	cells []int

	Pixels int
	Unique int
	Frame  Frame
}

// NewPreview is the preferred method of initialisation for the Preview type.
// The width and height are of the device coordinate space. Each cell in the
// preview covers scale by scale device positions.
func NewPreview(width, height, scale int) *Preview {
	if scale < 1 {
		scale = 1
	}
	pv := &Preview{
		width:  width,
		height: height,
		scale:  scale,
		cols:   width / scale,
		rows:   height / scale,
	}
	pv.cells = make([]int, pv.cols*pv.rows)
	return pv
}

// Add a record to the preview.
func (pv *Preview) Add(rec Record) {
	switch rec.Kind {
	case KindFrame:
		pv.Frame = rec.Frame
	case KindPixel:
		pv.Pixels++

		x := rec.Pixel.X / pv.scale
		y := rec.Pixel.Y / pv.scale
		if x < 0 || y < 0 || x >= pv.cols || y >= pv.rows {
			return
		}

		i := y*pv.cols + x
		if rec.Pixel.Brightness > pv.cells[i] {
			if pv.cells[i] == 0 {
				pv.Unique++
			}
			pv.cells[i] = rec.Pixel.Brightness
		}
	}
}

// Clear the preview. The current frame is retained.
func (pv *Preview) Clear() {
	clear(pv.cells)
	pv.Pixels = 0
	pv.Unique = 0
}

// Size returns the dimensions of the preview in cells.
func (pv *Preview) Size() (int, int) {
	return pv.cols, pv.rows
}

// Cell returns the brightness code at the cell.
func (pv *Preview) Cell(x, y int) int {
	if x < 0 || y < 0 || x >= pv.cols || y >= pv.rows {
		return 0
	}
	return pv.cells[y*pv.cols+x]
}

// Image returns the preview as an image with one pixel per cell. Cells are
// coloured green in proportion to their brightness code.
func (pv *Preview) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pv.cols, pv.rows))
	for y := range pv.rows {
		for x := range pv.cols {
			i := pv.Cell(x, y) * 255 / signal.BrightnessMask
			img.SetRGBA(x, y, color.RGBA{G: uint8(i), B: uint8(i * 3 / 10), A: 255})
		}
	}
	return img
}

// Render the preview as text no wider than maxWidth characters, plus the
// border. Cells are merged as required to fit, with the brightest cell in
// each block being shown.
func (pv *Preview) Render(maxWidth int) string {
	if maxWidth < 1 {
		maxWidth = DefaultPreviewWidth
	}

	merge := 1
	if pv.cols > maxWidth {
		merge = (pv.cols + maxWidth - 1) / maxWidth
	}
	w := pv.cols / merge
	h := pv.rows / merge

	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("Frame: %d  PC: %04o  Pixels: %d  Unique: %d\n",
		pv.Frame.Num, pv.Frame.PC, pv.Pixels, pv.Unique))
	s.WriteString(fmt.Sprintf("Buffer: %dx%d -> %dx%d (scale %d)\n",
		pv.width, pv.height, pv.cols, pv.rows, pv.scale))

	border := "+" + strings.Repeat("-", w) + "+\n"
	s.WriteString(border)
	for y := range h {
		s.WriteByte('|')
		for x := range w {
			b := 0
			for dy := range merge {
				for dx := range merge {
					b = max(b, pv.Cell(x*merge+dx, y*merge+dy))
				}
			}
			s.WriteByte(previewChars[min(b, len(previewChars)-1)])
		}
		s.WriteString("|\n")
	}
	s.WriteString(border)

	return s.String()
}

// TerminalWidth returns the number of columns available for a preview
// written to the file. If the file is not a terminal the default width is
// returned.
func TerminalWidth(f *os.File) int {
	if !term.IsTerminal(int(f.Fd())) {
		return DefaultPreviewWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w < 3 {
		return DefaultPreviewWidth
	}

	// room for the border
	return w - 2
}
