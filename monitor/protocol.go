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

package monitor

import (
	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
)

// PixelRenderer implementations display, or otherwise work with, the visible
// output of the monitor. For example digest.Video.
type PixelRenderer interface {
	// Resize is called when the renderer is added to the monitor. Renderers
	// should make sure that any data structures that depend on the
	// specification are adequate.
	Resize(spec specification.Spec) error

	// NewFrame is called at the start of every frame, before any pixels for
	// that frame are sent. Frames are numbered from one.
	NewFrame(frameNum int) error

	// SetPixel is called for every visible pixel of every frame.
	SetPixel(x, y int, c signal.RGB) error

	// EndRendering is called when the monitor has finished. The renderer is
	// unusable afterwards.
	EndRendering() error
}

// FrameTrigger implementations are notified when a frame has been completed.
type FrameTrigger interface {
	EndFrame(frameNum int) error
}
