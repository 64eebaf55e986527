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

// Package sdlview is a window onto the monitor, implemented with SDL. It
// implements the monitor.PixelRenderer interface.
//
// SDL requires that all calls are made from the main thread. The View must
// be created and added to the monitor from the main thread and the monitor
// must be run from the main thread. Events are polled once per frame.
package sdlview

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/fpg1/phosphor/crt/signal"
	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/curated"
	"github.com/fpg1/phosphor/logger"
	"github.com/fpg1/phosphor/version"
)

// Sentinal error patterns.
const (
	SDLError = "sdlview: %v"
)

const pixelDepth = 4

// View is an SDL window showing the monitor output.
type View struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32
	scale  float32

	// pixels for the frame being drawn. copied to the texture at the start
	// of the next frame
	pixels []byte

	// called when the window is closed or escape is pressed
	onQuit func()

	// callbacks for key presses. keyed by SDL key name
	keys map[string]func()

	shown bool
}

// NewView is the preferred method of initialisation for the View type. The
// window is not shown until the first frame has been drawn.
func NewView(scale float32, onQuit func()) (*View, error) {
	vw := &View{
		scale:  scale,
		onQuit: onQuit,
		keys:   make(map[string]func()),
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	vw.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		0, 0,
		uint32(sdl.WINDOW_HIDDEN))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	vw.renderer, err = sdl.CreateRenderer(vw.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	return vw, nil
}

// OnKey registers a function to be called when the named key is released.
// Names are SDL key names, for example "B" or "F12".
func (vw *View) OnKey(name string, f func()) {
	vw.keys[name] = f
}

// WindowSize returns the size of the window for the specification at the
// scale.
func WindowSize(spec specification.Spec, scale float32) (int32, int32) {
	if scale <= 0 {
		scale = 1
	}
	return int32(float32(spec.Width) * scale), int32(float32(spec.Height) * scale)
}

// Resize implements the monitor.PixelRenderer interface.
func (vw *View) Resize(spec specification.Spec) error {
	vw.width = int32(spec.Width)
	vw.height = int32(spec.Height)

	vw.pixels = make([]byte, spec.Width*spec.Height*pixelDepth)

	// alpha channel never changes
	for i := pixelDepth - 1; i < len(vw.pixels); i += pixelDepth {
		vw.pixels[i] = 0xff
	}

	if vw.texture != nil {
		if err := vw.texture.Destroy(); err != nil {
			return curated.Errorf(SDLError, err)
		}
	}

	var err error
	vw.texture, err = vw.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING),
		vw.width, vw.height)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	w, h := WindowSize(spec, vw.scale)
	vw.window.SetSize(w, h)
	vw.window.SetTitle(fmt.Sprintf("%s [%s]", version.ApplicationName, spec.ID))

	if err := vw.renderer.SetLogicalSize(vw.width, vw.height); err != nil {
		return curated.Errorf(SDLError, err)
	}

	return nil
}

// present copies the pixels to the texture and shows them.
func (vw *View) present() error {
	buf, pitch, err := vw.texture.Lock(nil)
	if err != nil {
		return curated.Errorf(SDLError, err)
	}

	row := int(vw.width) * pixelDepth
	for y := range int(vw.height) {
		copy(buf[y*pitch:y*pitch+row], vw.pixels[y*row:(y+1)*row])
	}
	vw.texture.Unlock()

	if err := vw.renderer.Clear(); err != nil {
		return curated.Errorf(SDLError, err)
	}
	if err := vw.renderer.Copy(vw.texture, nil, nil); err != nil {
		return curated.Errorf(SDLError, err)
	}
	vw.renderer.Present()

	if !vw.shown {
		vw.window.Show()
		vw.shown = true
	}

	return nil
}

// service SDL events.
func (vw *View) poll() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			vw.quit()

		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYUP || ev.Repeat != 0 {
				break
			}
			if ev.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				vw.quit()
				break
			}
			name := sdl.GetKeyName(ev.Keysym.Sym)
			if f, ok := vw.keys[name]; ok {
				logger.Logf(logger.Allow, "sdlview", "key %s", name)
				f()
			}
		}
	}
}

func (vw *View) quit() {
	if vw.onQuit != nil {
		vw.onQuit()
	}
}

// NewFrame implements the monitor.PixelRenderer interface. The previous frame
// is shown.
func (vw *View) NewFrame(frameNum int) error {
	vw.poll()
	if frameNum > 1 {
		return vw.present()
	}
	return nil
}

// SetPixel implements the monitor.PixelRenderer interface.
func (vw *View) SetPixel(x, y int, c signal.RGB) error {
	if x < 0 || y < 0 || x >= int(vw.width) || y >= int(vw.height) {
		return nil
	}
	i := (y*int(vw.width) + x) * pixelDepth
	vw.pixels[i] = c.R
	vw.pixels[i+1] = c.G
	vw.pixels[i+2] = c.B
	return nil
}

// EndRendering implements the monitor.PixelRenderer interface. The window is
// destroyed.
func (vw *View) EndRendering() error {
	var err error
	if vw.texture != nil {
		err = vw.texture.Destroy()
	}
	if e := vw.renderer.Destroy(); err == nil {
		err = e
	}
	if e := vw.window.Destroy(); err == nil {
		err = e
	}
	sdl.Quit()

	if err != nil {
		return curated.Errorf(SDLError, err)
	}
	return nil
}
