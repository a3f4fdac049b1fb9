// This file is part of Platformcore.
//
// Platformcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Platformcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Platformcore.  If not, see <https://www.gnu.org/licenses/>.

package sdlplatform

import (
	"fmt"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/veandco/go-sdl2/sdl"
)

// nativeWindow implements the platform.NativeWindow interface. The size is the
// size of the drawable area, which is larger than the window size on high DPI
// displays.
type nativeWindow struct {
	window *sdl.Window
}

func (w nativeWindow) Width() int {
	x, _ := w.window.GLGetDrawableSize()
	return int(x)
}

func (w nativeWindow) Height() int {
	_, y := w.window.GLGetDrawableSize()
	return int(y)
}

// surface implements the platform.RenderSurface interface with an OpenGL
// context.
type surface struct {
	window  *sdl.Window
	context sdl.GLContext
	height  int
}

func (s *surface) InitContext(win platform.NativeWindow) error {
	var err error

	s.context, err = s.window.GLCreateContext()
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	err = s.window.GLMakeCurrent(s.context)
	if err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	// frames are paced by the frame clock and not by the buffer swap
	if err := sdl.GLSetSwapInterval(0); err != nil {
		logger.Logf(logger.Allow, "sdlplatform", "swap interval: %v", err)
	}

	err = gl.Init()
	if err != nil {
		return fmt.Errorf("gl: %w", err)
	}
	logger.Logf(logger.Allow, "sdlplatform", "using GL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	s.height = win.Height()

	return nil
}

func (s *surface) InitSurface(win platform.NativeWindow) error {
	if err := s.window.GLMakeCurrent(s.context); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	s.height = win.Height()
	return nil
}

// the window's surface survives minimisation so there is nothing to release.
func (s *surface) DestroySurface() {
	logger.Log(logger.Allow, "sdlplatform", "surface released")
}

func (s *surface) Clear() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	s.window.GLSwap()
}

// SetViewport converts the rectangle from window coordinates, with the origin
// in the top left corner, to OpenGL coordinates.
func (s *surface) SetViewport(r platform.Rect) {
	_, h := s.window.GLGetDrawableSize()
	s.height = int(h)
	gl.Viewport(int32(r.X), int32(s.height-r.Y2), int32(r.Width()), int32(r.Height()))
}

func (s *surface) destroy() {
	if s.context != nil {
		sdl.GLDeleteContext(s.context)
		s.context = nil
	}
}
