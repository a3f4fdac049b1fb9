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
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/veandco/go-sdl2/sdl"
)

// mouse events synthesised from touch events have this mouse ID. the touch
// events are used instead
const touchMouseID = 0xffffffff

// pump all pending SDL events.
func (h *Host) pump() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		h.serviceEvent(ev)
	}
}

func (h *Host) serviceEvent(ev sdl.Event) {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		h.loop.Quit()

	case *sdl.WindowEvent:
		h.serviceWindowEvent(ev)

	case *sdl.KeyboardEvent:
		h.serviceKeyboard(ev)

	case *sdl.MouseButtonEvent:
		if ev.Which == touchMouseID || ev.Button != sdl.BUTTON_LEFT {
			return
		}
		action := platform.ActionUp
		if ev.Type == sdl.MOUSEBUTTONDOWN {
			action = platform.ActionDown
		}
		h.push(&platform.RawEvent{
			Type:     platform.EventMotion,
			Source:   platform.SourceMouse,
			DeviceID: mouseID,
			Action:   action,
			Pointers: []platform.Pointer{h.scaledPointer(0, ev.X, ev.Y)},
		})

	case *sdl.MouseMotionEvent:
		if ev.Which == touchMouseID || ev.State&sdl.Button(sdl.BUTTON_LEFT) == 0 {
			return
		}
		h.push(&platform.RawEvent{
			Type:     platform.EventMotion,
			Source:   platform.SourceMouse,
			DeviceID: mouseID,
			Action:   platform.ActionMove,
			Pointers: []platform.Pointer{h.scaledPointer(0, ev.X, ev.Y)},
		})

	case *sdl.TouchFingerEvent:
		h.serviceTouch(ev)

	case *sdl.JoyButtonEvent:
		ctrl, ok := h.joysticks[ev.Which]
		if !ok {
			return
		}
		code, ok := joyButtons[ev.Button]
		if !ok {
			return
		}
		action := platform.KeyActionUp
		if ev.State == sdl.PRESSED {
			action = platform.KeyActionDown
		}
		h.push(&platform.RawEvent{
			Type:      platform.EventKey,
			Source:    platform.SourceGamepad,
			DeviceID:  ctrl.deviceID(),
			KeyCode:   code,
			KeyAction: action,
		})

	case *sdl.JoyAxisEvent:
		ctrl, ok := h.joysticks[ev.Which]
		if !ok {
			return
		}
		axis, ok := joyAxes[ev.Axis]
		if !ok {
			return
		}
		ctrl.axes[axis] = axisValue(ev.Value)
		h.pushAxes(ctrl)

	case *sdl.JoyHatEvent:
		ctrl, ok := h.joysticks[ev.Which]
		if !ok || ev.Hat != 0 {
			return
		}
		x, y := hatAxes(ev.Value)
		ctrl.axes[platform.AxisHatX] = x
		ctrl.axes[platform.AxisHatY] = y
		h.pushAxes(ctrl)

	case *sdl.JoyDeviceAddedEvent:
		if h.openJoystick(int(ev.Which)) {
			h.joysticksChanged()
		}

	case *sdl.JoyDeviceRemovedEvent:
		if h.closeJoystick(ev.Which) {
			h.joysticksChanged()
		}
	}
}

// joysticksChanged tells the coordinator that the set of joysticks has
// changed. the rescan is coalesced with any hot-plug notifications from the
// device directory watcher.
func (h *Host) joysticksChanged() {
	if h.coord == nil {
		return
	}
	h.coord.SetIdleEveryOther(len(h.joysticks) > 0)
	if err := h.coord.Sender().Send(msgchan.MsgHotplug, 0, 0, 0); err != nil {
		logger.Logf(logger.Allow, "sdlplatform", "%v", err)
	}
}

func (h *Host) serviceWindowEvent(ev *sdl.WindowEvent) {
	if h.coord == nil {
		return
	}

	switch ev.Event {
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		h.coord.NativeWindowResized()
	case sdl.WINDOWEVENT_EXPOSED:
		h.coord.NativeWindowRedrawNeeded()
	case sdl.WINDOWEVENT_FOCUS_GAINED:
		h.coord.FocusChanged(true)
	case sdl.WINDOWEVENT_FOCUS_LOST:
		h.coord.FocusChanged(false)
	case sdl.WINDOWEVENT_MINIMIZED:
		if !h.minimised {
			h.minimised = true
			h.coord.Pause()
		}
	case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_MAXIMIZED:
		if h.minimised {
			h.minimised = false
			h.coord.Resume()
		}
	case sdl.WINDOWEVENT_CLOSE:
		h.loop.Quit()
	}
}

func (h *Host) serviceKeyboard(ev *sdl.KeyboardEvent) {
	code, ok := scancodes[ev.Keysym.Scancode]
	if !ok {
		return
	}

	action := platform.KeyActionUp
	if ev.Type == sdl.KEYDOWN {
		action = platform.KeyActionDown
	}

	h.push(&platform.RawEvent{
		Type:        platform.EventKey,
		Source:      platform.SourceKeyboard,
		DeviceID:    keyboardID,
		KeyCode:     code,
		KeyAction:   action,
		RepeatCount: int32(ev.Repeat),
		MetaState:   metaState(ev.Keysym.Mod),
	})
}

func (h *Host) serviceTouch(ev *sdl.TouchFingerEvent) {
	w, hgt := h.window.GLGetDrawableSize()
	p := platform.Pointer{
		ID: int32(ev.FingerID),
		X:  ev.X * float32(w),
		Y:  ev.Y * float32(hgt),
	}

	idx := -1
	for i := range h.fingers {
		if h.fingers[i].ID == p.ID {
			idx = i
			h.fingers[i] = p
			break
		}
	}

	var action int32

	switch ev.Type {
	case sdl.FINGERDOWN:
		if idx == -1 {
			h.fingers = append(h.fingers, p)
			idx = len(h.fingers) - 1
		}
		if len(h.fingers) == 1 {
			action = platform.ActionDown
		} else {
			action = platform.ActionPointerDown | int32(idx)<<platform.ActionPointerIndexShift
		}
	case sdl.FINGERMOTION:
		if idx == -1 {
			return
		}
		action = platform.ActionMove
	case sdl.FINGERUP:
		if idx == -1 {
			return
		}
		if len(h.fingers) == 1 {
			action = platform.ActionUp
		} else {
			action = platform.ActionPointerUp | int32(idx)<<platform.ActionPointerIndexShift
		}
	default:
		return
	}

	pointers := make([]platform.Pointer, len(h.fingers))
	copy(pointers, h.fingers)

	if ev.Type == sdl.FINGERUP {
		h.fingers = append(h.fingers[:idx], h.fingers[idx+1:]...)
	}

	h.push(&platform.RawEvent{
		Type:     platform.EventMotion,
		Source:   platform.SourceTouchscreen,
		DeviceID: touchID,
		Action:   action,
		Pointers: pointers,
	})
}

// scaledPointer converts window coordinates to drawable coordinates.
func (h *Host) scaledPointer(id int32, x, y int32) platform.Pointer {
	ww, wh := h.window.GetSize()
	dw, dh := h.window.GLGetDrawableSize()
	p := platform.Pointer{ID: id, X: float32(x), Y: float32(y)}
	if ww > 0 && wh > 0 {
		p.X *= float32(dw) / float32(ww)
		p.Y *= float32(dh) / float32(wh)
	}
	return p
}

func (h *Host) pushAxes(ctrl *controller) {
	axes := make(map[int32]float32, len(ctrl.axes))
	for k, v := range ctrl.axes {
		axes[k] = v
	}
	h.push(&platform.RawEvent{
		Type:     platform.EventMotion,
		Source:   platform.SourceJoystick,
		DeviceID: ctrl.deviceID(),
		Action:   platform.ActionMove,
		Axes:     axes,
	})
}

func (h *Host) push(ev *platform.RawEvent) {
	if err := h.queue.Push(ev); err != nil {
		logger.Logf(logger.Allow, "sdlplatform", "dropped event: %v", err)
	}
}
