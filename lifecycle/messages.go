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

package lifecycle

import (
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/msgchan"
	"github.com/jetsetilly/platformcore/notifications"
	"github.com/jetsetilly/platformcore/userinput"
	"github.com/jetsetilly/platformcore/userinput/devices"
)

// dispatch a message from the message channel.
func (c *Coordinator) dispatch(m msgchan.Message) {
	switch m.Type {
	case msgchan.MsgHotplug:
		if c.coalescer != nil {
			c.coalescer.Notify()
		}
	default:
		if h, ok := c.engine.(MessageHandler); ok {
			h.OnMessage(m)
		} else {
			logger.Logf(logger.Allow, "lifecycle", "no handler for %s", m)
		}
	}
	c.postDrawIfNeeded()
}

// rescanDevices is called by the coalescer once the hot-plug notifications
// have stopped.
func (c *Coordinator) rescanDevices() {
	if err := c.registry.Rescan(false); err != nil {
		logger.Logf(logger.Allow, "lifecycle", "%v", err)
	}
	c.postDrawIfNeeded()
}

// RescanDevices rescans the input devices immediately.
func (c *Coordinator) RescanDevices() {
	if c.coalescer != nil {
		c.coalescer.Stop()
	}
	c.rescanDevices()
}

// devicesChanged is the registry's change handler.
func (c *Coordinator) devicesChanged(ch devices.Change) {
	logger.Logf(logger.Allow, "lifecycle", "input devices %s", ch.Kind)
	if h, ok := c.engine.(userinput.DeviceChangeHandler); ok {
		h.HandleDeviceChange(ch)
	}
	c.sendNotice(notifications.NotifyDevicesChanged)
}

func (c *Coordinator) hasXperiaPlay() bool {
	for _, d := range c.registry.Devices() {
		if d.Subtype == devices.SubtypeXperiaPlay {
			return true
		}
	}
	return false
}
