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

package devices

import (
	"fmt"
	"io"

	"github.com/jetsetilly/platformcore/curated"
	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
)

// DefaultCapacity is the default size of the device table.
const DefaultCapacity = 16

// name of the fallback device.
const (
	VirtualName = "Virtual"
	GenericName = "Key Input (All Devices)"
)

// the host identifier of the fallback device.
const (
	VirtualOSID         int32 = -1
	BuiltinKeyboardOSID int32 = 0
)

// Sentinal error patterns.
const (
	TableFull = "devices: table full"
)

// ChangeKind is the kind of change reported in a Change notification.
type ChangeKind int

// List of valid ChangeKinds.
const (
	Added ChangeKind = iota
	Removed
)

func (k ChangeKind) String() string {
	if k == Removed {
		return "removed"
	}
	return "added"
}

// Change is sent to the change handler after every rescan except the first.
// The notification does not describe what changed. The receiver should
// re-read the device list.
type Change struct {
	DevID int
	Class Class
	Kind  ChangeKind
}

// Registry is the device table.
type Registry struct {
	bridge platform.Bridge
	multi  bool

	// slots in the table. a nil entry is free
	slots []*Device

	// slot indices in the order the devices were added
	order []int

	virtual         *Device
	builtinKeyboard *Device

	change func(Change)

	// rescans log every device when verbose
	verbose logger.Toggle
}

// NewRegistry is the preferred method of initialisation for the Registry
// type. A capacity of less than two is not enough for the virtual device and
// one other device and is increased to DefaultCapacity.
//
// If the host can not tell input devices apart the registry is initialised
// with the catch-all device. Otherwise Rescan() must be called to populate the
// table.
func NewRegistry(bridge platform.Bridge, caps platform.Capabilities, capacity int) *Registry {
	if capacity < 2 {
		capacity = DefaultCapacity
	}

	r := &Registry{
		bridge: bridge,
		multi:  caps.MultiInputDevices,
		slots:  make([]*Device, capacity),
	}
	r.verbose.Set(true)

	if !r.multi {
		dev, _ := r.add(&Device{
			Class: ClassSystem,
			Name:  GenericName,
			Type:  TypeBitVirtual | TypeBitKeyboard | TypeBitKeyMisc,
		})
		r.virtual = dev
		r.builtinKeyboard = dev
	}

	return r
}

// AllowLogging implements the logger.Permission interface.
func (r *Registry) AllowLogging() bool {
	return r.verbose.AllowLogging()
}

// SetVerbose controls whether rescans log every device.
func (r *Registry) SetVerbose(verbose bool) {
	r.verbose.Set(verbose)
}

// SetChangeHandler sets the function to be called after a rescan.
func (r *Registry) SetChangeHandler(f func(Change)) {
	r.change = f
}

// MultiInputDevices returns true if the registry tracks individual devices.
func (r *Registry) MultiInputDevices() bool {
	return r.multi
}

// Capacity of the device table.
func (r *Registry) Capacity() int {
	return len(r.slots)
}

// Len returns the number of devices in the table.
func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) isFull() bool {
	return len(r.order) >= len(r.slots)
}

// add device to the first free slot.
func (r *Registry) add(dev *Device) (*Device, error) {
	for i := range r.slots {
		if r.slots[i] == nil {
			dev.idx = i
			dev.axis = [MaxAxisPairs][AxisEdges]bool{}
			r.slots[i] = dev
			r.order = append(r.order, i)
			return dev, nil
		}
	}
	return nil, curated.Errorf(TableFull)
}

func (r *Registry) remove(dev *Device) {
	if r.slots[dev.idx] != dev {
		return
	}
	r.slots[dev.idx] = nil
	for i, idx := range r.order {
		if idx == dev.idx {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.virtual == dev {
		r.virtual = nil
	}
	if r.builtinKeyboard == dev {
		r.builtinKeyboard = nil
	}
}

// nextDevID returns the lowest DevID not in use by a device with the name.
func (r *Registry) nextDevID(class Class, name string) int {
	used := make(map[int]bool)
	for _, idx := range r.order {
		d := r.slots[idx]
		if d.Class == class && d.Name == name {
			used[d.DevID] = true
		}
	}
	id := 0
	for used[id] {
		id++
	}
	return id
}

// AddPersistent adds a device that is not removed by Rescan(). Devices added
// this way count towards the capacity of the table.
func (r *Registry) AddPersistent(class Class, osID int32, name string, typ TypeBits) (*Device, error) {
	dev, err := r.add(&Device{
		DevID:      r.nextDevID(class, name),
		Class:      class,
		OSID:       osID,
		Name:       name,
		Type:       typ,
		persistent: true,
	})
	if err != nil {
		return nil, err
	}
	logger.Logf(logger.Allow, "devices", "added persistent device %s", dev)
	return dev, nil
}

// Rescan the host's input devices. Every device found by a previous rescan is
// removed first. A change notification is sent if firstRun is false.
//
// Rescan has no effect if the host can not tell input devices apart.
func (r *Registry) Rescan(firstRun bool) error {
	if !r.multi {
		return nil
	}

	for i := len(r.order) - 1; i >= 0; i-- {
		d := r.slots[r.order[i]]
		if !d.persistent {
			r.remove(d)
		}
	}
	r.virtual = nil
	r.builtinKeyboard = nil

	infos, err := r.bridge.InputDevices()
	if err != nil {
		logger.Logf(logger.Allow, "devices", "enumeration failed: %v", err)
		infos = nil
	}

	logger.Log(r, "devices", "checking input devices")

	// devices added during this rescan, in order
	var added []*Device
	foundVirtual := false

	for i, info := range infos {
		if info.Name == "" {
			logger.Logf(logger.Allow, "devices", "no name from device %d, id %d", i, info.ID)
			continue
		}

		logger.Logf(r, "devices", "#%d: %s, id %d, source %X", i, info.Name, info.ID, info.Sources)

		hasKeys := info.Sources&platform.SourceClassButton == platform.SourceClassButton
		if !hasKeys || r.isFull() {
			continue
		}

		dev, err := r.add(&Device{
			DevID: r.nextDevID(ClassSystem, info.Name),
			Class: ClassSystem,
			OSID:  info.ID,
			Name:  info.Name,
			Type:  TypeBitKeyMisc,
		})
		if err != nil {
			logger.Logf(logger.Allow, "devices", "%v", err)
			continue
		}

		switch info.ID {
		case BuiltinKeyboardOSID:
			r.builtinKeyboard = dev
		case VirtualOSID:
			foundVirtual = true
			r.virtual = dev
			dev.Type |= TypeBitVirtual
		}

		r.classify(dev, info)
		added = append(added, dev)

		logger.Logf(r, "devices", "added to list with device id %d", dev.DevID)
	}

	if !foundVirtual {
		if r.isFull() {
			r.evict(added)
		}

		logger.Log(r, "devices", "no \"Virtual\" device id found, adding one")
		dev, err := r.add(&Device{
			DevID: r.nextDevID(ClassSystem, VirtualName),
			Class: ClassSystem,
			OSID:  VirtualOSID,
			Name:  VirtualName,
			Type:  TypeBitVirtual | TypeBitKeyboard | TypeBitKeyMisc,
		})
		if err != nil {
			return curated.Errorf("devices: virtual device: %v", err)
		}
		r.virtual = dev
	}

	if !firstRun && r.change != nil {
		// the notification does not describe the change. the receiver
		// re-reads the whole list
		r.change(Change{DevID: 0, Class: ClassSystem, Kind: Added})
	}

	return nil
}

// evict the most recently added non-virtual device. devices added during the
// current rescan are preferred over persistent devices.
func (r *Registry) evict(added []*Device) {
	for i := len(added) - 1; i >= 0; i-- {
		if !added[i].Is(TypeBitVirtual) {
			logger.Logf(logger.Allow, "devices", "evicting %s to make room", added[i])
			r.remove(added[i])
			return
		}
	}
	for i := len(r.order) - 1; i >= 0; i-- {
		d := r.slots[r.order[i]]
		if !d.Is(TypeBitVirtual) {
			logger.Logf(logger.Allow, "devices", "evicting %s to make room", d)
			r.remove(d)
			return
		}
	}
}

// Lookup returns the device with the host identifier or nil if there is no
// such device. On hosts that can not tell devices apart the catch-all device
// is always returned.
func (r *Registry) Lookup(osID int32) *Device {
	if !r.multi {
		return r.virtual
	}
	for _, idx := range r.order {
		d := r.slots[idx]
		if d.Class == ClassSystem && d.OSID == osID {
			return d
		}
	}
	return nil
}

// Virtual returns the fallback device. Never nil after a successful rescan.
func (r *Registry) Virtual() *Device {
	return r.virtual
}

// BuiltinKeyboard returns the built-in keyboard or nil if the host did not
// report one.
func (r *Registry) BuiltinKeyboard() *Device {
	return r.builtinKeyboard
}

// Devices returns the devices in the order they were added.
func (r *Registry) Devices() []*Device {
	l := make([]*Device, 0, len(r.order))
	for _, idx := range r.order {
		l = append(l, r.slots[idx])
	}
	return l
}

// Write a table of the devices to io.Writer.
func (r *Registry) Write(output io.Writer) {
	fmt.Fprintf(output, "%-4s %-8s %-5s %-6s %-30s %-12s %s\n", "idx", "class", "devid", "osid", "type", "subtype", "name")
	for _, d := range r.Devices() {
		fmt.Fprintf(output, "%-4d %-8s %-5d %-6d %-30s %-12s %s\n", d.idx, d.Class, d.DevID, d.OSID, d.Type, d.Subtype, d.Name)
	}
}
