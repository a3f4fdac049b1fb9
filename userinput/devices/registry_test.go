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

package devices_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/test"
	"github.com/jetsetilly/platformcore/userinput/devices"
	"github.com/sebdah/goldie/v2"
)

type bridge struct {
	devs []platform.DeviceInfo
	err  error
}

func (b *bridge) InputDevices() ([]platform.DeviceInfo, error) {
	return b.devs, b.err
}

var multi = platform.Capabilities{MultiInputDevices: true}

func mixedDevices() []platform.DeviceInfo {
	return []platform.DeviceInfo{
		{ID: 0, Name: "qwerty", Sources: platform.SourceKeyboard, KeyboardType: platform.KeyboardTypeAlphabetic},
		{ID: 3, Name: "Sony PLAYSTATION(R)3 Controller", Sources: platform.SourceGamepad | platform.SourceJoystick},
		{ID: 4, Name: "Sony PLAYSTATION(R)3 Controller", Sources: platform.SourceGamepad | platform.SourceJoystick},
		{ID: 5, Name: "", Sources: platform.SourceKeyboard},
		{ID: 6, Name: "touch-pad", Sources: platform.SourceTouchscreen | platform.SourceGamepad},
		{ID: 7, Name: "mouse", Sources: platform.SourceMouse},
		{ID: 8, Name: "keypad-zeus", Sources: platform.SourceGamepad | platform.SourceKeyboard},
		{ID: 9, Name: "sii9234_rcp", Sources: platform.SourceGamepad | platform.SourceKeyboard, KeyboardType: platform.KeyboardTypeAlphabetic},
	}
}

func TestRescanTable(t *testing.T) {
	reg := devices.NewRegistry(&bridge{devs: mixedDevices()}, multi, devices.DefaultCapacity)
	test.DemandSuccess(t, reg.Rescan(true))

	var buf bytes.Buffer
	reg.Write(&buf)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "rescan", buf.Bytes())
}

func TestRescanClassification(t *testing.T) {
	reg := devices.NewRegistry(&bridge{devs: mixedDevices()}, multi, devices.DefaultCapacity)
	test.DemandSuccess(t, reg.Rescan(true))

	// malformed and mouse entries are not added. a virtual device is
	test.ExpectEquality(t, reg.Len(), 7)

	kb := reg.BuiltinKeyboard()
	test.DemandSuccess(t, kb != nil)
	test.ExpectSuccess(t, kb.Is(devices.TypeBitKeyboard|devices.TypeBitKeyboardAlpha))

	ps3a := reg.Lookup(3)
	ps3b := reg.Lookup(4)
	test.ExpectEquality(t, ps3a.DevID, 0)
	test.ExpectEquality(t, ps3b.DevID, 1)
	test.ExpectEquality(t, ps3b.Subtype, devices.SubtypePS3Controller)
	test.ExpectSuccess(t, ps3b.Is(devices.TypeBitGamepad|devices.TypeBitJoystick|devices.TypeBitKeyMisc))

	// touchscreen claiming to be a gamepad
	test.ExpectFailure(t, reg.Lookup(6).Is(devices.TypeBitGamepad))

	xperia := reg.Lookup(8)
	test.ExpectEquality(t, xperia.Subtype, devices.SubtypeXperiaPlay)
	test.ExpectSuccess(t, xperia.Is(devices.TypeBitGamepad))

	// quirk removes all source bits
	test.ExpectEquality(t, reg.Lookup(9).Type, devices.TypeBitKeyMisc)

	test.ExpectSuccess(t, reg.Lookup(5) == nil)
	test.ExpectSuccess(t, reg.Lookup(7) == nil)

	v := reg.Virtual()
	test.DemandSuccess(t, v != nil)
	test.ExpectEquality(t, v.OSID, devices.VirtualOSID)
	test.ExpectEquality(t, v.Type, devices.TypeBitVirtual|devices.TypeBitKeyboard|devices.TypeBitKeyMisc)
}

func TestRescanHostVirtual(t *testing.T) {
	b := &bridge{devs: []platform.DeviceInfo{
		{ID: -1, Name: "Virtual", Sources: platform.SourceKeyboard},
		{ID: 2, Name: "pad", Sources: platform.SourceGamepad},
	}}
	reg := devices.NewRegistry(b, multi, devices.DefaultCapacity)
	test.DemandSuccess(t, reg.Rescan(true))

	// the host's virtual device is used and no other is added
	test.ExpectEquality(t, reg.Len(), 2)
	test.ExpectSuccess(t, reg.Virtual() == reg.Lookup(-1))
	test.ExpectSuccess(t, reg.Virtual().Is(devices.TypeBitVirtual|devices.TypeBitKeyboard))
}

func TestCapacityEviction(t *testing.T) {
	const capacity = 4

	b := &bridge{}
	for i := 0; i < capacity+2; i++ {
		b.devs = append(b.devs, platform.DeviceInfo{
			ID:      int32(i + 1),
			Name:    fmt.Sprintf("pad %d", i),
			Sources: platform.SourceGamepad,
		})
	}

	reg := devices.NewRegistry(b, multi, capacity)
	test.DemandSuccess(t, reg.Rescan(true))

	test.ExpectEquality(t, reg.Len(), capacity)

	// the virtual device is always present
	test.DemandSuccess(t, reg.Virtual() != nil)
	test.ExpectSuccess(t, reg.Virtual().Is(devices.TypeBitVirtual))

	// the most recently added device was evicted to make room
	test.ExpectSuccess(t, reg.Lookup(1) != nil)
	test.ExpectSuccess(t, reg.Lookup(2) != nil)
	test.ExpectSuccess(t, reg.Lookup(3) != nil)
	test.ExpectSuccess(t, reg.Lookup(4) == nil)
	test.ExpectSuccess(t, reg.Lookup(5) == nil)

	// virtual device took the evicted device's slot
	test.ExpectEquality(t, reg.Virtual().Index(), 3)
}

func TestRescanNotification(t *testing.T) {
	b := &bridge{devs: mixedDevices()}
	reg := devices.NewRegistry(b, multi, devices.DefaultCapacity)

	var changes []devices.Change
	reg.SetChangeHandler(func(c devices.Change) {
		changes = append(changes, c)
	})

	test.DemandSuccess(t, reg.Rescan(true))
	test.ExpectEquality(t, len(changes), 0)

	// removing devices still reports a single "added" change
	b.devs = b.devs[:1]
	test.DemandSuccess(t, reg.Rescan(false))
	test.DemandEquality(t, len(changes), 1)
	test.ExpectEquality(t, changes[0], devices.Change{DevID: 0, Class: devices.ClassSystem, Kind: devices.Added})
	test.ExpectEquality(t, reg.Len(), 2)
}

func TestRescanResetsAxisState(t *testing.T) {
	b := &bridge{devs: []platform.DeviceInfo{
		{ID: 2, Name: "stick", Sources: platform.SourceJoystick | platform.SourceGamepad},
	}}
	reg := devices.NewRegistry(b, multi, devices.DefaultCapacity)
	test.DemandSuccess(t, reg.Rescan(true))

	dev := reg.Lookup(2)
	dev.SetAxisButton(0, 1, true)
	test.ExpectSuccess(t, dev.AxisButton(0, 1))

	test.DemandSuccess(t, reg.Rescan(false))
	test.ExpectFailure(t, reg.Lookup(2).AxisButton(0, 1))
}

func TestPersistentDevices(t *testing.T) {
	b := &bridge{devs: []platform.DeviceInfo{
		{ID: 2, Name: "pad", Sources: platform.SourceGamepad},
	}}
	reg := devices.NewRegistry(b, multi, devices.DefaultCapacity)

	mouse, err := reg.AddPersistent(devices.ClassPointer, 100, "mouse", devices.TypeBitKeyMisc)
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, reg.Rescan(true))
	test.DemandSuccess(t, reg.Rescan(false))

	test.ExpectEquality(t, reg.Len(), 3)
	test.ExpectEquality(t, reg.Devices()[0], mouse)

	// persistent pointer devices are not returned by lookup
	test.ExpectSuccess(t, reg.Lookup(100) == nil)
}

func TestEnumerationFailure(t *testing.T) {
	reg := devices.NewRegistry(&bridge{err: errors.New("no devices")}, multi, devices.DefaultCapacity)
	test.ExpectSuccess(t, reg.Rescan(true))
	test.ExpectEquality(t, reg.Len(), 1)
	test.ExpectSuccess(t, reg.Virtual() != nil)
}

func TestSingleDevice(t *testing.T) {
	reg := devices.NewRegistry(&bridge{devs: mixedDevices()}, platform.Capabilities{}, 0)
	test.ExpectEquality(t, reg.Capacity(), devices.DefaultCapacity)

	test.ExpectSuccess(t, reg.Rescan(true))
	test.ExpectEquality(t, reg.Len(), 1)

	// every lookup returns the catch-all device
	dev := reg.Lookup(12345)
	test.DemandSuccess(t, dev != nil)
	test.ExpectEquality(t, dev.Name, devices.GenericName)
	test.ExpectSuccess(t, dev == reg.Virtual())
	test.ExpectSuccess(t, dev.Is(devices.TypeBitVirtual|devices.TypeBitKeyboard|devices.TypeBitKeyMisc))
}

func TestTypeBitsString(t *testing.T) {
	test.ExpectEquality(t, devices.TypeBits(0).String(), "none")
	b := devices.TypeBitKeyMisc | devices.TypeBitVirtual | devices.TypeBitJoystick
	test.ExpectEquality(t, b.String(), "virtual|joystick|misc")
}
