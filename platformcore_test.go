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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/platform"
	"github.com/jetsetilly/platformcore/statsview"
	"github.com/jetsetilly/platformcore/test"
	"github.com/jetsetilly/platformcore/userinput/devices"
)

type fakeBridge struct {
	infos  []platform.DeviceInfo
	closed bool
}

func (b *fakeBridge) InputDevices() ([]platform.DeviceInfo, error) {
	return b.infos, nil
}

func (b *fakeBridge) Close() {
	b.closed = true
}

func withFakeBridge(t *testing.T, b *fakeBridge) {
	t.Helper()
	prev := openBridge
	openBridge = func() (closeBridge, error) {
		return b, nil
	}
	t.Cleanup(func() {
		openBridge = prev
	})
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetArgs(args)
	test.DemandSuccess(t, cmd.Execute())
	return out.String()
}

func TestCommands(t *testing.T) {
	cmd := newRootCommand(&bytes.Buffer{})

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	test.ExpectSuccess(t, strings.Contains(strings.Join(names, " "), "run"))
	test.ExpectSuccess(t, strings.Contains(strings.Join(names, " "), "devices"))

	run, _, err := cmd.Find([]string{"run"})
	test.DemandSuccess(t, err)
	f := run.Flags().Lookup("hotplug")
	test.DemandSuccess(t, f != nil)
	test.ExpectEquality(t, f.DefValue, "/dev/input")
	f = run.Flags().Lookup("profile")
	test.DemandSuccess(t, f != nil)
	test.ExpectEquality(t, f.DefValue, "none")
	f = run.Flags().Lookup("statsview-addr")
	test.DemandSuccess(t, f != nil)
	test.ExpectEquality(t, f.DefValue, statsview.DefaultAddress)

	test.ExpectSuccess(t, cmd.PersistentFlags().Lookup("logtags") != nil)
}

func TestDevicesLogTags(t *testing.T) {
	withFakeBridge(t, &fakeBridge{
		infos: []platform.DeviceInfo{
			{ID: 0, Name: "qwerty", Sources: platform.SourceKeyboard},
		},
	})

	var out, log bytes.Buffer
	cmd := newRootCommand(&out)
	cmd.SetErr(&log)
	cmd.SetArgs([]string{"devices", "--logtags", "devices"})
	test.DemandSuccess(t, cmd.Execute())
	logger.SetEcho(nil)

	// only entries tagged devices are echoed
	for _, l := range strings.Split(strings.TrimSpace(log.String()), "\n") {
		test.ExpectSuccess(t, strings.HasPrefix(l, "devices: "), l)
	}
}

func TestDevices(t *testing.T) {
	b := &fakeBridge{
		infos: []platform.DeviceInfo{
			{ID: 0, Name: "qwerty", Sources: platform.SourceKeyboard, KeyboardType: platform.KeyboardTypeAlphabetic},
			{ID: 16, Name: "Wireless Pad", Sources: platform.SourceGamepad | platform.SourceJoystick},
			{ID: 2, Name: "SDL Mouse", Sources: platform.SourceMouse},
		},
	}
	withFakeBridge(t, b)

	out := execute(t, "devices")
	test.ExpectSuccess(t, b.closed)
	test.ExpectSuccess(t, strings.Contains(out, "qwerty"))
	test.ExpectSuccess(t, strings.Contains(out, "Wireless Pad"))
	test.ExpectSuccess(t, strings.Contains(out, devices.VirtualName))

	// the mouse has no keys and is not added to the registry
	test.ExpectFailure(t, strings.Contains(out, "SDL Mouse"))
}

func TestDevicesSingle(t *testing.T) {
	b := &fakeBridge{
		infos: []platform.DeviceInfo{
			{ID: 0, Name: "qwerty", Sources: platform.SourceKeyboard},
		},
	}
	withFakeBridge(t, b)

	out := execute(t, "devices", "--single")
	test.ExpectSuccess(t, strings.Contains(out, devices.GenericName))
	test.ExpectFailure(t, strings.Contains(out, "qwerty"))
}
