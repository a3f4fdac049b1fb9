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

package logger_test

import (
	"testing"

	"github.com/jetsetilly/platformcore/logger"
	"github.com/jetsetilly/platformcore/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare(""))

	logger.Log(logger.Allow, "test", "this is a test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\n"))

	// clear the test.Writer buffer before continuing, makes comparisons easier
	// to manage
	tw.Clear()

	logger.Log(logger.Allow, "test2", "this is another test")
	logger.Write(tw)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for too many entries in a Tail() should be okay
	tw.Clear()
	logger.Tail(tw, 100)
	test.ExpectSuccess(t, tw.Compare("test: this is a test\ntest2: this is another test\n"))

	// asking for fewer entries is okay too
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectSuccess(t, tw.Compare("test2: this is another test\n"))

	// and no entries
	tw.Clear()
	logger.Tail(tw, 0)
	test.ExpectSuccess(t, tw.Compare(""))
}

func TestRepeatsAndPermission(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}

	logger.Logf(logger.Allow, "rpt", "value %d", 1)
	logger.Logf(logger.Allow, "rpt", "value %d", 1)
	logger.Logf(logger.Allow, "rpt", "value %d", 1)
	logger.Log(logger.Deny, "rpt", "never seen")
	logger.Write(tw)
	test.ExpectEquality(t, tw.String(), "rpt: value 1 (repeat x3)\n")

	var toggle logger.Toggle
	logger.Log(&toggle, "tgl", "off")
	toggle.Set(true)
	logger.Log(&toggle, "tgl", "on")
	tw.Clear()
	logger.Tail(tw, 1)
	test.ExpectSuccess(t, tw.CompareLines("tgl: on"))
}

func TestMaximumEntries(t *testing.T) {
	logger.Clear()
	for i := 0; i < 300; i++ {
		logger.Logf(logger.Allow, "max", "entry %d", i)
	}

	tw := &test.CompareWriter{}
	logger.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "max: entry 299\n")

	// the oldest surviving entry is the 256th from the end
	tw.Clear()
	logger.Tail(tw, 1000)
	test.ExpectEquality(t, tw.String()[:len("max: entry 44\n")], "max: entry 44\n")
}

func TestEcho(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}
	logger.SetEcho(tw)
	defer logger.SetEcho(nil)

	logger.Log(logger.Allow, "echo", "hello")
	test.ExpectEquality(t, tw.String(), "echo: hello\n")
}

func TestEchoTags(t *testing.T) {
	logger.Clear()
	tw := &test.CompareWriter{}
	logger.SetEcho(tw, "lifecycle", " devices ")
	defer logger.SetEcho(nil)

	logger.Log(logger.Allow, "lifecycle", "window resized")
	logger.Log(logger.Allow, "looper", "added fd 5")
	logger.Log(logger.Allow, "devices", "rescan")
	test.ExpectSuccess(t, tw.CompareLines("lifecycle: window resized", "devices: rescan"))

	// filtered entries are still logged
	tw.Clear()
	logger.Write(tw)
	test.ExpectSuccess(t, tw.CompareLines("lifecycle: window resized", "looper: added fd 5", "devices: rescan"))
}
