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

package userinput

import (
	"github.com/jetsetilly/platformcore/prefs"
)

// Preferences for the userinput package.
type Preferences struct {
	dsk *prefs.Disk

	// volume keys are normally left to the host
	HandleVolumeKeys prefs.Bool

	// repeat events can only be turned off on hosts that can not tell input
	// devices apart. on those hosts two devices pressing the same key look
	// like a repeat
	AllowKeyRepeats prefs.Bool

	// offer key events to the host's input method before normalising them
	UseOSInputMethod prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. An empty path creates preferences that are not backed by a file.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("userinput.handleVolumeKeys", &p.HandleVolumeKeys)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("userinput.allowKeyRepeats", &p.AllowKeyRepeats)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("userinput.useOSInputMethod", &p.UseOSInputMethod)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.HandleVolumeKeys.Set(false)
	p.AllowKeyRepeats.Set(true)
	p.UseOSInputMethod.Set(true)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
