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

package hotplug

import (
	"fmt"
	"time"

	"github.com/jetsetilly/platformcore/prefs"
)

// Preferences for the hotplug package.
type Preferences struct {
	dsk *prefs.Disk

	// quiet period in milliseconds before a rescan
	CoalesceMS prefs.Int
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. An empty path creates preferences that are not backed by a file.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.CoalesceMS.SetHookPre(func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("hotplug: coalescing window must be positive")
		}
		return nil
	})
	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hotplug.coalesceMS", &p.CoalesceMS)
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
	p.CoalesceMS.Set(int(DefaultWindow / time.Millisecond))
}

// Window returns the coalescing window as a duration.
func (p *Preferences) Window() time.Duration {
	return time.Duration(p.CoalesceMS.Get().(int)) * time.Millisecond
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
