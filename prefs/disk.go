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

package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// WarningBoilerPlate is written to the head of every preferences file.
const WarningBoilerPlate = "# preferences file. entries are updated by the application; edit with care"

// Disk represents preference values as stored on disk. Keys are of the form
// "group.name" and are written as a table per group.
//
// The file format is TOML unless the filename ends with .yaml or .yml, in
// which case it is YAML.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
	}
	return dsk, nil
}

// Add preference value to the list of values to save/load. An error is
// returned if the key is badly formed or has already been added.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.ContainsAny(key, " \t\n") || strings.Count(key, ".") > 1 || key == "" {
		return fmt.Errorf("prefs: badly formed key %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key %q already added", key)
	}
	dsk.entries[key] = p
	return nil
}

func (dsk *Disk) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(dsk.path))
	return ext == ".yaml" || ext == ".yml"
}

// read the file on disk into a flat map of "group.name" keys. a missing file
// is not an error; the map will be empty.
func (dsk *Disk) read() (map[string]interface{}, error) {
	flat := make(map[string]interface{})

	data, err := os.ReadFile(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return flat, nil
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}

	nested := make(map[string]interface{})
	if dsk.isYAML() {
		err = yaml.Unmarshal(data, &nested)
	} else {
		_, err = toml.Decode(string(data), &nested)
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: %s: %w", dsk.path, err)
	}

	for k, v := range nested {
		if group, ok := v.(map[string]interface{}); ok {
			for n, gv := range group {
				flat[fmt.Sprintf("%s.%s", k, n)] = gv
			}
		} else {
			flat[k] = v
		}
	}

	return flat, nil
}

// Save current preference values to disk. Entries in the file that have not
// been added to this Disk instance are preserved.
func (dsk *Disk) Save() error {
	flat, err := dsk.read()
	if err != nil {
		return err
	}
	return dsk.write(flat)
}

// write entries to disk along with the values in the flat map.
func (dsk *Disk) write(flat map[string]interface{}) error {
	var err error

	for k, p := range dsk.entries {
		flat[k] = p.Get()
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nested := make(map[string]interface{})
	for _, k := range keys {
		group, name, ok := strings.Cut(k, ".")
		if !ok {
			nested[k] = flat[k]
			continue
		}
		g, ok := nested[group].(map[string]interface{})
		if !ok {
			g = make(map[string]interface{})
			nested[group] = g
		}
		g[name] = flat[k]
	}

	var buf bytes.Buffer
	buf.WriteString(WarningBoilerPlate)
	buf.WriteString("\n")

	if dsk.isYAML() {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(nested)
		if err == nil {
			err = enc.Close()
		}
	} else {
		err = toml.NewEncoder(&buf).Encode(nested)
	}
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	if err := os.WriteFile(dsk.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. Any value found on the current command
// line stack (see PushCommandLineStack()) overrides the value on disk.
//
// If saveOnFail is true and the file could not be parsed then the current
// values are saved, replacing the unreadable file.
func (dsk *Disk) Load(saveOnFail bool) error {
	flat, err := dsk.read()
	if err != nil {
		if saveOnFail {
			return dsk.write(make(map[string]interface{}))
		}
		return err
	}

	for k, p := range dsk.entries {
		if v, ok := flat[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return nil
}

// Reset all values added to the Disk instance.
func (dsk *Disk) Reset() error {
	for k, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}
