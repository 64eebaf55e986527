// This file is part of Phosphor.
//
// Phosphor is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Phosphor is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Phosphor.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fpg1/phosphor/curated"
)

// Sentinal error patterns.
const (
	NoPrefsFile   = "prefs: no preferences file (%s)"
	DuplicateKey  = "prefs: duplicate key (%s)"
	InvalidPrefs  = "prefs: %s: %v"
	InvalidPrefKV = "prefs: %s: line %d is not a key/value pair"
)

// DefaultPrefsFile is the name of the preferences file shared by every part of
// phosphor.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// separator between key and value in the preferences file.
const separator = " :: "

// Disk is a collection of preferences that are persisted to the same file.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if strings.TrimSpace(path) == "" {
		return nil, curated.Errorf(InvalidPrefs, path, "empty path")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range slices.Sorted(maps.Keys(dsk.entries)) {
		s.WriteString(k)
		s.WriteString(separator)
		s.WriteString(dsk.entries[k].String())
		s.WriteString("\n")
	}
	return s.String()
}

// Add a preference to the disk under key. Keys must be unique to the Disk
// and should be unique to the file.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	dsk.entries[key] = p
	return nil
}

// Reset every preference on the Disk to its zero value. The file is not
// changed until the next call to Save().
func (dsk *Disk) Reset() error {
	for _, k := range slices.Sorted(maps.Keys(dsk.entries)) {
		if err := dsk.entries[k].Reset(); err != nil {
			return curated.Errorf(InvalidPrefs, k, err)
		}
	}
	return nil
}

// read the preferences file into a map of strings.
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return nil, curated.Errorf(InvalidPrefs, dsk.path, err)
	}
	defer f.Close()

	values := make(map[string]string)

	scanner := bufio.NewScanner(f)
	var line int
	for scanner.Scan() {
		line++
		s := scanner.Text()
		if line == 1 && s == WarningBoilerPlate {
			continue
		}
		if strings.TrimSpace(s) == "" {
			continue
		}
		k, v, ok := strings.Cut(s, separator)
		if !ok {
			return nil, curated.Errorf(InvalidPrefKV, dsk.path, line)
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(InvalidPrefs, dsk.path, err)
	}

	return values, nil
}

// Save the preferences on the Disk to the file. Values in the file that do
// not belong to this Disk are preserved.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		values = make(map[string]string)
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(InvalidPrefs, dsk.path, err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, values[k])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return curated.Errorf(InvalidPrefs, dsk.path, err)
	}
	if err := f.Close(); err != nil {
		return curated.Errorf(InvalidPrefs, dsk.path, err)
	}

	return nil
}

// Load the preferences on the Disk from the file. Values in the file that do
// not belong to this Disk are ignored. Values on the command line stack take
// precedence over values in the file.
//
// If the file does not exist and saveOnFirstUse is true, the file is created
// with the current values. Otherwise a missing file is a NoPrefsFile error.
func (dsk *Disk) Load(saveOnFirstUse bool) error {
	values, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		if saveOnFirstUse {
			if err := dsk.Save(); err != nil {
				return err
			}
		}
		values = nil
	}

	for k, p := range dsk.entries {
		if v, ok := values[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(InvalidPrefs, k, err)
			}
		}
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(InvalidPrefs, k, err)
			}
		}
	}

	if values == nil && !saveOnFirstUse {
		return curated.Errorf(NoPrefsFile, dsk.path)
	}

	return nil
}
