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

package crt

import (
	"github.com/fpg1/phosphor/crt/specification"
	"github.com/fpg1/phosphor/curated"
	"github.com/fpg1/phosphor/prefs"
	"github.com/fpg1/phosphor/resources"
)

// Preferences for the CRT. The specification can only take effect when a new
// CRT is created. Other values take effect at the start of the next frame.
type Preferences struct {
	dsk *prefs.Disk

	// the ID of the specification to use when creating a new CRT
	Spec prefs.String

	// expand beam events into a five point cluster
	ThickBeam prefs.Bool

	// blur the output. when false the centre of the neighbourhood is used
	// directly
	Blur prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

const (
	defaultSpec      = "VGA"
	defaultThickBeam = true
	defaultBlur      = true
)

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Preferences are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is like NewPreferences() but with an explicit path to
// the preferences file.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	// the specification is checked before it is accepted
	p.Spec.SetHookPre(func(v prefs.Value) error {
		_, err := specification.GetSpec(v.(string))
		return err
	})

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("crt.spec", &p.Spec)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("crt.thickbeam", &p.ThickBeam)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("crt.blur", &p.Blur)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil && !curated.Is(err, prefs.NoPrefsFile) {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all CRT preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.Spec.Set(defaultSpec)
	p.ThickBeam.Set(defaultThickBeam)
	p.Blur.Set(defaultBlur)
}

// Load CRT preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current CRT preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Specification returns the specification named by the Spec preference.
func (p *Preferences) Specification() (specification.Spec, error) {
	return specification.GetSpec(p.Spec.String())
}
