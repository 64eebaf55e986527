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

// Package resources prepares paths for files written and read by phosphor,
// such as the preferences file and screenshots.
//
// The base path is the ".phosphor" directory in the current working directory
// if it exists. Otherwise it is the phosphor directory in the user's
// configuration directory. On modern Linux systems this would be something
// like:
//
//	/home/user/.config/phosphor/
package resources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fpg1/phosphor/curated"
)

// Sentinal error patterns.
const (
	NoBasePath = "resources: no base path: %v"
	CannotJoin = "resources: cannot prepare %s: %v"
)

// the name of the resource directory if it is present in the working
// directory.
const localBase = ".phosphor"

// base returns the base path for all resources.
func base() (string, error) {
	if info, err := os.Stat(localBase); err == nil && info.IsDir() {
		return localBase, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", curated.Errorf(NoBasePath, err)
	}
	return filepath.Join(cfg, strings.TrimPrefix(localBase, ".")), nil
}

// JoinPath prepends the supplied path with the resource base path. The base
// path is not prepended if it is already present.
//
// All directories required to reach the end of the path are created. The file
// itself is not touched.
func JoinPath(path ...string) (string, error) {
	b, err := base()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)
	if !strings.HasPrefix(p, b) {
		p = filepath.Join(b, p)
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", curated.Errorf(CannotJoin, p, err)
	}

	return p, nil
}
