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
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// a group of preferences specified in a single preferences string.
type commandLineGroup map[string]Value

func (grp commandLineGroup) String() string {
	s := strings.Builder{}
	for _, key := range slices.Sorted(maps.Keys(grp)) {
		s.WriteString(fmt.Sprintf("%s::%v; ", key, grp[key]))
	}
	return strings.TrimSuffix(s.String(), "; ")
}

var commandLine struct {
	crit  sync.Mutex
	stack []commandLineGroup
}

// PushCommandLineStack parses a preferences string and adds it as a new group.
// The string is a list of key/value pairs separated by semi-colons. Keys and
// values are separated by a double colon:
//
//	crt.thickbeam::false; crt.spec::SVGA
//
// Malformed pairs are ignored.
func PushCommandLineStack(prefs string) {
	grp := make(commandLineGroup)
	for _, p := range strings.Split(prefs, ";") {
		key, value, ok := strings.Cut(p, "::")
		if !ok || strings.Contains(value, "::") {
			continue
		}
		grp[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	commandLine.stack = append(commandLine.stack, grp)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the preferences in the group that were never
// used, as a preferences string with keys in alphabetical order.
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return ""
	}
	grp := commandLine.stack[n-1]
	commandLine.stack = commandLine.stack[:n-1]
	return grp.String()
}

// SizeCommandLineStack returns the number of groups on the stack.
func SizeCommandLineStack() int {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	return len(commandLine.stack)
}

// GetCommandLinePref returns the value for the key from the most recent
// group. The value is removed from the group once it has been returned.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return false, nil
	}

	grp := commandLine.stack[n-1]
	v, ok := grp[key]
	if ok {
		delete(grp, key)
	}
	return ok, v
}
