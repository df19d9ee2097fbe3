// This file is part of Gopher68k.
//
// Gopher68k is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher68k is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher68k.  If not, see <https://www.gnu.org/licenses/>.

package commandline

import (
	"strings"
)

// TabCompletion implements the terminal.TabCompletion interface. Completion
// only works on the command itself, not on any of its arguments. Repeated
// calls to Complete() with the same result cycle through the candidates.
type TabCompletion struct {
	cmds *Commands

	matches []string
	match   int

	// the last string returned by Complete(). used to detect cycling.
	lastGuess string
}

// NewTabCompletion is the preferred method of initialisation for the
// TabCompletion type.
func NewTabCompletion(cmds *Commands) *TabCompletion {
	return &TabCompletion{cmds: cmds}
}

// Complete transforms the input into the next possible completion.
func (tc *TabCompletion) Complete(input string) string {
	// a completed command is cycled when Complete() is called again with the
	// previous result
	if tc.lastGuess != "" && input == tc.lastGuess && len(tc.matches) > 0 {
		tc.match = (tc.match + 1) % len(tc.matches)
		tc.lastGuess = tc.matches[tc.match] + " "
		return tc.lastGuess
	}

	// completion is only attempted on the first word of the input
	if strings.Contains(strings.TrimSpace(input), " ") {
		tc.Reset()
		return input
	}

	prefix := strings.ToUpper(strings.TrimSpace(input))
	if prefix == "" {
		tc.Reset()
		return input
	}

	tc.matches = tc.matches[:0]
	for _, c := range tc.cmds.list {
		if strings.HasPrefix(strings.ToUpper(c.Name), prefix) {
			tc.matches = append(tc.matches, c.Name)
		}
	}

	if len(tc.matches) == 0 {
		tc.lastGuess = ""
		return input
	}

	tc.match = 0
	tc.lastGuess = tc.matches[0] + " "
	return tc.lastGuess
}

// Reset forgets the current completion cycle.
func (tc *TabCompletion) Reset() {
	tc.matches = tc.matches[:0]
	tc.match = 0
	tc.lastGuess = ""
}
