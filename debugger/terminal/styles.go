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

package terminal

// Style is used to identify the category of text being sent to the
// Output interface. The terminal implementation is free to interpret
// the style however is appropriate, including ignoring it entirely.
type Style int

// List of terminal styles.
const (
	// input from the user being echoed back. a fully interactive terminal
	// can ignore this style because the input will already be visible.
	StyleEcho Style = iota

	// information from the debugger about the machine being debugged.
	StyleFeedback

	// the result of a step operation. the most important of the regular
	// output styles.
	StyleStep

	// detailed help information.
	StyleHelp

	// prompt styles.
	StylePromptStep
	StylePromptConfirm

	// error messages. shown even when the terminal is silenced.
	StyleError
)

// IsPrompt returns true if the style is one of the prompt styles.
func (sty Style) IsPrompt() bool {
	return sty == StylePromptStep || sty == StylePromptConfirm
}
