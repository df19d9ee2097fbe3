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

// Package debugger implements a terminal debugger for the emulated machine.
// The smallest unit of work is the clock tick, not the instruction, so the
// state of the processor can be inspected mid-instruction, between any two
// bus transactions.
//
// The terminal interface is defined in the terminal sub-package. Two
// implementations are provided: a plain terminal and an ANSI colour
// terminal with history and tab completion.
package debugger
