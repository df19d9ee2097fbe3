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

// Package alu holds the arithmetic helpers shared by the instruction
// implementations in the cpu package. the functions here are pure: they take
// operand values and return results and condition flags, leaving status
// register updates to the caller.
//
// the shift and rotate family is implemented as a per-bit loop rather than
// with closed form expressions. the MC68000 shifter really does work a bit at
// a time (the cycle counts of the register forms scale with the count) and
// the loop makes the awkward flag rules, particularly overflow for ASL and
// the carry behaviour of the extend rotates, fall out naturally.
package alu
