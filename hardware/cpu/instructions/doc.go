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

// Package instructions maps MC68000 opcode bit patterns onto a closed set of
// instruction definitions. The Decode() function accepts any 16 bit value and
// always produces a Definition; there is no opcode that "falls through". A
// Definition is classified as one of:
//
//	Decoded       a recognised and implemented instruction
//	Undefined     a bit pattern with no meaning on the MC68000; the CPU
//	              raises the illegal instruction exception
//	LineA, LineF  the 1010/1111 emulator trap regions, which have their own
//	              exception vectors
//	Unimplemented a pattern that is a valid MC68000 instruction but which
//	              this emulation does not yet support
//
// The distinction between Undefined and Unimplemented matters: Undefined
// patterns take the in-model exception path exactly as on real silicon, while
// Unimplemented patterns are an explicit gap in the emulation that the cpu
// package reports as an error rather than disguising as illegal-instruction
// behaviour.
//
// The package performs no execution and no bus access. It is the pure
// bits-to-meaning half of the decode stage; the cpu package turns a
// Definition into a micro-op sequence.
package instructions
