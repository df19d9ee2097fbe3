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

// Package cpu emulates the MC68000 at clock cycle granularity. the emulation
// is driven one cycle at a time through the Tick() function, making it easy
// to interleave with the rest of a machine that shares the bus.
//
// internally, every instruction is translated into a short program of micro
// operations. a micro operation either occupies a number of cycles (a bus
// access or internal processing time) or is instant, carrying out register
// transfers and decisions between the timed steps. the two word prefetch
// pipeline (IR and IRC) is part of the model: extension words are consumed
// from IRC and every consumed word schedules another fetch, so the bus
// traffic of an instruction is the traffic a real part would generate.
//
// exceptions, interrupts and the group zero faults (bus error and address
// error) are scheduled through the same mechanism. a fault during the
// processing of another fault halts the processor; only a reset brings it
// back.
package cpu
