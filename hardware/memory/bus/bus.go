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

// Package bus defines the contract between the cpu package and whatever is
// on the other side of the address and data pins. implementations decide
// what lives where, how many wait states each access costs and which
// accesses fault.
package bus

// FunctionCode is the three bit classification the processor drives
// alongside every bus access. the values match the FC2-FC0 pins of the
// MC68000.
type FunctionCode uint8

// List of valid FunctionCode values.
const (
	UserData          FunctionCode = 1
	UserProgram       FunctionCode = 2
	SupervisorData    FunctionCode = 5
	SupervisorProgram FunctionCode = 6
	CPUSpace          FunctionCode = 7
)

func (fc FunctionCode) String() string {
	switch fc {
	case UserData:
		return "user data"
	case UserProgram:
		return "user program"
	case SupervisorData:
		return "supervisor data"
	case SupervisorProgram:
		return "supervisor program"
	case CPUSpace:
		return "cpu space"
	}
	return "undefined"
}

// AutoVector can be returned by InterruptAcknowledge in place of a vector
// number, asking the processor to use the autovector for the interrupt
// level being acknowledged.
const AutoVector = -1

// Bus is the memory and interrupt interface the cpu package drives. every
// access returns the number of wait states the access cost (zero for a full
// speed access) and an error if the access faulted. a faulting access must
// not have any other effect.
//
// word accesses are only ever made to even addresses. alignment is checked
// by the processor before the access reaches the bus.
type Bus interface {
	ReadByte(address uint32, fc FunctionCode) (uint8, int, error)
	ReadWord(address uint32, fc FunctionCode) (uint16, int, error)
	WriteByte(address uint32, data uint8, fc FunctionCode) (int, error)
	WriteWord(address uint32, data uint16, fc FunctionCode) (int, error)

	// InterruptLevel returns the level (0 to 7) currently asserted on the
	// interrupt priority pins. zero means no interrupt is pending.
	InterruptLevel() int

	// InterruptAcknowledge is the processor accepting an interrupt at the
	// given level. the return values are the vector number (or AutoVector),
	// the wait states the acknowledge cycle cost, and an error if the cycle
	// faulted (which the processor treats as a spurious interrupt).
	InterruptAcknowledge(level int) (int, int, error)

	// Reset is the processor driving the RESET pin, as the RESET instruction
	// does. it does not reset the processor itself.
	Reset()
}

// DebugBus is the non-intrusive side channel used by the debugger and the
// verification harness. Peek and Poke move data without wait states, faults
// or any other side effect.
type DebugBus interface {
	Peek(address uint32) (uint8, error)
	Poke(address uint32, data uint8) error
}
