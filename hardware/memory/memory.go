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

// Package memory provides a simple flat implementation of the bus contract:
// sixteen megabytes of big endian RAM covering the entire 24 bit address
// space, with optional uniform wait states and an optional faulting region.
// it is the memory system used by the debugger and by programs that just
// want a working machine to run code on.
package memory

import (
	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/hardware/memory/bus"
)

// AddressMask defines the reach of the 24 bit address bus.
const AddressMask = 0x00ffffff

// Sentinal error returned when an access touches the faulting region.
const BusFault = "bus fault: %s access of %08x"

// Memory is a flat RAM implementation of bus.Bus and bus.DebugBus.
type Memory struct {
	ram []uint8

	// WaitStates is added to the cost of every access. zero models a zero
	// wait state memory system.
	WaitStates int

	// faulting region. inclusive bounds, active when faultTop > 0
	faultBase uint32
	faultTop  uint32

	irqLevel  int
	irqVector int
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		ram: make([]uint8, AddressMask+1),
	}
}

// SetFaultRange marks an inclusive range of addresses as faulting. any
// access inside the range returns a bus fault. a range of (0, 0) clears it.
func (mem *Memory) SetFaultRange(base uint32, top uint32) {
	mem.faultBase = base & AddressMask
	mem.faultTop = top & AddressMask
}

func (mem *Memory) faulting(address uint32) bool {
	return mem.faultTop > 0 && address >= mem.faultBase && address <= mem.faultTop
}

// ReadByte implements the bus.Bus interface.
func (mem *Memory) ReadByte(address uint32, fc bus.FunctionCode) (uint8, int, error) {
	address &= AddressMask
	if mem.faulting(address) {
		return 0, 0, curated.Errorf(BusFault, "read", address)
	}
	return mem.ram[address], mem.WaitStates, nil
}

// ReadWord implements the bus.Bus interface.
func (mem *Memory) ReadWord(address uint32, fc bus.FunctionCode) (uint16, int, error) {
	address &= AddressMask
	if mem.faulting(address) {
		return 0, 0, curated.Errorf(BusFault, "read", address)
	}
	v := uint16(mem.ram[address]) << 8
	v |= uint16(mem.ram[(address+1)&AddressMask])
	return v, mem.WaitStates, nil
}

// WriteByte implements the bus.Bus interface.
func (mem *Memory) WriteByte(address uint32, data uint8, fc bus.FunctionCode) (int, error) {
	address &= AddressMask
	if mem.faulting(address) {
		return 0, curated.Errorf(BusFault, "write", address)
	}
	mem.ram[address] = data
	return mem.WaitStates, nil
}

// WriteWord implements the bus.Bus interface.
func (mem *Memory) WriteWord(address uint32, data uint16, fc bus.FunctionCode) (int, error) {
	address &= AddressMask
	if mem.faulting(address) {
		return 0, curated.Errorf(BusFault, "write", address)
	}
	mem.ram[address] = uint8(data >> 8)
	mem.ram[(address+1)&AddressMask] = uint8(data)
	return mem.WaitStates, nil
}

// InterruptLevel implements the bus.Bus interface.
func (mem *Memory) InterruptLevel() int {
	return mem.irqLevel
}

// InterruptAcknowledge implements the bus.Bus interface. the pending
// interrupt is dropped as part of the acknowledge cycle.
func (mem *Memory) InterruptAcknowledge(level int) (int, int, error) {
	vec := mem.irqVector
	mem.irqLevel = 0
	mem.irqVector = bus.AutoVector
	return vec, mem.WaitStates, nil
}

// Reset implements the bus.Bus interface. flat RAM has nothing to reset.
func (mem *Memory) Reset() {
}

// RaiseInterrupt asserts an interrupt at the given level. vector is the
// vector number the acknowledge cycle will supply, or bus.AutoVector for an
// autovectored interrupt.
func (mem *Memory) RaiseInterrupt(level int, vector int) {
	mem.irqLevel = level & 0x7
	mem.irqVector = vector
}

// Peek implements the bus.DebugBus interface.
func (mem *Memory) Peek(address uint32) (uint8, error) {
	return mem.ram[address&AddressMask], nil
}

// Poke implements the bus.DebugBus interface.
func (mem *Memory) Poke(address uint32, data uint8) error {
	mem.ram[address&AddressMask] = data
	return nil
}

// PokeWord is a big endian convenience over Poke, useful when assembling
// test programs and vector tables.
func (mem *Memory) PokeWord(address uint32, data uint16) {
	mem.ram[address&AddressMask] = uint8(data >> 8)
	mem.ram[(address+1)&AddressMask] = uint8(data)
}

// PokeLong is a big endian convenience over Poke.
func (mem *Memory) PokeLong(address uint32, data uint32) {
	mem.PokeWord(address, uint16(data>>16))
	mem.PokeWord(address+2, uint16(data))
}
