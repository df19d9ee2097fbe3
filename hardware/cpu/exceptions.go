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

package cpu

import (
	"github.com/quillon/gopher68k/hardware/cpu/instructions"
	"github.com/quillon/gopher68k/hardware/memory/bus"
)

// List of MC68000 exception vector numbers.
const (
	VectorResetSSP      uint32 = 0
	VectorResetPC       uint32 = 1
	VectorBusError      uint32 = 2
	VectorAddressError  uint32 = 3
	VectorIllegal       uint32 = 4
	VectorZeroDivide    uint32 = 5
	VectorCHK           uint32 = 6
	VectorTrapv         uint32 = 7
	VectorPrivilege     uint32 = 8
	VectorTrace         uint32 = 9
	VectorLineA         uint32 = 10
	VectorLineF         uint32 = 11
	VectorUninitialised uint32 = 15
	VectorSpurious      uint32 = 24

	// autovectored interrupt at level n uses VectorAutovector+n
	VectorAutovector uint32 = 24

	// TRAP #n uses VectorTrap+n
	VectorTrap uint32 = 32
)

// stack push helpers. the decrement of the stack pointer and the write are
// separate steps so the written address is always the already decremented
// pointer.

func (mc *CPU) enqueuePushWord(value func() uint32) {
	mc.instant(func() error {
		mc.A[7].Load(mc.A[7].Value() - 2)
		return nil
	})
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		return mc.busWriteWord(mc.A[7].Value(), uint16(value()), mc.fcData())
	}})
}

func (mc *CPU) enqueuePushLong(value func() uint32) {
	mc.instant(func() error {
		mc.A[7].Load(mc.A[7].Value() - 4)
		return nil
	})
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		return mc.busWriteWord(mc.A[7].Value(), uint16(value()>>16), mc.fcData())
	}})
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		return mc.busWriteWord(mc.A[7].Value()+2, uint16(value()), mc.fcData())
	}})
}

func (mc *CPU) enqueuePopWord(store func(uint32)) {
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		v, err := mc.busReadWord(mc.A[7].Value(), mc.fcData())
		if err != nil {
			return err
		}
		mc.A[7].Load(mc.A[7].Value() + 2)
		store(uint32(v))
		return nil
	}})
}

func (mc *CPU) enqueuePopLong(store func(uint32)) {
	var hi uint32
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		v, err := mc.busReadWord(mc.A[7].Value(), mc.fcData())
		if err != nil {
			return err
		}
		hi = uint32(v) << 16
		return nil
	}})
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		v, err := mc.busReadWord(mc.A[7].Value()+2, mc.fcData())
		if err != nil {
			return err
		}
		mc.A[7].Load(mc.A[7].Value() + 4)
		store(hi | uint32(v))
		return nil
	}})
}

// enqueueVectorFetch reads the handler address for a vector and restarts
// the pipeline from it.
func (mc *CPU) enqueueVectorFetch(vector func() uint32) {
	mc.enqueueReadLongFC(bus.SupervisorData,
		func() uint32 { return vector() * 4 },
		func(v uint32) { mc.PC.Load(v) })
	mc.enqueue(mc.refillOp())
}

// enqueueException schedules group one and two exception processing: switch
// to supervisor mode, stack the program counter and the pre-exception
// status register, and vector to the handler. pushPC is the program counter
// value the handler's RTE will resume at.
func (mc *CPU) enqueueException(vector uint32, pushPC uint32) {
	old := uint32(mc.SR.Value())
	mc.setSupervisor(true)
	mc.SR.Trace = false

	mc.internal(6)
	mc.enqueuePushLong(func() uint32 { return pushPC })
	mc.enqueuePushWord(func() uint32 { return old })
	mc.enqueueVectorFetch(func() uint32 { return vector })
}

// enqueueInterrupt schedules interrupt exception processing at the given
// level: the interrupt acknowledge cycle, the mask update and the usual
// stacking and vectoring. a faulting acknowledge cycle is treated as a
// spurious interrupt.
func (mc *CPU) enqueueInterrupt(level int) {
	old := uint32(mc.SR.Value())
	mc.setSupervisor(true)
	mc.SR.Trace = false
	mc.SR.InterruptMask = uint8(level)
	pushPC := mc.ircAddress

	mc.internal(12)

	mc.enqueue(microOp{cycles: 4, effect: func() error {
		vec, wait, err := mc.mem.InterruptAcknowledge(level)
		mc.wait += wait
		switch {
		case err != nil:
			mc.ctx.vector = VectorSpurious
		case vec == bus.AutoVector:
			mc.ctx.vector = VectorAutovector + uint32(level)
		default:
			mc.ctx.vector = uint32(vec) & 0xff
		}
		return nil
	}})

	mc.enqueuePushLong(func() uint32 { return pushPC })
	mc.enqueuePushWord(func() uint32 { return old })
	mc.enqueueVectorFetch(func() uint32 { return mc.ctx.vector })
}

// enqueueFaultException schedules group zero exception processing for a bus
// or address error, stacking the seven word fault frame.
func (mc *CPU) enqueueFaultException(vector uint32) {
	old := uint32(mc.SR.Value())
	mc.setSupervisor(true)
	mc.SR.Trace = false

	f := mc.fault
	info := uint32(f.fc) & 0x7
	if f.read {
		info |= 0x10
	}

	mc.internal(6)
	mc.enqueuePushLong(func() uint32 { return mc.ctx.pc0 })
	mc.enqueuePushWord(func() uint32 { return old })
	mc.enqueuePushWord(func() uint32 { return uint32(mc.IR) })
	mc.enqueuePushLong(func() uint32 { return f.address })
	mc.enqueuePushWord(func() uint32 { return info })
	mc.enqueueVectorFetch(func() uint32 { return vector })
	mc.instant(func() error {
		mc.servicingFault = false
		return nil
	})
}

// enqueuePrivilegeViolation is the shared path for privileged instructions
// attempted in user mode.
func (mc *CPU) enqueuePrivilegeViolation() {
	mc.enqueueException(VectorPrivilege, mc.ctx.pc0)
}

// vectorForClass returns the exception vector for the non-executable decode
// classes.
func vectorForClass(class instructions.Class) uint32 {
	switch class {
	case instructions.LineA:
		return VectorLineA
	case instructions.LineF:
		return VectorLineF
	}
	return VectorIllegal
}
