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
)

// effective address machinery. addresses land in ctx.address. extension
// words are consumed from IRC by instant steps and every consumed word
// schedules another prefetch, keeping the pipeline one word ahead.

// enqueueEACalc schedules the computation of a memory operand's effective
// address. penalty controls the two cycle internal charge of the
// predecrement mode, which MOVE destinations do not pay.
func (mc *CPU) enqueueEACalc(mode instructions.AddressingMode, reg int, size instructions.Size, penalty bool) {
	switch mode {
	case instructions.Indirect:
		mc.instant(func() error {
			mc.ctx.address = mc.A[reg].Value()
			return nil
		})

	case instructions.PostIncrement:
		mc.instant(func() error {
			mc.ctx.address = mc.A[reg].Value()
			mc.A[reg].Load(mc.ctx.address + addressStep(reg, size))
			return nil
		})

	case instructions.PreDecrement:
		if penalty {
			mc.internal(2)
		}
		mc.instant(func() error {
			a := mc.A[reg].Value() - addressStep(reg, size)
			mc.A[reg].Load(a)
			mc.ctx.address = a
			return nil
		})

	case instructions.Displacement:
		mc.instant(func() error {
			mc.ctx.address = mc.A[reg].Value() + uint32(int32(int16(mc.IRC)))
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.Index:
		mc.internal(2)
		mc.instant(func() error {
			mc.ctx.address = mc.indexAddress(mc.A[reg].Value())
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.AbsoluteShort:
		mc.instant(func() error {
			mc.ctx.address = uint32(int32(int16(mc.IRC)))
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.AbsoluteLong:
		mc.instant(func() error {
			mc.ctx.ext = mc.IRC
			return nil
		})
		mc.enqueue(mc.refillOp())
		mc.instant(func() error {
			mc.ctx.address = uint32(mc.ctx.ext)<<16 | uint32(mc.IRC)
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.PCDisplacement:
		mc.instant(func() error {
			mc.ctx.address = mc.ircAddress + uint32(int32(int16(mc.IRC)))
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.PCIndex:
		mc.internal(2)
		mc.instant(func() error {
			mc.ctx.address = mc.indexAddress(mc.ircAddress)
			return nil
		})
		mc.enqueue(mc.refillOp())
	}
}

// indexAddress applies the brief index extension word sitting in IRC to a
// base address.
func (mc *CPU) indexAddress(base uint32) uint32 {
	ext := mc.IRC

	var idx uint32
	idxReg := int(ext>>12) & 0x7
	if ext&0x8000 != 0 {
		idx = mc.A[idxReg].Value()
	} else {
		idx = mc.D[idxReg].Value()
	}
	if ext&0x0800 == 0 {
		idx = uint32(int32(int16(idx)))
	}

	return base + uint32(int32(int8(ext))) + idx
}

// addressStep is the amount a postincrement or predecrement mode moves the
// address register by. byte accesses through the stack pointer move by two
// to keep it word aligned.
func addressStep(reg int, size instructions.Size) uint32 {
	if size == instructions.Byte && reg == 7 {
		return 2
	}
	return size.Bytes()
}

// enqueueFetchOperand schedules the fetch of the operand described by mode
// and reg into ctx.operand, whatever kind of operand it is: register
// contents, immediate value or memory.
func (mc *CPU) enqueueFetchOperand(mode instructions.AddressingMode, reg int, size instructions.Size) {
	switch mode {
	case instructions.DataRegister:
		mc.instant(func() error {
			mc.ctx.operand = mc.D[reg].ValueSized(size)
			return nil
		})
	case instructions.AddressRegister:
		mc.instant(func() error {
			mc.ctx.operand = mc.A[reg].ValueSized(size)
			return nil
		})
	case instructions.Immediate:
		mc.enqueueImmediate(size, func(v uint32) { mc.ctx.operand = v })
	default:
		mc.enqueueEACalc(mode, reg, size, true)
		mc.enqueueReadOperand(size, func(v uint32) { mc.ctx.operand = v })
	}
}

// enqueueImmediate schedules the consumption of an immediate value from the
// instruction stream: one extension word for byte and word sizes, two for
// long.
func (mc *CPU) enqueueImmediate(size instructions.Size, store func(uint32)) {
	if size == instructions.Long {
		mc.instant(func() error {
			mc.ctx.ext = mc.IRC
			return nil
		})
		mc.enqueue(mc.refillOp())
		mc.instant(func() error {
			store(uint32(mc.ctx.ext)<<16 | uint32(mc.IRC))
			return nil
		})
		mc.enqueue(mc.refillOp())
		return
	}
	mc.instant(func() error {
		store(uint32(mc.IRC) & size.Mask())
		return nil
	})
	mc.enqueue(mc.refillOp())
}

// enqueueReadOperand schedules the data read of an operand from the address
// in ctx.address.
func (mc *CPU) enqueueReadOperand(size instructions.Size, store func(uint32)) {
	switch size {
	case instructions.Byte:
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			v, err := mc.busReadByte(mc.ctx.address, mc.fcData())
			if err != nil {
				return err
			}
			store(uint32(v))
			return nil
		}})
	case instructions.Word:
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			v, err := mc.busReadWord(mc.ctx.address, mc.fcData())
			if err != nil {
				return err
			}
			store(uint32(v))
			return nil
		}})
	case instructions.Long:
		var hi uint32
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			v, err := mc.busReadWord(mc.ctx.address, mc.fcData())
			if err != nil {
				return err
			}
			hi = uint32(v) << 16
			return nil
		}})
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			v, err := mc.busReadWord(mc.ctx.address+2, mc.fcData())
			if err != nil {
				return err
			}
			store(hi | uint32(v))
			return nil
		}})
	}
}

// enqueueWriteEA schedules the data write of a value to the address in
// ctx.address.
func (mc *CPU) enqueueWriteEA(size instructions.Size, value func() uint32) {
	switch size {
	case instructions.Byte:
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			return mc.busWriteByte(mc.ctx.address, uint8(value()), mc.fcData())
		}})
	case instructions.Word:
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			return mc.busWriteWord(mc.ctx.address, uint16(value()), mc.fcData())
		}})
	case instructions.Long:
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			return mc.busWriteWord(mc.ctx.address, uint16(value()>>16), mc.fcData())
		}})
		mc.enqueue(microOp{cycles: 4, effect: func() error {
			return mc.busWriteWord(mc.ctx.address+2, uint16(value()), mc.fcData())
		}})
	}
}

// enqueueControlTarget schedules the computation of a jump target from a
// control addressing mode, with the internal timing JMP and JSR charge for
// each mode. nothing is read from the target address.
func (mc *CPU) enqueueControlTarget(mode instructions.AddressingMode, reg int) {
	switch mode {
	case instructions.Indirect:
		mc.instant(func() error {
			mc.ctx.address = mc.A[reg].Value()
			return nil
		})

	case instructions.Displacement:
		mc.internal(2)
		mc.instant(func() error {
			mc.ctx.address = mc.A[reg].Value() + uint32(int32(int16(mc.IRC)))
			return nil
		})

	case instructions.Index:
		mc.internal(6)
		mc.instant(func() error {
			mc.ctx.address = mc.indexAddress(mc.A[reg].Value())
			return nil
		})

	case instructions.AbsoluteShort:
		mc.internal(2)
		mc.instant(func() error {
			mc.ctx.address = uint32(int32(int16(mc.IRC)))
			return nil
		})

	case instructions.AbsoluteLong:
		mc.instant(func() error {
			mc.ctx.ext = mc.IRC
			return nil
		})
		mc.enqueue(mc.refillOp())
		mc.instant(func() error {
			mc.ctx.address = uint32(mc.ctx.ext)<<16 | uint32(mc.IRC)
			return nil
		})

	case instructions.PCDisplacement:
		mc.internal(2)
		mc.instant(func() error {
			mc.ctx.address = mc.ircAddress + uint32(int32(int16(mc.IRC)))
			return nil
		})

	case instructions.PCIndex:
		mc.internal(6)
		mc.instant(func() error {
			mc.ctx.address = mc.indexAddress(mc.ircAddress)
			return nil
		})
	}
}

// extensionWords is the number of instruction stream words a control
// addressing mode consumes.
func extensionWords(mode instructions.AddressingMode) int {
	switch mode {
	case instructions.Indirect:
		return 0
	case instructions.AbsoluteLong:
		return 2
	}
	return 1
}
