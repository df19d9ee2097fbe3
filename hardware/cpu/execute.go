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
	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/hardware/cpu/alu"
	"github.com/quillon/gopher68k/hardware/cpu/instructions"
)

// buildInstruction translates the decoded instruction into its micro
// operation program. it runs as the first instant step of every
// instruction, immediately after the opening prefetch, so IRC holds the
// first extension word.
func (mc *CPU) buildInstruction() error {
	def := mc.ctx.def

	switch def.Class {
	case instructions.Undefined, instructions.LineA, instructions.LineF:
		mc.enqueueException(vectorForClass(def.Class), mc.ctx.pc0)
		return nil
	}

	switch def.Operation {
	case instructions.Nop:
		// the opening prefetch is the whole instruction

	case instructions.Moveq:
		v := uint32(int32(int8(def.Data)))
		mc.D[def.Register].Load(v)
		mc.setLogicFlags(v, instructions.Long)

	case instructions.Move:
		mc.buildMove(def)

	case instructions.Clr, instructions.Not, instructions.Neg, instructions.Tst:
		mc.buildSingleEA(def)

	case instructions.Swap:
		v := mc.D[def.Register].Value()
		v = v<<16 | v>>16
		mc.D[def.Register].Load(v)
		mc.setLogicFlags(v, instructions.Long)

	case instructions.Exg:
		mc.internal(2)
		mc.instant(func() error {
			switch def.Data {
			case 0:
				x, y := mc.D[def.Register].Value(), mc.D[def.DestRegister].Value()
				mc.D[def.Register].Load(y)
				mc.D[def.DestRegister].Load(x)
			case 1:
				x, y := mc.A[def.Register].Value(), mc.A[def.DestRegister].Value()
				mc.A[def.Register].Load(y)
				mc.A[def.DestRegister].Load(x)
			default:
				x, y := mc.D[def.Register].Value(), mc.A[def.DestRegister].Value()
				mc.D[def.Register].Load(y)
				mc.A[def.DestRegister].Load(x)
			}
			return nil
		})

	case instructions.Lea:
		mc.enqueueEACalc(def.Mode, def.Register, def.Size, false)
		if def.Mode == instructions.Index || def.Mode == instructions.PCIndex {
			mc.internal(2)
		}
		mc.instant(func() error {
			mc.A[def.DestRegister].Load(mc.ctx.address)
			return nil
		})

	case instructions.ArithmeticShift, instructions.LogicalShift,
		instructions.RotateExtend, instructions.Rotate:
		mc.buildShift(def)

	case instructions.Add, instructions.Sub, instructions.Cmp,
		instructions.And, instructions.Or:
		mc.buildDyadic(def)

	case instructions.Eor:
		mc.buildEor(def)

	case instructions.Addi, instructions.Subi, instructions.Cmpi,
		instructions.Andi, instructions.Ori, instructions.Eori:
		mc.buildImmediate(def)

	case instructions.OriToCCR, instructions.AndiToCCR, instructions.EoriToCCR:
		v := uint8(mc.IRC)
		mc.enqueue(mc.refillOp())
		mc.internal(8)
		mc.instant(func() error {
			ccr := mc.SR.CCR()
			switch def.Operation {
			case instructions.OriToCCR:
				ccr |= v
			case instructions.AndiToCCR:
				ccr &= v
			default:
				ccr ^= v
			}
			mc.SR.LoadCCR(ccr)
			return nil
		})

	case instructions.OriToSR, instructions.AndiToSR, instructions.EoriToSR:
		if !mc.SR.Supervisor {
			mc.enqueuePrivilegeViolation()
			return nil
		}
		v := mc.IRC
		mc.enqueue(mc.refillOp())
		mc.internal(8)
		mc.instant(func() error {
			sr := mc.SR.Value()
			switch def.Operation {
			case instructions.OriToSR:
				sr |= v
			case instructions.AndiToSR:
				sr &= v
			default:
				sr ^= v
			}
			mc.loadSR(sr)
			return nil
		})

	case instructions.MoveToCCR:
		mc.enqueueFetchOperand(def.Mode, def.Register, instructions.Word)
		mc.internal(8)
		mc.instant(func() error {
			mc.SR.LoadCCR(uint8(mc.ctx.operand))
			return nil
		})

	case instructions.MoveToSR:
		if !mc.SR.Supervisor {
			mc.enqueuePrivilegeViolation()
			return nil
		}
		mc.enqueueFetchOperand(def.Mode, def.Register, instructions.Word)
		mc.internal(8)
		mc.instant(func() error {
			mc.loadSR(uint16(mc.ctx.operand))
			return nil
		})

	case instructions.MoveFromSR:
		if def.Mode == instructions.DataRegister {
			mc.internal(2)
			mc.instant(func() error {
				mc.D[def.Register].LoadSized(instructions.Word, uint32(mc.SR.Value()))
				return nil
			})
		} else {
			// the mc68000 reads the destination before writing it
			mc.enqueueEACalc(def.Mode, def.Register, instructions.Word, true)
			mc.enqueueReadOperand(instructions.Word, func(uint32) {})
			mc.enqueueWriteEA(instructions.Word, func() uint32 { return uint32(mc.SR.Value()) })
		}

	case instructions.MoveUSP:
		if !mc.SR.Supervisor {
			mc.enqueuePrivilegeViolation()
			return nil
		}
		if def.Data == 0 {
			mc.USP.Load(mc.A[def.Register].Value())
		} else {
			mc.A[def.Register].Load(mc.USP.Value())
		}

	case instructions.Branch:
		mc.buildBranch(def)

	case instructions.Jmp:
		mc.enqueueControlTarget(def.Mode, def.Register)
		mc.instant(func() error {
			mc.PC.Load(mc.ctx.address)
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.Jsr:
		ret := mc.ctx.pc0 + 2 + uint32(extensionWords(def.Mode))*2
		mc.enqueueControlTarget(def.Mode, def.Register)
		mc.enqueuePushLong(func() uint32 { return ret })
		mc.instant(func() error {
			mc.PC.Load(mc.ctx.address)
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.Rts:
		mc.enqueuePopLong(func(v uint32) { mc.PC.Load(v) })
		mc.enqueue(mc.refillOp())

	case instructions.Rte:
		if !mc.SR.Supervisor {
			mc.enqueuePrivilegeViolation()
			return nil
		}
		mc.enqueuePopWord(func(v uint32) { mc.ctx.operand = v })
		mc.enqueuePopLong(func(v uint32) { mc.ctx.address = v })
		mc.instant(func() error {
			mc.loadSR(uint16(mc.ctx.operand))
			mc.PC.Load(mc.ctx.address)
			return nil
		})
		mc.enqueue(mc.refillOp())

	case instructions.Stop:
		if !mc.SR.Supervisor {
			mc.enqueuePrivilegeViolation()
			return nil
		}
		v := mc.IRC
		mc.enqueue(mc.refillOp())
		mc.instant(func() error {
			mc.loadSR(v)
			mc.Stopped = true
			return nil
		})

	case instructions.Reset:
		if !mc.SR.Supervisor {
			mc.enqueuePrivilegeViolation()
			return nil
		}
		mc.enqueue(microOp{cycles: 128, effect: func() error {
			mc.mem.Reset()
			return nil
		}})

	case instructions.Trap:
		mc.enqueueException(VectorTrap+uint32(def.Data), mc.ctx.pc0+2)

	case instructions.Trapv:
		if mc.SR.Overflow {
			mc.enqueueException(VectorTrapv, mc.ctx.pc0+2)
		}

	case instructions.Illegal:
		mc.enqueueException(VectorIllegal, mc.ctx.pc0)

	default:
		return curated.Errorf("cpu: no builder for %s", def.String())
	}

	return nil
}

// buildMove handles MOVE and MOVEA in all their addressing mode
// combinations.
func (mc *CPU) buildMove(def instructions.Definition) {
	mc.enqueueFetchOperand(def.Mode, def.Register, def.Size)

	switch def.DestMode {
	case instructions.DataRegister:
		mc.instant(func() error {
			mc.D[def.DestRegister].LoadSized(def.Size, mc.ctx.operand)
			mc.setLogicFlags(mc.ctx.operand, def.Size)
			return nil
		})
	case instructions.AddressRegister:
		// MOVEA. the operand is sign extended to the full register width
		// and the condition codes are untouched
		mc.instant(func() error {
			mc.A[def.DestRegister].Load(def.Size.SignExtend(mc.ctx.operand))
			return nil
		})
	default:
		// a predecrement destination does not pay the predecrement penalty
		// in a MOVE
		mc.enqueueEACalc(def.DestMode, def.DestRegister, def.Size, false)
		mc.instant(func() error {
			mc.setLogicFlags(mc.ctx.operand, def.Size)
			return nil
		})
		mc.enqueueWriteEA(def.Size, func() uint32 { return mc.ctx.operand })
	}
}

// buildSingleEA handles CLR, NOT, NEG and TST: the single operand
// instructions that share a read-modify-write shape.
func (mc *CPU) buildSingleEA(def instructions.Definition) {
	apply := func(old uint32) (uint32, bool) {
		switch def.Operation {
		case instructions.Clr:
			mc.setLogicFlags(0, def.Size)
			return 0, true
		case instructions.Not:
			v := ^old & def.Size.Mask()
			mc.setLogicFlags(v, def.Size)
			return v, true
		case instructions.Neg:
			v, borrow, overflow := alu.Sub(0, old, def.Size)
			n, z := alu.NegativeZero(v, def.Size)
			mc.SR.Negative = n
			mc.SR.Zero = z
			mc.SR.Carry = borrow
			mc.SR.Extend = borrow
			mc.SR.Overflow = overflow
			return v, true
		}
		// TST reads but never writes
		mc.setLogicFlags(old, def.Size)
		return old, false
	}

	if def.Mode == instructions.DataRegister {
		if def.Size == instructions.Long && def.Operation != instructions.Tst {
			mc.internal(2)
		}
		mc.instant(func() error {
			v, write := apply(mc.D[def.Register].ValueSized(def.Size))
			if write {
				mc.D[def.Register].LoadSized(def.Size, v)
			}
			return nil
		})
		return
	}

	mc.enqueueEACalc(def.Mode, def.Register, def.Size, true)
	mc.enqueueReadOperand(def.Size, func(v uint32) { mc.ctx.operand = v })
	mc.instant(func() error {
		v, _ := apply(mc.ctx.operand)
		mc.ctx.operand2 = v
		return nil
	})
	if def.Operation != instructions.Tst {
		mc.enqueueWriteEA(def.Size, func() uint32 { return mc.ctx.operand2 })
	}
}

// buildShift handles the register and memory forms of the shift and rotate
// family.
func (mc *CPU) buildShift(def instructions.Definition) {
	if def.Mode == instructions.DataRegister {
		mc.instant(func() error {
			count := def.Count
			if def.CountFromRegister {
				count = int(mc.D[def.Count].Value() & 0x3f)
			}

			old := mc.D[def.Register].ValueSized(def.Size)
			res := alu.Shift(def.Operation, def.Size, old, count, def.Left, mc.SR.Extend)
			mc.D[def.Register].LoadSized(def.Size, res.Value)
			mc.applyShiftFlags(def.Operation, res, def.Size)

			// the shifter works a bit at a time
			pad := 2 + 2*count
			if def.Size == instructions.Long {
				pad += 2
			}
			mc.internal(pad)
			return nil
		})
		return
	}

	// memory form: word sized, single bit shift
	mc.enqueueEACalc(def.Mode, def.Register, instructions.Word, true)
	mc.enqueueReadOperand(instructions.Word, func(v uint32) { mc.ctx.operand = v })
	mc.instant(func() error {
		res := alu.Shift(def.Operation, instructions.Word, mc.ctx.operand, 1, def.Left, mc.SR.Extend)
		mc.ctx.operand2 = res.Value
		mc.applyShiftFlags(def.Operation, res, instructions.Word)
		return nil
	})
	mc.enqueueWriteEA(instructions.Word, func() uint32 { return mc.ctx.operand2 })
}

// buildDyadic handles the <ea>,Dn direction of ADD, SUB, CMP, AND and OR.
func (mc *CPU) buildDyadic(def instructions.Definition) {
	mc.enqueueFetchOperand(def.Mode, def.Register, def.Size)
	mc.internal(dyadicPad(def))
	mc.instant(func() error {
		dst := mc.D[def.DestRegister].ValueSized(def.Size)
		src := mc.ctx.operand

		switch def.Operation {
		case instructions.Add:
			r, c, v := alu.Add(dst, src, def.Size)
			mc.D[def.DestRegister].LoadSized(def.Size, r)
			mc.setArithFlags(r, c, v, def.Size, true)
		case instructions.Sub:
			r, c, v := alu.Sub(dst, src, def.Size)
			mc.D[def.DestRegister].LoadSized(def.Size, r)
			mc.setArithFlags(r, c, v, def.Size, true)
		case instructions.Cmp:
			r, c, v := alu.Sub(dst, src, def.Size)
			mc.setArithFlags(r, c, v, def.Size, false)
		case instructions.And:
			r := (dst & src) & def.Size.Mask()
			mc.D[def.DestRegister].LoadSized(def.Size, r)
			mc.setLogicFlags(r, def.Size)
		case instructions.Or:
			r := (dst | src) & def.Size.Mask()
			mc.D[def.DestRegister].LoadSized(def.Size, r)
			mc.setLogicFlags(r, def.Size)
		}
		return nil
	})
}

// buildEor handles EOR, which only exists in the Dn,<ea> direction.
func (mc *CPU) buildEor(def instructions.Definition) {
	if def.Mode == instructions.DataRegister {
		if def.Size == instructions.Long {
			mc.internal(4)
		}
		mc.instant(func() error {
			r := (mc.D[def.Register].ValueSized(def.Size) ^
				mc.D[def.DestRegister].ValueSized(def.Size)) & def.Size.Mask()
			mc.D[def.Register].LoadSized(def.Size, r)
			mc.setLogicFlags(r, def.Size)
			return nil
		})
		return
	}

	mc.enqueueEACalc(def.Mode, def.Register, def.Size, true)
	mc.enqueueReadOperand(def.Size, func(v uint32) { mc.ctx.operand = v })
	mc.instant(func() error {
		r := (mc.ctx.operand ^ mc.D[def.DestRegister].ValueSized(def.Size)) & def.Size.Mask()
		mc.ctx.operand2 = r
		mc.setLogicFlags(r, def.Size)
		return nil
	})
	mc.enqueueWriteEA(def.Size, func() uint32 { return mc.ctx.operand2 })
}

// buildImmediate handles ADDI, SUBI, CMPI, ANDI, ORI and EORI.
func (mc *CPU) buildImmediate(def instructions.Definition) {
	mc.enqueueImmediate(def.Size, func(v uint32) { mc.ctx.operand2 = v })

	apply := func(old uint32) (uint32, bool) {
		imm := mc.ctx.operand2
		switch def.Operation {
		case instructions.Addi:
			r, c, v := alu.Add(old, imm, def.Size)
			mc.setArithFlags(r, c, v, def.Size, true)
			return r, true
		case instructions.Subi:
			r, c, v := alu.Sub(old, imm, def.Size)
			mc.setArithFlags(r, c, v, def.Size, true)
			return r, true
		case instructions.Cmpi:
			r, c, v := alu.Sub(old, imm, def.Size)
			mc.setArithFlags(r, c, v, def.Size, false)
			return old, false
		case instructions.Andi:
			r := (old & imm) & def.Size.Mask()
			mc.setLogicFlags(r, def.Size)
			return r, true
		case instructions.Ori:
			r := (old | imm) & def.Size.Mask()
			mc.setLogicFlags(r, def.Size)
			return r, true
		}
		// EORI
		r := (old ^ imm) & def.Size.Mask()
		mc.setLogicFlags(r, def.Size)
		return r, true
	}

	if def.Mode == instructions.DataRegister {
		if def.Size == instructions.Long {
			if def.Operation == instructions.Cmpi {
				mc.internal(2)
			} else {
				mc.internal(4)
			}
		}
		mc.instant(func() error {
			v, write := apply(mc.D[def.Register].ValueSized(def.Size))
			if write {
				mc.D[def.Register].LoadSized(def.Size, v)
			}
			return nil
		})
		return
	}

	mc.enqueueEACalc(def.Mode, def.Register, def.Size, true)
	mc.enqueueReadOperand(def.Size, func(v uint32) { mc.ctx.operand = v })
	mc.instant(func() error {
		v, _ := apply(mc.ctx.operand)
		mc.ctx.operand = v
		return nil
	})
	if def.Operation != instructions.Cmpi {
		mc.enqueueWriteEA(def.Size, func() uint32 { return mc.ctx.operand })
	}
}

// buildBranch handles BRA, BSR and the conditional branches.
func (mc *CPU) buildBranch(def instructions.Definition) {
	// displacement: inline byte or the extension word sitting in IRC
	var disp int32
	if def.Size == instructions.Word {
		disp = int32(int16(mc.IRC))
	} else {
		disp = int32(def.Data)
	}
	target := mc.ctx.pc0 + 2 + uint32(disp)

	if def.Condition == 1 { // BSR
		ret := mc.ctx.pc0 + 2
		if def.Size == instructions.Word {
			ret += 2
		}
		mc.internal(2)
		mc.enqueuePushLong(func() uint32 { return ret })
		mc.instant(func() error {
			mc.PC.Load(target)
			return nil
		})
		mc.enqueue(mc.refillOp())
		return
	}

	if mc.conditionTrue(def.Condition) {
		mc.internal(2)
		mc.instant(func() error {
			mc.PC.Load(target)
			return nil
		})
		mc.enqueue(mc.refillOp())
		return
	}

	// not taken. a word displacement still has to be stepped over
	mc.internal(4)
	if def.Size == instructions.Word {
		mc.enqueue(mc.refillOp())
	}
}

// flag helpers

// setLogicFlags sets N and Z from a result and clears V and C. X is
// untouched: the move and logic group rule.
func (mc *CPU) setLogicFlags(v uint32, size instructions.Size) {
	n, z := alu.NegativeZero(v, size)
	mc.SR.Negative = n
	mc.SR.Zero = z
	mc.SR.Overflow = false
	mc.SR.Carry = false
}

// setArithFlags sets all five condition codes from an add/sub result.
// withExtend distinguishes ADD/SUB (X follows C) from CMP (X untouched).
func (mc *CPU) setArithFlags(r uint32, carry bool, overflow bool, size instructions.Size, withExtend bool) {
	n, z := alu.NegativeZero(r, size)
	mc.SR.Negative = n
	mc.SR.Zero = z
	mc.SR.Carry = carry
	mc.SR.Overflow = overflow
	if withExtend {
		mc.SR.Extend = carry
	}
}

func (mc *CPU) applyShiftFlags(op instructions.Operation, res alu.ShiftResult, size instructions.Size) {
	n, z := alu.NegativeZero(res.Value, size)
	mc.SR.Negative = n
	mc.SR.Zero = z
	mc.SR.Carry = res.Carry
	mc.SR.Overflow = res.Overflow
	if op != instructions.Rotate {
		mc.SR.Extend = res.Extend
	}
}

func dyadicPad(def instructions.Definition) int {
	if def.Size != instructions.Long {
		return 0
	}
	if def.Operation == instructions.Cmp {
		return 2
	}
	switch def.Mode {
	case instructions.DataRegister, instructions.AddressRegister, instructions.Immediate:
		return 4
	}
	return 2
}
