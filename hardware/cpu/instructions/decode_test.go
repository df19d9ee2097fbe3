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

package instructions_test

import (
	"testing"

	"github.com/quillon/gopher68k/hardware/cpu/instructions"
	"github.com/quillon/gopher68k/test"
)

func TestDecodeShiftRegister(t *testing.T) {
	// LSL.W #3,D2 -> 1110 011 1 01 0 01 010
	def := instructions.Decode(0xe74a)
	test.Equate(t, def.Class, instructions.Decoded)
	test.Equate(t, def.Operation, instructions.LogicalShift)
	test.Equate(t, def.Size, instructions.Word)
	test.Equate(t, def.Left, true)
	test.Equate(t, def.CountFromRegister, false)
	test.Equate(t, def.Count, 3)
	test.Equate(t, def.Register, 2)

	// ASR.L D1,D0 -> 1110 001 0 10 1 00 000
	def = instructions.Decode(0xe2a0)
	test.Equate(t, def.Operation, instructions.ArithmeticShift)
	test.Equate(t, def.Size, instructions.Long)
	test.Equate(t, def.Left, false)
	test.Equate(t, def.CountFromRegister, true)
	test.Equate(t, def.Count, 1)
	test.Equate(t, def.Register, 0)

	// an immediate count field of zero means eight. ROXL.B #8,D7
	def = instructions.Decode(0xe117)
	test.Equate(t, def.Operation, instructions.RotateExtend)
	test.Equate(t, def.Size, instructions.Byte)
	test.Equate(t, def.Count, 8)
	test.Equate(t, def.Register, 7)
}

func TestDecodeShiftMemory(t *testing.T) {
	// ROR.W (A3) -> 1110 011 0 11 010 011
	def := instructions.Decode(0xe6d3)
	test.Equate(t, def.Class, instructions.Decoded)
	test.Equate(t, def.Operation, instructions.Rotate)
	test.Equate(t, def.Size, instructions.Word)
	test.Equate(t, def.Left, false)
	test.Equate(t, def.Count, 1)
	test.Equate(t, def.Mode, instructions.Indirect)
	test.Equate(t, def.Register, 3)

	// memory shifts cannot target a data register
	def = instructions.Decode(0xe6c3)
	test.Equate(t, def.Class, instructions.Undefined)

	// the bit field region above the rotates is 68020 territory
	def = instructions.Decode(0xe8d3)
	test.Equate(t, def.Class, instructions.Undefined)
}

func TestDecodeMove(t *testing.T) {
	// MOVE.B D0,D1 -> 0001 001 000 000 000
	def := instructions.Decode(0x1200)
	test.Equate(t, def.Operation, instructions.Move)
	test.Equate(t, def.Size, instructions.Byte)
	test.Equate(t, def.Mode, instructions.DataRegister)
	test.Equate(t, def.DestMode, instructions.DataRegister)
	test.Equate(t, def.DestRegister, 1)

	// MOVE.L (A0)+,$1234.w -> 0010 000 111 011 000 with dest mode 111/000
	def = instructions.Decode(0x21d8)
	test.Equate(t, def.Operation, instructions.Move)
	test.Equate(t, def.Size, instructions.Long)
	test.Equate(t, def.Mode, instructions.PostIncrement)
	test.Equate(t, def.DestMode, instructions.AbsoluteShort)

	// byte sized address register source is not a thing
	def = instructions.Decode(0x1208)
	test.Equate(t, def.Class, instructions.Undefined)

	// neither is a PC relative destination
	def = instructions.Decode(0x3ec0) // dest mode 111 reg 7
	test.Equate(t, def.Class, instructions.Undefined)

	// MOVEA.W A0,A1 is fine
	def = instructions.Decode(0x3248)
	test.Equate(t, def.Class, instructions.Decoded)
	test.Equate(t, def.DestMode, instructions.AddressRegister)
}

func TestDecodeMiscellaneous(t *testing.T) {
	def := instructions.Decode(0x4e71)
	test.Equate(t, def.Operation, instructions.Nop)

	def = instructions.Decode(0x4e75)
	test.Equate(t, def.Operation, instructions.Rts)

	def = instructions.Decode(0x4afc)
	test.Equate(t, def.Operation, instructions.Illegal)
	test.Equate(t, def.Class, instructions.Decoded)

	// TRAP #5
	def = instructions.Decode(0x4e45)
	test.Equate(t, def.Operation, instructions.Trap)
	test.Equate(t, def.Data, 5)

	// MOVE USP,A2
	def = instructions.Decode(0x4e6a)
	test.Equate(t, def.Operation, instructions.MoveUSP)
	test.Equate(t, def.Register, 2)
	test.Equate(t, def.Data, 1)

	// CLR.W (A4)
	def = instructions.Decode(0x4254)
	test.Equate(t, def.Operation, instructions.Clr)
	test.Equate(t, def.Size, instructions.Word)
	test.Equate(t, def.Mode, instructions.Indirect)

	// CLR of an address register is not valid
	def = instructions.Decode(0x424c)
	test.Equate(t, def.Class, instructions.Undefined)

	// JMP with a non-control addressing mode is not valid
	def = instructions.Decode(0x4ed8) // JMP (A0)+
	test.Equate(t, def.Class, instructions.Undefined)

	// JSR $1234.w
	def = instructions.Decode(0x4eb8)
	test.Equate(t, def.Operation, instructions.Jsr)
	test.Equate(t, def.Mode, instructions.AbsoluteShort)

	// LEA (A1),A3
	def = instructions.Decode(0x47d1)
	test.Equate(t, def.Operation, instructions.Lea)
	test.Equate(t, def.Register, 1)
	test.Equate(t, def.DestRegister, 3)

	// RTD is 68010
	def = instructions.Decode(0x4e74)
	test.Equate(t, def.Class, instructions.Undefined)
}

func TestDecodeImmediates(t *testing.T) {
	// ANDI.B #imm,D3
	def := instructions.Decode(0x0203)
	test.Equate(t, def.Operation, instructions.Andi)
	test.Equate(t, def.Size, instructions.Byte)
	test.Equate(t, def.Mode, instructions.DataRegister)

	// ORI #imm,CCR
	def = instructions.Decode(0x003c)
	test.Equate(t, def.Operation, instructions.OriToCCR)

	// EORI #imm,SR
	def = instructions.Decode(0x0a7c)
	test.Equate(t, def.Operation, instructions.EoriToSR)

	// CMPI has no CCR/SR form
	def = instructions.Decode(0x0c3c)
	test.Equate(t, def.Class, instructions.Undefined)

	// the bit operations are real instructions we don't emulate
	def = instructions.Decode(0x0800) // BTST #imm,D0
	test.Equate(t, def.Class, instructions.Unimplemented)
	def = instructions.Decode(0x0101) // BTST D0,D1
	test.Equate(t, def.Class, instructions.Unimplemented)
}

func TestDecodeBranch(t *testing.T) {
	// BRA.s with an inline displacement
	def := instructions.Decode(0x6008)
	test.Equate(t, def.Operation, instructions.Branch)
	test.Equate(t, def.Condition, 0)
	test.Equate(t, def.Size, instructions.Byte)
	test.Equate(t, def.Data, 8)

	// negative displacements sign extend
	def = instructions.Decode(0x66fe) // BNE.s *-0
	test.Equate(t, def.Condition, 6)
	test.Equate(t, def.Data, -2)

	// a zero inline displacement means a word displacement follows
	def = instructions.Decode(0x6700) // BEQ.w
	test.Equate(t, def.Condition, 7)
	test.Equate(t, def.Size, instructions.Word)
}

func TestDecodeStandardDyadic(t *testing.T) {
	// ADD.W (A0),D1
	def := instructions.Decode(0xd250)
	test.Equate(t, def.Operation, instructions.Add)
	test.Equate(t, def.Size, instructions.Word)
	test.Equate(t, def.Mode, instructions.Indirect)
	test.Equate(t, def.DestRegister, 1)

	// ADD.B A0,D1 is invalid; ADD.W A0,D1 is fine
	test.Equate(t, instructions.Decode(0xd208).Class, instructions.Undefined)
	test.Equate(t, instructions.Decode(0xd248).Class, instructions.Decoded)

	// OR never takes an address register source
	test.Equate(t, instructions.Decode(0x8248).Class, instructions.Undefined)

	// ADDA, MULU and friends decode as real but unimplemented
	test.Equate(t, instructions.Decode(0xd0c0).Class, instructions.Unimplemented)
	test.Equate(t, instructions.Decode(0xc0c0).Class, instructions.Unimplemented)

	// EOR.L D2,D3
	def = instructions.Decode(0xb583)
	test.Equate(t, def.Operation, instructions.Eor)
	test.Equate(t, def.Size, instructions.Long)
	test.Equate(t, def.Register, 3)
	test.Equate(t, def.DestRegister, 2)

	// CMPM shares the EOR opmodes
	test.Equate(t, instructions.Decode(0xb388).Class, instructions.Unimplemented)

	// EXG D0,A1
	def = instructions.Decode(0xc189)
	test.Equate(t, def.Operation, instructions.Exg)
	test.Equate(t, def.Data, 2)
}

func TestDecodeTrapRegions(t *testing.T) {
	test.Equate(t, instructions.Decode(0xa000).Class, instructions.LineA)
	test.Equate(t, instructions.Decode(0xabcd).Class, instructions.LineA)
	test.Equate(t, instructions.Decode(0xf000).Class, instructions.LineF)
	test.Equate(t, instructions.Decode(0xffff).Class, instructions.LineF)
}

// every opcode must decode to something without panicking and the
// classification must be self consistent.
func TestDecodeTotality(t *testing.T) {
	for op := 0; op <= 0xffff; op++ {
		def := instructions.Decode(uint16(op))

		switch def.Class {
		case instructions.LineA:
			if op>>12 != 0xa {
				t.Fatalf("opcode %04x classified as line-a", op)
			}
		case instructions.LineF:
			if op>>12 != 0xf {
				t.Fatalf("opcode %04x classified as line-f", op)
			}
		}
		if op>>12 == 0xa && def.Class != instructions.LineA {
			t.Fatalf("opcode %04x not classified as line-a", op)
		}
		if op>>12 == 0xf && def.Class != instructions.LineF {
			t.Fatalf("opcode %04x not classified as line-f", op)
		}

		if def.String() == "" {
			t.Fatalf("opcode %04x has no string representation", op)
		}
	}
}
