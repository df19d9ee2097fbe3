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

package instructions

// helper constructors. every path through Decode() ends in one of these or
// in an explicit Decoded definition.

func undefined(opcode uint16) Definition {
	return Definition{Opcode: opcode, Class: Undefined}
}

func unimplemented(opcode uint16) Definition {
	return Definition{Opcode: opcode, Class: Unimplemented}
}

// Decode converts any 16 bit value into a Definition. It never fails; bit
// patterns with no meaning on the MC68000 return a Definition with the
// Undefined class (or LineA/LineF for the emulator trap regions).
func Decode(opcode uint16) Definition {
	switch opcode >> 12 {
	case 0x0:
		return decodeImmediates(opcode)
	case 0x1:
		return decodeMove(opcode, Byte)
	case 0x2:
		return decodeMove(opcode, Long)
	case 0x3:
		return decodeMove(opcode, Word)
	case 0x4:
		return decodeMiscellaneous(opcode)
	case 0x5:
		// ADDQ/SUBQ/Scc/DBcc. all valid encodings in this region are real
		// MC68000 instructions
		return unimplemented(opcode)
	case 0x6:
		return decodeBranch(opcode)
	case 0x7:
		if opcode&0x0100 != 0 {
			return undefined(opcode)
		}
		return Definition{
			Opcode:    opcode,
			Operation: Moveq,
			Size:      Long,
			Register:  int(opcode>>9) & 0x7,
			Data:      int(int8(opcode)),
		}
	case 0x8:
		return decodeStandard(opcode, Or, false)
	case 0x9:
		return decodeStandard(opcode, Sub, true)
	case 0xa:
		return Definition{Opcode: opcode, Class: LineA}
	case 0xb:
		return decodeCmpEor(opcode)
	case 0xc:
		return decodeAndExg(opcode)
	case 0xd:
		return decodeStandard(opcode, Add, true)
	case 0xe:
		return decodeShift(opcode)
	case 0xf:
		return Definition{Opcode: opcode, Class: LineF}
	}

	// unreachable. the switch above is exhaustive over the top nibble
	return undefined(opcode)
}

// decodeImmediates handles the 0000 region: the immediate instructions, the
// CCR/SR forms thereof, and the bit operations.
func decodeImmediates(opcode uint16) Definition {
	if opcode&0x0100 != 0 {
		// dynamic bit operations (BTST/BCHG/BCLR/BSET Dn,<ea>) and MOVEP.
		// all valid MC68000 instructions
		return unimplemented(opcode)
	}

	mode, reg := (opcode>>3)&0x7, opcode&0x7
	szBits := (opcode >> 6) & 0x3

	var op Operation
	var ccr, sr Operation
	hasStatusForm := false

	switch (opcode >> 9) & 0x7 {
	case 0:
		op, ccr, sr = Ori, OriToCCR, OriToSR
		hasStatusForm = true
	case 1:
		op, ccr, sr = Andi, AndiToCCR, AndiToSR
		hasStatusForm = true
	case 2:
		op = Subi
	case 3:
		op = Addi
	case 4:
		// static bit operations (BTST/BCHG/BCLR/BSET #imm,<ea>)
		return unimplemented(opcode)
	case 5:
		op, ccr, sr = Eori, EoriToCCR, EoriToSR
		hasStatusForm = true
	case 6:
		op = Cmpi
	case 7:
		// MOVES is 68010 and later
		return undefined(opcode)
	}

	if szBits == 3 {
		return undefined(opcode)
	}
	sz := Size(szBits)

	// the immediate-to-status forms borrow the immediate addressing mode
	// encoding as their effective address
	if mode == 7 && reg == 4 {
		if !hasStatusForm {
			return undefined(opcode)
		}
		switch sz {
		case Byte:
			return Definition{Opcode: opcode, Operation: ccr, Size: Byte}
		case Word:
			return Definition{Opcode: opcode, Operation: sr, Size: Word}
		}
		return undefined(opcode)
	}

	am, ok := decodeMode(mode, reg)
	if !ok || !am.IsDataAlterable() {
		return undefined(opcode)
	}

	return Definition{
		Opcode:    opcode,
		Operation: op,
		Size:      sz,
		Mode:      am,
		Register:  int(reg),
	}
}

// decodeMove handles the three MOVE regions (0001, 0010, 0011).
func decodeMove(opcode uint16, sz Size) Definition {
	srcMode, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
	if !ok {
		return undefined(opcode)
	}
	if sz == Byte && srcMode == AddressRegister {
		return undefined(opcode)
	}

	destMode, ok := decodeMode((opcode>>6)&0x7, (opcode>>9)&0x7)
	if !ok {
		return undefined(opcode)
	}

	if destMode == AddressRegister {
		// MOVEA. word and long only
		if sz == Byte {
			return undefined(opcode)
		}
	} else if !destMode.IsDataAlterable() {
		return undefined(opcode)
	}

	return Definition{
		Opcode:       opcode,
		Operation:    Move,
		Size:         sz,
		Mode:         srcMode,
		Register:     int(opcode) & 0x7,
		DestMode:     destMode,
		DestRegister: int(opcode>>9) & 0x7,
	}
}

// decodeMiscellaneous handles the dense 0100 region.
func decodeMiscellaneous(opcode uint16) Definition {
	mode, reg := (opcode>>3)&0x7, opcode&0x7
	am, amOk := decodeMode(mode, reg)

	switch {
	case opcode == 0x4afc:
		return Definition{Opcode: opcode, Operation: Illegal}

	case opcode&0xffc0 == 0x40c0: // MOVE from SR
		if !amOk || !am.IsDataAlterable() {
			return undefined(opcode)
		}
		return Definition{Opcode: opcode, Operation: MoveFromSR, Size: Word, Mode: am, Register: int(reg)}

	case opcode&0xff00 == 0x4000: // NEGX
		return unimplemented(opcode)

	case opcode&0xffc0 == 0x42c0:
		// MOVE from CCR is 68010 and later
		return undefined(opcode)

	case opcode&0xff00 == 0x4200: // CLR
		return decodeSingleEA(opcode, Clr)

	case opcode&0xffc0 == 0x44c0: // MOVE to CCR
		if !amOk || am == AddressRegister {
			return undefined(opcode)
		}
		return Definition{Opcode: opcode, Operation: MoveToCCR, Size: Word, Mode: am, Register: int(reg)}

	case opcode&0xff00 == 0x4400: // NEG
		return decodeSingleEA(opcode, Neg)

	case opcode&0xffc0 == 0x46c0: // MOVE to SR
		if !amOk || am == AddressRegister {
			return undefined(opcode)
		}
		return Definition{Opcode: opcode, Operation: MoveToSR, Size: Word, Mode: am, Register: int(reg)}

	case opcode&0xff00 == 0x4600: // NOT
		return decodeSingleEA(opcode, Not)

	case opcode&0xfff8 == 0x4840: // SWAP
		return Definition{Opcode: opcode, Operation: Swap, Size: Long, Mode: DataRegister, Register: int(reg)}

	case opcode&0xffc0 == 0x4840: // PEA (SWAP carved out above)
		if !amOk || !am.IsControl() {
			return undefined(opcode)
		}
		return unimplemented(opcode)

	case opcode&0xffc0 == 0x4800: // NBCD
		return unimplemented(opcode)

	case opcode&0xffb8 == 0x4880 && mode == 0: // EXT
		return unimplemented(opcode)

	case opcode&0xff80 == 0x4880: // MOVEM registers to memory
		return unimplemented(opcode)

	case opcode&0xff80 == 0x4c80: // MOVEM memory to registers
		return unimplemented(opcode)

	case opcode&0xffc0 == 0x4ac0: // TAS (ILLEGAL carved out above)
		return unimplemented(opcode)

	case opcode&0xff00 == 0x4a00: // TST
		return decodeSingleEA(opcode, Tst)

	case opcode&0xfff0 == 0x4e40: // TRAP
		return Definition{Opcode: opcode, Operation: Trap, Data: int(opcode) & 0xf}

	case opcode&0xfff8 == 0x4e50: // LINK
		return unimplemented(opcode)

	case opcode&0xfff8 == 0x4e58: // UNLK
		return unimplemented(opcode)

	case opcode&0xfff8 == 0x4e60: // MOVE An,USP
		return Definition{Opcode: opcode, Operation: MoveUSP, Size: Long, Register: int(reg), Data: 0}

	case opcode&0xfff8 == 0x4e68: // MOVE USP,An
		return Definition{Opcode: opcode, Operation: MoveUSP, Size: Long, Register: int(reg), Data: 1}

	case opcode == 0x4e70:
		return Definition{Opcode: opcode, Operation: Reset}

	case opcode == 0x4e71:
		return Definition{Opcode: opcode, Operation: Nop}

	case opcode == 0x4e72:
		return Definition{Opcode: opcode, Operation: Stop}

	case opcode == 0x4e73:
		return Definition{Opcode: opcode, Operation: Rte}

	case opcode == 0x4e75:
		return Definition{Opcode: opcode, Operation: Rts}

	case opcode == 0x4e76:
		return Definition{Opcode: opcode, Operation: Trapv}

	case opcode == 0x4e77: // RTR
		return unimplemented(opcode)

	case opcode&0xffc0 == 0x4e80: // JSR
		if !amOk || !am.IsControl() {
			return undefined(opcode)
		}
		return Definition{Opcode: opcode, Operation: Jsr, Mode: am, Register: int(reg)}

	case opcode&0xffc0 == 0x4ec0: // JMP
		if !amOk || !am.IsControl() {
			return undefined(opcode)
		}
		return Definition{Opcode: opcode, Operation: Jmp, Mode: am, Register: int(reg)}

	case opcode&0xf1c0 == 0x41c0: // LEA
		if !amOk || !am.IsControl() {
			return undefined(opcode)
		}
		return Definition{
			Opcode:       opcode,
			Operation:    Lea,
			Size:         Long,
			Mode:         am,
			Register:     int(reg),
			DestRegister: int(opcode>>9) & 0x7,
		}

	case opcode&0xf1c0 == 0x4180: // CHK (word form)
		return unimplemented(opcode)
	}

	// everything else in the 0100 region: RTD and MOVEC (68010), the
	// unassigned gaps around the operation words
	return undefined(opcode)
}

// decodeSingleEA is the shared shape of CLR, NOT, NEG and TST.
func decodeSingleEA(opcode uint16, op Operation) Definition {
	szBits := (opcode >> 6) & 0x3
	if szBits == 3 {
		return undefined(opcode)
	}

	am, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
	if !ok || !am.IsDataAlterable() {
		return undefined(opcode)
	}

	return Definition{
		Opcode:    opcode,
		Operation: op,
		Size:      Size(szBits),
		Mode:      am,
		Register:  int(opcode) & 0x7,
	}
}

// decodeBranch handles the 0110 region: BRA, BSR and the fourteen
// conditional branches.
func decodeBranch(opcode uint16) Definition {
	def := Definition{
		Opcode:    opcode,
		Operation: Branch,
		Condition: int(opcode>>8) & 0xf,
		Data:      int(int8(opcode)),
	}

	// an inline displacement of zero means a word displacement follows the
	// opcode
	if opcode&0x00ff == 0 {
		def.Size = Word
	} else {
		def.Size = Byte
	}

	return def
}

// decodeStandard handles the <ea>,Dn direction of the standard dyadic
// instructions (OR, SUB, ADD). the Dn,<ea> direction, the address
// destination forms and the extended/BCD variants that share these regions
// are valid instructions that this emulation does not implement.
func decodeStandard(opcode uint16, op Operation, addressOk bool) Definition {
	opmode := (opcode >> 6) & 0x7

	switch opmode {
	case 3, 7:
		// ADDA/SUBA, or DIVU/DIVS in the OR region
		return unimplemented(opcode)
	case 4, 5, 6:
		// Dn,<ea> direction, ADDX/SUBX, SBCD
		return unimplemented(opcode)
	}

	sz := Size(opmode)
	am, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
	if !ok {
		return undefined(opcode)
	}
	if am == AddressRegister && (!addressOk || sz == Byte) {
		return undefined(opcode)
	}

	return Definition{
		Opcode:       opcode,
		Operation:    op,
		Size:         sz,
		Mode:         am,
		Register:     int(opcode) & 0x7,
		DestRegister: int(opcode>>9) & 0x7,
	}
}

// decodeCmpEor handles the 1011 region: CMP, CMPA, CMPM and EOR.
func decodeCmpEor(opcode uint16) Definition {
	opmode := (opcode >> 6) & 0x7

	switch opmode {
	case 3, 7:
		// CMPA
		return unimplemented(opcode)
	case 4, 5, 6:
		if (opcode>>3)&0x7 == 1 {
			// CMPM
			return unimplemented(opcode)
		}

		// EOR Dn,<ea>
		am, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
		if !ok || !am.IsDataAlterable() {
			return undefined(opcode)
		}
		return Definition{
			Opcode:       opcode,
			Operation:    Eor,
			Size:         Size(opmode - 4),
			Mode:         am,
			Register:     int(opcode) & 0x7,
			DestRegister: int(opcode>>9) & 0x7,
		}
	}

	sz := Size(opmode)
	am, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
	if !ok {
		return undefined(opcode)
	}
	if am == AddressRegister && sz == Byte {
		return undefined(opcode)
	}

	return Definition{
		Opcode:       opcode,
		Operation:    Cmp,
		Size:         sz,
		Mode:         am,
		Register:     int(opcode) & 0x7,
		DestRegister: int(opcode>>9) & 0x7,
	}
}

// decodeAndExg handles the 1100 region: AND, MULU/MULS, ABCD and EXG.
func decodeAndExg(opcode uint16) Definition {
	switch {
	case opcode&0xf1f8 == 0xc140: // EXG Dx,Dy
		return Definition{
			Opcode:       opcode,
			Operation:    Exg,
			Size:         Long,
			Register:     int(opcode>>9) & 0x7,
			DestRegister: int(opcode) & 0x7,
			Data:         0,
		}
	case opcode&0xf1f8 == 0xc148: // EXG Ax,Ay
		return Definition{
			Opcode:       opcode,
			Operation:    Exg,
			Size:         Long,
			Register:     int(opcode>>9) & 0x7,
			DestRegister: int(opcode) & 0x7,
			Data:         1,
		}
	case opcode&0xf1f8 == 0xc188: // EXG Dx,Ay
		return Definition{
			Opcode:       opcode,
			Operation:    Exg,
			Size:         Long,
			Register:     int(opcode>>9) & 0x7,
			DestRegister: int(opcode) & 0x7,
			Data:         2,
		}
	}

	opmode := (opcode >> 6) & 0x7
	switch opmode {
	case 3, 7:
		// MULU/MULS
		return unimplemented(opcode)
	case 4, 5, 6:
		// AND Dn,<ea> direction and ABCD
		return unimplemented(opcode)
	}

	am, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
	if !ok || am == AddressRegister {
		return undefined(opcode)
	}

	return Definition{
		Opcode:       opcode,
		Operation:    And,
		Size:         Size(opmode),
		Mode:         am,
		Register:     int(opcode) & 0x7,
		DestRegister: int(opcode>>9) & 0x7,
	}
}

// decodeShift handles the 1110 region: the shift and rotate family in both
// its register and single bit memory forms.
func decodeShift(opcode uint16) Definition {
	left := opcode&0x0100 != 0

	if opcode&0x00c0 == 0x00c0 {
		// memory form. word sized, shift count of one
		kind := (opcode >> 9) & 0x7
		if kind > 3 {
			// 68020 bit field region
			return undefined(opcode)
		}

		am, ok := decodeMode((opcode>>3)&0x7, opcode&0x7)
		if !ok || !am.IsMemoryAlterable() {
			return undefined(opcode)
		}

		return Definition{
			Opcode:    opcode,
			Operation: shiftOperation(kind),
			Size:      Word,
			Mode:      am,
			Register:  int(opcode) & 0x7,
			Left:      left,
			Count:     1,
		}
	}

	szBits := (opcode >> 6) & 0x3
	kind := (opcode >> 3) & 0x3

	def := Definition{
		Opcode:            opcode,
		Operation:         shiftOperation(kind),
		Size:              Size(szBits),
		Mode:              DataRegister,
		Register:          int(opcode) & 0x7,
		Left:              left,
		CountFromRegister: opcode&0x0020 != 0,
		Count:             int(opcode>>9) & 0x7,
	}

	// an immediate count field of zero encodes a count of eight
	if !def.CountFromRegister && def.Count == 0 {
		def.Count = 8
	}

	return def
}

func shiftOperation(kind uint16) Operation {
	switch kind {
	case 0:
		return ArithmeticShift
	case 1:
		return LogicalShift
	case 2:
		return RotateExtend
	}
	return Rotate
}
