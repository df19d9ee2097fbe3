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
	"fmt"
	"strings"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/hardware/cpu/instructions"
	"github.com/quillon/gopher68k/hardware/cpu/registers"
	"github.com/quillon/gopher68k/hardware/memory/bus"
	"github.com/quillon/gopher68k/logger"
)

// Sentinal errors returned by the CPU type.
const (
	// the instruction at the program counter is a real MC68000 instruction
	// that this emulation does not support. returned by Tick() before any
	// processor state has changed.
	NotImplemented = "cpu: not implemented: %s"

	// the processor has stopped after a double fault. only Reset() clears
	// the condition.
	ProcessorHalted = "cpu: halted"
)

// internal sentinels used to route faults from micro operation effects back
// to the tick loop.
const (
	busFaultSentinal     = "bus fault"
	addressFaultSentinal = "address fault"
)

// the reach of the 24 bit address bus.
const addressMask = 0x00ffffff

// instant micro operations that can run in a single tick before the
// emulation decides something has gone wrong with an instruction builder.
const defaultDrainLimit = 32

// Preferences are the construction time options for the CPU type. the zero
// value selects the defaults.
type Preferences struct {
	// DrainLimit bounds the number of instant micro operations that can run
	// in a single tick before the emulation decides something has gone
	// wrong with an instruction builder. a value of zero selects the
	// default limit
	DrainLimit int

	// LogUnimplemented records a log entry the first time each real but
	// unsupported instruction is encountered
	LogUnimplemented bool
}

// microOp is a single step of an instruction. cycles of zero means the op
// is instant and runs without consuming the tick.
type microOp struct {
	cycles int
	effect func() error
}

// faultDetail records the bus access behind a group zero fault, for the
// seven word exception frame.
type faultDetail struct {
	address uint32
	read    bool
	fc      bus.FunctionCode
}

// context is the scratch space shared by the micro operations of the
// instruction currently in flight.
type context struct {
	def instructions.Definition

	// address of the opcode
	pc0 uint32

	// captured extension word, computed effective address
	ext     uint16
	address uint32

	// operand is the fetched source operand (or immediate value). operand2
	// is whatever second value the instruction needs
	operand  uint32
	operand2 uint32

	// vector number chosen by an interrupt acknowledge cycle
	vector uint32
}

// CPU implements the MC68000 core. unlike the real thing it must be
// connected to memory via the bus.Bus interface before it does anything.
type CPU struct {
	mem bus.Bus

	D [8]registers.Register
	A [8]registers.Register

	// A[7] is always the active stack pointer. USP and SSP shadow the
	// inactive one; they swap with A[7] when the supervisor bit changes
	USP registers.Register
	SSP registers.Register

	PC registers.ProgramCounter
	SR registers.StatusRegister

	// the prefetch pipeline. IR holds the opcode being executed, IRC the
	// most recently fetched word
	IR  uint16
	IRC uint16

	// address IRC was fetched from. PC relative addressing and the program
	// counter values recorded in exception frames are derived from it
	ircAddress uint32

	// Halted is the double fault condition. terminal until Reset()
	Halted bool

	// Stopped is the STOP instruction condition. an interrupt above the
	// mask (or at level seven) clears it
	Stopped bool

	// Cycles counts every tick since the last Reset()
	Cycles uint64

	// LastDefinition is the decode of the most recently started
	// instruction. used by the debugger
	LastDefinition instructions.Definition

	queue []microOp
	wait  int

	ctx context

	pendingTrace   bool
	servicingFault bool
	fault          faultDetail

	prefs Preferences

	// address of the last unsupported instruction logged, to keep a
	// processor stuck on one from flooding the log
	loggedUnimplemented uint32
}

// NewCPU is the preferred method of initialisation for the CPU type. a nil
// prefs value selects the defaults. the processor is left unpowered; call
// Reset() before the first Tick().
func NewCPU(mem bus.Bus, prefs *Preferences) *CPU {
	mc := &CPU{mem: mem}
	if prefs != nil {
		mc.prefs = *prefs
	}
	if mc.prefs.DrainLimit == 0 {
		mc.prefs.DrainLimit = defaultDrainLimit
	}
	mc.loggedUnimplemented = ^uint32(0)
	for i := range mc.D {
		mc.D[i] = registers.NewRegister(0, fmt.Sprintf("D%d", i))
	}
	for i := range mc.A {
		mc.A[i] = registers.NewRegister(0, fmt.Sprintf("A%d", i))
	}
	mc.USP = registers.NewRegister(0, "USP")
	mc.SSP = registers.NewRegister(0, "SSP")
	return mc
}

func (mc *CPU) String() string {
	s := strings.Builder{}
	for i := range mc.D {
		s.WriteString(mc.D[i].String())
		s.WriteString(" ")
	}
	s.WriteString("\n")
	for i := range mc.A {
		s.WriteString(mc.A[i].String())
		s.WriteString(" ")
	}
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%s SR=%s [%04x] USP=%08x SSP=%08x",
		mc.PC.String(), mc.SR.String(), mc.SR.Value(),
		mc.peekUSP(), mc.peekSSP()))
	return s.String()
}

// Reset emulates the assertion of the external RESET and HALT pins: the
// full power on sequence, including the reads of the initial supervisor
// stack pointer and program counter from the base of the vector table.
func (mc *CPU) Reset() {
	mc.queue = mc.queue[:0]
	mc.wait = 0
	mc.Halted = false
	mc.Stopped = false
	mc.pendingTrace = false
	mc.Cycles = 0
	mc.IR = 0
	mc.IRC = 0
	mc.ircAddress = 0
	mc.loggedUnimplemented = ^uint32(0)
	mc.SR.Reset()

	// a fault during the reset sequence is a double fault
	mc.servicingFault = true

	mc.internal(16)
	mc.enqueueReadLongFC(bus.SupervisorProgram,
		func() uint32 { return VectorResetSSP * 4 },
		func(v uint32) { mc.A[7].Load(v) })
	mc.enqueueReadLongFC(bus.SupervisorProgram,
		func() uint32 { return VectorResetPC * 4 },
		func(v uint32) { mc.PC.Load(v) })
	mc.enqueue(mc.refillOp())
	mc.instant(func() error {
		mc.servicingFault = false
		return nil
	})
}

// Tick advances the processor by one clock cycle.
//
// most ticks return nil. the error returns are conditions the caller must
// decide about: an instruction the emulation does not support (sentinal
// NotImplemented, returned before any state has changed) or a double
// faulted processor (sentinal ProcessorHalted).
func (mc *CPU) Tick() error {
	if mc.Halted {
		return curated.Errorf(ProcessorHalted)
	}

	mc.Cycles++

	// wait states inserted by the bus delay everything
	if mc.wait > 0 {
		mc.wait--
		return nil
	}

	if err := mc.drainInstant(); err != nil {
		return mc.filterFault(err)
	}

	if mc.Stopped {
		if mc.pendingInterrupt() == 0 {
			return nil
		}
		mc.Stopped = false
	}

	if len(mc.queue) == 0 {
		if err := mc.beginInstruction(); err != nil {
			return mc.filterFault(err)
		}
		if err := mc.drainInstant(); err != nil {
			return mc.filterFault(err)
		}
		if len(mc.queue) == 0 {
			return nil
		}
	}

	op := &mc.queue[0]
	op.cycles--
	if op.cycles > 0 {
		return nil
	}

	effect := op.effect
	mc.queue = mc.queue[1:]
	if effect != nil {
		if err := effect(); err != nil {
			return mc.filterFault(err)
		}
	}

	// instant steps attached to the completed op run in the same cycle
	if err := mc.drainInstant(); err != nil {
		return mc.filterFault(err)
	}

	return nil
}

// AtBoundary returns true when the processor is between instructions. the
// debugger uses it to implement stepping.
func (mc *CPU) AtBoundary() bool {
	return len(mc.queue) == 0 && mc.wait == 0
}

// Jump loads the program counter and restarts the prefetch pipeline from
// the new address. for debugger use; the processor must be between
// instructions.
func (mc *CPU) Jump(address uint32) error {
	if !mc.AtBoundary() {
		return curated.Errorf("cpu: jump while an instruction is in flight")
	}
	if address&0x1 != 0 {
		return curated.Errorf("cpu: jump to odd address %06x", address&addressMask)
	}
	mc.PC.Load(address)
	mc.enqueue(mc.refillOp())
	return nil
}

// beginInstruction decides what happens at an instruction boundary: a
// pending trace exception, a serviceable interrupt, or the instruction
// sitting in IRC.
func (mc *CPU) beginInstruction() error {
	// trace has priority over interrupts
	if mc.pendingTrace {
		mc.pendingTrace = false
		mc.enqueueException(VectorTrace, mc.ircAddress)
		return nil
	}

	if lvl := mc.pendingInterrupt(); lvl > 0 {
		mc.enqueueInterrupt(lvl)
		return nil
	}

	def := instructions.Decode(mc.IRC)
	if def.Class == instructions.Unimplemented {
		if mc.prefs.LogUnimplemented && mc.loggedUnimplemented != mc.ircAddress {
			mc.loggedUnimplemented = mc.ircAddress
			logger.Logf(logger.Allow, "cpu", "unsupported instruction %s at %06x", def.String(), mc.ircAddress)
		}
		return curated.Errorf(NotImplemented, def.String())
	}

	// if the trace bit is set now, a trace exception follows this
	// instruction whatever the instruction does to the bit
	mc.pendingTrace = mc.SR.Trace

	mc.IR = mc.IRC
	mc.LastDefinition = def
	mc.ctx = context{def: def, pc0: mc.ircAddress}

	mc.enqueue(mc.refillOp())
	mc.instant(mc.buildInstruction)

	return nil
}

// pendingInterrupt returns the level of a serviceable interrupt, or zero.
// level seven is non maskable.
func (mc *CPU) pendingInterrupt() int {
	lvl := mc.mem.InterruptLevel()
	if lvl <= 0 {
		return 0
	}
	if lvl > 7 {
		lvl = 7
	}
	if lvl == 7 || lvl > int(mc.SR.InterruptMask) {
		return lvl
	}
	return 0
}

// filterFault converts the internal fault sentinels into group zero
// exception processing. other errors pass through to the Tick() caller.
func (mc *CPU) filterFault(err error) error {
	if curated.Is(err, busFaultSentinal) {
		return mc.beginFault(VectorBusError)
	}
	if curated.Is(err, addressFaultSentinal) {
		return mc.beginFault(VectorAddressError)
	}
	return err
}

// beginFault abandons the instruction in flight and schedules group zero
// exception processing. a fault during the processing of an earlier fault
// halts the processor.
func (mc *CPU) beginFault(vector uint32) error {
	if mc.servicingFault {
		mc.Halted = true
		return curated.Errorf(ProcessorHalted)
	}
	mc.queue = mc.queue[:0]
	mc.wait = 0
	mc.servicingFault = true
	mc.enqueueFaultException(vector)
	return nil
}

// drainInstant runs instant micro operations at the head of the queue.
func (mc *CPU) drainInstant() error {
	n := 0
	for len(mc.queue) > 0 && mc.queue[0].cycles == 0 {
		effect := mc.queue[0].effect
		mc.queue = mc.queue[1:]
		if effect != nil {
			if err := effect(); err != nil {
				return err
			}
		}
		n++
		if n > mc.prefs.DrainLimit {
			return curated.Errorf("cpu: runaway instant micro operation chain")
		}
	}
	return nil
}

// queue helpers

func (mc *CPU) enqueue(op microOp) {
	mc.queue = append(mc.queue, op)
}

func (mc *CPU) instant(effect func() error) {
	mc.queue = append(mc.queue, microOp{effect: effect})
}

func (mc *CPU) internal(cycles int) {
	if cycles > 0 {
		mc.queue = append(mc.queue, microOp{cycles: cycles})
	}
}

// refillOp is the timed op that fetches the next word of the instruction
// stream into IRC.
func (mc *CPU) refillOp() microOp {
	return microOp{cycles: 4, effect: func() error {
		addr := mc.PC.Value() & addressMask
		v, err := mc.busReadWord(addr, mc.fcProgram())
		if err != nil {
			return err
		}
		mc.IRC = v
		mc.ircAddress = addr
		mc.PC.Add(2)
		return nil
	}}
}

// bus access helpers. these perform the access immediately and are only
// called from inside micro operation effects. wait states reported by the
// bus accumulate as debt that Tick() burns before anything else happens.

func (mc *CPU) busReadByte(address uint32, fc bus.FunctionCode) (uint8, error) {
	address &= addressMask
	v, wait, err := mc.mem.ReadByte(address, fc)
	if err != nil {
		mc.fault = faultDetail{address: address, read: true, fc: fc}
		return 0, curated.Errorf(busFaultSentinal)
	}
	mc.wait += wait
	return v, nil
}

func (mc *CPU) busReadWord(address uint32, fc bus.FunctionCode) (uint16, error) {
	address &= addressMask
	if address&0x1 != 0 {
		mc.fault = faultDetail{address: address, read: true, fc: fc}
		return 0, curated.Errorf(addressFaultSentinal)
	}
	v, wait, err := mc.mem.ReadWord(address, fc)
	if err != nil {
		mc.fault = faultDetail{address: address, read: true, fc: fc}
		return 0, curated.Errorf(busFaultSentinal)
	}
	mc.wait += wait
	return v, nil
}

func (mc *CPU) busWriteByte(address uint32, data uint8, fc bus.FunctionCode) error {
	address &= addressMask
	wait, err := mc.mem.WriteByte(address, data, fc)
	if err != nil {
		mc.fault = faultDetail{address: address, fc: fc}
		return curated.Errorf(busFaultSentinal)
	}
	mc.wait += wait
	return nil
}

func (mc *CPU) busWriteWord(address uint32, data uint16, fc bus.FunctionCode) error {
	address &= addressMask
	if address&0x1 != 0 {
		mc.fault = faultDetail{address: address, fc: fc}
		return curated.Errorf(addressFaultSentinal)
	}
	wait, err := mc.mem.WriteWord(address, data, fc)
	if err != nil {
		mc.fault = faultDetail{address: address, fc: fc}
		return curated.Errorf(busFaultSentinal)
	}
	mc.wait += wait
	return nil
}

func (mc *CPU) fcProgram() bus.FunctionCode {
	if mc.SR.Supervisor {
		return bus.SupervisorProgram
	}
	return bus.UserProgram
}

func (mc *CPU) fcData() bus.FunctionCode {
	if mc.SR.Supervisor {
		return bus.SupervisorData
	}
	return bus.UserData
}

// timed read/write op builders. addresses and values are closures because
// they often depend on the effects of earlier ops in the same instruction.

func (mc *CPU) enqueueReadLongFC(fc bus.FunctionCode, addr func() uint32, store func(uint32)) {
	var hi uint32
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		v, err := mc.busReadWord(addr(), fc)
		if err != nil {
			return err
		}
		hi = uint32(v) << 16
		return nil
	}})
	mc.enqueue(microOp{cycles: 4, effect: func() error {
		v, err := mc.busReadWord(addr()+2, fc)
		if err != nil {
			return err
		}
		store(hi | uint32(v))
		return nil
	}})
}

// setSupervisor changes the supervisor bit, swapping the active stack
// pointer with the appropriate shadow.
func (mc *CPU) setSupervisor(s bool) {
	if s == mc.SR.Supervisor {
		return
	}
	if s {
		mc.USP.Load(mc.A[7].Value())
		mc.A[7].Load(mc.SSP.Value())
	} else {
		mc.SSP.Load(mc.A[7].Value())
		mc.A[7].Load(mc.USP.Value())
	}
	mc.SR.Supervisor = s
}

// loadSR replaces the whole status register, handling the stack pointer
// swap if the write changes the supervisor bit.
func (mc *CPU) loadSR(v uint16) {
	mc.setSupervisor(v&0x2000 != 0)
	mc.SR.Load(v)
}

// conditionTrue evaluates one of the sixteen condition codes against the
// status register. condition zero is always true; condition one (the BSR
// slot in the Bcc opcode space) is never true here.
func (mc *CPU) conditionTrue(c int) bool {
	sr := &mc.SR
	switch c {
	case 0:
		return true
	case 1:
		return false
	case 2: // HI
		return !sr.Carry && !sr.Zero
	case 3: // LS
		return sr.Carry || sr.Zero
	case 4: // CC
		return !sr.Carry
	case 5: // CS
		return sr.Carry
	case 6: // NE
		return !sr.Zero
	case 7: // EQ
		return sr.Zero
	case 8: // VC
		return !sr.Overflow
	case 9: // VS
		return sr.Overflow
	case 10: // PL
		return !sr.Negative
	case 11: // MI
		return sr.Negative
	case 12: // GE
		return sr.Negative == sr.Overflow
	case 13: // LT
		return sr.Negative != sr.Overflow
	case 14: // GT
		return !sr.Zero && sr.Negative == sr.Overflow
	}
	// LE
	return sr.Zero || sr.Negative != sr.Overflow
}
