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

package debugger

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/debugger/terminal"
	"github.com/quillon/gopher68k/debugger/terminal/commandline"
	"github.com/quillon/gopher68k/hardware/cpu"
	"github.com/quillon/gopher68k/hardware/memory/bus"
	"github.com/quillon/gopher68k/logger"
	"github.com/quillon/gopher68k/verification"
)

// Sentinal errors for the command dispatcher.
const (
	CommandError = "command: %v"
)

var commandTable = []commandline.Command{
	{Name: "HELP", Template: "HELP [command]", Help: "show help summary or help for a single command"},
	{Name: "TICK", Template: "TICK [count]", Help: "advance the clock by count ticks (default 1)"},
	{Name: "STEP", Template: "STEP [count]", Help: "run to the next instruction boundary, count times"},
	{Name: "REGISTERS", Template: "REGISTERS", Help: "show the processor registers"},
	{Name: "PEEK", Template: "PEEK [field...]", Help: "show named processor fields. no arguments lists the valid names"},
	{Name: "MEM", Template: "MEM address [length]", Help: "hex dump of memory. numbers are hexadecimal, prefix # for decimal"},
	{Name: "POKE", Template: "POKE address value [value...]", Help: "write bytes directly to memory"},
	{Name: "LOAD", Template: "LOAD file [address]", Help: "copy a binary file into memory (default address 0)"},
	{Name: "IRQ", Template: "IRQ level [vector]", Help: "assert an interrupt at the given level (vector defaults to auto-vectoring)"},
	{Name: "VERIFY", Template: "VERIFY file", Help: "run every case in a verification fixture file"},
	{Name: "LOG", Template: "LOG [CLEAR]", Help: "show (or clear) the emulator log"},
	{Name: "RESET", Template: "RESET", Help: "run the power on sequence"},
	{Name: "QUIT", Template: "QUIT", Help: "leave the debugger"},
}

func (dbg *Debugger) processInput(input string) error {
	sel, err := dbg.commands.Find(input)
	if err != nil {
		return err
	}
	if sel.Command == nil {
		return nil
	}

	switch sel.Command.Name {
	case "HELP":
		cmd := ""
		if len(sel.Args) > 0 {
			cmd = sel.Args[0]
		}
		dbg.printLine(terminal.StyleHelp, dbg.commands.Help(cmd))

	case "TICK":
		count, err := parseCount(sel.Args, 1)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := dbg.mc.Tick(); err != nil {
				return err
			}
		}
		dbg.printState()

	case "STEP":
		count, err := parseCount(sel.Args, 1)
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := dbg.step(); err != nil {
				return err
			}
		}
		dbg.printState()

	case "REGISTERS":
		dbg.printLine(terminal.StyleFeedback, dbg.mc.String())

	case "PEEK":
		if len(sel.Args) == 0 {
			dbg.printLine(terminal.StyleFeedback, strings.Join(cpu.PeekFieldNames(), " "))
			return nil
		}
		for _, fld := range sel.Args {
			v, err := dbg.mc.PeekField(fld)
			if err != nil {
				return err
			}
			dbg.printf(terminal.StyleFeedback, "%s=%08x", strings.ToLower(fld), v)
		}

	case "MEM":
		if len(sel.Args) == 0 {
			return curated.Errorf(CommandError, "MEM requires an address")
		}
		address, err := parseNumber(sel.Args[0])
		if err != nil {
			return err
		}
		length := uint32(16)
		if len(sel.Args) > 1 {
			length, err = parseNumber(sel.Args[1])
			if err != nil {
				return err
			}
		}
		dbg.dumpMemory(address, length)

	case "POKE":
		if len(sel.Args) < 2 {
			return curated.Errorf(CommandError, "POKE requires an address and at least one value")
		}
		address, err := parseNumber(sel.Args[0])
		if err != nil {
			return err
		}
		for i, arg := range sel.Args[1:] {
			v, err := parseNumber(arg)
			if err != nil {
				return err
			}
			if v > 0xff {
				return curated.Errorf(CommandError, fmt.Sprintf("POKE value doesn't fit in a byte: %s", arg))
			}
			if err := dbg.mem.Poke(address+uint32(i), uint8(v)); err != nil {
				return err
			}
		}

	case "LOAD":
		if len(sel.Args) == 0 {
			return curated.Errorf(CommandError, "LOAD requires a file name")
		}
		address := uint32(0)
		if len(sel.Args) > 1 {
			var err error
			address, err = parseNumber(sel.Args[1])
			if err != nil {
				return err
			}
		}
		if err := dbg.loadFile(sel.Args[0], address); err != nil {
			return err
		}

	case "IRQ":
		if len(sel.Args) == 0 {
			return curated.Errorf(CommandError, "IRQ requires an interrupt level")
		}
		level, err := strconv.Atoi(sel.Args[0])
		if err != nil || level < 1 || level > 7 {
			return curated.Errorf(CommandError, fmt.Sprintf("not an interrupt level: %s", sel.Args[0]))
		}
		vector := bus.AutoVector
		if len(sel.Args) > 1 {
			vector, err = strconv.Atoi(sel.Args[1])
			if err != nil || vector < 0 || vector > 255 {
				return curated.Errorf(CommandError, fmt.Sprintf("not an interrupt vector: %s", sel.Args[1]))
			}
		}
		dbg.mem.RaiseInterrupt(level, vector)

	case "VERIFY":
		if len(sel.Args) == 0 {
			return curated.Errorf(CommandError, "VERIFY requires a fixture file")
		}
		if err := dbg.verify(sel.Args[0]); err != nil {
			return err
		}

	case "LOG":
		if len(sel.Args) > 0 && strings.ToUpper(sel.Args[0]) == "CLEAR" {
			logger.Clear()
			return nil
		}
		logger.BorrowLog(func(entries []logger.Entry) {
			for i := range entries {
				dbg.printLine(terminal.StyleFeedback, entries[i].String())
			}
		})

	case "RESET":
		dbg.mc.Reset()
		if err := dbg.step(); err != nil {
			return err
		}
		dbg.printState()

	case "QUIT":
		dbg.running = false
	}

	return nil
}

// step ticks the processor up to the next instruction boundary.
func (dbg *Debugger) step() error {
	for {
		if err := dbg.mc.Tick(); err != nil {
			return err
		}
		if dbg.mc.AtBoundary() {
			return nil
		}
	}
}

func (dbg *Debugger) printState() {
	dbg.printf(terminal.StyleStep, "%s", dbg.mc.String())
	dbg.printf(terminal.StyleStep, "cycles=%d", dbg.mc.Cycles)
}

func (dbg *Debugger) dumpMemory(address uint32, length uint32) {
	s := strings.Builder{}
	for i := uint32(0); i < length; i++ {
		if i%16 == 0 {
			if i > 0 {
				dbg.printLine(terminal.StyleFeedback, s.String())
				s.Reset()
			}
			s.WriteString(fmt.Sprintf("%08x ", address+i))
		}
		v, err := dbg.mem.Peek(address + i)
		if err != nil {
			s.WriteString(" ??")
			continue
		}
		s.WriteString(fmt.Sprintf(" %02x", v))
	}
	if s.Len() > 0 {
		dbg.printLine(terminal.StyleFeedback, s.String())
	}
}

func (dbg *Debugger) loadFile(filename string, address uint32) error {
	n, err := dbg.LoadImage(filename, address)
	if err != nil {
		return err
	}
	dbg.printf(terminal.StyleFeedback, "%s: %d bytes at %08x", filename, n, address)
	return nil
}

func (dbg *Debugger) verify(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf(CommandError, err)
	}
	defer f.Close()

	fixture, err := verification.Decode(f)
	if err != nil {
		return err
	}

	reports, err := verification.RunAll(fixture)
	if err != nil {
		return err
	}

	passed := 0
	for _, rep := range reports {
		if rep.Passed() {
			passed++
			continue
		}
		dbg.printLine(terminal.StyleError, rep.String())
	}
	dbg.printf(terminal.StyleFeedback, "%d of %d cases passed", passed, len(reports))

	return nil
}

// parseCount interprets the first argument as a decimal repeat count.
func parseCount(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		return 0, curated.Errorf(CommandError, fmt.Sprintf("not a count: %s", args[0]))
	}
	return count, nil
}

// parseNumber interprets addresses and data values. Numbers are hexadecimal
// by convention, optionally marked with a leading $ or 0x. A leading #
// marks a decimal number.
func parseNumber(s string) (uint32, error) {
	arg := s
	base := 16
	switch {
	case strings.HasPrefix(arg, "$"):
		arg = arg[1:]
	case strings.HasPrefix(arg, "0x"):
		arg = arg[2:]
	case strings.HasPrefix(arg, "#"):
		arg = arg[1:]
		base = 10
	}

	v, err := strconv.ParseUint(arg, base, 32)
	if err != nil {
		return 0, curated.Errorf(CommandError, fmt.Sprintf("not a number: %s", s))
	}
	return uint32(v), nil
}
