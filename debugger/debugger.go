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
	"io"
	"os"
	"os/signal"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/debugger/terminal"
	"github.com/quillon/gopher68k/debugger/terminal/commandline"
	"github.com/quillon/gopher68k/hardware/cpu"
	"github.com/quillon/gopher68k/hardware/memory"
)

// maximum length of a command line.
const maxInput = 255

// Debugger is the central debugging process. It loops around the attached
// terminal asking for commands until told to quit.
type Debugger struct {
	mc  *cpu.CPU
	mem *memory.Memory

	term     terminal.Terminal
	commands *commandline.Commands
	events   *terminal.ReadEvents

	// the debugger leaves the input loop when this is false
	running bool
}

// NewDebugger creates a machine and attaches the terminal to it. The power
// on sequence runs when Start() is called, after any program image has been
// loaded.
func NewDebugger(term terminal.Terminal) *Debugger {
	dbg := &Debugger{
		mem:  memory.NewMemory(),
		term: term,
	}
	dbg.mc = cpu.NewCPU(dbg.mem, &cpu.Preferences{LogUnimplemented: true})
	dbg.commands = commandline.NewCommands(commandTable)

	dbg.events = &terminal.ReadEvents{
		IntEvents: make(chan os.Signal, 1),
		RawEvents: make(chan func(), 2),
	}

	return dbg
}

// Start the main debugger loop. Returns when the user quits the session or
// on a terminal failure.
func (dbg *Debugger) Start(initScript io.Reader) error {
	err := dbg.term.Initialise()
	if err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(commandline.NewTabCompletion(dbg.commands))

	// ctrl-c is delivered to the terminal's read loop
	signal.Notify(dbg.events.IntEvents, os.Interrupt)
	defer signal.Stop(dbg.events.IntEvents)

	// run the power on sequence to the first instruction boundary
	dbg.mc.Reset()
	if err := dbg.step(); err != nil {
		dbg.printLine(terminal.StyleError, err.Error())
	}
	dbg.printLine(terminal.StyleFeedback, dbg.mc.String())

	if initScript != nil {
		if err := dbg.runScript(initScript); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return dbg.inputLoop()
}

func (dbg *Debugger) inputLoop() error {
	input := make([]byte, maxInput)

	dbg.running = true
	for dbg.running {
		pc, _ := dbg.mc.PeekField("pc")
		prompt := terminal.Prompt{
			Type:    terminal.PromptTypeStep,
			Content: fmt.Sprintf("%08x %s", pc, dbg.mc.LastDefinition.String()),
		}

		n, err := dbg.term.TermRead(input, prompt, dbg.events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) || err == io.EOF {
				dbg.running = false
				continue
			}
			return curated.Errorf("debugger: %v", err)
		}

		dbg.printLine(terminal.StyleEcho, string(input[:n]))

		if err := dbg.processInput(string(input[:n])); err != nil {
			dbg.printLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

// LoadImage copies a binary file into memory at the given address. Can be
// used before Start() to prepare the machine. Returns the number of bytes
// copied.
func (dbg *Debugger) LoadImage(filename string, address uint32) (int, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return 0, curated.Errorf("debugger: %v", err)
	}
	for i, v := range b {
		if err := dbg.mem.Poke(address+uint32(i), v); err != nil {
			return i, err
		}
	}
	return len(b), nil
}

// runScript processes every line of the reader as though it had been typed
// at the terminal. Used for initialisation scripts.
func (dbg *Debugger) runScript(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return curated.Errorf("debugger: %v", err)
	}

	line := make([]byte, 0, maxInput)
	for _, c := range b {
		if c == '\n' {
			if err := dbg.processInput(string(line)); err != nil {
				return err
			}
			line = line[:0]
			continue
		}
		line = append(line, c)
	}
	if len(line) > 0 {
		return dbg.processInput(string(line))
	}
	return nil
}

func (dbg *Debugger) printLine(style terminal.Style, s string) {
	dbg.term.TermPrintLine(style, s)
}

func (dbg *Debugger) printf(style terminal.Style, s string, args ...interface{}) {
	dbg.term.TermPrintLine(style, fmt.Sprintf(s, args...))
}
