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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/quillon/gopher68k/curated"
	"github.com/quillon/gopher68k/debugger"
	"github.com/quillon/gopher68k/debugger/terminal"
	"github.com/quillon/gopher68k/debugger/terminal/colorterm"
	"github.com/quillon/gopher68k/debugger/terminal/plainterm"
	"github.com/quillon/gopher68k/hardware/cpu"
	"github.com/quillon/gopher68k/hardware/memory"
	"github.com/quillon/gopher68k/logger"
	"github.com/quillon/gopher68k/modalflag"
	"github.com/quillon/gopher68k/performance"
	"github.com/quillon/gopher68k/statsview"
	"github.com/quillon/gopher68k/verification"
)

func main() {
	os.Exit(launch())
}

func launch() int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "VERIFY")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "VERIFY":
		err = verify(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		return 20
	}

	return 0
}

// loadImage copies the binary file into memory. The image is expected to
// contain the vector table, so it is loaded at the bottom of the address
// space.
func loadImage(mem *memory.Memory, filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	for i, v := range b {
		if err := mem.Poke(uint32(i), v); err != nil {
			return err
		}
	}
	return nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	ticks := md.AddInt("ticks", -1, "number of ticks to run for (-1 means run until halted)")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "run stats server")
	profile := md.AddBool("profile", false, "write cpu and memory profiles")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available. build with statsview tag")
		}
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("memory image required for %s mode", md)
	}

	mem := memory.NewMemory()
	if err := loadImage(mem, md.GetArg(0)); err != nil {
		return err
	}

	mc := cpu.NewCPU(mem, &cpu.Preferences{LogUnimplemented: true})
	mc.Reset()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	tickLoop := func() error {
		for *ticks < 0 || mc.Cycles < uint64(*ticks) {
			if err := mc.Tick(); err != nil {
				if curated.Is(err, cpu.ProcessorHalted) {
					return nil
				}
				return err
			}

			select {
			case <-intChan:
				fmt.Println("\r")
				return nil
			default:
			}
		}
		return nil
	}

	if *profile {
		err = performance.ProfileCPU("cpu.profile", tickLoop)
		if err == nil {
			err = performance.ProfileMem("mem.profile")
		}
	} else {
		err = tickLoop()
	}
	if err != nil {
		return err
	}

	fmt.Println(mc.String())
	fmt.Printf("cycles=%d\n", mc.Cycles)

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")
	initScript := md.AddString("initscript", "", "script to run on debugger startup")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("stats", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("* stats server not available. build with statsview tag")
		}
	}

	var term terminal.Terminal
	switch strings.ToUpper(*termType) {
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	default:
		return fmt.Errorf("unknown terminal type: %s", *termType)
	}

	dbg := debugger.NewDebugger(term)

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}
	if len(md.RemainingArgs()) == 1 {
		if _, err := dbg.LoadImage(md.GetArg(0), 0); err != nil {
			return err
		}
	}

	var script *os.File
	if *initScript != "" {
		script, err = os.Open(*initScript)
		if err != nil {
			return err
		}
		defer script.Close()
	}

	if script == nil {
		return dbg.Start(nil)
	}
	return dbg.Start(script)
}

func verify(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if len(md.RemainingArgs()) == 0 {
		return fmt.Errorf("fixture file required for %s mode", md)
	}

	failed := 0
	for _, filename := range md.RemainingArgs() {
		f, err := os.Open(filename)
		if err != nil {
			return err
		}

		fixture, err := verification.Decode(f)
		f.Close()
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
			failed++
			fmt.Println(rep.String())
		}
		fmt.Printf("%s: %d of %d cases passed\n", filename, passed, len(reports))
	}

	if failed > 0 {
		return fmt.Errorf("%d verification cases failed", failed)
	}

	return nil
}
