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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first call NewArgs() with the array
// of arguments and then Parse() with no arguments:
//
//	md := Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("run", "debug", "verify")
//	_, _ = md.Parse()
//
// Subsequent calls to Parse() process flags in the normal way but, unlike
// the regular flag.Parse() function, check to see if the first argument
// after the flags is one of the listed modes:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		ticks := md.AddInt("ticks", -1, "number of ticks to run for")
//		_, _ = md.Parse()
//		run(md.RemainingArgs(), *ticks)
//	}
//
// Modes can be chained as deep as required, with a fresh set of flags at
// every level. Mode comparisons are case insensitive and the first mode in
// the list given to AddSubModes() is the default.
package modalflag
