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

// Package verification runs the emulation core against fixture files. a
// fixture describes the complete processor and memory state before a piece
// of code runs, the expected state afterwards, the expected bus traffic in
// between and the number of cycles the whole thing may take. fixtures are
// the ground truth the core is tested against, independently of the unit
// tests.
//
// fixture files are a simple big endian binary container, identified by the
// G68K magic number. parse failures are reported as errors and are kept
// distinct from behaviour mismatches, which are reported through the Report
// type.
package verification
